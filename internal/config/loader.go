package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. RAIND_ADDR.
const EnvPrefix = "RAIND_"

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr                  string   `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	ModelsDir             string   `json:"models_dir" yaml:"models_dir" toml:"models_dir" env:"MODELS_DIR"`
	WatchModels           bool     `json:"watch_models" yaml:"watch_models" toml:"watch_models" env:"WATCH_MODELS"`
	AutoLoad              bool     `json:"auto_load" yaml:"auto_load" toml:"auto_load" env:"AUTO_LOAD"`
	LogLevel              string   `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat             string   `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`
	MaxConversationLength int      `json:"max_conversation_length" yaml:"max_conversation_length" toml:"max_conversation_length" env:"MAX_CONVERSATION_LENGTH"`
	LlamaCtx              int      `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx" env:"LLAMA_CTX"`
	LlamaThreads          int      `json:"llama_threads" yaml:"llama_threads" toml:"llama_threads" env:"LLAMA_THREADS"`
	ServerURL             string   `json:"server_url" yaml:"server_url" toml:"server_url" env:"SERVER_URL"`
	ServerAPIKey          string   `json:"server_api_key" yaml:"server_api_key" toml:"server_api_key" env:"SERVER_API_KEY"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS"`
	CORSOrigins           []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays RAIND_* environment variables onto cfg. Unset variables
// leave the corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// LoadWithEnv loads path (when non-empty) and then applies environment overrides.
func LoadWithEnv(path string) (Config, error) {
	var cfg Config
	if path != "" {
		c, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
