package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"raind/internal/common/fsutil"
	"raind/internal/config"
	"raind/internal/logging"
)

// rootOptions carries persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	envFile    string
	modelsDir  string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "raind",
		Short:         "Local model daemon with conversation and editor context retrieval",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&opts.envFile, "env-file", config.DefaultDotEnvFile, "dotenv file exporting RAIND_* variables (skipped when missing)")
	pf.StringVar(&opts.modelsDir, "models-dir", "", "Models directory (default: first of ./models, ../models, ~/Documents/raind/models)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console|json (default console)")

	root.AddCommand(newServeCmd(opts), newDiscoverCmd(opts), newContextCmd(opts))
	return root
}

// resolveConfig merges file, RAIND_* environment (including the dotenv file)
// and persistent flags, in increasing precedence, and fills defaults.
func (o *rootOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadWithEnv(o.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("models-dir") {
		cfg.ModelsDir = o.modelsDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = fsutil.ResolveModelsDir(fsutil.ModelsDirCandidates())
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 300
	}
}

// newLogger builds the process logger. Async logging is reserved for the
// long-running server; one-shot commands write synchronously.
func newLogger(cfg config.Config, async bool) (zerolog.Logger, func(), error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Async:  async,
	})
}

// splitCSV splits a comma-separated flag value, dropping empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
