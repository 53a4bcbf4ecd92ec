package manager

import (
	"time"

	"github.com/rs/zerolog"

	"raind/internal/conversation"
	"raind/internal/registry"
	"raind/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxMessageChars = 10000
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry *registry.Registry
	// Factories builds backends per format. Nil selects DefaultFactories(Backend).
	Factories Factories
	// Backend configures the default factories.
	Backend BackendConfig
	// MaxConversationLength caps history; <= 0 uses conversation.DefaultMaxLength.
	MaxConversationLength int
	// Params overrides the initial generation settings.
	Params    *types.GenerationParams
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// BackendConfig holds runtime settings for the default backends. No envs; set by callers.
type BackendConfig struct {
	// In-process llama.cpp
	LlamaCtx     int
	LlamaThreads int
	// OpenAI-compatible completion server
	ServerURL      string
	ServerAPIKey   string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:      StateUnloaded,
		registry:   cfg.Registry,
		factories:  cfg.Factories,
		backendCfg: cfg.Backend,
		conv:       conversation.New(cfg.MaxConversationLength),
		params:     types.DefaultGenerationParams(),
		publisher:  noopPublisher{},
		log:        zerolog.Nop(),
		startTime:  time.Now(),
	}
	if m.registry == nil {
		m.registry = registry.New("")
	}
	if m.factories == nil {
		m.factories = DefaultFactories(cfg.Backend)
	}
	if cfg.Params != nil {
		m.params = cloneParams(*cfg.Params)
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	return m
}

func cloneParams(p types.GenerationParams) types.GenerationParams {
	if p.StopSequences != nil {
		p.StopSequences = append([]string{}, p.StopSequences...)
	}
	return p
}
