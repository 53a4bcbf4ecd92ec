// Package app is the facade the HTTP API and CLI drive. It wires the model
// registry, the lifecycle manager, the context retriever and its cache, and
// adds Chat and Status on top of them.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"raind/internal/ctxcache"
	"raind/internal/manager"
	"raind/internal/registry"
	"raind/internal/retrieval"
	"raind/pkg/types"
)

// Defaults applied to Chat requests that leave the context fields unset.
const (
	DefaultChatStrategy      = retrieval.StrategySmart
	DefaultChatContextTokens = 1024
)

// Config wires an App. Nil fields are constructed with package defaults.
type Config struct {
	Registry  *registry.Registry
	Manager   *manager.Manager
	Retriever *retrieval.Retriever
	Logger    *zerolog.Logger
	// Now is the clock used for Status; defaults to time.Now.
	Now func() time.Time
}

// App exposes every daemon operation.
type App struct {
	reg   *registry.Registry
	mgr   *manager.Manager
	retr  *retrieval.Retriever
	cache *ctxcache.Cache
	log   zerolog.Logger
	now   func() time.Time
	start time.Time
}

// New builds an App from cfg.
func New(cfg Config) *App {
	a := &App{
		reg:  cfg.Registry,
		mgr:  cfg.Manager,
		retr: cfg.Retriever,
		log:  zerolog.Nop(),
		now:  cfg.Now,
	}
	if cfg.Logger != nil {
		a.log = *cfg.Logger
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.reg == nil && a.mgr != nil {
		a.reg = a.mgr.Registry()
	}
	if a.reg == nil {
		a.reg = registry.New("", registry.WithLogger(a.log))
	}
	if a.mgr == nil {
		a.mgr = manager.NewWithConfig(manager.ManagerConfig{Registry: a.reg, Logger: &a.log})
	}
	if a.retr == nil {
		a.retr = retrieval.New(retrieval.WithLogger(a.log))
	}
	a.cache = a.retr.Cache()
	a.start = a.now()
	return a
}

// Registry returns the model registry.
func (a *App) Registry() *registry.Registry { return a.reg }

// Manager returns the lifecycle manager.
func (a *App) Manager() *manager.Manager { return a.mgr }

// Retriever returns the context retriever.
func (a *App) Retriever() *retrieval.Retriever { return a.retr }

// DiscoverModels rescans the models root.
func (a *App) DiscoverModels() ([]types.ModelDescriptor, error) {
	models, err := a.reg.Discover()
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("count", len(models)).Str("root", a.reg.Root()).Msg("models discovered")
	return models, nil
}

// ListModels returns the last discovery result.
func (a *App) ListModels() []types.ModelDescriptor { return a.reg.List() }

// DiscoverEmbeddingModels rescans the embedding subdirectory.
func (a *App) DiscoverEmbeddingModels() ([]types.ModelDescriptor, error) {
	models, err := a.reg.DiscoverEmbedding()
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("count", len(models)).Msg("embedding models discovered")
	return models, nil
}

// EmbeddingModels returns the last embedding discovery result.
func (a *App) EmbeddingModels() []types.ModelDescriptor { return a.reg.Embeddings() }

// LoadBestModel loads the highest-priority discovered model.
func (a *App) LoadBestModel(ctx context.Context) (bool, error) { return a.mgr.LoadBest(ctx) }

// LoadModelByID loads the model with the given id.
func (a *App) LoadModelByID(ctx context.Context, id string) error { return a.mgr.LoadByID(ctx, id) }

// LoadModelByName loads the model with the given display name.
func (a *App) LoadModelByName(ctx context.Context, name string) error {
	return a.mgr.LoadByName(ctx, name)
}

// UnloadCurrentModel releases the active backend.
func (a *App) UnloadCurrentModel() error { return a.mgr.Unload() }

// ModelInfo describes the loaded model.
func (a *App) ModelInfo() (types.ModelDescriptor, bool) { return a.mgr.ModelInfo() }

// GenerateResponse runs one conversational turn.
func (a *App) GenerateResponse(ctx context.Context, message string) (string, error) {
	return a.mgr.GenerateResponse(ctx, message)
}

// UpdateGenerationSettings replaces the sampling settings.
func (a *App) UpdateGenerationSettings(p types.GenerationParams) {
	a.mgr.UpdateGenerationSettings(p)
}

// GenerationSettings returns the sampling settings.
func (a *App) GenerationSettings() types.GenerationParams { return a.mgr.GenerationSettings() }

// ClearConversation drops the chat history.
func (a *App) ClearConversation() { a.mgr.ClearConversation() }

// ResetContext drops the chat history.
func (a *App) ResetContext() { a.mgr.ResetContext() }

// GetContext assembles context for req.
func (a *App) GetContext(req types.ContextRequest) (types.ContextResponse, error) {
	return a.retr.GetContext(req)
}

// Strategies lists the registered context strategy keys.
func (a *App) Strategies() map[string]types.ContextStrategy {
	out := map[string]types.ContextStrategy{}
	for _, k := range a.retr.Strategies() {
		if s, err := a.retr.Strategy(k); err == nil {
			out[k] = s
		}
	}
	return out
}

// CacheContext stores content under id in the context cache.
func (a *App) CacheContext(id, content string, md types.ContextMetadata) (types.ContextItem, error) {
	if strings.TrimSpace(id) == "" {
		return types.ContextItem{}, manager.ErrInvalidInput("context id is empty")
	}
	if md.SourceType == "" {
		md.SourceType = types.SourceFile
	}
	if !md.SourceType.Valid() {
		return types.ContextItem{}, manager.ErrInvalidInput("unknown source type " + string(md.SourceType))
	}
	return a.cache.Put(id, content, md), nil
}

// GetCachedContext looks up a cached item, counting the access.
func (a *App) GetCachedContext(id string) (types.ContextItem, bool) { return a.cache.Get(id) }

// ClearCache empties the context cache.
func (a *App) ClearCache() { a.cache.Clear() }

// CacheStats summarizes the context cache.
func (a *App) CacheStats() types.CacheStats {
	s := a.cache.Stats()
	return types.CacheStats{Items: s.Items, Bytes: s.Bytes}
}

// Status reports the daemon's state without blocking on generation.
func (a *App) Status() types.StatusResponse {
	snap := a.mgr.Snapshot()
	now := a.now()
	st := types.StatusResponse{
		State:                string(snap.State),
		LastError:            snap.Err,
		ModelsTotal:          a.reg.Len(),
		EmbeddingModelsTotal: len(a.reg.Embeddings()),
		LoadsTotal:           snap.LoadsTotal,
		ConversationLength:   a.mgr.Conversation().Len(),
		Cache:                a.CacheStats(),
		UptimeSeconds:        int64(now.Sub(a.start).Seconds()),
		ServerTimeUnix:       now.Unix(),
	}
	if snap.CurrentModel != nil {
		st.CurrentModel = snap.CurrentModel.ID
	}
	return st
}

// Ready reports whether a model is loaded.
func (a *App) Ready() bool { return a.mgr.Ready() }

// SanityCheck reports which model formats this process can load.
func (a *App) SanityCheck() manager.SanityReport { return a.mgr.SanityCheck() }
