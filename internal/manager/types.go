package manager

import (
	"context"

	"raind/pkg/types"
)

// State represents the lifecycle state of the manager.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
)

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State        State
	CurrentModel *types.ModelDescriptor
	Err          string
	LoadsTotal   uint64
}

// Backend is one loaded model. The manager owns at most one at a time.
type Backend interface {
	// Generate produces a completion for a fully formatted prompt.
	Generate(ctx context.Context, prompt string, params types.GenerationParams) (string, error)
	// Describe returns the descriptor the backend was built from.
	Describe() types.ModelDescriptor
	// Unload releases the model. The backend is unusable afterwards.
	Unload() error
}

// BackendFactory constructs a backend for a descriptor.
type BackendFactory func(ctx context.Context, desc types.ModelDescriptor) (Backend, error)

// Factories maps each format to its constructor.
type Factories map[types.Format]BackendFactory

// lookup resolves the factory for f. GGML shares the GGUF constructor unless
// one is registered explicitly.
func (fs Factories) lookup(f types.Format) (BackendFactory, bool) {
	if fn, ok := fs[f]; ok && fn != nil {
		return fn, true
	}
	if f == types.FormatGGML {
		fn, ok := fs[types.FormatGGUF]
		return fn, ok && fn != nil
	}
	return nil, false
}
