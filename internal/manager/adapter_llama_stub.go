//go:build !llama

package manager

// Compiled when the 'llama' build tag is NOT set, keeping default builds
// CGO-free. GGUF/GGML models then need a completion server.

import "raind/pkg/types"

var llamaBuilt = false

func newLlamaBackend(BackendConfig, types.ModelDescriptor) (Backend, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
