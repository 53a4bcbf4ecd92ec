package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"raind/pkg/types"
)

// DefaultFactories returns the production backend table.
//
// GGUF and GGML run in-process through llama.cpp when the binary is built
// with the llama tag, otherwise through the completion server if one is
// configured. HuggingFace and ONNX always go through the server.
func DefaultFactories(cfg BackendConfig) Factories {
	server := func(_ context.Context, desc types.ModelDescriptor) (Backend, error) {
		if strings.TrimSpace(cfg.ServerURL) == "" {
			return nil, ErrDependencyUnavailable(fmt.Sprintf("%s models need a completion server (server_url not configured)", desc.Format))
		}
		return newServerBackend(cfg, desc), nil
	}
	llamaFactory := func(ctx context.Context, desc types.ModelDescriptor) (Backend, error) {
		if llamaBuilt {
			return newLlamaBackend(cfg, desc)
		}
		if strings.TrimSpace(cfg.ServerURL) != "" {
			return newServerBackend(cfg, desc), nil
		}
		return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag) and no server_url configured")
	}
	return Factories{
		types.FormatGGUF:        llamaFactory,
		types.FormatGGML:        llamaFactory,
		types.FormatHuggingFace: server,
		types.FormatONNX:        server,
	}
}

// weightPath picks the file llama.cpp should open: the first .gguf, else the first .ggml.
func weightPath(desc types.ModelDescriptor) (string, error) {
	for _, ext := range []string{".gguf", ".ggml"} {
		for _, f := range desc.Files {
			if f.Extension == ext {
				return filepath.Join(desc.Path, f.Name), nil
			}
		}
	}
	return "", fmt.Errorf("no .gguf or .ggml file in %s", desc.Path)
}
