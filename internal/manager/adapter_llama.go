//go:build llama

package manager

import (
	"context"
	"errors"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"

	"raind/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaBackend owns an in-process llama.cpp model.
type llamaBackend struct {
	mu      sync.Mutex
	model   *llama.LLama
	desc    types.ModelDescriptor
	threads int
}

func newLlamaBackend(cfg BackendConfig, desc types.ModelDescriptor) (Backend, error) {
	p, err := weightPath(desc)
	if err != nil {
		return nil, err
	}
	mo := []llama.ModelOption{}
	if cfg.LlamaCtx > 0 {
		mo = append(mo, llama.SetContext(cfg.LlamaCtx))
	}
	m, err := llama.New(p, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaBackend{model: m, desc: desc, threads: cfg.LlamaThreads}, nil
}

func (b *llamaBackend) Describe() types.ModelDescriptor { return b.desc.Clone() }

func (b *llamaBackend) Generate(ctx context.Context, prompt string, params types.GenerationParams) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.model == nil {
		return "", errors.New("llama model not initialized")
	}
	// stop predicting as soon as the caller gives up
	b.model.SetTokenCallback(func(string) bool {
		return ctx.Err() == nil
	})
	text, err := b.model.Predict(prompt, predictOptions(params, b.threads)...)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (b *llamaBackend) Unload() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.model != nil {
		b.model.Free()
		b.model = nil
	}
	return nil
}

// predictOptions converts generation settings into go-llama.cpp options.
func predictOptions(p types.GenerationParams, threads int) []llama.PredictOption {
	sp := samplingFor(p)
	po := []llama.PredictOption{
		llama.SetThreads(max(1, threads)),
		llama.SetTopP(sp.topP),
		llama.SetTopK(sp.topK),
		llama.SetTemperature(sp.temperature),
	}
	if sp.tokens > 0 {
		po = append(po, llama.SetTokens(sp.tokens))
	}
	if len(sp.stop) > 0 {
		po = append(po, llama.SetStopWords(sp.stop...))
	}
	return po
}
