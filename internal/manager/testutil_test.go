package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"raind/internal/registry"
	"raind/pkg/types"
)

// writeModel creates root/id/file so discovery picks it up.
func writeModel(t *testing.T, root, id, file string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// newRegistry discovers models laid out as id -> weight file name.
func newRegistry(t *testing.T, models map[string]string) *registry.Registry {
	t.Helper()
	root := t.TempDir()
	for id, file := range models {
		writeModel(t, root, id, file)
	}
	reg := registry.New(root)
	if _, err := reg.Discover(); err != nil {
		t.Fatalf("discover: %v", err)
	}
	return reg
}

// callLog records backend lifecycle calls across fakes in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(s string) {
	l.mu.Lock()
	l.calls = append(l.calls, s)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// fakeBackend is a lightweight in-memory backend used for tests.
type fakeBackend struct {
	desc      types.ModelDescriptor
	log       *callLog
	reply     string
	genErr    error
	unloadErr error

	mu         sync.Mutex
	prompts    []string
	lastParams types.GenerationParams
}

func (f *fakeBackend) Generate(ctx context.Context, prompt string, params types.GenerationParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.lastParams = params
	f.mu.Unlock()
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.reply, nil
}

func (f *fakeBackend) Describe() types.ModelDescriptor { return f.desc }

func (f *fakeBackend) Unload() error {
	if f.log != nil {
		f.log.add("unload:" + f.desc.ID)
	}
	return f.unloadErr
}

// fakeFactories builds fakeBackends for every format and records construction.
type fakeFactories struct {
	log       *callLog
	reply     string
	failFor   map[string]error
	configure func(*fakeBackend)

	mu    sync.Mutex
	built map[string]*fakeBackend
}

func newFakeFactories() *fakeFactories {
	return &fakeFactories{
		log:     &callLog{},
		reply:   "ok",
		failFor: map[string]error{},
		built:   map[string]*fakeBackend{},
	}
}

func (ff *fakeFactories) factory(_ context.Context, desc types.ModelDescriptor) (Backend, error) {
	ff.log.add("build:" + desc.ID)
	if err := ff.failFor[desc.ID]; err != nil {
		return nil, err
	}
	b := &fakeBackend{desc: desc, log: ff.log, reply: ff.reply}
	if ff.configure != nil {
		ff.configure(b)
	}
	ff.mu.Lock()
	ff.built[desc.ID] = b
	ff.mu.Unlock()
	return b, nil
}

func (ff *fakeFactories) backend(id string) *fakeBackend {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.built[id]
}

func (ff *fakeFactories) table() Factories {
	return Factories{
		types.FormatGGUF:        ff.factory,
		types.FormatHuggingFace: ff.factory,
		types.FormatONNX:        ff.factory,
	}
}

var errBoom = errors.New("boom")
