// Package registry discovers model directories on disk and keeps the
// resulting descriptors queryable by id and display name.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"raind/internal/common/fsutil"
	"raind/pkg/types"
)

// Registry holds the descriptors produced by the last discovery scan.
type Registry struct {
	root string
	log  zerolog.Logger

	mu         sync.RWMutex
	models     []types.ModelDescriptor // sorted by id
	embeddings []types.ModelDescriptor
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for skipped entries and scan summaries.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// New returns an empty registry rooted at root. Nothing is scanned until Discover.
func New(root string, opts ...Option) *Registry {
	r := &Registry{root: root, log: zerolog.Nop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Root returns the configured models directory.
func (r *Registry) Root() string { return r.root }

func (r *Registry) absRoot() (string, error) {
	base, err := fsutil.ExpandHome(r.root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	return abs, nil
}

// scanDir runs analyze over every immediate subdirectory of dir except skip.
// A missing dir yields no descriptors and no error.
func (r *Registry) scanDir(dir, skip string, analyze func(string, zerolog.Logger) (types.ModelDescriptor, bool, error)) ([]types.ModelDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.log.Info().Str("dir", dir).Msg("models directory does not exist")
			return nil, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []types.ModelDescriptor
	for _, e := range entries {
		if !e.IsDir() || e.Name() == skip {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		d, ok, err := analyze(sub, r.log)
		if err != nil {
			r.log.Warn().Err(err).Str("dir", sub).Msg("skip unreadable model directory")
			continue
		}
		if ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Discover rescans the models directory and replaces the registry contents.
// The embedding subdirectory is skipped. A model that is loaded and still
// present after the scan keeps its loaded flag.
func (r *Registry) Discover() ([]types.ModelDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, err := r.absRoot()
	if err != nil {
		return nil, err
	}
	found, err := r.scanDir(root, embeddingDirName, analyzeModelDir)
	if err != nil {
		return nil, err
	}
	loaded := ""
	for _, m := range r.models {
		if m.Loaded {
			loaded = m.ID
		}
	}
	for i := range found {
		found[i].Loaded = loaded != "" && found[i].ID == loaded
	}
	r.models = found
	r.log.Info().Int("count", len(found)).Str("root", root).Msg("discovered models")
	return cloneAll(found), nil
}

// DiscoverEmbedding scans root/embedding for embedding models.
func (r *Registry) DiscoverEmbedding() ([]types.ModelDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, err := r.absRoot()
	if err != nil {
		return nil, err
	}
	found, err := r.scanDir(filepath.Join(root, embeddingDirName), "", analyzeEmbeddingDir)
	if err != nil {
		return nil, err
	}
	r.embeddings = found
	r.log.Info().Int("count", len(found)).Msg("discovered embedding models")
	return cloneAll(found), nil
}

// List returns the discovered models sorted by id.
func (r *Registry) List() []types.ModelDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.models)
}

// Embeddings returns the embedding models from the last DiscoverEmbedding.
func (r *Registry) Embeddings() []types.ModelDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.embeddings)
}

// Get looks a model up by id.
func (r *Registry) Get(id string) (types.ModelDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return types.ModelDescriptor{}, false
}

// FindByName returns the first model (by id order) whose display name matches.
func (r *Registry) FindByName(name string) (types.ModelDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.Name == name {
			return m.Clone(), true
		}
	}
	return types.ModelDescriptor{}, false
}

// Len returns the number of discovered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// MarkLoaded flags id as loaded and clears every other flag. An empty id clears all.
func (r *Registry) MarkLoaded(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.models {
		r.models[i].Loaded = id != "" && r.models[i].ID == id
	}
}

func cloneAll(in []types.ModelDescriptor) []types.ModelDescriptor {
	out := make([]types.ModelDescriptor, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
