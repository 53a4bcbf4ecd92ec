package registry

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// RescanResult describes one watcher-triggered rescan.
type RescanResult struct {
	Models     int
	Embeddings int
	Err        error
}

// Watcher re-runs discovery when the models directory changes.
type Watcher struct {
	reg      *Registry
	fw       *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger
	onRescan func(RescanResult)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithRescanHook registers fn to be called after every rescan.
func WithRescanHook(fn func(RescanResult)) WatcherOption {
	return func(w *Watcher) { w.onRescan = fn }
}

// NewWatcher creates a watcher for reg's root. Call Start to begin watching.
func NewWatcher(reg *Registry, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		reg:      reg,
		fw:       fw,
		debounce: DefaultDebounce,
		log:      reg.log,
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Start begins watching in a background goroutine. It does not block and is
// a no-op when already running.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	root, err := w.reg.absRoot()
	if err != nil {
		return err
	}
	w.addTree(root)
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true
	go w.run(ctx, root)
	w.log.Info().Str("root", root).Dur("debounce", w.debounce).Msg("watching models directory")
	return nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.running {
		w.running = false
		w.cancel()
		done := w.done
		w.mu.Unlock()
		<-done
	} else {
		w.mu.Unlock()
	}
	return w.fw.Close()
}

// addTree watches root, its immediate subdirectories and those of embedding/.
// Missing directories are fine; they get picked up after the next rescan.
func (w *Watcher) addTree(root string) {
	w.add(root)
	w.addChildren(root)
	emb := filepath.Join(root, embeddingDirName)
	w.addChildren(emb)
}

func (w *Watcher) addChildren(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			w.add(filepath.Join(dir, e.Name()))
		}
	}
}

func (w *Watcher) add(dir string) {
	if err := w.fw.Add(dir); err != nil {
		w.log.Debug().Err(err).Str("dir", dir).Msg("watch add failed")
	}
}

func (w *Watcher) run(ctx context.Context, root string) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("models directory event")
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		case <-timer.C:
			pending = false
			w.rescan(root)
		}
	}
}

func (w *Watcher) rescan(root string) {
	res := RescanResult{}
	models, err := w.reg.Discover()
	if err != nil {
		res.Err = err
	} else {
		res.Models = len(models)
		emb, err := w.reg.DiscoverEmbedding()
		res.Embeddings = len(emb)
		res.Err = err
	}
	if res.Err != nil {
		w.log.Warn().Err(res.Err).Msg("rescan failed")
	}
	w.addTree(root)
	if w.onRescan != nil {
		w.onRescan(res)
	}
}
