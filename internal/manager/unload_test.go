package manager

import (
	"context"
	"errors"
	"testing"
)

func TestUnload_BackendErrorStillClears(t *testing.T) {
	m, ff := newTestManager(t, map[string]string{"A": "a.gguf"})
	ff.configure = func(b *fakeBackend) { b.unloadErr = errBoom }
	if err := m.LoadByID(context.Background(), "A"); err != nil {
		t.Fatal(err)
	}
	err := m.Unload()
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped unload error, got %v", err)
	}
	s := m.Snapshot()
	if s.State != StateUnloaded || s.CurrentModel != nil || s.Err == "" {
		t.Fatalf("snapshot after failed unload: %+v", s)
	}
	if len(loadedIDs(m)) != 0 {
		t.Fatalf("loaded flag should be cleared")
	}
	// a second unload is a no-op
	if err := m.Unload(); err != nil {
		t.Fatalf("second unload: %v", err)
	}
}
