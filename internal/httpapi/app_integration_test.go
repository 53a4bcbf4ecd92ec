package httpapi

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"raind/internal/app"
	"raind/internal/manager"
	"raind/internal/registry"
	"raind/pkg/types"
)

type cannedBackend struct{ desc types.ModelDescriptor }

func (b cannedBackend) Generate(ctx context.Context, prompt string, _ types.GenerationParams) (string, error) {
	return "turns=" + strconv.Itoa(strings.Count(prompt, "<|im_start|>user")), nil
}
func (b cannedBackend) Describe() types.ModelDescriptor { return b.desc }
func (b cannedBackend) Unload() error                    { return nil }

// TestAppOverHTTP drives the real facade: discover, load, generate, reset.
func TestAppOverHTTP(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"tiny", "big"} {
		dir := filepath.Join(root, id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		ext := ".gguf"
		if id == "big" {
			ext = ".onnx"
		}
		if err := os.WriteFile(filepath.Join(dir, "model"+ext), []byte("w"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	reg := registry.New(root)
	factory := func(_ context.Context, d types.ModelDescriptor) (manager.Backend, error) {
		return cannedBackend{desc: d}, nil
	}
	mgr := manager.New(reg, manager.Factories{types.FormatGGUF: factory})
	mgr.SetEventPublisher(MetricsPublisher{})
	r := NewMux(app.New(app.Config{Manager: mgr}))

	if w := do(t, r, http.MethodPost, "/generate", `{"message":"hi"}`); w.Code != http.StatusConflict {
		t.Fatalf("generate without model status=%d", w.Code)
	}
	if got := decode[types.ModelsResponse](t, do(t, r, http.MethodPost, "/models/discover", "")); len(got.Models) != 2 {
		t.Fatalf("discover: %+v", got)
	}
	if w := do(t, r, http.MethodPost, "/models/big/load", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("onnx without factory status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decode[types.LoadResponse](t, do(t, r, http.MethodPost, "/models/load-best", "")); got.ModelID != "tiny" {
		t.Fatalf("load-best: %+v", got)
	}
	if w := do(t, r, http.MethodPost, "/generate", `{"message":"   "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank message status=%d", w.Code)
	}
	do(t, r, http.MethodPost, "/generate", `{"message":"one"}`)
	got := decode[types.GenerateResponse](t, do(t, r, http.MethodPost, "/generate", `{"message":"two"}`))
	if got.Response != "turns=2" {
		t.Fatalf("history not carried into prompt: %+v", got)
	}
	st := decode[types.StatusResponse](t, do(t, r, http.MethodGet, "/status", ""))
	if st.State != "loaded" || st.CurrentModel != "tiny" || st.ConversationLength != 4 {
		t.Fatalf("status: %+v", st)
	}
	do(t, r, http.MethodPost, "/conversation/reset", "")
	got = decode[types.GenerateResponse](t, do(t, r, http.MethodPost, "/generate", `{"message":"three"}`))
	if got.Response != "turns=1" {
		t.Fatalf("reset did not clear history: %+v", got)
	}
	if w := do(t, r, http.MethodPost, "/context", `{"query":"q","strategy":"bogus","max_tokens":10}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown strategy status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
}
