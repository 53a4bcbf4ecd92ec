package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"raind/internal/manager"
	"raind/internal/retrieval"
	"raind/pkg/types"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%q)", err, w.Body.String())
	}
	return v
}

func TestModelsHandler(t *testing.T) {
	r := NewMux(newMockService())
	w := do(t, r, http.MethodGet, "/models", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("nosniff header missing")
	}
	body := decode[types.ModelsResponse](t, w)
	if len(body.Models) != 2 {
		t.Fatalf("models len=%d", len(body.Models))
	}
}

func TestEmbeddingModels_EmptyIsArray(t *testing.T) {
	r := NewMux(newMockService())
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/models/embedding"},
		{http.MethodPost, "/models/embedding/discover"},
	} {
		w := do(t, r, tc.method, tc.path, "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"models":[]`) {
			t.Fatalf("%s %s: status=%d body=%s", tc.method, tc.path, w.Code, w.Body.String())
		}
	}
}

func TestLoadEndpoints(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)

	w := do(t, r, http.MethodPost, "/models/m2/load", "")
	if w.Code != http.StatusOK {
		t.Fatalf("load by id status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decode[types.LoadResponse](t, w); !got.Loaded || got.ModelID != "m2" {
		t.Fatalf("load response: %+v", got)
	}

	w = do(t, r, http.MethodPost, "/models/load-by-name", `{"name":"m1"}`)
	if w.Code != http.StatusOK || svc.lastName != "m1" {
		t.Fatalf("load by name status=%d name=%q", w.Code, svc.lastName)
	}

	w = do(t, r, http.MethodPost, "/models/load-by-name", `{"name":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name status=%d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/models/nope/load", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/models/current", "")
	if got := decode[types.ModelInfoResponse](t, w); got.Status != "loaded" || got.Model == nil || got.Model.ID != "m1" {
		t.Fatalf("current: %+v", got)
	}

	w = do(t, r, http.MethodPost, "/models/unload", "")
	if got := decode[types.LoadResponse](t, w); got.Loaded {
		t.Fatalf("unload: %+v", got)
	}
	w = do(t, r, http.MethodGet, "/models/current", "")
	if got := decode[types.ModelInfoResponse](t, w); got.Status != "none" || got.Model != nil {
		t.Fatalf("current after unload: %+v", got)
	}
}

func TestLoadBest_NothingDiscovered(t *testing.T) {
	svc := newMockService()
	svc.models = nil
	w := do(t, NewMux(svc), http.MethodPost, "/models/load-best", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decode[types.LoadResponse](t, w); got.Loaded {
		t.Fatalf("expected loaded=false: %+v", got)
	}
}

func TestGenerate(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)
	w := do(t, r, http.MethodPost, "/generate", `{"message":"hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decode[types.GenerateResponse](t, w); got.Response != "hi there" || svc.lastMsg != "hello" {
		t.Fatalf("response=%+v msg=%q", got, svc.lastMsg)
	}
}

func TestGenerate_BadRequests(t *testing.T) {
	r := NewMux(newMockService())

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"message":"x"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing content-type status=%d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/generate", `{"message":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json status=%d", w.Code)
	}
	if got := decode[types.ErrorResponse](t, w); got.Code != http.StatusBadRequest || got.Error == "" {
		t.Fatalf("error body: %+v", got)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	w := do(t, NewMux(newMockService()), http.MethodPost, "/generate", `{"message":"`+strings.Repeat("a", 64)+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("oversized body status=%d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{manager.ErrModelNotFound("x"), http.StatusNotFound},
		{retrieval.ErrStrategyNotFound("x"), http.StatusNotFound},
		{manager.ErrInvalidInput("empty"), http.StatusBadRequest},
		{manager.ErrNoModelLoaded, http.StatusConflict},
		{manager.ErrDependencyUnavailable("llama"), http.StatusServiceUnavailable},
		{fmt.Errorf("load m: %w", manager.ErrDependencyUnavailable("llama")), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := newMockService()
		svc.err = tc.err
		w := do(t, NewMux(svc), http.MethodPost, "/generate", `{"message":"hi"}`)
		if w.Code != tc.want {
			t.Fatalf("%v: status=%d want %d", tc.err, w.Code, tc.want)
		}
		if got := decode[types.ErrorResponse](t, w); got.Code != tc.want || got.Error != tc.err.Error() {
			t.Fatalf("%v: body=%+v", tc.err, got)
		}
	}
}

func TestChat(t *testing.T) {
	svc := newMockService()
	w := do(t, NewMux(svc), http.MethodPost, "/chat", `{"message":"why","include_context":true,"selection":"x := 1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !svc.lastChat.IncludeContext || svc.lastChat.Selection == nil || *svc.lastChat.Selection != "x := 1" {
		t.Fatalf("request not forwarded: %+v", svc.lastChat)
	}
	if got := decode[types.ChatResponse](t, w); got.MessageID != "id-1" || got.Content != "hi there" {
		t.Fatalf("chat response: %+v", got)
	}
}

func TestSettings(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)
	w := do(t, r, http.MethodGet, "/settings/generation", "")
	if got := decode[types.GenerationParams](t, w); got.MaxTokens != 1024 {
		t.Fatalf("defaults: %+v", got)
	}
	w = do(t, r, http.MethodPut, "/settings/generation", `{"temperature":0.1,"top_p":0.5,"top_k":3,"max_tokens":8}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put status=%d", w.Code)
	}
	got := decode[types.GenerationParams](t, w)
	if got.MaxTokens != 8 || got.TopK != 3 || got.StopSequences == nil || len(got.StopSequences) != 0 {
		t.Fatalf("settings not replaced wholesale: %+v", got)
	}
}

func TestConversationEndpoints(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)
	if w := do(t, r, http.MethodPost, "/conversation/clear", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/conversation/reset", ""); w.Code != http.StatusNoContent {
		t.Fatalf("reset status=%d", w.Code)
	}
	if svc.cleared != 1 || svc.resets != 1 {
		t.Fatalf("cleared=%d resets=%d", svc.cleared, svc.resets)
	}
}

func TestContextEndpoints(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)

	w := do(t, r, http.MethodPost, "/context", `{"query":"q","strategy":"smart","max_tokens":100}`)
	if w.Code != http.StatusOK || svc.lastCtx.Strategy != "smart" || svc.lastCtx.MaxTokens != 100 {
		t.Fatalf("context status=%d req=%+v", w.Code, svc.lastCtx)
	}
	if !strings.Contains(w.Body.String(), `"context_items":[]`) {
		t.Fatalf("body=%s", w.Body.String())
	}

	w = do(t, r, http.MethodPut, "/context/cache/notes", `{"content":"abc","metadata":{"source_type":"Documentation","size":3,"relevance_score":0,"tags":[]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put status=%d body=%s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPut, "/context/cache/bad", `{"content":"abc","metadata":{"source_type":"Nope"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown source type status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/context/cache/notes", "")
	if got := decode[types.ContextItem](t, w); got.AccessCount != 2 || got.Content != "abc" {
		t.Fatalf("get: %+v", got)
	}
	if w := do(t, r, http.MethodGet, "/context/cache/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing status=%d", w.Code)
	}
	if got := decode[types.CacheStats](t, do(t, r, http.MethodGet, "/context/cache", "")); got.Items != 1 {
		t.Fatalf("stats: %+v", got)
	}
	if w := do(t, r, http.MethodDelete, "/context/cache", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/context/cache/notes", ""); w.Code != http.StatusNotFound {
		t.Fatalf("after clear status=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/context/strategies", ""); !strings.Contains(w.Body.String(), "Single File") {
		t.Fatalf("strategies body=%s", w.Body.String())
	}
}

func TestStatusHandler(t *testing.T) {
	svc := newMockService()
	svc.status = types.StatusResponse{State: "loaded", CurrentModel: "m1", ModelsTotal: 2}
	w := do(t, NewMux(svc), http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decode[types.StatusResponse](t, w); got.CurrentModel != "m1" || got.ModelsTotal != 2 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestSanityHandler(t *testing.T) {
	w := do(t, NewMux(newMockService()), http.MethodGet, "/sanity", "")
	if got := decode[manager.SanityReport](t, w); len(got.Formats) != 1 {
		t.Fatalf("sanity: %+v", got)
	}
}

func TestHealthAndReady(t *testing.T) {
	svc := newMockService()
	r := NewMux(svc)
	if w := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz status=%d body=%q", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz not ready status=%d", w.Code)
	}
	svc.ready = true
	if w := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz ready status=%d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	SetCORSOptions(true, []string{"http://editor.local"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	r := NewMux(newMockService())
	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "http://editor.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://editor.local" {
		t.Fatalf("allow-origin=%q", got)
	}
}
