package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raind/internal/manager"
	"raind/internal/registry"
	"raind/internal/retrieval"
	"raind/pkg/types"
)

type echoBackend struct {
	desc types.ModelDescriptor

	mu      sync.Mutex
	prompts []string
}

func (b *echoBackend) Generate(_ context.Context, prompt string, _ types.GenerationParams) (string, error) {
	b.mu.Lock()
	b.prompts = append(b.prompts, prompt)
	b.mu.Unlock()
	return "reply from " + b.desc.ID, nil
}

func (b *echoBackend) Describe() types.ModelDescriptor { return b.desc }
func (b *echoBackend) Unload() error                    { return nil }

func (b *echoBackend) lastPrompt() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.prompts[len(b.prompts)-1]
}

type fixture struct {
	app     *App
	root    string
	backend *echoBackend
	now     time.Time
}

func newFixture(t *testing.T, models ...string) *fixture {
	t.Helper()
	f := &fixture{root: t.TempDir(), now: time.Unix(1_700_000_000, 0)}
	for _, id := range models {
		dir := filepath.Join(f.root, id)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "model.gguf"), []byte("w"), 0o644))
	}
	reg := registry.New(f.root)
	factory := func(_ context.Context, d types.ModelDescriptor) (manager.Backend, error) {
		f.backend = &echoBackend{desc: d}
		return f.backend, nil
	}
	mgr := manager.New(reg, manager.Factories{types.FormatGGUF: factory})
	f.app = New(Config{Manager: mgr, Now: func() time.Time { return f.now }})
	return f
}

func TestNew_Defaults(t *testing.T) {
	a := New(Config{})
	require.NotNil(t, a.Registry())
	require.NotNil(t, a.Manager())
	require.NotNil(t, a.Retriever())
	assert.Same(t, a.Registry(), a.Manager().Registry())
	assert.ElementsMatch(t, []string{"file", "project", "smart", "selection"}, keys(a.Strategies()))
}

func keys(m map[string]types.ContextStrategy) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestDiscoverLoadAndInfo(t *testing.T) {
	f := newFixture(t, "beta", "alpha")
	ctx := context.Background()

	models, err := f.app.DiscoverModels()
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "alpha", models[0].ID)

	_, ok := f.app.ModelInfo()
	assert.False(t, ok)

	loaded, err := f.app.LoadBestModel(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)
	info, ok := f.app.ModelInfo()
	require.True(t, ok)
	assert.Equal(t, "alpha", info.ID)

	require.NoError(t, f.app.LoadModelByName(ctx, "beta"))
	info, _ = f.app.ModelInfo()
	assert.Equal(t, "beta", info.ID)

	err = f.app.LoadModelByID(ctx, "gamma")
	assert.True(t, manager.IsModelNotFound(err))

	require.NoError(t, f.app.UnloadCurrentModel())
	_, ok = f.app.ModelInfo()
	assert.False(t, ok)
}

func TestDiscoverEmbeddingModels(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.root, "embedding", "mini")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.safetensors"), []byte("w"), 0o644))

	models, err := f.app.DiscoverEmbeddingModels()
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Contains(t, models[0].Capabilities, "text_embedding")
	assert.Len(t, f.app.EmbeddingModels(), 1)
}

func TestGenerateAndConversation(t *testing.T) {
	f := newFixture(t, "m")
	ctx := context.Background()
	_, err := f.app.DiscoverModels()
	require.NoError(t, err)

	_, err = f.app.GenerateResponse(ctx, "hi")
	assert.True(t, manager.IsNoModelLoaded(err))

	require.NoError(t, f.app.LoadModelByID(ctx, "m"))
	out, err := f.app.GenerateResponse(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, "reply from m", out)
	assert.Equal(t, 2, f.app.Status().ConversationLength)

	f.app.ClearConversation()
	assert.Equal(t, 0, f.app.Status().ConversationLength)

	_, err = f.app.GenerateResponse(ctx, "again")
	require.NoError(t, err)
	f.app.ResetContext()
	assert.Equal(t, 0, f.app.Status().ConversationLength)
}

func TestGenerationSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)
	p := types.GenerationParams{Temperature: 0.3, TopP: 0.8, TopK: 20, MaxTokens: 99, StopSequences: []string{"END"}}
	f.app.UpdateGenerationSettings(p)
	assert.Equal(t, p, f.app.GenerationSettings())
}

func TestCacheOperations(t *testing.T) {
	f := newFixture(t)
	it, err := f.app.CacheContext("note", "hello", types.ContextMetadata{SourceType: types.SourceDocumentation, Size: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 1, it.AccessCount)

	got, ok := f.app.GetCachedContext("note")
	require.True(t, ok)
	assert.EqualValues(t, 2, got.AccessCount)
	assert.Equal(t, types.CacheStats{Items: 1, Bytes: 5}, f.app.CacheStats())

	_, err = f.app.CacheContext(" ", "x", types.ContextMetadata{})
	assert.True(t, manager.IsInvalidInput(err))
	_, err = f.app.CacheContext("bad", "x", types.ContextMetadata{SourceType: "Nope"})
	assert.True(t, manager.IsInvalidInput(err))

	f.app.ClearCache()
	_, ok = f.app.GetCachedContext("note")
	assert.False(t, ok)
}

func TestGetContext_UnknownStrategy(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.GetContext(types.ContextRequest{Query: "q", Strategy: "nope", MaxTokens: 10})
	assert.True(t, retrieval.IsStrategyNotFound(err))
	assert.Equal(t, 0, f.app.CacheStats().Items)
}

func TestChat_RequiresModel(t *testing.T) {
	f := newFixture(t, "m")
	sel := "func main() {}"
	_, err := f.app.Chat(context.Background(), types.ChatRequest{Message: "explain", IncludeContext: true, Selection: &sel})
	assert.True(t, manager.IsNoModelLoaded(err))
	assert.Equal(t, 0, f.app.CacheStats().Items, "rejected chat must not touch the cache")

	_, err = f.app.Chat(context.Background(), types.ChatRequest{Message: "  "})
	assert.True(t, manager.IsInvalidInput(err))
}

func TestChat_WithSelectionContext(t *testing.T) {
	f := newFixture(t, "m")
	ctx := context.Background()
	_, err := f.app.DiscoverModels()
	require.NoError(t, err)
	require.NoError(t, f.app.LoadModelByID(ctx, "m"))

	sel := "func add(a, b int) int { return a + b }"
	resp, err := f.app.Chat(ctx, types.ChatRequest{
		Message:        "what does add do?",
		IncludeContext: true,
		Strategy:       retrieval.StrategySelection,
		CurrentFile:    "/src/math.go",
		Selection:      &sel,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(resp.MessageID)
	assert.NoError(t, err)
	assert.Equal(t, "reply from m", resp.Content)
	assert.Equal(t, "m", resp.ModelUsed)
	assert.Equal(t, []string{retrieval.SelectionID}, resp.ContextFiles)
	assert.Equal(t, retrieval.EstimateTokens(sel), resp.ContextTokens)
	assert.GreaterOrEqual(t, resp.GenerationTimeMS, int64(0))

	prompt := f.backend.lastPrompt()
	assert.Contains(t, prompt, "```go\n"+sel+"\n```")
	ctxAt := strings.Index(prompt, sel)
	qAt := strings.Index(prompt, "what does add do?")
	assert.Less(t, ctxAt, qAt, "context must precede the question")

	cached, ok := f.app.GetCachedContext(retrieval.SelectionID)
	require.True(t, ok)
	assert.Equal(t, sel, cached.Content)
}

func TestChat_WithoutContext(t *testing.T) {
	f := newFixture(t, "m")
	ctx := context.Background()
	_, err := f.app.DiscoverModels()
	require.NoError(t, err)
	require.NoError(t, f.app.LoadModelByID(ctx, "m"))

	resp, err := f.app.Chat(ctx, types.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Empty(t, resp.ContextFiles)
	assert.NotNil(t, resp.ContextFiles)
	assert.Equal(t, "<|im_start|>user\nhello<|im_end|>\n<|im_start|>assistant\n", f.backend.lastPrompt())
}

func TestChatContextRequest_Defaults(t *testing.T) {
	cr := chatContextRequest(types.ChatRequest{Message: "q"})
	assert.Equal(t, DefaultChatStrategy, cr.Strategy)
	assert.Equal(t, DefaultChatContextTokens, cr.MaxTokens)
	assert.False(t, cr.IncludeSelection)
}

func TestStatus(t *testing.T) {
	f := newFixture(t, "m")
	ctx := context.Background()
	_, err := f.app.DiscoverModels()
	require.NoError(t, err)

	st := f.app.Status()
	assert.Equal(t, "unloaded", st.State)
	assert.Empty(t, st.CurrentModel)
	assert.Equal(t, 1, st.ModelsTotal)

	require.NoError(t, f.app.LoadModelByID(ctx, "m"))
	f.now = f.now.Add(90 * time.Second)
	st = f.app.Status()
	assert.Equal(t, "loaded", st.State)
	assert.Equal(t, "m", st.CurrentModel)
	assert.EqualValues(t, 1, st.LoadsTotal)
	assert.EqualValues(t, 90, st.UptimeSeconds)
	assert.Equal(t, f.now.Unix(), st.ServerTimeUnix)
}
