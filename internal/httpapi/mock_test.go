package httpapi

import (
	"context"
	"sync"

	"raind/internal/manager"
	"raind/pkg/types"
)

type mockService struct {
	mu sync.Mutex

	models     []types.ModelDescriptor
	embeddings []types.ModelDescriptor
	loaded     *types.ModelDescriptor
	settings   types.GenerationParams
	cache      map[string]types.ContextItem
	status     types.StatusResponse
	ready      bool

	// err is returned by every fallible call when set.
	err      error
	reply    string
	lastID   string
	lastName string
	lastMsg  string
	lastChat types.ChatRequest
	lastCtx  types.ContextRequest
	cleared  int
	resets   int
}

func newMockService() *mockService {
	return &mockService{
		models:   []types.ModelDescriptor{{ID: "m1", Name: "m1", Format: types.FormatGGUF}, {ID: "m2", Name: "m2", Format: types.FormatONNX}},
		settings: types.DefaultGenerationParams(),
		cache:    map[string]types.ContextItem{},
		reply:    "hi there",
	}
}

func (m *mockService) ListModels() []types.ModelDescriptor { return m.models }
func (m *mockService) DiscoverModels() ([]types.ModelDescriptor, error) {
	return m.models, m.err
}
func (m *mockService) EmbeddingModels() []types.ModelDescriptor { return m.embeddings }
func (m *mockService) DiscoverEmbeddingModels() ([]types.ModelDescriptor, error) {
	return m.embeddings, m.err
}

func (m *mockService) LoadBestModel(ctx context.Context) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if len(m.models) == 0 {
		return false, nil
	}
	d := m.models[0]
	m.loaded = &d
	return true, nil
}

func (m *mockService) LoadModelByID(ctx context.Context, id string) error {
	m.lastID = id
	if m.err != nil {
		return m.err
	}
	for _, d := range m.models {
		if d.ID == id {
			d := d
			m.loaded = &d
			return nil
		}
	}
	return manager.ErrModelNotFound(id)
}

func (m *mockService) LoadModelByName(ctx context.Context, name string) error {
	m.lastName = name
	return m.LoadModelByID(ctx, name)
}

func (m *mockService) UnloadCurrentModel() error {
	m.loaded = nil
	return m.err
}

func (m *mockService) ModelInfo() (types.ModelDescriptor, bool) {
	if m.loaded == nil {
		return types.ModelDescriptor{}, false
	}
	return *m.loaded, true
}

func (m *mockService) GenerateResponse(ctx context.Context, message string) (string, error) {
	m.lastMsg = message
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockService) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	m.lastChat = req
	if m.err != nil {
		return types.ChatResponse{}, m.err
	}
	return types.ChatResponse{MessageID: "id-1", Content: m.reply, ModelUsed: "m1", ContextFiles: []string{}}, nil
}

func (m *mockService) GenerationSettings() types.GenerationParams { return m.settings }
func (m *mockService) UpdateGenerationSettings(p types.GenerationParams) {
	m.settings = p
}
func (m *mockService) ClearConversation() { m.cleared++ }
func (m *mockService) ResetContext()      { m.resets++ }

func (m *mockService) GetContext(req types.ContextRequest) (types.ContextResponse, error) {
	m.lastCtx = req
	if m.err != nil {
		return types.ContextResponse{}, m.err
	}
	return types.ContextResponse{Items: []types.ContextItem{}, StrategyUsed: req.Strategy, RelevanceScores: map[string]float64{}}, nil
}

func (m *mockService) Strategies() map[string]types.ContextStrategy {
	return map[string]types.ContextStrategy{"file": {Name: "Single File", MaxFiles: 1}}
}

func (m *mockService) CacheContext(id, content string, md types.ContextMetadata) (types.ContextItem, error) {
	if m.err != nil {
		return types.ContextItem{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it := types.ContextItem{ID: id, Content: content, Metadata: md, AccessCount: 1}
	m.cache[id] = it
	return it, nil
}

func (m *mockService) GetCachedContext(id string) (types.ContextItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.cache[id]
	if ok {
		it.AccessCount++
		m.cache[id] = it
	}
	return it, ok
}

func (m *mockService) ClearCache() {
	m.mu.Lock()
	clear(m.cache)
	m.mu.Unlock()
}

func (m *mockService) CacheStats() types.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return types.CacheStats{Items: len(m.cache)}
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }
func (m *mockService) SanityCheck() manager.SanityReport {
	return manager.SanityReport{Formats: []string{"gguf"}}
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }
