package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"raind/internal/conversation"
	"raind/internal/registry"
	"raind/pkg/types"
)

// Manager owns the single active backend and the conversation it serves.
//
// opMu serializes load, unload and generate. Status fields live behind mu so
// Snapshot and Ready never wait on a slow load or generation.
type Manager struct {
	opMu    sync.Mutex
	backend Backend // guarded by opMu

	mu         sync.RWMutex
	state      State
	cur        *types.ModelDescriptor
	err        string
	loadsTotal uint64
	params     types.GenerationParams

	registry   *registry.Registry
	factories  Factories
	backendCfg BackendConfig
	conv       *conversation.Store
	publisher  EventPublisher
	log        zerolog.Logger
	startTime  time.Time
}

// New constructs a Manager over reg using the given factories (nil selects
// DefaultFactories with an empty BackendConfig).
func New(reg *registry.Registry, factories Factories) *Manager {
	// Delegate to NewWithConfig to centralize defaults
	return NewWithConfig(ManagerConfig{
		Registry:  reg,
		Factories: factories,
	})
}

// SetEventPublisher replaces the event sink. Nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

func (m *Manager) publish(e Event) {
	m.mu.RLock()
	p := m.publisher
	m.mu.RUnlock()
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	p.Publish(e)
}

func (m *Manager) setState(s State, cur *types.ModelDescriptor, errMsg string) {
	m.mu.Lock()
	m.state = s
	m.cur = cur
	m.err = errMsg
	m.mu.Unlock()
}

// Registry returns the registry the manager loads from.
func (m *Manager) Registry() *registry.Registry { return m.registry }

// Conversation exposes the history store.
func (m *Manager) Conversation() *conversation.Store { return m.conv }

// LoadBest loads the first model in format priority order (GGUF, HuggingFace,
// ONNX, GGML), ties broken by id. It reports false when nothing is discovered.
func (m *Manager) LoadBest(ctx context.Context) (bool, error) {
	models := m.registry.List()
	if len(models) == 0 {
		return false, nil
	}
	for _, f := range types.FormatPriority {
		for _, d := range models {
			if d.Format != f {
				continue
			}
			if err := m.LoadByID(ctx, d.ID); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// LoadByName resolves a model by display name, falling back to its id.
func (m *Manager) LoadByName(ctx context.Context, name string) error {
	d, ok := m.registry.FindByName(name)
	if !ok {
		d, ok = m.registry.Get(name)
	}
	if !ok {
		return ErrModelNotFound(name)
	}
	return m.LoadByID(ctx, d.ID)
}

// LoadByID replaces the active backend with one built for id. Any current
// backend is unloaded before the new one is constructed. On failure the
// manager is left with nothing loaded.
func (m *Manager) LoadByID(ctx context.Context, id string) error {
	desc, ok := m.registry.Get(id)
	if !ok {
		return ErrModelNotFound(id)
	}
	factory, ok := m.factories.lookup(desc.Format)
	if !ok {
		return ErrDependencyUnavailable(fmt.Sprintf("no backend available for format %s", desc.Format))
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	start := time.Now()
	m.publish(Event{Name: EventLoadStart, ModelID: id, Fields: map[string]any{"format": string(desc.Format)}})
	m.mu.Lock()
	prev := m.cur
	m.state = StateLoading
	m.mu.Unlock()

	if m.backend != nil {
		prevID := ""
		if prev != nil {
			prevID = prev.ID
		}
		err := m.backend.Unload()
		m.backend = nil
		m.registry.MarkLoaded("")
		m.publish(Event{Name: EventUnloadDone, ModelID: prevID})
		if err != nil {
			m.setState(StateUnloaded, nil, err.Error())
			m.publish(Event{Name: EventLoadError, ModelID: id, Fields: map[string]any{"error": err.Error()}})
			return fmt.Errorf("unload %s: %w", prevID, err)
		}
	}

	b, err := factory(ctx, desc)
	if err == nil && b == nil {
		err = errors.New("backend factory returned nil")
	}
	if err != nil {
		m.setState(StateUnloaded, nil, err.Error())
		m.log.Error().Err(err).Str("model", id).Msg("load failed")
		m.publish(Event{Name: EventLoadError, ModelID: id, Fields: map[string]any{"error": err.Error()}})
		return fmt.Errorf("load %s: %w", id, err)
	}

	m.backend = b
	m.registry.MarkLoaded(id)
	desc.Loaded = true
	m.mu.Lock()
	m.state = StateLoaded
	m.cur = &desc
	m.err = ""
	m.loadsTotal++
	m.mu.Unlock()
	dur := time.Since(start)
	m.log.Info().Str("model", id).Str("format", string(desc.Format)).Dur("dur", dur).Msg("model loaded")
	m.publish(Event{Name: EventLoadDone, ModelID: id, Fields: map[string]any{"duration_ms": dur.Milliseconds()}})
	return nil
}

// GenerateResponse appends message to the history, runs the active backend
// over the ChatML prompt and records the reply.
func (m *Manager) GenerateResponse(ctx context.Context, message string) (string, error) {
	return m.GenerateWithContext(ctx, message, "")
}

// GenerateWithContext is GenerateResponse with a preamble placed ahead of the
// user text in the history. Validation applies to message alone.
func (m *Manager) GenerateWithContext(ctx context.Context, message, preamble string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrInvalidInput("message is empty")
	}
	if utf8.RuneCountInString(message) > defaultMaxMessageChars {
		return "", ErrInvalidInput(fmt.Sprintf("message exceeds %d characters", defaultMaxMessageChars))
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()
	if m.backend == nil {
		return "", ErrNoModelLoaded
	}
	id := m.backend.Describe().ID

	turn := message
	if preamble != "" {
		turn = preamble + message
	}
	m.conv.Append(types.RoleUser, turn)
	prompt := m.conv.BuildPrompt()

	start := time.Now()
	out, err := m.backend.Generate(ctx, prompt, m.GenerationSettings())
	if err != nil {
		m.mu.Lock()
		m.err = err.Error()
		m.mu.Unlock()
		m.publish(Event{Name: EventGenerateError, ModelID: id, Fields: map[string]any{"error": err.Error()}})
		return "", err
	}
	m.conv.Append(types.RoleAssistant, out)
	m.publish(Event{Name: EventGenerateDone, ModelID: id, Fields: map[string]any{
		"duration_ms":  time.Since(start).Milliseconds(),
		"prompt_bytes": len(prompt),
	}})
	return out, nil
}

// UpdateGenerationSettings replaces the sampling settings wholesale.
func (m *Manager) UpdateGenerationSettings(p types.GenerationParams) {
	m.mu.Lock()
	m.params = cloneParams(p)
	m.mu.Unlock()
	m.publish(Event{Name: EventSettingsUpdated})
}

// GenerationSettings returns a copy of the current sampling settings.
func (m *Manager) GenerationSettings() types.GenerationParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneParams(m.params)
}

// ClearConversation drops the chat history.
func (m *Manager) ClearConversation() {
	m.conv.Clear()
	m.publish(Event{Name: EventConversationCleared})
}

// ResetContext drops the chat history; it is a separate entry point from
// ClearConversation so the two show up as distinct events.
func (m *Manager) ResetContext() {
	m.conv.Clear()
	m.publish(Event{Name: EventContextReset})
}

// ModelInfo returns the descriptor of the loaded model.
func (m *Manager) ModelInfo() (types.ModelDescriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return types.ModelDescriptor{}, false
	}
	return m.cur.Clone(), true
}
