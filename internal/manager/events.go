package manager

// Event names published by the manager.
const (
	EventLoadStart           = "load_start"
	EventLoadDone            = "load_done"
	EventLoadError           = "load_error"
	EventUnloadDone          = "unload_done"
	EventGenerateDone        = "generate_done"
	EventGenerateError       = "generate_error"
	EventConversationCleared = "conversation_cleared"
	EventContextReset        = "context_reset"
	EventSettingsUpdated     = "settings_updated"
)

// Event represents a manager lifecycle event.
// Minimal and stable: name + model ID and optional fields via key/values.
type Event struct {
	Name    string
	ModelID string
	Fields  map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// MultiPublisher fans an event out to several publishers in order.
type MultiPublisher []EventPublisher

func (mp MultiPublisher) Publish(e Event) {
	for _, p := range mp {
		if p != nil {
			p.Publish(e)
		}
	}
}
