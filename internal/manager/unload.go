package manager

import "fmt"

// Unload releases the active backend. It is a no-op when nothing is loaded.
func (m *Manager) Unload() error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	if m.backend == nil {
		return nil
	}
	id := m.backend.Describe().ID
	err := m.backend.Unload()
	m.backend = nil
	m.registry.MarkLoaded("")
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	m.setState(StateUnloaded, nil, errMsg)
	m.publish(Event{Name: EventUnloadDone, ModelID: id})
	if err != nil {
		return fmt.Errorf("unload %s: %w", id, err)
	}
	return nil
}
