package manager

import "time"

// Snapshot returns a read-only view of the manager state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Snapshot{State: m.state, Err: m.err, LoadsTotal: m.loadsTotal}
	if m.cur != nil {
		c := m.cur.Clone()
		s.CurrentModel = &c
	}
	return s
}

// Ready reports whether a backend is loaded and can serve generate calls.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateLoaded && m.cur != nil
}

// Uptime returns the time since the manager was constructed.
func (m *Manager) Uptime() time.Duration { return time.Since(m.startTime) }
