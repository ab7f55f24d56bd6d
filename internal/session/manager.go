package session

import "sync"

// Manager keeps one gate per signed-in identity, keyed by the user id from
// the auth token. Gates are created on first use and dropped on logout.
type Manager struct {
	mu    sync.Mutex
	gates map[string]*Gate
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{gates: make(map[string]*Gate)}
}

// Gate returns the session gate for the given user id, creating it if the
// identity has no session yet.
func (m *Manager) Gate(userID string) *Gate {
	m.mu.Lock()
	defer m.mu.Unlock()
	gate, ok := m.gates[userID]
	if !ok {
		gate = NewGate()
		m.gates[userID] = gate
	}
	return gate
}

// Drop logs the identity's gate out and forgets it.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gate, ok := m.gates[userID]; ok {
		gate.Logout()
		delete(m.gates, userID)
	}
}
