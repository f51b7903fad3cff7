package session

import "sync"

// Manager is the in-memory registry of active sessions. One session per
// user: starting a new one discards the previous without persistence
// (there is no draft-save). Completed sessions remove themselves.
type Manager struct {
	mu     sync.Mutex
	byID   map[string]*Session
	byUser map[uint]string
}

func NewManager() *Manager {
	return &Manager{
		byID:   make(map[string]*Session),
		byUser: make(map[uint]string),
	}
}

// Put registers a session, abandoning any active session the user already
// has. The session removes itself from the registry on completion.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	if existingID, ok := m.byUser[s.UserID]; ok {
		if existing, ok := m.byID[existingID]; ok {
			existing.Abandon()
		}
		delete(m.byID, existingID)
	}
	m.byID[s.ID] = s
	m.byUser[s.UserID] = s.ID
	m.mu.Unlock()

	s.onDone = func(done *Session) {
		m.Remove(done.ID)
	}
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	return s, ok
}

// Remove drops a session from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	if m.byUser[s.UserID] == id {
		delete(m.byUser, s.UserID)
	}
}
