package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/clock"
)

// Manager tracks the open sessions of a server.
type Manager struct {
	mu       sync.Mutex
	clock    clock.Clock
	speed    float64
	sessions map[string]*Session
}

// NewManager creates a Manager whose sessions tick on clk.
func NewManager(clk clock.Clock, speed float64) *Manager {
	return &Manager{
		clock:    clk,
		speed:    speed,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session for the cipher with the given id.
func (m *Manager) Create(cipherID string) (*Session, error) {
	c, ok := ciphers.Lookup(cipherID)
	if !ok {
		return nil, fmt.Errorf("unknown cipher %q", cipherID)
	}
	s := New(uuid.New().String(), c, m.clock, m.speed)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close stops and forgets a session. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// CloseAll stops every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
