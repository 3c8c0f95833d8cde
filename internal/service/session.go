package service

import (
	"sync"
	"time"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

// SessionManager tracks the single active session for the running process.
// It is an explicit object handed to callers, not process-global state.
// Starting a new session implicitly ends the previous one.
type SessionManager struct {
	mu      sync.Mutex
	current *models.Session
}

// NewSessionManager returns a manager with no active session.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Start installs the session, displacing any existing one.
func (m *SessionManager) Start(session *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = session
}

// Current returns the active session, or nil when none is active or the
// active one has expired.
func (m *SessionManager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	if !m.current.Valid(time.Now()) {
		m.current = nil
		return nil
	}
	return m.current
}

// End terminates the active session. It reports whether one was active.
func (m *SessionManager) End() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := m.current != nil
	m.current = nil
	return active
}
