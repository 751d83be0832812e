// Package session manages planning sessions. Each session owns one type
// bridge, so canonical type identity holds within a session and never leaks
// across sessions.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/letmehues/flink/pkg/bridge"
)

// Session represents one active planning session.
type Session struct {
	Handle         string
	Database       string
	Schema         string
	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpiresAt      time.Time

	// Bridge is the session's type bridge; its conversion cache lives and
	// dies with the session.
	Bridge *bridge.TypeBridge
}

// Manager manages planning sessions.
type Manager struct {
	mu             sync.RWMutex
	sessions       map[string]*Session // handle -> session
	sessionTimeout time.Duration
}

// NewManager creates a new session manager with the given idle timeout.
func NewManager(sessionTimeout time.Duration) *Manager {
	return &Manager{
		sessions:       make(map[string]*Session),
		sessionTimeout: sessionTimeout,
	}
}

// CreateSession creates a new planning session with a fresh type bridge.
func (m *Manager) CreateSession(_ context.Context, database, schema string) (*Session, error) {
	if database == "" {
		return nil, fmt.Errorf("database cannot be empty")
	}
	if schema == "" {
		return nil, fmt.Errorf("schema cannot be empty")
	}

	now := time.Now()
	session := &Session{
		Handle:         uuid.New().String(),
		Database:       database,
		Schema:         schema,
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(m.sessionTimeout),
		Bridge:         bridge.New(),
	}

	m.mu.Lock()
	m.sessions[session.Handle] = session
	m.mu.Unlock()

	return session, nil
}

// GetSession validates a session handle and returns the session if it has
// not expired. The idle timer is reset on access.
func (m *Manager) GetSession(_ context.Context, handle string) (*Session, error) {
	if handle == "" {
		return nil, fmt.Errorf("session handle cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[handle]
	if !exists {
		return nil, fmt.Errorf("session %s not found", handle)
	}

	now := time.Now()
	if now.After(session.ExpiresAt) {
		delete(m.sessions, handle)
		return nil, fmt.Errorf("session %s expired", handle)
	}

	session.LastAccessedAt = now
	session.ExpiresAt = now.Add(m.sessionTimeout)

	return session, nil
}

// CloseSession ends a session, discarding its bridge and conversion cache.
func (m *Manager) CloseSession(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[handle]; !exists {
		return fmt.Errorf("session %s not found", handle)
	}
	delete(m.sessions, handle)
	return nil
}

// ListSessions returns all live sessions.
func (m *Manager) ListSessions(_ context.Context) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// CleanupExpiredSessions removes all expired sessions and returns the count.
func (m *Manager) CleanupExpiredSessions(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	count := 0
	for handle, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, handle)
			count++
		}
	}
	return count
}
