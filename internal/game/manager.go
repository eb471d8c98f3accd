package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when no live session has the given ID.
var ErrSessionNotFound = errors.New("session not found")

type managedSession struct {
	session  *Session
	lastSeen time.Time
}

// Manager keeps the live sessions of the process, keyed by session ID. Sessions that are idle longer than the TTL
// are dropped by Prune.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a Manager that expires sessions after ttl of inactivity.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*managedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns how long an idle session is kept.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Put registers a session, replacing any session with the same ID.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = &managedSession{session: s, lastSeen: m.now()}
}

// Get returns the session with the given ID and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	ms.lastSeen = m.now()

	return ms.session, nil
}

// Delete removes the session with the given ID, if any.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Prune removes sessions not used since now minus the TTL and returns how many were removed.
func (m *Manager) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-m.ttl)
	removed := 0
	for id, ms := range m.sessions {
		if ms.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Janitor prunes expired sessions every interval until ctx is done.
func (m *Manager) Janitor(ctx context.Context, logger *slog.Logger, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if n := m.Prune(t); n > 0 {
				logger.DebugContext(ctx, "pruned expired sessions", slog.Int("count", n))
			}
		}
	}
}
