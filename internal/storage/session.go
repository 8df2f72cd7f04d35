package storage

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/quizz/internal/service"
)

// Session is one running quiz bound to the surface it renders into.
// Every interaction goes through Do, so handlers run to completion one at a time.
type Session[S service.Surface] struct {
	mu      sync.Mutex
	quizz   *service.Quizz
	surface S
	touched time.Time
}

// NewSession wraps a started quiz and its surface.
func NewSession[S service.Surface](quizz *service.Quizz, surface S) *Session[S] {
	return &Session[S]{
		quizz:   quizz,
		surface: surface,
		touched: time.Now(),
	}
}

// Do runs fn with exclusive access to the session.
func (s *Session[S]) Do(fn func(q *service.Quizz, surface S)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touched = time.Now()
	fn(s.quizz, s.surface)
}

func (s *Session[S]) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// SessionStore provides in-memory storage for quiz sessions by key.
type SessionStore[S service.Surface] struct {
	mu       sync.RWMutex
	sessions map[string]*Session[S]
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore[S service.Surface]() *SessionStore[S] {
	return &SessionStore[S]{
		sessions: make(map[string]*Session[S]),
	}
}

// NewID returns a fresh random session key.
func NewID() string {
	return uuid.NewString()
}

// Store saves the session under key, replacing any previous one.
func (s *SessionStore[S]) Store(key string, session *Session[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = session
}

// Get retrieves the session stored under key.
func (s *SessionStore[S]) Get(key string) (*Session[S], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[key]
	return session, ok
}

// Delete removes the session stored under key.
func (s *SessionStore[S]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

func (s *SessionStore[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneIdle drops sessions untouched since before the cutoff and returns how many went.
// Sessions are inspected without holding the store lock, so a busy session
// never blocks lookups of the others.
func (s *SessionStore[S]) PruneIdle(cutoff time.Time) int {
	s.mu.RLock()
	snapshot := maps.Clone(s.sessions)
	s.mu.RUnlock()

	var idle []string
	for key, session := range snapshot {
		if session.lastTouched().Before(cutoff) {
			idle = append(idle, key)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for _, key := range idle {
		// Keys replaced since the snapshot hold a fresh session.
		if current, ok := s.sessions[key]; ok && current == snapshot[key] {
			delete(s.sessions, key)
			pruned++
		}
	}

	return pruned
}
