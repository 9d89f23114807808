package services

import (
	"sync"
	"time"

	"portfolio/metrics"

	"github.com/google/uuid"
)

const maxSessionIDLen = 128

// SessionStore maps visitor session ids to their conversations
type SessionStore struct {
	frontend string
	mu       sync.Mutex
	sessions map[string]*Conversation
	newConv  func() *Conversation
}

// NewSessionStore creates an empty store for one front-end (web, discord);
// newConv seeds new conversations
func NewSessionStore(frontend string, newConv func() *Conversation) *SessionStore {
	return &SessionStore{
		frontend: frontend,
		sessions: make(map[string]*Conversation),
		newConv:  newConv,
	}
}

// GetOrCreate returns the conversation for id, starting one when the id is
// unknown. An empty or oversized id gets a fresh random id.
func (s *SessionStore) GetOrCreate(id string) (string, *Conversation) {
	if id == "" || len(id) > maxSessionIDLen {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[id]
	if !ok {
		conv = s.newConv()
		s.sessions[id] = conv
		metrics.SetActiveSessions(s.frontend, len(s.sessions))
	}
	return id, conv
}

// Get returns an existing conversation
func (s *SessionStore) Get(id string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.sessions[id]
	return conv, ok
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune forgets sessions idle for longer than maxIdle and returns how many went
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.sessions {
		if conv.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.SetActiveSessions(s.frontend, len(s.sessions))
	return removed
}
