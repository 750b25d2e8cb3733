package session

import (
	"context"
	"sync"

	"github.com/carelinkhq/patient-portal/internal/domain/entities"
	"github.com/carelinkhq/patient-portal/internal/domain/repositories"
)

// MemoryStore keeps sessions in process memory. It serves development and
// tests, and is the fallback when Redis is unavailable; sessions then do not
// survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

// NewMemoryStore creates an in-memory session repository.
func NewMemoryStore() repositories.SessionRepository {
	return &MemoryStore{sessions: make(map[string]entities.Session)}
}

// Save stores the session record.
func (s *MemoryStore) Save(ctx context.Context, sess *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

// FindByID returns the session record, or nil when absent.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		out := sess
		return &out, nil
	}
	return nil, nil
}

// Token returns the stored bearer token, or "" when absent.
func (s *MemoryStore) Token(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.Token, nil
	}
	return "", nil
}

// Delete removes the session record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
