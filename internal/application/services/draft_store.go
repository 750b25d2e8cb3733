package services

import (
	"sync"

	"github.com/carelinkhq/patient-portal/internal/domain/booking"
)

// draftStore holds per-session booking drafts. Drafts are ephemeral: they
// live only as long as the booking view and never touch durable storage.
type draftStore struct {
	mu     sync.Mutex
	drafts map[string]booking.Draft
}

func newDraftStore() *draftStore {
	return &draftStore{drafts: make(map[string]booking.Draft)}
}

func (s *draftStore) get(sessionID string) (booking.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	return d, ok
}

func (s *draftStore) put(sessionID string, d booking.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = d
}

// update applies fn to the current draft under the lock, so concurrent
// transition handlers never interleave a read-modify-write.
func (s *draftStore) update(sessionID string, fn func(booking.Draft) booking.Draft) booking.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := fn(s.drafts[sessionID])
	s.drafts[sessionID] = d
	return d
}

func (s *draftStore) delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
}
