package session

import (
	"context"
	"sync"
	"time"

	"clearcare/models"
)

// MemoryStore is an in-process Store used when Redis is not configured
// (development mode) and by tests. Whole-record writes under one lock
// give the same last-writer-wins semantics as the Redis store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.SessionContext)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.SessionContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.sessions[sessionID]
	if !ok {
		return &models.SessionContext{}, nil
	}
	sc.IsReturning = true
	return &sc, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, sc *models.SessionContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sc
	stored.UpdatedAt = time.Now().UTC()
	s.sessions[sessionID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
