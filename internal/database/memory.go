package database

import (
	"context"
	"sync"
	"time"

	"github.com/justsurfingit/job-description-generator/internal/models"
)

// MemoryStore is used when no DATABASE_URL is configured. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.JobDescription
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]models.JobDescription), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, desc *models.JobDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if prev, ok := s.items[desc.ID]; ok && desc.CreatedAt.IsZero() {
		desc.CreatedAt = prev.CreatedAt
	}
	if desc.CreatedAt.IsZero() {
		desc.CreatedAt = now
	}
	desc.UpdatedAt = now
	s.items[desc.ID] = *desc
	return nil
}

// Get returns a copy; callers may modify it freely.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &desc, nil
}
