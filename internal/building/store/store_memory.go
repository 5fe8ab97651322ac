package store

import (
	"context"
	"sync"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// InMemoryStore holds the building defaults in memory. Used in development
// and unit tests; production uses PostgresStore.
type InMemoryStore struct {
	mu     sync.RWMutex
	config domain.BuildingConfig
}

// NewInMemory seeds an in-memory store with the given defaults.
func NewInMemory(config domain.BuildingConfig) *InMemoryStore {
	return &InMemoryStore{config: config}
}

// GetDefaults returns the current building defaults.
func (s *InMemoryStore) GetDefaults(ctx context.Context) (domain.BuildingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, nil
}

// Update replaces the building defaults.
func (s *InMemoryStore) Update(ctx context.Context, config domain.BuildingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
	return nil
}
