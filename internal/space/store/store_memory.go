package store

import (
	"context"
	"sort"
	"sync"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// Filter narrows space listings. Nil fields are ignored.
type Filter struct {
	Floor      *int
	Category   *domain.ReservationCategory
	Department *domain.Department
}

func (f Filter) matches(space domain.Space) bool {
	if f.Floor != nil && space.Floor != *f.Floor {
		return false
	}
	if f.Category != nil {
		if space.ReservationCategory == nil || *space.ReservationCategory != *f.Category {
			return false
		}
	}
	if f.Department != nil && !space.AssignedToDepartment(*f.Department) {
		return false
	}
	return true
}

// InMemoryStore keeps spaces in a map guarded by a RWMutex. Used in
// development and unit tests; production uses PostgresStore.
type InMemoryStore struct {
	mu     sync.RWMutex
	spaces map[string]domain.Space
}

// NewInMemory constructs an empty in-memory space store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{spaces: make(map[string]domain.Space)}
}

func (s *InMemoryStore) Save(ctx context.Context, space domain.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaces[space.ID] = space
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (domain.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	space, ok := s.spaces[id]
	if !ok {
		return domain.Space{}, ErrNotFound
	}
	return space, nil
}

func (s *InMemoryStore) List(ctx context.Context, filter Filter) ([]domain.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Space, 0, len(s.spaces))
	for _, space := range s.spaces {
		if filter.matches(space) {
			out = append(out, space)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
