package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// InMemoryStore keeps reservations in a map guarded by a mutex. The
// overlap-checked insert in Create runs under the same lock as reads, which
// gives it the atomicity the PostgreSQL implementation gets from a
// serializable transaction.
type InMemoryStore struct {
	mu           sync.RWMutex
	reservations map[string]domain.Reservation
}

// NewInMemory constructs an empty in-memory reservation store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reservations: make(map[string]domain.Reservation)}
}

// Create inserts the reservation unless a valid reservation already overlaps
// its window on any of its spaces, in which case it returns ErrOverlap.
func (s *InMemoryStore) Create(ctx context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := r.EndTime()
	for _, existing := range s.reservations {
		if existing.Status != domain.StatusValid || !existing.Overlaps(r.StartTime, end) {
			continue
		}
		for _, spaceID := range r.SpaceIDs {
			if existing.IncludesSpace(spaceID) {
				return ErrOverlap
			}
		}
	}
	s.reservations[r.ID] = r
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) FindByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.collect(func(r domain.Reservation) bool { return r.UserID == userID }), nil
}

func (s *InMemoryStore) FindBySpace(ctx context.Context, spaceID string) ([]domain.Reservation, error) {
	return s.collect(func(r domain.Reservation) bool { return r.IncludesSpace(spaceID) }), nil
}

// FindOverlapping returns the valid reservations sharing any instant of the
// half-open window with any of the given spaces.
func (s *InMemoryStore) FindOverlapping(ctx context.Context, spaceIDs []string, start time.Time, durationMinutes int) ([]domain.Reservation, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return s.collect(func(r domain.Reservation) bool {
		if r.Status != domain.StatusValid || !r.Overlaps(start, end) {
			return false
		}
		for _, id := range spaceIDs {
			if r.IncludesSpace(id) {
				return true
			}
		}
		return false
	}), nil
}

func (s *InMemoryStore) ListPotentiallyInvalid(ctx context.Context, olderThan time.Time) ([]domain.Reservation, error) {
	return s.collect(func(r domain.Reservation) bool {
		return r.Status == domain.StatusPotentiallyInvalid &&
			r.InvalidatedAt != nil && r.InvalidatedAt.Before(olderThan)
	}), nil
}

func (s *InMemoryStore) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, invalidatedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	r.InvalidatedAt = invalidatedAt
	s.reservations[id] = r
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(s.reservations, id)
	return nil
}

// WithinTx runs fn directly; the in-memory store has no transactions, and a
// single mutex already serializes its writes.
func (s *InMemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *InMemoryStore) collect(keep func(domain.Reservation) bool) []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Reservation
	for _, r := range s.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
