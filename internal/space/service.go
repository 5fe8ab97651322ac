package space

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence surface the service needs.
type Store interface {
	Save(ctx context.Context, space domain.Space) error
	FindByID(ctx context.Context, id string) (domain.Space, error)
	List(ctx context.Context, filter store.Filter) ([]domain.Space, error)
}

// Revalidator re-checks a space's reservations after an eligibility-relevant
// change.
type Revalidator interface {
	RevalidateForSpace(ctx context.Context, spaceID string) error
}

// Service manages the space catalogue.
type Service struct {
	store       Store
	revalidator Revalidator
	logger      *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithRevalidator(r Revalidator) Option {
	return func(s *Service) {
		s.revalidator = r
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new space. All cross-field rules live in the factory.
func (s *Service) Create(ctx context.Context, fields domain.SpaceFields) (domain.Space, error) {
	space, err := domain.NewSpace(fields)
	if err != nil {
		return domain.Space{}, err
	}
	if err := s.store.Save(ctx, space); err != nil {
		return domain.Space{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save space")
	}
	s.logger.InfoContext(ctx, "space created", "space_id", space.ID)
	return space, nil
}

// Get returns a space by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Space, error) {
	space, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Space{}, err
		}
		return domain.Space{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load space")
	}
	return space, nil
}

// List returns the spaces matching the filter.
func (s *Service) List(ctx context.Context, filter store.Filter) ([]domain.Space, error) {
	spaces, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list spaces")
	}
	return spaces, nil
}

// Update merges the draft onto the stored space and re-runs full validation.
// Any accepted update can tighten who may reserve the space or how many
// people fit, so every successful update triggers a revalidation pass over
// the space's reservations.
func (s *Service) Update(ctx context.Context, id string, update domain.SpaceUpdate) (domain.Space, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Space{}, err
	}
	updated, err := current.Apply(update)
	if err != nil {
		return domain.Space{}, err
	}
	if err := s.store.Save(ctx, updated); err != nil {
		return domain.Space{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update space")
	}

	if s.revalidator != nil {
		if err := s.revalidator.RevalidateForSpace(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "revalidation after space update failed",
				"space_id", id, "error", err)
		}
	}
	return updated, nil
}
