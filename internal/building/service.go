package building

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/building/store"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	spacestore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// Store is the persistence surface the service needs.
type Store interface {
	GetDefaults(ctx context.Context) (domain.BuildingConfig, error)
	Update(ctx context.Context, config domain.BuildingConfig) error
}

// Revalidator re-checks a space's reservations after a default change.
type Revalidator interface {
	RevalidateForSpace(ctx context.Context, spaceID string) error
}

// SpaceLister enumerates spaces for the post-update revalidation sweep.
type SpaceLister interface {
	List(ctx context.Context, filter spacestore.Filter) ([]domain.Space, error)
}

// Service manages the building-wide defaults.
type Service struct {
	store       Store
	spaces      SpaceLister
	revalidator Revalidator
	logger      *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRevalidation enables the post-update sweep over all spaces. Spaces with
// their own overrides are unaffected by a default change, but telling them
// apart costs the same lookup, so the sweep covers everything.
func WithRevalidation(spaces SpaceLister, r Revalidator) Option {
	return func(s *Service) {
		s.spaces = spaces
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

// GetDefaults returns the current building configuration.
func (s *Service) GetDefaults(ctx context.Context) (domain.BuildingConfig, error) {
	config, err := s.store.GetDefaults(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.BuildingConfig{}, err
		}
		return domain.BuildingConfig{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load building config")
	}
	return config, nil
}

// UpdateInput carries the raw fields of a configuration replacement.
type UpdateInput struct {
	MaxOccupancyPercentage float64
	Weekdays               domain.DayHours
	Saturday               domain.DayHours
	Sunday                 domain.DayHours
}

// Update replaces the building defaults and revalidates existing reservations
// against them.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.BuildingConfig, error) {
	hours, err := domain.NewOpeningHours(in.Weekdays, in.Saturday, in.Sunday)
	if err != nil {
		return domain.BuildingConfig{}, err
	}
	config, err := domain.NewBuildingConfig(in.MaxOccupancyPercentage, hours)
	if err != nil {
		return domain.BuildingConfig{}, err
	}
	if err := s.store.Update(ctx, config); err != nil {
		return domain.BuildingConfig{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update building config")
	}
	s.logger.InfoContext(ctx, "building config updated",
		"max_occupancy_percentage", config.MaxOccupancyPercentage)

	s.sweep(ctx)
	return config, nil
}

// sweep revalidates every space's reservations. Failures are logged and skip
// to the next space; a later update or sweep retries them.
func (s *Service) sweep(ctx context.Context) {
	if s.spaces == nil || s.revalidator == nil {
		return
	}
	spaces, err := s.spaces.List(ctx, spacestore.Filter{})
	if err != nil {
		s.logger.ErrorContext(ctx, "revalidation sweep aborted", "error", err)
		return
	}
	for _, space := range spaces {
		if err := s.revalidator.RevalidateForSpace(ctx, space.ID); err != nil {
			s.logger.ErrorContext(ctx, "revalidation after config update failed",
				"space_id", space.ID, "error", err)
		}
	}
}
