package eligibility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Service loads the aggregates an admission decision needs and runs the pure
// rule chain over them. It holds no state of its own.
type Service struct {
	users        UserReader
	spaces       SpaceReader
	reservations ReservationReader
	building     BuildingProvider
	logger       *slog.Logger
	tracer       trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for revalidation reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the engine's read ports.
func NewService(users UserReader, spaces SpaceReader, reservations ReservationReader, building BuildingProvider, opts ...Option) (*Service, error) {
	if users == nil || spaces == nil || reservations == nil || building == nil {
		return nil, fmt.Errorf("eligibility service requires all four stores")
	}
	svc := &Service{
		users:        users,
		spaces:       spaces,
		reservations: reservations,
		building:     building,
		logger:       slog.Default(),
		tracer:       otel.Tracer("eligibility"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CanReserveRequest carries the raw reservation parameters for admission.
type CanReserveRequest struct {
	UserID          string
	SpaceIDs        []string
	Category        string
	MaxAttendees    int
	StartTime       time.Time
	DurationMinutes int
}

// decisionContext is everything the rule chain needs, gathered in parallel.
type decisionContext struct {
	user     domain.User
	spaces   []domain.Space
	building domain.BuildingConfig
	existing []domain.Reservation
}

// CanReserve decides admission for a reservation request. A non-nil Rejection
// is the business outcome "refused"; the error path is reserved for malformed
// input, unresolved references, and store failures.
func (s *Service) CanReserve(ctx context.Context, req CanReserveRequest) (*Rejection, error) {
	ctx, span := s.tracer.Start(ctx, "eligibility.CanReserve",
		trace.WithAttributes(attribute.String("user_id", req.UserID)))
	defer span.End()

	category, err := domain.ParseReservationCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if len(req.SpaceIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one space id is required")
	}

	dc, err := s.gather(ctx, req.UserID, req.SpaceIDs, req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	engineReq := Request{
		Category:        category,
		MaxAttendees:    req.MaxAttendees,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	}
	for _, space := range dc.spaces {
		if rejection := Evaluate(dc.user, space, dc.building, dc.existing, engineReq); rejection != nil {
			span.SetAttributes(attribute.String("rejection", string(rejection.Code)))
			return rejection, nil
		}
	}
	return nil, nil
}

// gather fetches the user, spaces, building defaults, and overlapping
// reservations concurrently, cancelling the rest on the first failure.
func (s *Service) gather(ctx context.Context, userID string, spaceIDs []string, start time.Time, durationMinutes int) (*decisionContext, error) {
	g, ctx := errgroup.WithContext(ctx)
	dc := &decisionContext{
		spaces: make([]domain.Space, len(spaceIDs)),
	}

	g.Go(func() error {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		dc.user = user
		return nil
	})
	for i, spaceID := range spaceIDs {
		g.Go(func() error {
			space, err := s.spaces.FindByID(ctx, spaceID)
			if err != nil {
				return err
			}
			dc.spaces[i] = space
			return nil
		})
	}
	g.Go(func() error {
		building, err := s.building.GetDefaults(ctx)
		if err != nil {
			return err
		}
		dc.building = building
		return nil
	})
	g.Go(func() error {
		existing, err := s.reservations.FindOverlapping(ctx, spaceIDs, start, durationMinutes)
		if err != nil {
			return err
		}
		dc.existing = existing
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dc, nil
}

// RevalidateForUser re-runs the non-temporal rules over every reservation the
// user holds, flipping broken ones to potentially_invalid. Each reservation
// is assessed independently, so an interrupted pass can simply be retried.
func (s *Service) RevalidateForUser(ctx context.Context, userID string) error {
	reservations, err := s.reservations.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.revalidate(ctx, reservations)
}

// RevalidateForSpace does the same for every reservation bound to a space.
func (s *Service) RevalidateForSpace(ctx context.Context, spaceID string) error {
	reservations, err := s.reservations.FindBySpace(ctx, spaceID)
	if err != nil {
		return err
	}
	return s.revalidate(ctx, reservations)
}

func (s *Service) revalidate(ctx context.Context, reservations []domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	building, err := s.building.GetDefaults(ctx)
	if err != nil {
		return err
	}
	now := requestcontext.Now(ctx)

	for _, res := range reservations {
		if res.Status == domain.StatusPotentiallyInvalid {
			continue
		}
		rejection, err := s.revalidateOne(ctx, building, res)
		if err != nil {
			return err
		}
		if rejection == nil {
			continue
		}
		if err := s.reservations.UpdateStatus(ctx, res.ID, domain.StatusPotentiallyInvalid, &now); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "reservation marked potentially invalid",
			"reservation_id", res.ID,
			"user_id", res.UserID,
			"reason", rejection.Code,
		)
	}
	return nil
}

func (s *Service) revalidateOne(ctx context.Context, building domain.BuildingConfig, res domain.Reservation) (*Rejection, error) {
	user, err := s.users.FindByID(ctx, res.UserID)
	if err != nil {
		return nil, err
	}
	for _, spaceID := range res.SpaceIDs {
		space, err := s.spaces.FindByID(ctx, spaceID)
		if err != nil {
			return nil, err
		}
		if rejection := Revalidate(user, space, building, res); rejection != nil {
			return rejection, nil
		}
	}
	return nil, nil
}
