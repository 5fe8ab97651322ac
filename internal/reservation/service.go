package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/eligibility"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/metrics"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence surface the service needs. Create must refuse
// overlapping inserts atomically; the admission check alone cannot close the
// race between two concurrent requests.
type Store interface {
	Create(ctx context.Context, r domain.Reservation) error
	FindByID(ctx context.Context, id string) (domain.Reservation, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	FindBySpace(ctx context.Context, spaceID string) ([]domain.Reservation, error)
	ListPotentiallyInvalid(ctx context.Context, olderThan time.Time) ([]domain.Reservation, error)
	Delete(ctx context.Context, id string) error
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdmissionChecker decides whether a request may become a reservation.
type AdmissionChecker interface {
	CanReserve(ctx context.Context, req eligibility.CanReserveRequest) (*eligibility.Rejection, error)
}

// Service orchestrates the reservation lifecycle around the admission engine.
type Service struct {
	store     Store
	admission AdmissionChecker
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, admission AdmissionChecker, opts ...Option) *Service {
	s := &Service{store: store, admission: admission, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the raw fields of a reservation request. UserID comes
// from the authenticated session, never from the request body.
type CreateInput struct {
	UserID            string
	SpaceIDs          []string
	UsageType         string
	MaxAttendees      int
	StartTime         time.Time
	DurationMinutes   int
	AdditionalDetails string
	Category          string
}

// Create admits and persists a reservation. A refused request surfaces as a
// CodeForbidden error carrying the rejection reason; conflicts lost to a
// concurrent create surface as CodeConflict from the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Reservation, error) {
	start := time.Now()
	defer s.observeCreate(start)

	r, err := domain.NewReservation(domain.ReservationFields{
		ID:                uuid.NewString(),
		UserID:            in.UserID,
		SpaceIDs:          in.SpaceIDs,
		UsageType:         in.UsageType,
		MaxAttendees:      in.MaxAttendees,
		StartTime:         in.StartTime,
		DurationMinutes:   in.DurationMinutes,
		AdditionalDetails: in.AdditionalDetails,
		Category:          in.Category,
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	rejection, err := s.admission.CanReserve(ctx, eligibility.CanReserveRequest{
		UserID:          r.UserID,
		SpaceIDs:        r.SpaceIDs,
		Category:        r.Category.String(),
		MaxAttendees:    r.MaxAttendees,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	if rejection != nil {
		s.incrementRejected(string(rejection.Code))
		s.logger.InfoContext(ctx, "reservation refused",
			"user_id", r.UserID, "reason", rejection.Code)
		return domain.Reservation{}, dErrors.New(dErrors.CodeForbidden,
			string(rejection.Code)+": "+rejection.Message)
	}

	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, store.ErrOverlap) {
			s.incrementRejected(string(eligibility.TimeConflict))
			return domain.Reservation{}, err
		}
		return domain.Reservation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reservation")
	}

	s.incrementCreated()
	s.logger.InfoContext(ctx, "reservation created",
		"reservation_id", r.ID, "user_id", r.UserID, "spaces", r.SpaceIDs)
	return r, nil
}

// Get returns a reservation visible to the caller: owners see their own,
// gerentes see everything.
func (s *Service) Get(ctx context.Context, id string) (domain.Reservation, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Reservation{}, err
		}
		return domain.Reservation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reservation")
	}
	if err := s.authorize(ctx, r); err != nil {
		return domain.Reservation{}, err
	}
	return r, nil
}

// ListByUser returns a user's reservations. Non-gerentes may only list their
// own.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	if userID != requestcontext.UserID(ctx) && !requestcontext.HasRole(ctx, string(domain.RoleGerente)) {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot list another user's reservations")
	}
	out, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reservations")
	}
	return out, nil
}

// ListBySpace returns the reservations bound to a space.
func (s *Service) ListBySpace(ctx context.Context, spaceID string) ([]domain.Reservation, error) {
	out, err := s.store.FindBySpace(ctx, spaceID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reservations")
	}
	return out, nil
}

// ListPotentiallyInvalid returns the soft-failed reservations flagged before
// the cutoff. Gerente-only; the router enforces the role, this just serves
// the query.
func (s *Service) ListPotentiallyInvalid(ctx context.Context, olderThan time.Time) ([]domain.Reservation, error) {
	out, err := s.store.ListPotentiallyInvalid(ctx, olderThan)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list flagged reservations")
	}
	return out, nil
}

// Cancel removes a reservation. Owners cancel their own; gerentes cancel any.
// The load and delete run in one transaction so the ownership check and the
// removal see the same row.
func (s *Service) Cancel(ctx context.Context, id string) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, r); err != nil {
			return err
		}
		return s.store.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeForbidden) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel reservation")
	}
	s.incrementCancelled()
	s.logger.InfoContext(ctx, "reservation cancelled",
		"reservation_id", id, "by_user", requestcontext.UserID(ctx))
	return nil
}

func (s *Service) authorize(ctx context.Context, r domain.Reservation) error {
	if r.UserID == requestcontext.UserID(ctx) || requestcontext.HasRole(ctx, string(domain.RoleGerente)) {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "reservation belongs to another user")
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementRejected(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}

func (s *Service) incrementCancelled() {
	if s.metrics != nil {
		s.metrics.IncrementCancelled()
	}
}

func (s *Service) observeCreate(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCreate(start)
	}
}
