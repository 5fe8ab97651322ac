package eligibility

import (
	"context"
	"time"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// UserReader resolves the requesting user.
type UserReader interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// SpaceReader resolves the target spaces.
type SpaceReader interface {
	FindByID(ctx context.Context, id string) (domain.Space, error)
}

// ReservationReader supplies existing reservations to the engine and lets the
// revalidation pass flip statuses. The overlap query and the caller's insert
// must form one serializable unit in the storage layer; the engine is
// stateless between its check and the write.
type ReservationReader interface {
	FindOverlapping(ctx context.Context, spaceIDs []string, start time.Time, durationMinutes int) ([]domain.Reservation, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	FindBySpace(ctx context.Context, spaceID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, invalidatedAt *time.Time) error
}

// BuildingProvider supplies the building-wide defaults.
type BuildingProvider interface {
	GetDefaults(ctx context.Context) (domain.BuildingConfig, error)
}
