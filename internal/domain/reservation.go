package domain

import (
	"time"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	platformstrings "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/strings"
)

// UsageType records what a reservation is for.
type UsageType string

const (
	UsageDocencia      UsageType = "docencia"
	UsageInvestigacion UsageType = "investigacion"
	UsageGestion       UsageType = "gestion"
	UsageOtro          UsageType = "otro"
)

var validUsageTypes = map[UsageType]bool{
	UsageDocencia:      true,
	UsageInvestigacion: true,
	UsageGestion:       true,
	UsageOtro:          true,
}

// ParseUsageType constructs a UsageType from external input.
func ParseUsageType(s string) (UsageType, error) {
	u := UsageType(s)
	if !validUsageTypes[u] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown usage type: "+s)
	}
	return u, nil
}

// ReservationStatus tracks whether a reservation still satisfies the rules it
// was admitted under.
type ReservationStatus string

const (
	// StatusValid is the state of every reservation at creation.
	StatusValid ReservationStatus = "valid"
	// StatusPotentiallyInvalid marks reservations broken by a later user or
	// space change. They are kept for a retention window and then cleaned up.
	StatusPotentiallyInvalid ReservationStatus = "potentially_invalid"
)

// Reservation is a time-bounded hold on one or more spaces.
type Reservation struct {
	ID                string
	UserID            string
	SpaceIDs          []string
	UsageType         UsageType
	MaxAttendees      int
	StartTime         time.Time
	DurationMinutes   int
	AdditionalDetails string
	Category          ReservationCategory
	Status            ReservationStatus
	InvalidatedAt     *time.Time
}

// ReservationFields is the raw input to the reservation factory.
type ReservationFields struct {
	ID                string
	UserID            string
	SpaceIDs          []string
	UsageType         string
	MaxAttendees      int
	StartTime         time.Time
	DurationMinutes   int
	AdditionalDetails string
	Category          string
}

// NewReservation validates structural well-formedness and constructs the
// aggregate in the valid state. Eligibility against a user and space is the
// engine's job, not this factory's.
func NewReservation(f ReservationFields) (Reservation, error) {
	if f.ID == "" {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "reservation id is required")
	}
	if f.UserID == "" {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "reservation user id is required")
	}
	spaceIDs := platformstrings.DedupeAndTrim(f.SpaceIDs)
	if len(spaceIDs) == 0 {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "reservation requires at least one space")
	}
	usage, err := ParseUsageType(f.UsageType)
	if err != nil {
		return Reservation{}, err
	}
	if f.MaxAttendees <= 0 {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "max attendees must be positive")
	}
	if f.StartTime.IsZero() {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "start time is required")
	}
	if f.DurationMinutes <= 0 {
		return Reservation{}, dErrors.New(dErrors.CodeInvalidInput, "duration must be positive")
	}
	category, err := ParseReservationCategory(f.Category)
	if err != nil {
		return Reservation{}, err
	}
	return Reservation{
		ID:                f.ID,
		UserID:            f.UserID,
		SpaceIDs:          spaceIDs,
		UsageType:         usage,
		MaxAttendees:      f.MaxAttendees,
		StartTime:         f.StartTime,
		DurationMinutes:   f.DurationMinutes,
		AdditionalDetails: f.AdditionalDetails,
		Category:          category,
		Status:            StatusValid,
	}, nil
}

// EndTime derives the exclusive end of the usage window.
func (r Reservation) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the reservation's window shares any instant with
// [start, end). Both windows are half-open, so touching endpoints do not
// overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime())
}

// IncludesSpace reports whether the reservation holds the given space.
func (r Reservation) IncludesSpace(spaceID string) bool {
	for _, id := range r.SpaceIDs {
		if id == spaceID {
			return true
		}
	}
	return false
}

// MarkPotentiallyInvalid flips the reservation into the soft-failed state,
// recording when that happened. Flipping an already invalid reservation keeps
// the original timestamp so retention is measured from the first break.
func (r Reservation) MarkPotentiallyInvalid(at time.Time) Reservation {
	if r.Status == StatusPotentiallyInvalid {
		return r
	}
	r.Status = StatusPotentiallyInvalid
	r.InvalidatedAt = &at
	return r
}
