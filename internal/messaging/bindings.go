package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/building"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space"
	spacestore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Services are the feature services the responder exposes. Messaging callers
// act as the user named in the envelope; role-gated administration stays
// HTTP-only.
type Services struct {
	Reservations *reservation.Service
	Spaces       *space.Service
	Building     *building.Service
}

// Bind registers every supported action on the responder.
func Bind(r *Responder, s Services) {
	r.Handle("reservations.create", createReservation(s.Reservations))
	r.Handle("reservations.cancel", cancelReservation(s.Reservations))
	r.Handle("reservations.list", listReservations(s.Reservations))
	r.Handle("spaces.get", getSpace(s.Spaces))
	r.Handle("spaces.list", listSpaces(s.Spaces))
	r.Handle("building.get", getBuilding(s.Building))
}

func decode[T any](payload json.RawMessage) (T, error) {
	var dst T
	if len(payload) == 0 {
		return dst, nil
	}
	if err := json.Unmarshal(payload, &dst); err != nil {
		return dst, dErrors.New(dErrors.CodeBadRequest, "invalid payload")
	}
	return dst, nil
}

type createReservationPayload struct {
	SpaceIDs          []string  `json:"space_ids"`
	UsageType         string    `json:"usage_type"`
	MaxAttendees      int       `json:"max_attendees"`
	StartTime         time.Time `json:"start_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	AdditionalDetails string    `json:"additional_details,omitempty"`
	Category          string    `json:"category"`
}

func createReservation(svc *reservation.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		if req.UserID == "" {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user_id is required")
		}
		payload, err := decode[createReservationPayload](req.Payload)
		if err != nil {
			return nil, err
		}
		return svc.Create(ctx, reservation.CreateInput{
			UserID:            req.UserID,
			SpaceIDs:          payload.SpaceIDs,
			UsageType:         payload.UsageType,
			MaxAttendees:      payload.MaxAttendees,
			StartTime:         payload.StartTime,
			DurationMinutes:   payload.DurationMinutes,
			AdditionalDetails: payload.AdditionalDetails,
			Category:          payload.Category,
		})
	}
}

type idPayload struct {
	ID string `json:"id"`
}

func cancelReservation(svc *reservation.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		payload, err := decode[idPayload](req.Payload)
		if err != nil {
			return nil, err
		}
		if err := svc.Cancel(ctx, payload.ID); err != nil {
			return nil, err
		}
		return map[string]string{"id": payload.ID, "status": "cancelled"}, nil
	}
}

func listReservations(svc *reservation.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		if req.UserID == "" {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user_id is required")
		}
		return svc.ListByUser(ctx, requestcontext.UserID(ctx))
	}
}

func getSpace(svc *space.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		payload, err := decode[idPayload](req.Payload)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, payload.ID)
	}
}

type listSpacesPayload struct {
	Floor      *int    `json:"floor,omitempty"`
	Category   *string `json:"category,omitempty"`
	Department *string `json:"department,omitempty"`
}

func listSpaces(svc *space.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		payload, err := decode[listSpacesPayload](req.Payload)
		if err != nil {
			return nil, err
		}
		var filter spacestore.Filter
		filter.Floor = payload.Floor
		if payload.Category != nil {
			category, err := domain.ParseReservationCategory(*payload.Category)
			if err != nil {
				return nil, err
			}
			filter.Category = &category
		}
		if payload.Department != nil {
			department, err := domain.ParseDepartment(*payload.Department)
			if err != nil {
				return nil, err
			}
			filter.Department = &department
		}
		return svc.List(ctx, filter)
	}
}

func getBuilding(svc *building.Service) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		return svc.GetDefaults(ctx)
	}
}
