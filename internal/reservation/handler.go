package reservation

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/httputil"
	mwauth "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/auth"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Handler exposes the reservation endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the reservation Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the reservation routes. Ownership checks live in the
// service; only the flagged-reservations report is role-gated here.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reservations", h.handleCreate)
	r.Get("/reservations", h.handleList)
	r.Get("/reservations/{id}", h.handleGet)
	r.Delete("/reservations/{id}", h.handleCancel)
	r.Group(func(r chi.Router) {
		r.Use(mwauth.RequireRole(string(domain.RoleGerente)))
		r.Get("/reservations/potentially-invalid", h.handleListPotentiallyInvalid)
	})
}

type reservationResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	SpaceIDs          []string   `json:"space_ids"`
	UsageType         string     `json:"usage_type"`
	MaxAttendees      int        `json:"max_attendees"`
	StartTime         time.Time  `json:"start_time"`
	DurationMinutes   int        `json:"duration_minutes"`
	EndTime           time.Time  `json:"end_time"`
	AdditionalDetails string     `json:"additional_details,omitempty"`
	Category          string     `json:"category"`
	Status            string     `json:"status"`
	InvalidatedAt     *time.Time `json:"invalidated_at,omitempty"`
}

func toReservationResponse(r domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		SpaceIDs:          r.SpaceIDs,
		UsageType:         string(r.UsageType),
		MaxAttendees:      r.MaxAttendees,
		StartTime:         r.StartTime,
		DurationMinutes:   r.DurationMinutes,
		EndTime:           r.EndTime(),
		AdditionalDetails: r.AdditionalDetails,
		Category:          r.Category.String(),
		Status:            string(r.Status),
		InvalidatedAt:     r.InvalidatedAt,
	}
}

type createRequest struct {
	SpaceIDs          []string  `json:"space_ids"`
	UsageType         string    `json:"usage_type"`
	MaxAttendees      int       `json:"max_attendees"`
	StartTime         time.Time `json:"start_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	AdditionalDetails string    `json:"additional_details,omitempty"`
	Category          string    `json:"category"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[createRequest](w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(ctx, CreateInput{
		UserID:            requestcontext.UserID(ctx),
		SpaceIDs:          req.SpaceIDs,
		UsageType:         req.UsageType,
		MaxAttendees:      req.MaxAttendees,
		StartTime:         req.StartTime,
		DurationMinutes:   req.DurationMinutes,
		AdditionalDetails: req.AdditionalDetails,
		Category:          req.Category,
	})
	if err != nil {
		h.writeError(ctx, w, "failed to create reservation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toReservationResponse(created))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "failed to load reservation", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toReservationResponse(res))
}

// handleList serves the caller's reservations by default. Gerentes can list
// any user's with ?user_id= or a space's with ?space_id=.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		out []domain.Reservation
		err error
	)
	switch {
	case q.Get("space_id") != "":
		if !requestcontext.HasRole(ctx, string(domain.RoleGerente)) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "listing by space requires gerente"))
			return
		}
		out, err = h.service.ListBySpace(ctx, q.Get("space_id"))
	case q.Get("user_id") != "":
		out, err = h.service.ListByUser(ctx, q.Get("user_id"))
	default:
		out, err = h.service.ListByUser(ctx, requestcontext.UserID(ctx))
	}
	if err != nil {
		h.writeError(ctx, w, "failed to list reservations", err)
		return
	}
	resp := make([]reservationResponse, 0, len(out))
	for _, res := range out {
		resp = append(resp, toReservationResponse(res))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListPotentiallyInvalid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	olderThan := time.Now()
	if raw := r.URL.Query().Get("older_than"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "older_than must be RFC 3339"))
			return
		}
		olderThan = t
	}
	out, err := h.service.ListPotentiallyInvalid(ctx, olderThan)
	if err != nil {
		h.writeError(ctx, w, "failed to list flagged reservations", err)
		return
	}
	resp := make([]reservationResponse, 0, len(out))
	for _, res := range out {
		resp = append(resp, toReservationResponse(res))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Cancel(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeError(ctx, w, "failed to cancel reservation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.GetCode(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
