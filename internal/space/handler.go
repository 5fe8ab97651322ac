package space

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/space/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/httputil"
	mwauth "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/auth"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Handler exposes the space catalogue endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the space Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the space routes. Reads are open to any authenticated user;
// catalogue changes are gerente-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/spaces", h.handleList)
	r.Get("/spaces/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(mwauth.RequireRole(string(domain.RoleGerente)))
		r.Post("/spaces", h.handleCreate)
		r.Patch("/spaces/{id}", h.handleUpdate)
	})
}

type dayHoursDTO struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type scheduleDTO struct {
	Weekdays dayHoursDTO `json:"weekdays"`
	Saturday dayHoursDTO `json:"saturday"`
	Sunday   dayHoursDTO `json:"sunday"`
}

func (d scheduleDTO) toDomain() (domain.OpeningHours, error) {
	return domain.NewOpeningHours(
		domain.DayHours{Open: d.Weekdays.Open, Close: d.Weekdays.Close},
		domain.DayHours{Open: d.Saturday.Open, Close: d.Saturday.Close},
		domain.DayHours{Open: d.Sunday.Open, Close: d.Sunday.Close},
	)
}

func toScheduleDTO(hours domain.OpeningHours) scheduleDTO {
	return scheduleDTO{
		Weekdays: dayHoursDTO{Open: hours.Weekdays.Open, Close: hours.Weekdays.Close},
		Saturday: dayHoursDTO{Open: hours.Saturday.Open, Close: hours.Saturday.Close},
		Sunday:   dayHoursDTO{Open: hours.Sunday.Open, Close: hours.Sunday.Close},
	}
}

type assignmentDTO struct {
	Type    string   `json:"type"`
	Targets []string `json:"targets,omitempty"`
}

type spaceResponse struct {
	ID                  string        `json:"id"`
	RealID              string        `json:"real_id"`
	Name                string        `json:"name"`
	Floor               int           `json:"floor"`
	Capacity            int           `json:"capacity"`
	SpaceType           string        `json:"space_type"`
	IsReservable        bool          `json:"is_reservable"`
	ReservationCategory *string       `json:"reservation_category,omitempty"`
	Assignment          assignmentDTO `json:"assignment"`
	MaxUsagePercentage  *float64      `json:"max_usage_percentage,omitempty"`
	CustomSchedule      *scheduleDTO  `json:"custom_schedule,omitempty"`
}

func toSpaceResponse(s domain.Space) spaceResponse {
	resp := spaceResponse{
		ID:           s.ID,
		RealID:       s.RealID,
		Name:         s.Name,
		Floor:        s.Floor,
		Capacity:     s.Capacity,
		SpaceType:    s.SpaceType.String(),
		IsReservable: s.IsReservable,
		Assignment: assignmentDTO{
			Type:    string(s.AssignmentTarget.Type),
			Targets: s.AssignmentTarget.Targets,
		},
		MaxUsagePercentage: s.MaxUsagePercentage,
	}
	if s.ReservationCategory != nil {
		c := s.ReservationCategory.String()
		resp.ReservationCategory = &c
	}
	if s.CustomSchedule != nil {
		schedule := toScheduleDTO(*s.CustomSchedule)
		resp.CustomSchedule = &schedule
	}
	return resp
}

type createRequest struct {
	ID                  string        `json:"id"`
	RealID              string        `json:"real_id"`
	Name                string        `json:"name"`
	Floor               int           `json:"floor"`
	Capacity            int           `json:"capacity"`
	SpaceType           string        `json:"space_type"`
	IsReservable        bool          `json:"is_reservable"`
	ReservationCategory *string       `json:"reservation_category,omitempty"`
	Assignment          assignmentDTO `json:"assignment"`
	MaxUsagePercentage  *float64      `json:"max_usage_percentage,omitempty"`
	CustomSchedule      *scheduleDTO  `json:"custom_schedule,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[createRequest](w, r)
	if !ok {
		return
	}
	fields := domain.SpaceFields{
		ID:                  req.ID,
		RealID:              req.RealID,
		Name:                req.Name,
		Floor:               req.Floor,
		Capacity:            req.Capacity,
		SpaceType:           req.SpaceType,
		IsReservable:        req.IsReservable,
		ReservationCategory: req.ReservationCategory,
		AssignmentType:      req.Assignment.Type,
		AssignmentTargets:   req.Assignment.Targets,
		MaxUsagePercentage:  req.MaxUsagePercentage,
	}
	if req.CustomSchedule != nil {
		hours, err := req.CustomSchedule.toDomain()
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		fields.CustomSchedule = &hours
	}
	space, err := h.service.Create(ctx, fields)
	if err != nil {
		h.writeError(ctx, w, "failed to create space", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSpaceResponse(space))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	space, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "failed to load space", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSpaceResponse(space))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	spaces, err := h.service.List(ctx, filter)
	if err != nil {
		h.writeError(ctx, w, "failed to list spaces", err)
		return
	}
	out := make([]spaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, toSpaceResponse(s))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func parseFilter(r *http.Request) (store.Filter, error) {
	var filter store.Filter
	q := r.URL.Query()
	if raw := q.Get("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			return store.Filter{}, dErrors.New(dErrors.CodeBadRequest, "floor must be an integer")
		}
		filter.Floor = &floor
	}
	if raw := q.Get("category"); raw != "" {
		category, err := domain.ParseReservationCategory(raw)
		if err != nil {
			return store.Filter{}, err
		}
		filter.Category = &category
	}
	if raw := q.Get("department"); raw != "" {
		department, err := domain.ParseDepartment(raw)
		if err != nil {
			return store.Filter{}, err
		}
		filter.Department = &department
	}
	return filter, nil
}

type updateRequest struct {
	IsReservable            *bool          `json:"is_reservable,omitempty"`
	ReservationCategory     *string        `json:"reservation_category,omitempty"`
	ClearCategory           bool           `json:"clear_category,omitempty"`
	Assignment              *assignmentDTO `json:"assignment,omitempty"`
	MaxUsagePercentage      *float64       `json:"max_usage_percentage,omitempty"`
	ClearMaxUsagePercentage bool           `json:"clear_max_usage_percentage,omitempty"`
	CustomSchedule          *scheduleDTO   `json:"custom_schedule,omitempty"`
	ClearCustomSchedule     bool           `json:"clear_custom_schedule,omitempty"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[updateRequest](w, r)
	if !ok {
		return
	}
	update := domain.SpaceUpdate{
		IsReservable:            req.IsReservable,
		ReservationCategory:     req.ReservationCategory,
		ClearCategory:           req.ClearCategory,
		MaxUsagePercentage:      req.MaxUsagePercentage,
		ClearMaxUsagePercentage: req.ClearMaxUsagePercentage,
		ClearCustomSchedule:     req.ClearCustomSchedule,
	}
	if req.Assignment != nil {
		update.AssignmentType = &req.Assignment.Type
		update.AssignmentTargets = req.Assignment.Targets
	}
	if req.CustomSchedule != nil {
		hours, err := req.CustomSchedule.toDomain()
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		update.CustomSchedule = &hours
	}
	space, err := h.service.Update(ctx, chi.URLParam(r, "id"), update)
	if err != nil {
		h.writeError(ctx, w, "failed to update space", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSpaceResponse(space))
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.GetCode(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
