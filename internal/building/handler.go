package building

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/httputil"
	mwauth "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/auth"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// Handler exposes the building configuration endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the building Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the building routes. Reading the defaults is open to any
// authenticated user; replacing them is gerente-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/building", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(mwauth.RequireRole(string(domain.RoleGerente)))
		r.Put("/building", h.handleUpdate)
	})
}

type dayHoursDTO struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type configDTO struct {
	MaxOccupancyPercentage float64     `json:"max_occupancy_percentage"`
	Weekdays               dayHoursDTO `json:"weekdays"`
	Saturday               dayHoursDTO `json:"saturday"`
	Sunday                 dayHoursDTO `json:"sunday"`
}

func toConfigDTO(c domain.BuildingConfig) configDTO {
	return configDTO{
		MaxOccupancyPercentage: c.MaxOccupancyPercentage,
		Weekdays:               dayHoursDTO{Open: c.OpeningHours.Weekdays.Open, Close: c.OpeningHours.Weekdays.Close},
		Saturday:               dayHoursDTO{Open: c.OpeningHours.Saturday.Open, Close: c.OpeningHours.Saturday.Close},
		Sunday:                 dayHoursDTO{Open: c.OpeningHours.Sunday.Open, Close: c.OpeningHours.Sunday.Close},
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	config, err := h.service.GetDefaults(ctx)
	if err != nil {
		h.writeError(ctx, w, "failed to load building config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConfigDTO(config))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[configDTO](w, r)
	if !ok {
		return
	}
	config, err := h.service.Update(ctx, UpdateInput{
		MaxOccupancyPercentage: req.MaxOccupancyPercentage,
		Weekdays:               domain.DayHours{Open: req.Weekdays.Open, Close: req.Weekdays.Close},
		Saturday:               domain.DayHours{Open: req.Saturday.Open, Close: req.Saturday.Close},
		Sunday:                 domain.DayHours{Open: req.Sunday.Open, Close: req.Sunday.Close},
	})
	if err != nil {
		h.writeError(ctx, w, "failed to update building config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConfigDTO(config))
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.GetCode(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
