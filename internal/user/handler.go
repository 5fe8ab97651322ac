package user

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

// Handler exposes user management endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the user Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the user routes. Account management is gerente-only; a user
// may always read their own record.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(mwauth.RequireRole(string(domain.RoleGerente)))
		r.Post("/users", h.handleCreate)
		r.Get("/users", h.handleList)
		r.Patch("/users/{id}", h.handleUpdate)
		r.Delete("/users/{id}", h.handleDelete)
	})
}

type userResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Department *string  `json:"department,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	resp := userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: u.Role.Strings(),
	}
	if u.Department != nil {
		d := u.Department.String()
		resp.Department = &d
	}
	return resp
}

type createRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	Department *string  `json:"department,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[createRequest](w, r)
	if !ok {
		return
	}
	user, err := h.service.Create(ctx, CreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Roles:      req.Roles,
		Department: req.Department,
	})
	if err != nil {
		h.writeError(ctx, w, "failed to create user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id != requestcontext.UserID(ctx) && !requestcontext.HasRole(ctx, string(domain.RoleGerente)) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "cannot read another user's account"))
		return
	}
	user, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "failed to load user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.service.List(ctx)
	if err != nil {
		h.writeError(ctx, w, "failed to list users", err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type updateRequest struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Password        *string  `json:"password,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	Department      *string  `json:"department,omitempty"`
	ClearDepartment bool     `json:"clear_department,omitempty"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[updateRequest](w, r)
	if !ok {
		return
	}
	user, err := h.service.Update(ctx, chi.URLParam(r, "id"), domain.UserUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Roles:           req.Roles,
		Department:      req.Department,
		ClearDepartment: req.ClearDepartment,
	})
	if err != nil {
		h.writeError(ctx, w, "failed to update user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeError(ctx, w, "failed to delete user", err)
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
