// Package httpapi assembles the HTTP surface: public auth routes, the
// authenticated API subtree, and the operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/httputil"
	mwauth "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/auth"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/logging"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/requestid"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/middleware/requesttime"
)

// Registrar mounts a feature's routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports a dependency's liveness under its name.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs.
type Deps struct {
	Logger    *slog.Logger
	Validator mwauth.TokenValidator
	Sessions  mwauth.SessionChecker

	// Public routes, mounted outside the auth gate.
	Auth Registrar
	// Authenticated feature routes.
	API []Registrar

	// Optional health probes by dependency name.
	Probes map[string]HealthChecker
}

// NewRouter wires the middleware chain and mounts every feature.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(logging.RequestLogger(deps.Logger))

	r.Get("/health", healthHandler(deps.Probes))
	r.Handle("/metrics", promhttp.Handler())

	if deps.Auth != nil {
		deps.Auth.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(mwauth.RequireAuth(deps.Validator, deps.Sessions, deps.Logger))
		for _, feature := range deps.API {
			feature.Register(r)
		}
	})

	return r
}

func healthHandler(probes map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		checks := make(map[string]string, len(probes))
		for name, probe := range probes {
			if err := probe.Health(r.Context()); err != nil {
				checks[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "up"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status": http.StatusText(status),
			"checks": checks,
		})
	}
}
