// Package cleanup removes reservations that stayed potentially invalid past
// the retention window.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// Store is the slice of the reservation store the worker needs.
type Store interface {
	ListPotentiallyInvalid(ctx context.Context, olderThan time.Time) ([]domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// Notifier tells the affected user their reservation was removed. Optional;
// nil disables notification.
type Notifier interface {
	ReservationRemoved(ctx context.Context, r domain.Reservation) error
}

// Worker periodically deletes reservations flagged longer ago than the
// retention window.
type Worker struct {
	store     Store
	notifier  Notifier
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger
}

type Option func(w *Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithNotifier(n Notifier) Option {
	return func(w *Worker) {
		w.notifier = n
	}
}

// New constructs a Worker.
func New(store Store, interval, retention time.Duration, opts ...Option) *Worker {
	w := &Worker{
		store:     store,
		interval:  interval,
		retention: retention,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run sweeps on a ticker until the context is cancelled. The first sweep runs
// immediately so restarts do not postpone overdue removals.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep deletes each overdue reservation independently; a failure on one does
// not block the rest, and the next tick retries.
func (w *Worker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	overdue, err := w.store.ListPotentiallyInvalid(ctx, cutoff)
	if err != nil {
		w.logger.ErrorContext(ctx, "cleanup sweep failed", "error", err)
		return
	}
	for _, r := range overdue {
		if err := w.store.Delete(ctx, r.ID); err != nil {
			w.logger.ErrorContext(ctx, "failed to remove flagged reservation",
				"reservation_id", r.ID, "error", err)
			continue
		}
		w.logger.InfoContext(ctx, "flagged reservation removed",
			"reservation_id", r.ID, "user_id", r.UserID, "invalidated_at", r.InvalidatedAt)
		if w.notifier != nil {
			if err := w.notifier.ReservationRemoved(ctx, r); err != nil {
				w.logger.WarnContext(ctx, "failed to notify user of removal",
					"reservation_id", r.ID, "error", err)
			}
		}
	}
}
