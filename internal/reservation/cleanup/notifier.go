package cleanup

import (
	"context"
	"log/slog"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// LogNotifier records removals in the structured log. It stands in until a
// real delivery channel (email, push) exists; the Notifier port keeps that
// swap local.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ReservationRemoved(ctx context.Context, r domain.Reservation) error {
	n.logger.InfoContext(ctx, "reservation removal notice",
		"user_id", r.UserID,
		"reservation_id", r.ID,
		"spaces", r.SpaceIDs,
		"start_time", r.StartTime,
	)
	return nil
}
