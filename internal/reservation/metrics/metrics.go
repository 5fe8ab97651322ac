package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the reservation module. Tracks admission
// outcomes and the duration of the create path, which runs the full rule
// chain.
type Metrics struct {
	ReservationsCreated   prometheus.Counter
	ReservationsRejected  *prometheus.CounterVec
	ReservationsCancelled prometheus.Counter
	CreateDuration        prometheus.Histogram
}

// New creates a Metrics instance with all reservation module metrics
// registered on the default registry.
func New() *Metrics {
	return &Metrics{
		ReservationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservas_reservations_created_total",
			Help: "Total number of reservations admitted",
		}),
		ReservationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reservas_reservations_rejected_total",
			Help: "Total number of reservation requests refused, by reason",
		}, []string{"reason"}),
		ReservationsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reservas_reservations_cancelled_total",
			Help: "Total number of reservations cancelled",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "reservas_reservation_create_duration_seconds",
			Help:    "Duration of reservation creation (eligibility check plus insert)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records an admitted reservation.
func (m *Metrics) IncrementCreated() {
	m.ReservationsCreated.Inc()
}

// IncrementRejected records a refused request under its rejection reason.
func (m *Metrics) IncrementRejected(reason string) {
	m.ReservationsRejected.WithLabelValues(reason).Inc()
}

// IncrementCancelled records a cancelled reservation.
func (m *Metrics) IncrementCancelled() {
	m.ReservationsCancelled.Inc()
}

// ObserveCreate records the duration of a create operation. Call with
// time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}
