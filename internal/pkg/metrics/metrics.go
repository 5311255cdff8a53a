package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attendance engine, sweep and correction workflow.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Presence outcomes by status and mode
	PresenceOutcome *prometheus.CounterVec

	// Collaborator (geofence, identity matcher) call latency
	CollaboratorLatency *prometheus.HistogramVec

	// Sweep totals by outcome: newly_absent, already_absent, present, failed
	SweepPersons *prometheus.CounterVec

	// Sweep runs by result: completed, skipped, interrupted, locked
	SweepRuns *prometheus.CounterVec

	SweepDuration prometheus.Histogram

	// Correction reviews by decision
	CorrectionReviews *prometheus.CounterVec
}

// New registers every metric on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PresenceOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_attendance_presence_outcomes_total",
			Help: "Presence events by resulting status and location mode",
		}, []string{"status", "mode"}),

		CollaboratorLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hris_attendance_collaborator_duration_seconds",
			Help:    "Duration of calls to external collaborators",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"collaborator", "result"}), // collaborator: "geofence", "identity"

		SweepPersons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_attendance_sweep_persons_total",
			Help: "Employees processed by absence sweeps by outcome",
		}, []string{"outcome"}),

		SweepRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_attendance_sweep_runs_total",
			Help: "Absence sweep runs by result",
		}, []string{"result"}),

		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hris_attendance_sweep_duration_seconds",
			Help:    "Duration of absence sweep runs",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		CorrectionReviews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hris_attendance_correction_reviews_total",
			Help: "Correction requests reviewed by decision",
		}, []string{"decision"}),
	}
}

func (m *Metrics) IncrementPresence(status, mode string) {
	if m != nil {
		m.PresenceOutcome.WithLabelValues(status, mode).Inc()
	}
}

func (m *Metrics) ObserveCollaborator(collaborator string, err error, d time.Duration) {
	if m != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.CollaboratorLatency.WithLabelValues(collaborator, result).Observe(d.Seconds())
	}
}

func (m *Metrics) AddSweepPersons(outcome string, n int) {
	if m != nil && n > 0 {
		m.SweepPersons.WithLabelValues(outcome).Add(float64(n))
	}
}

func (m *Metrics) IncrementSweepRun(result string, d time.Duration) {
	if m != nil {
		m.SweepRuns.WithLabelValues(result).Inc()
		m.SweepDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementCorrectionReview(decision string) {
	if m != nil {
		m.CorrectionReviews.WithLabelValues(decision).Inc()
	}
}
