package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding flow and the background
// verification pipeline.
type Metrics struct {
	// Conversation step outcomes by step and result
	StepOutcome *prometheus.CounterVec

	// Sessions currently in progress
	ActiveSessions prometheus.Gauge

	// Verification job outcomes by stage and verdict
	VerificationOutcome *prometheus.CounterVec

	// Verification stage latency by stage
	VerificationLatency *prometheus.HistogramVec

	// Jobs dropped because the queue was full
	JobsDropped prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on the default
// registry.
func New() *Metrics {
	return &Metrics{
		StepOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fastkyc_step_outcomes_total",
			Help: "Total conversation step outcomes by step and result",
		}, []string{"step", "result"}), // result: "advanced", "reprompted", "cancelled"

		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fastkyc_active_sessions",
			Help: "Number of onboarding sessions currently in progress",
		}),

		VerificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fastkyc_verification_outcomes_total",
			Help: "Total background verification outcomes by stage and verdict",
		}, []string{"stage", "verdict"}), // stage: "extraction", "adverse_media"

		VerificationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fastkyc_verification_duration_seconds",
			Help:    "Duration of background verification stages",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),

		JobsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fastkyc_verification_jobs_dropped_total",
			Help: "Verification jobs dropped because the queue was full",
		}),
	}
}

// IncrementStep records a conversation step outcome.
func (m *Metrics) IncrementStep(step, result string) {
	if m != nil {
		m.StepOutcome.WithLabelValues(step, result).Inc()
	}
}

// SessionStarted increments the active session gauge.
func (m *Metrics) SessionStarted() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

// SessionEnded decrements the active session gauge.
func (m *Metrics) SessionEnded() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}

// IncrementVerification records a background verification outcome.
func (m *Metrics) IncrementVerification(stage, verdict string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(stage, verdict).Inc()
	}
}

// ObserveVerificationLatency records the duration of a verification stage.
func (m *Metrics) ObserveVerificationLatency(stage string, d time.Duration) {
	if m != nil {
		m.VerificationLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementDropped records a verification job lost to a full queue.
func (m *Metrics) IncrementDropped() {
	if m != nil {
		m.JobsDropped.Inc()
	}
}
