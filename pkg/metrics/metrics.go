package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	RemindersGenerated *prometheus.CounterVec
	RemindersSent      *prometheus.CounterVec
	RemindersSkipped   *prometheus.CounterVec
	RemindersFailed    *prometheus.CounterVec
	ReminderRunLatency prometheus.Histogram
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		RemindersGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_generated_total",
			Help:      "Total number of reminders produced by the generators",
		}, []string{"type"}),
		RemindersSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_sent_total",
			Help:      "Total number of reminders delivered",
		}, []string{"type"}),
		RemindersSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_skipped_total",
			Help:      "Total number of reminders skipped as already sent",
		}, []string{"type"}),
		RemindersFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder deliveries that failed",
		}, []string{"type"}),
		ReminderRunLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminder_run_duration_seconds",
			Help:      "Time spent in one reminder generation cycle",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}
