// Package observability holds the Prometheus instrumentation for the
// signup service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of successful signups per activity.",
	}, []string{"activity"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "unregisters_total",
		Help:      "Number of successful unregistrations per activity.",
	}, []string{"activity"})

	rejectionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "rejected_signups_total",
		Help:      "Number of rejected signups grouped by reason.",
	}, []string{"reason"})

	participantsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current roster size per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rejectionCounter, participantsGauge)
}

// RecordSignup counts a successful signup and updates the roster gauge.
func RecordSignup(activity string, rosterSize int) {
	signupCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordUnregister counts a successful unregistration and updates the roster gauge.
func RecordUnregister(activity string, rosterSize int) {
	unregisterCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordSignupRejected counts a rejected signup by reason.
func RecordSignupRejected(reason string) {
	rejectionCounter.WithLabelValues(reason).Inc()
}

// SetRosterSize initialises the roster gauge, typically from the seed table.
func SetRosterSize(activity string, rosterSize int) {
	participantsGauge.WithLabelValues(activity).Set(float64(rosterSize))
}
