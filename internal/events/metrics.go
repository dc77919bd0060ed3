package events

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	enqueuedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "enqueued_total",
		Help:      "Number of roster events accepted onto the delivery queue.",
	}, []string{"event_type"})

	deliveredCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "delivered_total",
		Help:      "Number of roster events delivered to the broker.",
	}, []string{"event_type"})

	failedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "delivery_failures_total",
		Help:      "Number of roster events that failed delivery.",
	}, []string{"event_type"})

	droppedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "Number of roster events dropped because the queue was full.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(enqueuedCounter, deliveredCounter, failedCounter, droppedCounter)
}

func recordEnqueued(eventType string) {
	enqueuedCounter.WithLabelValues(eventType).Inc()
}

func recordDelivered(eventType string) {
	deliveredCounter.WithLabelValues(eventType).Inc()
}

func recordFailed(eventType string) {
	failedCounter.WithLabelValues(eventType).Inc()
}

func recordDropped(eventType string) {
	droppedCounter.WithLabelValues(eventType).Inc()
}
