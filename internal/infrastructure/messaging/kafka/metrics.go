package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_events_published_total",
			Help: "Total number of event messages written to the topic",
		},
		[]string{"event_type"},
	)

	publishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_events_publish_errors_total",
			Help: "Total number of failed publish attempts",
		},
	)

	eventsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_events_consumed_total",
			Help: "Total number of messages fetched from the topic",
		},
	)

	eventsProjected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_events_projected_total",
			Help: "Total number of events applied to the projection",
		},
		[]string{"event_type"},
	)

	eventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_events_skipped_total",
			Help: "Total number of messages skipped (malformed or unknown type)",
		},
		[]string{"reason"},
	)
)
