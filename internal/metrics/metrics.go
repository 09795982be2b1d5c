package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts bookings appended to the ledger.
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flightdesk",
			Name:      "bookings_created_total",
			Help:      "The total number of confirmed bookings",
		},
	)

	// BookingsRejected counts booking attempts that failed, by reason.
	BookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightdesk",
			Name:      "bookings_rejected_total",
			Help:      "The total number of rejected booking attempts",
		},
		[]string{"reason"},
	)

	SeatsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flightdesk",
			Name:      "seats_reserved_total",
			Help:      "The total number of seats taken out of inventory",
		},
	)

	FlightSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightdesk",
			Name:      "flight_searches_total",
			Help:      "The total number of flight searches, by whether anything matched",
		},
		[]string{"result"},
	)

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "flightdesk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightdesk",
			Name:      "notifications_sent_total",
			Help:      "The total number of booking notifications handled by the worker",
		},
		[]string{"type"},
	)
)
