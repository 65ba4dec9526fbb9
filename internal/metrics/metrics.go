package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burnbox_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "burnbox_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "burnbox_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	RoomsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burnbox_rooms_deleted_total",
			Help: "Total rooms deleted",
		},
		[]string{"reason"}, // "creator" or "expired"
	)

	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "burnbox_messages_posted_total",
			Help: "Total messages posted",
		},
	)

	ActiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "burnbox_active_rooms",
			Help: "Rooms currently in the registry",
		},
	)

	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "burnbox_online_users",
			Help: "Users currently online",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burnbox_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
