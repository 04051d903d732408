package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystery_requests_total",
			Help: "Total HTTP requests by route",
		},
		[]string{"route"},
	)
	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystery_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
	roomsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mystery_rooms_created_total",
			Help: "Total rooms created",
		},
	)
	gamesFinishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystery_games_finished_total",
			Help: "Total games finished by winning side",
		},
		[]string{"winner"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(rateLimitedTotal)
	prometheus.MustRegister(roomsCreatedTotal)
	prometheus.MustRegister(gamesFinishedTotal)
}
