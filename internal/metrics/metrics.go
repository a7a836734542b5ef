package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	CardRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gitcards_card_requests_total",
		Help: "Total number of card requests by card and HTTP status code.",
	}, []string{"card", "code"})

	CardDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gitcards_card_seconds",
		Help:    "Time spent fetching data and rendering a card.",
		Buckets: prometheus.DefBuckets,
	}, []string{"card"})

	GraphQLRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gitcards_graphql_requests_total",
		Help: "Total number of GitHub GraphQL requests by outcome.",
	}, []string{"outcome"})

	GraphQLDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gitcards_graphql_seconds",
		Help:    "Latency of GitHub GraphQL requests.",
		Buckets: prometheus.DefBuckets,
	})

	StreakDays = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gitcards_streak_days",
		Help: "Most recently computed contribution streak length.",
	}, []string{"kind"})

	ContributionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gitcards_contributions_last_year",
		Help: "Most recently fetched contribution total for the trailing year.",
	})
)
