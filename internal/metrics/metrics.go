// Package metrics holds the prometheus collectors exposed on the metrics
// listener.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seoanalyzer"

// UnmatchedRoute is the route label for requests no handler is registered for.
const UnmatchedRoute = "other"

// Recommendation outcomes.
const (
	RecommendationOK          = "ok"
	RecommendationError       = "error"
	RecommendationCacheHit    = "cache_hit"
	RecommendationCircuitOpen = "circuit_open"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Page analyses by outcome (ok or error code)",
		},
		[]string{"outcome"},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End to end duration of successful analyses",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	analysisScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_score",
			Help:      "Distribution of page scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	checkResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_results_total",
			Help:      "Check evaluations by check and result",
		},
		[]string{"check", "passed"},
	)

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		analysesTotal,
		analysisDuration,
		analysisScore,
		checkResultsTotal,
		recommendationsTotal,
	)
}

// ObserveRequest records one request. route must be a registered pattern or
// UnmatchedRoute, never the raw path.
func ObserveRequest(route, method string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveAnalysis records a finished analysis. outcome is "ok" or an error code.
func ObserveAnalysis(outcome string, score int, d time.Duration) {
	analysesTotal.WithLabelValues(outcome).Inc()
	if outcome != "ok" {
		return
	}
	analysisDuration.Observe(d.Seconds())
	analysisScore.Observe(float64(score))
}

func ObserveRecommendation(outcome string) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
}

// CheckObserver feeds check outcomes into check_results_total.
type CheckObserver struct{}

func (CheckObserver) ObserveCheck(title string, passed bool) {
	checkResultsTotal.WithLabelValues(title, strconv.FormatBool(passed)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
