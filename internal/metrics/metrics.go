package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/project-tracker/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	AuthEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "auth_events_total",
		Help:      "Signup and login attempts, by outcome.",
	}, []string{"event", "outcome"})

	UnauthenticatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "unauthenticated_requests_total",
		Help:      "Requests rejected for a missing or invalid session token.",
	})

	ForbiddenTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "forbidden_requests_total",
		Help:      "Requests rejected because the caller does not own the project.",
	})

	// Store metrics

	Projects = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tracker",
		Name:      "projects",
		Help:      "Stored projects, by status. Refreshed periodically.",
	}, []string{"status"})

	StatsRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tracker",
		Name:      "stats_refresh_duration_seconds",
		Help:      "Time taken to recount projects by status.",
		Buckets:   prometheus.DefBuckets,
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthEventsTotal,
		UnauthenticatedTotal,
		ForbiddenTotal,
		Projects,
		StatsRefreshDuration,
	)
}

// NewServer serves /metrics, /healthz and /readyz on a separate port from the API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}

