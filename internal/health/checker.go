package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pinger is satisfied by *pgxpool.Pool and *sqlite.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker verifies that the store is reachable.
type Checker struct {
	store     Pinger
	storeName string
	logger    *slog.Logger
	gauge     *prometheus.GaugeVec
}

// NewChecker creates a health checker for the store registered under
// storeName ("postgres" or "sqlite") and registers its Prometheus gauge.
func NewChecker(storeName string, store Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tracker",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		store:     store,
		storeName: storeName,
		logger:    logger.With("component", "health"),
		gauge:     gauge,
	}
}

// Liveness returns a simple "up" response if the process is running.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

// Readiness pings the store and reports its status.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthResult{
		Status: "up",
		Checks: make(map[string]CheckResult),
	}

	if err := c.store.Ping(checkCtx); err != nil {
		c.logger.WarnContext(ctx, "store health check failed", "store", c.storeName, "error", err)
		result.Status = "down"
		result.Checks[c.storeName] = CheckResult{Status: "down", Error: err.Error()}
		c.gauge.WithLabelValues(c.storeName).Set(0)
	} else {
		result.Checks[c.storeName] = CheckResult{Status: "up"}
		c.gauge.WithLabelValues(c.storeName).Set(1)
	}

	return result
}
