package health_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/project-tracker/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(p health.Pinger) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return health.NewChecker("sqlite", p, slog.Default(), reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(&mockPinger{err: errors.New("db down")})

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_StoreUp(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{})

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	check, ok := result.Checks["sqlite"]
	if !ok {
		t.Fatal("missing sqlite check")
	}
	if check.Status != "up" {
		t.Fatalf("expected sqlite up, got %s", check.Status)
	}

	assertGauge(t, reg, 1)
}

func TestReadiness_StoreDown(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{err: errors.New("connection refused")})

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	check := result.Checks["sqlite"]
	if check.Status != "down" {
		t.Fatalf("expected sqlite down, got %s", check.Status)
	}
	if check.Error == "" {
		t.Fatal("expected error message")
	}

	assertGauge(t, reg, 0)
}

func assertGauge(t *testing.T, reg *prometheus.Registry, want int) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP tracker_health_check_up Whether a dependency is reachable. 1 = up, 0 = down.
# TYPE tracker_health_check_up gauge
tracker_health_check_up{dependency="sqlite"} %d
`, want)

	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "tracker_health_check_up"); err != nil {
		t.Fatal(err)
	}
}
