package geokit

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/geokit/internal/domain"
	healthuc "github.com/kailas-cloud/geokit/internal/usecase/health"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Checks["geometry"] != "ok" {
		t.Errorf("geometry check = %q, want ok", h.Checks["geometry"])
	}
	if h.Checks["polyline"] != "ok" {
		t.Errorf("polyline check = %q, want ok", h.Checks["polyline"])
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative max points", WithMaxPoints(-1)},
		{"precision too high", WithGeoHashPrecision(13)},
		{"precision zero", WithGeoHashPrecision(0)},
		{"zoom too high", WithMaxZoom(31)},
		{"negative cluster index cap", WithMaxClusterIndex(-1)},
		{"cluster index cap above int32", WithMaxClusterIndex(math.MaxInt32 + 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithQuadTreeCapacity(4).apply(cfg)
	WithMaxPoints(10).apply(cfg)
	WithGeoHashPrecision(9).apply(cfg)
	WithMaxZoom(18).apply(cfg)
	WithMaxClusterIndex(500).apply(cfg)
	if cfg.quadTreeCapacity != 4 || cfg.maxPoints != 10 || cfg.geoHashPrecision != 9 || cfg.maxZoom != 18 ||
		cfg.maxClusterIndex != 500 {
		t.Errorf("unexpected config %+v", cfg)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestNew_PrometheusReuse(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(WithPrometheus(reg)); err != nil {
		t.Fatalf("first New: %v", err)
	}
	// Второй клиент на том же реестре переиспользует коллекторы.
	if _, err := New(WithPrometheus(reg)); err != nil {
		t.Fatalf("second New: %v", err)
	}
}

func TestHealth_Degraded(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"geometry": healthuc.CheckOK, "extra": healthuc.CheckError},
	}}}
	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["extra"] != "error" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	// nil observer should not panic.
	var obs *observer
	obs.observe("test", time.Now(), 0, nil)
	obs.observe("test", time.Now(), 0, errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("cluster", time.Now().Add(-10*time.Millisecond), 100, nil)
	obs.observe("cluster", time.Now(), 5, domain.NewLimitError(5, 1))
	obs.observe("cluster", time.Now(), 5, errors.New("boom"))

	ops := obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("cluster", "ok")); got != 1 {
		t.Errorf("ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("cluster", "rejected")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("cluster", "error")); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(obs.metrics.points); n != 1 {
		t.Errorf("points series = %d, want 1", n)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	// Проверяем что логгер не паникует при вызове.
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), 1, nil)
	obs.observe("test.op", time.Now(), 1, errors.New("test error"))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrInvalidArgument, "rejected"},
		{domain.ErrLengthMismatch, "rejected"},
		{domain.NewLimitError(2, 1), "rejected"},
		{domain.ErrNotFound, "empty"},
		{errors.New("x"), "error"},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
