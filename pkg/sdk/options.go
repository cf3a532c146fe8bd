package geokit

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	quadTreeCapacity int
	maxPoints        int
	geoHashPrecision int
	maxZoom          int
	maxClusterIndex  int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithQuadTreeCapacity sets the number of points a QuadTree node holds
// before it subdivides. Clustering results do not depend on it.
// Default: 20.
func WithQuadTreeCapacity(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.quadTreeCapacity = n
	})
}

// WithMaxPoints caps the number of points accepted by a single call.
// Larger inputs fail with a *LimitError. Default: 200000; 0 disables the cap.
func WithMaxPoints(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxPoints = n
	})
}

// WithGeoHashPrecision sets the precision GeoHash uses when called with 0.
// Default: 7.
func WithGeoHashPrecision(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.geoHashPrecision = n
	})
}

// WithMaxZoom sets the highest zoom accepted by tile and pixel calls.
// Default: 22; 0 keeps the default.
func WithMaxZoom(z int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxZoom = z
	})
}

// WithMaxClusterIndex caps the indices ClusterIndexed accepts.
// Default and upper bound: math.MaxInt32; 0 keeps the default.
func WithMaxClusterIndex(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxClusterIndex = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
