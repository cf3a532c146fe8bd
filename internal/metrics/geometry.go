package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Geometry operation metrics.
var (
	GeometryOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geometry_operations_total",
			Help:      "Total number of geometry operations",
		},
		[]string{"operation", "status"},
	)

	GeometryOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geometry_operation_duration_seconds",
			Help:      "Geometry operation duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	GeometryInputPoints = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geometry_input_points",
			Help:      "Number of input points per geometry operation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 .. 262144
		},
		[]string{"operation"},
	)

	ClustersProduced = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clusters_produced",
			Help:      "Number of clusters returned per clustering call",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
		},
	)
)

var geomMetricsRegistered bool

// RegisterGeometryMetrics registers geometry operation metrics. Must be called once from main.
func RegisterGeometryMetrics() {
	if geomMetricsRegistered {
		return
	}
	prometheus.MustRegister(GeometryOperationsTotal)
	prometheus.MustRegister(GeometryOperationDuration)
	prometheus.MustRegister(GeometryInputPoints)
	prometheus.MustRegister(ClustersProduced)
	geomMetricsRegistered = true
}

// GeometryRecorder writes geometry observations into the package collectors.
type GeometryRecorder struct{}

// Operation records one finished operation.
func (GeometryRecorder) Operation(op, status string, points int, d time.Duration) {
	GeometryOperationsTotal.WithLabelValues(op, status).Inc()
	GeometryOperationDuration.WithLabelValues(op).Observe(d.Seconds())
	if points > 0 {
		GeometryInputPoints.WithLabelValues(op).Observe(float64(points))
	}
}

// Clusters records the size of one clustering result.
func (GeometryRecorder) Clusters(n int) {
	ClustersProduced.Observe(float64(n))
}
