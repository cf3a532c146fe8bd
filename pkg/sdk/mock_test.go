package geokit

import (
	"context"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
	healthuc "github.com/kailas-cloud/geokit/internal/usecase/health"
)

// --- geometryUseCase mock ---

// mockGeometryUC overrides the calls a test cares about; any other call
// panics on the nil embedded interface.
type mockGeometryUC struct {
	geometryUseCase

	clusterFn  func(ctx context.Context, points []geo.ClusterPoint, radiusMeters float64) ([]geo.ClusterOutput, error)
	distanceFn func(ctx context.Context, a, b geo.GeoPoint) (float64, error)
	pointAtFn  func(ctx context.Context, points []geo.GeoPoint, distanceMeters float64) (geo.PathSample, error)
}

func (m *mockGeometryUC) Cluster(
	ctx context.Context, points []geo.ClusterPoint, radiusMeters float64,
) ([]geo.ClusterOutput, error) {
	return m.clusterFn(ctx, points, radiusMeters)
}

func (m *mockGeometryUC) Distance(ctx context.Context, a, b geo.GeoPoint) (float64, error) {
	return m.distanceFn(ctx, a, b)
}

func (m *mockGeometryUC) PointAt(
	ctx context.Context, points []geo.GeoPoint, distanceMeters float64,
) (geo.PathSample, error) {
	return m.pointAtFn(ctx, points, distanceMeters)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
