package geokit

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/cluster"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
	geometryuc "github.com/kailas-cloud/geokit/internal/usecase/geometry"
	healthuc "github.com/kailas-cloud/geokit/internal/usecase/health"
)

// Внутренние интерфейсы для подмены в тестах.
type geometryUseCase interface {
	Cluster(ctx context.Context, points []geo.ClusterPoint, radiusMeters float64) ([]geo.ClusterOutput, error)
	Distance(ctx context.Context, a, b geo.GeoPoint) (float64, error)
	Bearing(ctx context.Context, a, b geo.GeoPoint) (float64, error)
	InCircle(ctx context.Context, point, center geo.GeoPoint, radiusMeters float64) (bool, error)
	InPolygon(ctx context.Context, point geo.GeoPoint, polygon []geo.GeoPoint) (bool, error)
	FindPolygon(ctx context.Context, point geo.GeoPoint, polygons [][]geo.GeoPoint) (int, error)
	PolygonArea(ctx context.Context, polygon []geo.GeoPoint) (float64, error)
	RectangleArea(ctx context.Context, sw, ne geo.GeoPoint) (float64, error)
	Centroid(ctx context.Context, polygon []geo.GeoPoint) (geo.GeoPoint, error)
	Simplify(ctx context.Context, points []geo.GeoPoint, toleranceMeters float64) ([]geo.GeoPoint, error)
	PathLength(ctx context.Context, points []geo.GeoPoint) (float64, error)
	PointAt(ctx context.Context, points []geo.GeoPoint, distanceMeters float64) (geo.PathSample, error)
	NearestPoint(ctx context.Context, path []geo.GeoPoint, target geo.GeoPoint) (geo.NearestPointResult, error)
	PathBounds(ctx context.Context, points []geo.GeoPoint) (geo.PathBounds, error)
	ParsePolyline(ctx context.Context, text string) ([]geo.GeoPoint, error)
	EncodePolyline(ctx context.Context, points []geo.GeoPoint) (string, error)
	DecodePolyline(ctx context.Context, encoded string) ([]geo.GeoPoint, error)
	GeoHash(ctx context.Context, p geo.GeoPoint, precision int) (string, error)
	Tile(ctx context.Context, p geo.GeoPoint, zoom int) (geo.TileResult, error)
	TileCorner(ctx context.Context, x, y, zoom int) (geo.GeoPoint, error)
	Pixel(ctx context.Context, p geo.GeoPoint, zoom int) (geo.PixelResult, error)
	PixelToLatLng(ctx context.Context, px geo.PixelResult, zoom int) (geo.GeoPoint, error)
	Heatmap(ctx context.Context, points []geo.HeatmapPoint, gridSizeMeters float64) ([]geo.HeatmapGridCell, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the geokit SDK entry point.
type Client struct {
	geom      geometryUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a geokit Client. It performs no I/O.
func New(opts ...Option) (*Client, error) {
	def := domain.DefaultLimits()
	cfg := &clientConfig{
		quadTreeCapacity: def.QuadTreeCapacity,
		maxPoints:        def.MaxPoints,
		geoHashPrecision: def.DefaultGeoHashPrecision,
		maxZoom:          def.MaxZoom,
		maxClusterIndex:  def.MaxClusterIndex,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.maxPoints < 0 {
		return nil, fmt.Errorf("geokit: max points must be >= 0, got %d", cfg.maxPoints)
	}
	if cfg.geoHashPrecision < 1 || cfg.geoHashPrecision > geo.MaxGeoHashPrecision {
		return nil, fmt.Errorf("geokit: geohash precision must be in [1, %d], got %d",
			geo.MaxGeoHashPrecision, cfg.geoHashPrecision)
	}
	if cfg.maxZoom < 0 || cfg.maxZoom > geo.MaxZoom {
		return nil, fmt.Errorf("geokit: max zoom must be in [0, %d], got %d", geo.MaxZoom, cfg.maxZoom)
	}
	if cfg.maxClusterIndex < 0 || cfg.maxClusterIndex > cluster.MaxIndex {
		return nil, fmt.Errorf("geokit: max cluster index must be in [0, %d], got %d",
			cluster.MaxIndex, cfg.maxClusterIndex)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	svc := geometryuc.New(domain.Limits{
		MaxPoints:               cfg.maxPoints,
		QuadTreeCapacity:        cfg.quadTreeCapacity,
		DefaultGeoHashPrecision: cfg.geoHashPrecision,
		MaxZoom:                 cfg.maxZoom,
		MaxClusterIndex:         cfg.maxClusterIndex,
	}, nil)

	healthSvc := healthuc.New(svc)
	healthSvc.AddOptional(geometryuc.PolylineCheckName, geometryuc.PolylineCheck{})

	return &Client{
		geom:      svc,
		healthSvc: healthSvc,
		obs:       obs,
	}, nil
}

// Health runs the known-answer self check of the geometry core.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
