package geometry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/cluster"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
	"github.com/kailas-cloud/geokit/internal/logger"
)

// Operation status labels.
const (
	statusOK       = "ok"
	statusRejected = "rejected"
	statusEmpty    = "empty"
	statusError    = "error"
)

// Service applies operator limits around the geometry core and records every
// call. It keeps no state between calls.
type Service struct {
	limits   domain.Limits
	recorder Recorder
}

// New creates a geometry service. Zero-valued limits fall back to
// domain.DefaultLimits; a nil recorder disables metrics.
func New(limits domain.Limits, recorder Recorder) *Service {
	def := domain.DefaultLimits()
	if limits.QuadTreeCapacity <= 0 {
		limits.QuadTreeCapacity = def.QuadTreeCapacity
	}
	if limits.DefaultGeoHashPrecision <= 0 {
		limits.DefaultGeoHashPrecision = def.DefaultGeoHashPrecision
	}
	if limits.MaxZoom <= 0 {
		limits.MaxZoom = def.MaxZoom
	}
	if limits.MaxClusterIndex <= 0 || limits.MaxClusterIndex > cluster.MaxIndex {
		limits.MaxClusterIndex = def.MaxClusterIndex
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{limits: limits, recorder: recorder}
}

// Limits returns the effective limits.
func (s *Service) Limits() domain.Limits { return s.limits }

// run executes fn and records its outcome under op.
func run[T any](ctx context.Context, s *Service, op string, points int, fn func() (T, error)) (T, error) {
	start := time.Now()
	res, err := fn()
	d := time.Since(start)

	status := statusFor(err)
	s.recorder.Operation(op, status, points, d)

	log := logger.FromContext(ctx)
	switch status {
	case statusOK, statusEmpty:
		log.Debug("Geometry operation completed",
			zap.String("op", op),
			zap.String("status", status),
			zap.Int("points", points),
			zap.Duration("duration", d),
		)
	case statusRejected:
		log.Info("Geometry operation rejected",
			zap.String("op", op),
			zap.Int("points", points),
			zap.Error(err),
		)
	default:
		log.Error("Geometry operation failed",
			zap.String("op", op),
			zap.Int("points", points),
			zap.Error(err),
		)
	}
	return res, err
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrNotFound):
		return statusEmpty
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrTooManyPoints),
		errors.Is(err, domain.ErrLengthMismatch):
		return statusRejected
	default:
		return statusError
	}
}

func (s *Service) checkPoints(n int) error {
	if s.limits.MaxPoints > 0 && n > s.limits.MaxPoints {
		return domain.NewLimitError(n, s.limits.MaxPoints)
	}
	return nil
}

func (s *Service) checkZoom(zoom int) error {
	if zoom < 0 || zoom > s.limits.MaxZoom {
		return fmt.Errorf("zoom %d outside [0, %d]: %w", zoom, s.limits.MaxZoom, domain.ErrInvalidArgument)
	}
	return nil
}

func checkCoordinate(name string, p geo.GeoPoint) error {
	if !geo.ValidateCoordinates(p.Lat, p.Lon) {
		return fmt.Errorf("%s (%g, %g) out of range: %w", name, p.Lat, p.Lon, domain.ErrInvalidArgument)
	}
	return nil
}

// Cluster groups points greedily around input-order seeds. Negative indices
// are rejected here even though the core would skip them.
func (s *Service) Cluster(
	ctx context.Context, points []geo.ClusterPoint, radiusMeters float64,
) ([]geo.ClusterOutput, error) {
	return run(ctx, s, "cluster", len(points), func() ([]geo.ClusterOutput, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return nil, err
		}
		maxIndex, err := cluster.ValidateIndices(points)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		if maxIndex > s.limits.MaxClusterIndex {
			return nil, fmt.Errorf("index %d exceeds max cluster index %d: %w",
				maxIndex, s.limits.MaxClusterIndex, domain.ErrInvalidArgument)
		}
		out := cluster.ClusterWithOptions(points, radiusMeters, cluster.Options{
			Capacity:      s.limits.QuadTreeCapacity,
			KnownMaxIndex: maxIndex,
		})
		s.recorder.Clusters(len(out))
		return out, nil
	})
}

// Distance returns the haversine distance in metres.
func (s *Service) Distance(ctx context.Context, a, b geo.GeoPoint) (float64, error) {
	return run(ctx, s, "distance", 2, func() (float64, error) {
		if err := errors.Join(checkCoordinate("from", a), checkCoordinate("to", b)); err != nil {
			return 0, err
		}
		return geo.DistanceBetween(a, b), nil
	})
}

// Bearing returns the initial bearing from a to b in degrees.
func (s *Service) Bearing(ctx context.Context, a, b geo.GeoPoint) (float64, error) {
	return run(ctx, s, "bearing", 2, func() (float64, error) {
		if err := errors.Join(checkCoordinate("from", a), checkCoordinate("to", b)); err != nil {
			return 0, err
		}
		return geo.Bearing(a.Lat, a.Lon, b.Lat, b.Lon), nil
	})
}

// InCircle reports whether point lies within radiusMeters of center.
func (s *Service) InCircle(ctx context.Context, point, center geo.GeoPoint, radiusMeters float64) (bool, error) {
	return run(ctx, s, "contains_circle", 2, func() (bool, error) {
		return geo.IsPointInCircle(point, center, radiusMeters), nil
	})
}

// InPolygon reports polygon containment.
func (s *Service) InPolygon(ctx context.Context, point geo.GeoPoint, polygon []geo.GeoPoint) (bool, error) {
	return run(ctx, s, "contains_polygon", len(polygon), func() (bool, error) {
		if err := s.checkPoints(len(polygon)); err != nil {
			return false, err
		}
		return geo.IsPointInPolygon(point, polygon), nil
	})
}

// FindPolygon returns the index of the first polygon containing point, or -1.
func (s *Service) FindPolygon(ctx context.Context, point geo.GeoPoint, polygons [][]geo.GeoPoint) (int, error) {
	total := 0
	for _, p := range polygons {
		total += len(p)
	}
	return run(ctx, s, "contains_polygons", total, func() (int, error) {
		if err := s.checkPoints(total); err != nil {
			return -1, err
		}
		return geo.FindPointInPolygons(point, polygons), nil
	})
}

// PolygonArea returns the spherical polygon area in m².
func (s *Service) PolygonArea(ctx context.Context, polygon []geo.GeoPoint) (float64, error) {
	return run(ctx, s, "area_polygon", len(polygon), func() (float64, error) {
		if err := s.checkPoints(len(polygon)); err != nil {
			return 0, err
		}
		return geo.PolygonArea(polygon), nil
	})
}

// RectangleArea returns the area of the box spanned by sw and ne in m².
func (s *Service) RectangleArea(ctx context.Context, sw, ne geo.GeoPoint) (float64, error) {
	return run(ctx, s, "area_rectangle", 2, func() (float64, error) {
		return geo.RectangleArea(sw, ne), nil
	})
}

// Centroid returns the planar centroid of a polygon.
func (s *Service) Centroid(ctx context.Context, polygon []geo.GeoPoint) (geo.GeoPoint, error) {
	return run(ctx, s, "centroid", len(polygon), func() (geo.GeoPoint, error) {
		if err := s.checkPoints(len(polygon)); err != nil {
			return geo.GeoPoint{}, err
		}
		return geo.Centroid(polygon), nil
	})
}

// Simplify reduces a path with Ramer-Douglas-Peucker.
func (s *Service) Simplify(ctx context.Context, points []geo.GeoPoint, toleranceMeters float64) ([]geo.GeoPoint, error) {
	return run(ctx, s, "simplify", len(points), func() ([]geo.GeoPoint, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return nil, err
		}
		if toleranceMeters < 0 {
			return nil, fmt.Errorf("negative tolerance %g: %w", toleranceMeters, domain.ErrInvalidArgument)
		}
		return geo.SimplifyPolyline(points, toleranceMeters), nil
	})
}

// PathLength returns the summed haversine length of a path in metres.
func (s *Service) PathLength(ctx context.Context, points []geo.GeoPoint) (float64, error) {
	return run(ctx, s, "path_length", len(points), func() (float64, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return 0, err
		}
		return geo.PathLength(points), nil
	})
}

// PointAt samples the path distanceMeters from its start. Paths shorter than
// two points and negative distances yield domain.ErrNotFound.
func (s *Service) PointAt(ctx context.Context, points []geo.GeoPoint, distanceMeters float64) (geo.PathSample, error) {
	return run(ctx, s, "point_at", len(points), func() (geo.PathSample, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return geo.PathSample{}, err
		}
		sample, ok := geo.PointAtDistance(points, distanceMeters)
		if !ok {
			return geo.PathSample{}, fmt.Errorf("no sample at %g m on %d points: %w",
				distanceMeters, len(points), domain.ErrNotFound)
		}
		return sample, nil
	})
}

// NearestPoint projects target onto the path. An empty path yields
// domain.ErrNotFound.
func (s *Service) NearestPoint(
	ctx context.Context, path []geo.GeoPoint, target geo.GeoPoint,
) (geo.NearestPointResult, error) {
	return run(ctx, s, "nearest_point", len(path), func() (geo.NearestPointResult, error) {
		if err := s.checkPoints(len(path)); err != nil {
			return geo.NearestPointResult{}, err
		}
		r := geo.NearestPointOnPath(path, target)
		if !r.Found() {
			return geo.NearestPointResult{}, fmt.Errorf("empty path: %w", domain.ErrNotFound)
		}
		return r, nil
	})
}

// PathBounds returns the extent of the points. Empty input returns the
// inverted sentinel box, not an error.
func (s *Service) PathBounds(ctx context.Context, points []geo.GeoPoint) (geo.PathBounds, error) {
	return run(ctx, s, "path_bounds", len(points), func() (geo.PathBounds, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return geo.PathBounds{}, err
		}
		return geo.CalculatePathBounds(points), nil
	})
}

// ParsePolyline parses "lon,lat;lon,lat" text. Malformed tokens are skipped.
func (s *Service) ParsePolyline(ctx context.Context, text string) ([]geo.GeoPoint, error) {
	return run(ctx, s, "parse_polyline", 0, func() ([]geo.GeoPoint, error) {
		pts := geo.ParsePolyline(text)
		if err := s.checkPoints(len(pts)); err != nil {
			return nil, err
		}
		return pts, nil
	})
}

// EncodePolyline renders points in the Google encoded polyline format.
func (s *Service) EncodePolyline(ctx context.Context, points []geo.GeoPoint) (string, error) {
	return run(ctx, s, "encode_polyline", len(points), func() (string, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return "", err
		}
		return geo.EncodeGooglePolyline(points), nil
	})
}

// DecodePolyline parses a Google encoded polyline.
func (s *Service) DecodePolyline(ctx context.Context, encoded string) ([]geo.GeoPoint, error) {
	return run(ctx, s, "decode_polyline", 0, func() ([]geo.GeoPoint, error) {
		pts, err := geo.DecodeGooglePolyline(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		if err := s.checkPoints(len(pts)); err != nil {
			return nil, err
		}
		return pts, nil
	})
}

// GeoHash encodes a coordinate. precision 0 selects the configured default;
// other values are clamped to 1..12.
func (s *Service) GeoHash(ctx context.Context, p geo.GeoPoint, precision int) (string, error) {
	return run(ctx, s, "geohash", 1, func() (string, error) {
		if err := checkCoordinate("point", p); err != nil {
			return "", err
		}
		if precision == 0 {
			precision = s.limits.DefaultGeoHashPrecision
		}
		return geo.EncodeGeoHash(p.Lat, p.Lon, precision), nil
	})
}

// Tile returns the slippy-map tile containing p.
func (s *Service) Tile(ctx context.Context, p geo.GeoPoint, zoom int) (geo.TileResult, error) {
	return run(ctx, s, "tile", 1, func() (geo.TileResult, error) {
		if err := s.checkZoom(zoom); err != nil {
			return geo.TileResult{}, err
		}
		return geo.LatLngToTile(p.Lat, p.Lon, zoom), nil
	})
}

// TileCorner returns the north-west corner of tile x/y at zoom.
func (s *Service) TileCorner(ctx context.Context, x, y, zoom int) (geo.GeoPoint, error) {
	return run(ctx, s, "tile_corner", 1, func() (geo.GeoPoint, error) {
		if err := s.checkZoom(zoom); err != nil {
			return geo.GeoPoint{}, err
		}
		if n := 1 << zoom; x < 0 || y < 0 || x >= n || y >= n {
			return geo.GeoPoint{}, fmt.Errorf("tile %d/%d/%d does not exist: %w", zoom, x, y, domain.ErrInvalidArgument)
		}
		return geo.TileToLatLng(x, y, zoom), nil
	})
}

// Pixel returns world pixel coordinates of p at zoom.
func (s *Service) Pixel(ctx context.Context, p geo.GeoPoint, zoom int) (geo.PixelResult, error) {
	return run(ctx, s, "pixel", 1, func() (geo.PixelResult, error) {
		if err := s.checkZoom(zoom); err != nil {
			return geo.PixelResult{}, err
		}
		return geo.LatLngToPixel(p.Lat, p.Lon, zoom), nil
	})
}

// PixelToLatLng is the inverse of Pixel.
func (s *Service) PixelToLatLng(ctx context.Context, px geo.PixelResult, zoom int) (geo.GeoPoint, error) {
	return run(ctx, s, "pixel_latlng", 1, func() (geo.GeoPoint, error) {
		if err := s.checkZoom(zoom); err != nil {
			return geo.GeoPoint{}, err
		}
		return geo.PixelToLatLng(px.X, px.Y, zoom), nil
	})
}

// Heatmap aggregates weighted points into grid cells.
func (s *Service) Heatmap(
	ctx context.Context, points []geo.HeatmapPoint, gridSizeMeters float64,
) ([]geo.HeatmapGridCell, error) {
	return run(ctx, s, "heatmap", len(points), func() ([]geo.HeatmapGridCell, error) {
		if err := s.checkPoints(len(points)); err != nil {
			return nil, err
		}
		return geo.GenerateHeatmapGrid(points, gridSizeMeters), nil
	})
}

// Known answers for SelfCheck.
const (
	selfCheckLat     = 39.9042
	selfCheckLon     = 116.4074
	selfCheckGeoHash = "wx4g0"
)

// SelfCheck runs known-answer computations through the core.
func (s *Service) SelfCheck(_ context.Context) error {
	if got := geo.EncodeGeoHash(selfCheckLat, selfCheckLon, len(selfCheckGeoHash)); got != selfCheckGeoHash {
		return fmt.Errorf("geohash self check: got %q, want %q", got, selfCheckGeoHash)
	}
	if d := geo.Distance(selfCheckLat, selfCheckLon, selfCheckLat, selfCheckLon); d != 0 {
		return fmt.Errorf("distance self check: got %g, want 0", d)
	}
	return nil
}

// PolylineCheckName is the health check name PolylineCheck registers under.
const PolylineCheckName = "polyline"

// Known route for PolylineCheck.
const polylineCheckEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var polylineCheckRoute = []geo.GeoPoint{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

// PolylineCheck round-trips a known route through the encoded polyline
// codec. It is an optional health check: the codec is not on the clustering
// path.
type PolylineCheck struct{}

// SelfCheck implements health.SelfChecker.
func (PolylineCheck) SelfCheck(_ context.Context) error {
	if got := geo.EncodeGooglePolyline(polylineCheckRoute); got != polylineCheckEncoded {
		return fmt.Errorf("polyline self check: encoded %q, want %q", got, polylineCheckEncoded)
	}
	back, err := geo.DecodeGooglePolyline(polylineCheckEncoded)
	if err != nil {
		return fmt.Errorf("polyline self check: %w", err)
	}
	if len(back) != len(polylineCheckRoute) {
		return fmt.Errorf("polyline self check: decoded %d points, want %d", len(back), len(polylineCheckRoute))
	}
	for i, p := range back {
		want := polylineCheckRoute[i]
		if math.Abs(p.Lat-want.Lat) > 1e-5 || math.Abs(p.Lon-want.Lon) > 1e-5 {
			return fmt.Errorf("polyline self check: point %d decoded as %+v, want %+v", i, p, want)
		}
	}
	return nil
}
