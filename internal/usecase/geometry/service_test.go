package geometry

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
	"github.com/kailas-cloud/geokit/internal/logger"
)

// --- Mocks ---

type observation struct {
	op     string
	status string
	points int
}

type mockRecorder struct {
	mu       sync.Mutex
	ops      []observation
	clusters []int
}

func (m *mockRecorder) Operation(op, status string, points int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, observation{op: op, status: status, points: points})
}

func (m *mockRecorder) Clusters(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusters = append(m.clusters, n)
}

func (m *mockRecorder) last(t *testing.T) observation {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ops) == 0 {
		t.Fatal("no operation recorded")
	}
	return m.ops[len(m.ops)-1]
}

func newTestService(maxPoints int) (*Service, *mockRecorder) {
	rec := &mockRecorder{}
	limits := domain.DefaultLimits()
	limits.MaxPoints = maxPoints
	return New(limits, rec), rec
}

func square() []geo.GeoPoint {
	return []geo.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}}
}

// --- Tests ---

func TestNew_FillsZeroLimits(t *testing.T) {
	svc := New(domain.Limits{}, nil)
	got := svc.Limits()
	def := domain.DefaultLimits()

	if got.QuadTreeCapacity != def.QuadTreeCapacity {
		t.Errorf("capacity: got %d, want %d", got.QuadTreeCapacity, def.QuadTreeCapacity)
	}
	if got.DefaultGeoHashPrecision != def.DefaultGeoHashPrecision {
		t.Errorf("precision: got %d, want %d", got.DefaultGeoHashPrecision, def.DefaultGeoHashPrecision)
	}
	if got.MaxZoom != def.MaxZoom {
		t.Errorf("zoom: got %d, want %d", got.MaxZoom, def.MaxZoom)
	}
	if got.MaxPoints != 0 {
		t.Errorf("max points should stay disabled, got %d", got.MaxPoints)
	}
	if got.MaxClusterIndex != math.MaxInt32 {
		t.Errorf("max cluster index: got %d, want %d", got.MaxClusterIndex, math.MaxInt32)
	}
}

func TestCluster_Success(t *testing.T) {
	svc, rec := newTestService(100)
	pts := []geo.ClusterPoint{
		{Lat: 0, Lon: 0, Index: 0},
		{Lat: 0, Lon: 0.0005, Index: 1},
		{Lat: 0, Lon: 0.001, Index: 2},
	}

	out, err := svc.Cluster(context.Background(), pts, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].CenterIndex != 0 || out[1].CenterIndex != 2 {
		t.Fatalf("unexpected clusters %+v", out)
	}

	obs := rec.last(t)
	if obs.op != "cluster" || obs.status != statusOK || obs.points != 3 {
		t.Errorf("unexpected observation %+v", obs)
	}
	if len(rec.clusters) != 1 || rec.clusters[0] != 2 {
		t.Errorf("expected one cluster count of 2, got %v", rec.clusters)
	}
}

func TestCluster_TooManyPoints(t *testing.T) {
	svc, rec := newTestService(2)
	pts := make([]geo.ClusterPoint, 3)
	for i := range pts {
		pts[i].Index = i
	}

	_, err := svc.Cluster(context.Background(), pts, 100)
	if !errors.Is(err, domain.ErrTooManyPoints) {
		t.Fatalf("expected ErrTooManyPoints, got %v", err)
	}
	var le *domain.LimitError
	if !errors.As(err, &le) || le.Got != 3 || le.Limit != 2 {
		t.Errorf("expected LimitError{3, 2}, got %v", err)
	}
	if obs := rec.last(t); obs.status != statusRejected {
		t.Errorf("expected rejected status, got %q", obs.status)
	}
}

func TestCluster_NegativeIndex(t *testing.T) {
	svc, _ := newTestService(0)
	pts := []geo.ClusterPoint{{Index: 0}, {Index: -1}}

	_, err := svc.Cluster(context.Background(), pts, 100)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCluster_IndexBounds(t *testing.T) {
	tests := []struct {
		name    string
		limits  domain.Limits
		index   int
		wantErr bool
	}{
		{"max int", domain.Limits{}, math.MaxInt, true},
		{"above int32", domain.Limits{}, 1 << 33, true},
		{"int32 max kept", domain.Limits{}, math.MaxInt32, false},
		{"operator bound", domain.Limits{MaxClusterIndex: 10}, 11, true},
		{"at operator bound", domain.Limits{MaxClusterIndex: 10}, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.limits, nil)
			pts := []geo.ClusterPoint{{Lat: 0, Lon: 0, Index: 0}, {Lat: 10, Lon: 10, Index: tt.index}}

			out, err := svc.Cluster(context.Background(), pts, 100)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v (clusters %+v)", err, out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != 2 || out[0].CenterIndex != 0 || out[1].CenterIndex != tt.index {
				t.Errorf("both points must survive, got %+v", out)
			}
		})
	}
}

func TestCluster_EmptyInput(t *testing.T) {
	svc, _ := newTestService(0)
	out, err := svc.Cluster(context.Background(), nil, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no clusters, got %+v", out)
	}
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	svc, _ := newTestService(0)
	_, err := svc.Distance(context.Background(), geo.GeoPoint{Lat: 91}, geo.GeoPoint{})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	d, err := svc.Distance(context.Background(), geo.GeoPoint{Lat: 10, Lon: 10}, geo.GeoPoint{Lat: 10, Lon: 10})
	if err != nil || d != 0 {
		t.Fatalf("expected 0, nil; got %v, %v", d, err)
	}
}

func TestBearing(t *testing.T) {
	svc, _ := newTestService(0)
	b, err := svc.Bearing(context.Background(), geo.GeoPoint{}, geo.GeoPoint{Lat: 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(b) > 1e-9 {
		t.Errorf("expected due north, got %v", b)
	}
}

func TestContainment(t *testing.T) {
	svc, _ := newTestService(10)
	ctx := context.Background()

	in, err := svc.InPolygon(ctx, geo.GeoPoint{Lat: 0.5, Lon: 0.5}, square())
	if err != nil || !in {
		t.Fatalf("expected inside, got %v, %v", in, err)
	}

	far := []geo.GeoPoint{{Lat: 10, Lon: 10}, {Lat: 10, Lon: 11}, {Lat: 11, Lon: 11}}
	idx, err := svc.FindPolygon(ctx, geo.GeoPoint{Lat: 0.5, Lon: 0.5}, [][]geo.GeoPoint{far, square()})
	if err != nil || idx != 1 {
		t.Fatalf("expected 1, got %d, %v", idx, err)
	}

	big := [][]geo.GeoPoint{square(), square(), square()}
	if _, err := svc.FindPolygon(ctx, geo.GeoPoint{}, big); !errors.Is(err, domain.ErrTooManyPoints) {
		t.Errorf("expected limit over summed polygon sizes, got %v", err)
	}

	inCircle, err := svc.InCircle(ctx, geo.GeoPoint{}, geo.GeoPoint{Lat: 0.001}, 200)
	if err != nil || !inCircle {
		t.Errorf("expected inside circle, got %v, %v", inCircle, err)
	}
}

func TestPointAt_NotFound(t *testing.T) {
	svc, rec := newTestService(0)
	_, err := svc.PointAt(context.Background(), []geo.GeoPoint{{}}, 10)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if obs := rec.last(t); obs.status != statusEmpty {
		t.Errorf("expected empty status, got %q", obs.status)
	}
}

func TestNearestPoint(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()

	if _, err := svc.NearestPoint(ctx, nil, geo.GeoPoint{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty path, got %v", err)
	}

	r, err := svc.NearestPoint(ctx, []geo.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}, geo.GeoPoint{Lat: 0.001, Lon: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if r.Index != 0 || math.Abs(r.Lon-0.5) > 1e-9 {
		t.Errorf("unexpected projection %+v", r)
	}
}

func TestPathBounds_EmptyIsSentinel(t *testing.T) {
	svc, _ := newTestService(0)
	b, err := svc.PathBounds(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Empty() {
		t.Errorf("expected sentinel bounds, got %+v", b)
	}
}

func TestSimplify_NegativeTolerance(t *testing.T) {
	svc, _ := newTestService(0)
	_, err := svc.Simplify(context.Background(), square(), -1)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPolylines(t *testing.T) {
	svc, _ := newTestService(2)
	ctx := context.Background()

	pts, err := svc.ParsePolyline(ctx, "116.1,39.1;bad;116.2,39.2")
	if err != nil || len(pts) != 2 {
		t.Fatalf("expected 2 points, got %v, %v", pts, err)
	}
	if _, err = svc.ParsePolyline(ctx, "1,1;2,2;3,3"); !errors.Is(err, domain.ErrTooManyPoints) {
		t.Errorf("expected ErrTooManyPoints, got %v", err)
	}

	enc, err := svc.EncodePolyline(ctx, []geo.GeoPoint{{Lat: 38.5, Lon: -120.2}, {Lat: 40.7, Lon: -120.95}})
	if err != nil {
		t.Fatal(err)
	}
	dec, err := svc.DecodePolyline(ctx, enc)
	if err != nil || len(dec) != 2 {
		t.Fatalf("round trip failed: %v, %v", dec, err)
	}
	if math.Abs(dec[1].Lon+120.95) > 1e-5 {
		t.Errorf("unexpected decoded point %+v", dec[1])
	}

	if _, err = svc.DecodePolyline(ctx, "_p~iF~ps|U_"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for truncated input, got %v", err)
	}
}

func TestGeoHash_DefaultPrecision(t *testing.T) {
	svc := New(domain.Limits{DefaultGeoHashPrecision: 5}, nil)
	h, err := svc.GeoHash(context.Background(), geo.GeoPoint{Lat: 39.9042, Lon: 116.4074}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h != "wx4g0" {
		t.Errorf("got %q, want wx4g0", h)
	}

	h, err = svc.GeoHash(context.Background(), geo.GeoPoint{Lat: 39.9042, Lon: 116.4074}, 99)
	if err != nil || len(h) != geo.MaxGeoHashPrecision {
		t.Errorf("expected clamp to %d chars, got %q, %v", geo.MaxGeoHashPrecision, h, err)
	}
}

func TestTiles_ZoomLimit(t *testing.T) {
	svc := New(domain.Limits{MaxZoom: 18}, nil)
	ctx := context.Background()

	if _, err := svc.Tile(ctx, geo.GeoPoint{}, 19); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected zoom rejection, got %v", err)
	}
	if _, err := svc.Pixel(ctx, geo.GeoPoint{}, -1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected negative zoom rejection, got %v", err)
	}

	tile, err := svc.Tile(ctx, geo.GeoPoint{}, 1)
	if err != nil || tile != (geo.TileResult{X: 1, Y: 1, Z: 1}) {
		t.Errorf("got %+v, %v", tile, err)
	}
}

func TestTileCorner_Range(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()

	if _, err := svc.TileCorner(ctx, 2, 0, 1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected out of range tile rejection, got %v", err)
	}
	p, err := svc.TileCorner(ctx, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.Lat) > 1e-9 || math.Abs(p.Lon) > 1e-9 {
		t.Errorf("expected (0, 0), got %+v", p)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()
	in := geo.GeoPoint{Lat: 51.5, Lon: -0.12}

	px, err := svc.Pixel(ctx, in, 12)
	if err != nil {
		t.Fatal(err)
	}
	out, err := svc.PixelToLatLng(ctx, px, 12)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(out.Lat-in.Lat) > 1e-9 || math.Abs(out.Lon-in.Lon) > 1e-9 {
		t.Errorf("round trip drifted: %+v -> %+v", in, out)
	}
}

func TestHeatmap(t *testing.T) {
	svc, _ := newTestService(0)
	cells, err := svc.Heatmap(context.Background(), []geo.HeatmapPoint{
		{Lat: 0.0001, Lon: 0.0001, Weight: 1},
		{Lat: 0.0002, Lon: 0.0002, Weight: 2},
	}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 || cells[0].Intensity != 3 {
		t.Errorf("expected one cell of intensity 3, got %+v", cells)
	}
}

func TestAreaAndCentroid(t *testing.T) {
	svc, _ := newTestService(0)
	ctx := context.Background()

	a, err := svc.PolygonArea(ctx, square())
	if err != nil || a <= 0 {
		t.Fatalf("expected positive area, got %v, %v", a, err)
	}
	r, err := svc.RectangleArea(ctx, geo.GeoPoint{Lat: 0, Lon: 0}, geo.GeoPoint{Lat: 1, Lon: 1})
	if err != nil || math.Abs(r-a)/a > 0.01 {
		t.Errorf("rectangle and polygon area disagree: %v vs %v (%v)", r, a, err)
	}

	c, err := svc.Centroid(ctx, square())
	if err != nil || math.Abs(c.Lat-0.5) > 1e-9 || math.Abs(c.Lon-0.5) > 1e-9 {
		t.Errorf("expected (0.5, 0.5), got %+v, %v", c, err)
	}

	l, err := svc.PathLength(ctx, square()[:2])
	if err != nil || math.Abs(l-geo.Distance(0, 0, 0, 1)) > 1e-6 {
		t.Errorf("unexpected length %v, %v", l, err)
	}
}

func TestRun_LogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))
	svc, _ := newTestService(1)

	_, _ = svc.PathLength(ctx, square())

	entries := logs.FilterMessage("Geometry operation rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 rejection log, got %d", len(entries))
	}
	if op := entries[0].ContextMap()["op"]; op != "path_length" {
		t.Errorf("expected op=path_length, got %v", op)
	}
}

func TestSelfCheck(t *testing.T) {
	svc, _ := newTestService(0)
	if err := svc.SelfCheck(context.Background()); err != nil {
		t.Fatalf("self check failed: %v", err)
	}
}

func TestPolylineCheck(t *testing.T) {
	if err := (PolylineCheck{}).SelfCheck(context.Background()); err != nil {
		t.Fatalf("polyline check failed: %v", err)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, statusOK},
		{domain.ErrNotFound, statusEmpty},
		{domain.NewLimitError(3, 2), statusRejected},
		{domain.ErrLengthMismatch, statusRejected},
		{errors.New("boom"), statusError},
	}
	for _, tc := range tests {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
