package bridge

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

func TestPoints_LengthMismatch(t *testing.T) {
	_, err := Points([]float64{1, 2}, []float64{1})
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	_, err = HeatmapPoints([]float64{1}, []float64{1}, nil)
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for weights, got %v", err)
	}
	_, err = Polygons([][]float64{{1, 2}}, [][]float64{{1}})
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for polygon, got %v", err)
	}
}

func TestClusterPoints_IndexIsPosition(t *testing.T) {
	pts, err := ClusterPoints([]float64{10, 20, 30}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range pts {
		if p.Index != i {
			t.Errorf("point %d: index %d", i, p.Index)
		}
	}
	if pts[2].Lat != 30 || pts[2].Lon != 3 {
		t.Errorf("unexpected point %+v", pts[2])
	}
}

func TestPackClusters_Layout(t *testing.T) {
	got, err := PackClusters([]geo.ClusterOutput{
		{CenterIndex: 0, Indices: []int{0, 1}},
		{CenterIndex: 2, Indices: []int{2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []int32{2, 0, 2, 0, 1, 2, 1, 2}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	back, err := UnpackClusters(got)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0].CenterIndex != 0 || !slices.Equal(back[1].Indices, []int{2}) {
		t.Fatalf("unexpected unpack %+v", back)
	}
}

func TestPackClusters_IndexOutsideInt32(t *testing.T) {
	tests := []struct {
		name     string
		clusters []geo.ClusterOutput
	}{
		{"member above int32", []geo.ClusterOutput{{CenterIndex: 1, Indices: []int{1, (1 << 32) + 5}}}},
		{"center above int32", []geo.ClusterOutput{{CenterIndex: math.MaxInt32 + 1, Indices: []int{math.MaxInt32 + 1}}}},
		{"max int member", []geo.ClusterOutput{{CenterIndex: 0, Indices: []int{0, math.MaxInt}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PackClusters(tt.clusters)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v (packed %v)", err, got)
			}
		})
	}

	got, err := PackClusters([]geo.ClusterOutput{{CenterIndex: math.MaxInt32, Indices: []int{math.MaxInt32}}})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{1, math.MaxInt32, 1, math.MaxInt32}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnpackClusters_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		packed []int32
	}{
		{"empty", nil},
		{"header truncated", []int32{1, 0}},
		{"members truncated", []int32{1, 0, 3, 0}},
		{"trailing", []int32{0, 7}},
		{"negative count", []int32{1, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnpackClusters(tt.packed); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCluster_NeutralResults(t *testing.T) {
	if got := Cluster(nil, nil, 100); !slices.Equal(got, []int32{0}) {
		t.Errorf("nil arrays: got %v", got)
	}
	if got := Cluster([]float64{1, 2}, []float64{1}, 100); !slices.Equal(got, []int32{0}) {
		t.Errorf("mismatch: got %v", got)
	}
	if got := Cluster([]float64{1}, []float64{1}, 0); !slices.Equal(got, []int32{0}) {
		t.Errorf("zero radius: got %v", got)
	}
}

func TestCluster_Packed(t *testing.T) {
	// ~55 m steps along the equator: 0 absorbs 1, 2 seeds its own cluster.
	lats := []float64{0, 0, 0}
	lons := []float64{0, 0.0005, 0.001}
	got := Cluster(lats, lons, 60)
	want := []int32{2, 0, 2, 0, 1, 2, 1, 2}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNearestPointOnPath(t *testing.T) {
	if got := NearestPointOnPath(nil, nil, 0, 0); got != nil {
		t.Errorf("empty path: got %v", got)
	}
	if got := NearestPointOnPath([]float64{0}, []float64{0, 1}, 0, 0); got != nil {
		t.Errorf("mismatch: got %v", got)
	}

	got := NearestPointOnPath([]float64{0, 0}, []float64{0, 1}, 0.001, 0.5)
	if len(got) != 4 {
		t.Fatalf("expected 4 values, got %v", got)
	}
	if got[2] != 0 {
		t.Errorf("segment index: got %v", got[2])
	}
	if math.Abs(got[1]-0.5) > 1e-9 || got[0] != 0 {
		t.Errorf("projection: got (%v, %v)", got[0], got[1])
	}
}

func TestPathBounds_EmptySentinel(t *testing.T) {
	want := []float64{-90, 90, -180, 180, 0, 0}
	if got := PathBounds(nil, nil); !slices.Equal(got, want) {
		t.Errorf("nil: got %v", got)
	}
	if got := PathBounds([]float64{1}, nil); !slices.Equal(got, want) {
		t.Errorf("mismatch: got %v", got)
	}

	got := PathBounds([]float64{1, 3}, []float64{10, 20})
	if !slices.Equal(got, []float64{3, 1, 20, 10, 2, 15}) {
		t.Errorf("got %v", got)
	}
}

func TestPointAtDistance(t *testing.T) {
	if got := PointAtDistance([]float64{0}, []float64{0}, 10); got != nil {
		t.Errorf("single point: got %v", got)
	}
	got := PointAtDistance([]float64{0, 0}, []float64{0, 1}, 0)
	if len(got) != 3 || got[0] != 0 || got[1] != 0 {
		t.Fatalf("got %v", got)
	}
	if math.Abs(got[2]-90) > 1e-9 {
		t.Errorf("bearing: got %v, want 90", got[2])
	}
}

func TestSimplifyAndParse_Flattened(t *testing.T) {
	got := ParsePolyline("116.1,39.1;116.2,39.2")
	if !slices.Equal(got, []float64{39.1, 116.1, 39.2, 116.2}) {
		t.Errorf("parse: got %v", got)
	}
	if got := SimplifyPolyline([]float64{1, 2}, []float64{3}, 10); got != nil {
		t.Errorf("mismatch: got %v", got)
	}
	got = SimplifyPolyline([]float64{0, 0}, []float64{0, 1}, 10)
	if !slices.Equal(got, []float64{0, 0, 0, 1}) {
		t.Errorf("simplify: got %v", got)
	}
}

func TestContainment(t *testing.T) {
	lats := []float64{0, 0, 1, 1}
	lons := []float64{0, 1, 1, 0}
	if !IsPointInPolygon(0.5, 0.5, lats, lons) {
		t.Error("expected inside")
	}
	if IsPointInPolygon(0.5, 0.5, lats, lons[:3]) {
		t.Error("mismatched polygon must never contain")
	}

	polyLats := [][]float64{{10, 10, 11, 11}, lats}
	polyLons := [][]float64{{10, 11, 11, 10}, lons}
	if got := FindPointInPolygons(0.5, 0.5, polyLats, polyLons); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	if got := FindPointInPolygons(0.5, 0.5, polyLats, polyLons[:1]); got != -1 {
		t.Errorf("mismatch: got %d, want -1", got)
	}
}

func TestAreaAndCentroid_BadInput(t *testing.T) {
	if got := PolygonArea([]float64{1}, nil); got != 0 {
		t.Errorf("area: got %v", got)
	}
	if got := Centroid([]float64{1}, nil); !slices.Equal(got, []float64{0, 0}) {
		t.Errorf("centroid: got %v", got)
	}
	if got := PathLength([]float64{1}, nil); got != 0 {
		t.Errorf("length: got %v", got)
	}
}

func TestTiles(t *testing.T) {
	if got := LatLngToTile(0, 0, 1); !slices.Equal(got, []int32{1, 1, 1}) {
		t.Errorf("tile: got %v", got)
	}
	got := TileToLatLng(0, 0, 0)
	if len(got) != 2 || math.Abs(got[0]-85.0511287798) > 1e-6 || got[1] != -180 {
		t.Errorf("corner: got %v", got)
	}
	px := LatLngToPixel(0, 0, 0)
	if !slices.Equal(px, []float64{128, 128}) {
		t.Errorf("pixel: got %v", px)
	}
	ll := PixelToLatLng(128, 128, 0)
	if math.Abs(ll[0]) > 1e-9 || math.Abs(ll[1]) > 1e-9 {
		t.Errorf("latlng: got %v", ll)
	}
}

func TestHeatmap(t *testing.T) {
	if got := Heatmap([]float64{1}, []float64{1}, []float64{1, 2}, 100); got != nil {
		t.Errorf("mismatch: got %v", got)
	}
	if got := Heatmap([]float64{1}, []float64{1}, []float64{1}, 0); got != nil {
		t.Errorf("zero grid: got %v", got)
	}
	got := Heatmap([]float64{0.0001, 0.0002}, []float64{0.0001, 0.0002}, []float64{1, 2.5}, 1000)
	if len(got) != 3 || got[2] != 3.5 {
		t.Fatalf("expected one cell with intensity 3.5, got %v", got)
	}
}

func TestScalarOps(t *testing.T) {
	if d := Distance(40.7128, -74.0060, 51.5074, -0.1278); math.Abs(d-5_570_000) > 30_000 {
		t.Errorf("distance: got %.0f m", d)
	}
	if !IsPointInCircle(0, 0.0005, 0, 0, 100) {
		t.Error("point ~55 m away should be inside a 100 m circle")
	}
	if IsPointInCircle(0, 0.002, 0, 0, 100) {
		t.Error("point ~220 m away should be outside a 100 m circle")
	}
	if a := RectangleArea(0, 0, 1, 1); a < 1.2e10 || a > 1.25e10 {
		t.Errorf("1°x1° cell: got %.0f m²", a)
	}
	if h := EncodeGeoHash(39.9042, 116.4074, 5); h != "wx4g0" {
		t.Errorf("geohash: got %q", h)
	}
}
