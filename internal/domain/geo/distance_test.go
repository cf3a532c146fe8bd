package geo

import (
	"math"
	"testing"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestDistance_SamePoint(t *testing.T) {
	pts := []GeoPoint{{0, 0}, {40.7128, -74.0060}, {-89.9, 179.9}, {39.9042, 116.4074}}
	for _, p := range pts {
		if d := DistanceBetween(p, p); d != 0 {
			t.Fatalf("distance(%v,%v): want 0, got %f", p, p, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := GeoPoint{Lat: 39.9042, Lon: 116.4074}
	b := GeoPoint{Lat: 31.2304, Lon: 121.4737}
	if ab, ba := DistanceBetween(a, b), DistanceBetween(b, a); ab != ba {
		t.Fatalf("want symmetric, got %f vs %f", ab, ba)
	}
}

func TestDistance_NewYork_London(t *testing.T) {
	// NYC to London: ~5,570 km
	d := Distance(40.7128, -74.0060, 51.5074, -0.1278)
	expected := 5_570_000.0
	if !almost(d, expected, 30_000) {
		t.Fatalf("want ~%.0fm, got %.0fm", expected, d)
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(0, 0, 0, 180)
	expected := math.Pi * EarthRadiusMeters
	if !almost(d, expected, 1) {
		t.Fatalf("want ~%.0fm, got %.0fm", expected, d)
	}
}

func TestBearing_CardinalDirections(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     float64
	}{
		{"north", 1, 0, 0},
		{"east", 0, 1, 90},
		{"south", -1, 0, 180},
		{"west", 0, -1, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bearing(0, 0, tt.lat, tt.lon); !almost(got, tt.want, 1e-9) {
				t.Errorf("want %f, got %f", tt.want, got)
			}
		})
	}
}

func TestIsPointInCircle(t *testing.T) {
	center := GeoPoint{Lat: 39.9042, Lon: 116.4074}
	near := GeoPoint{Lat: 39.9050, Lon: 116.4074}
	d := DistanceBetween(center, near)

	if !IsPointInCircle(near, center, d+1) {
		t.Error("point inside radius should be contained")
	}
	if IsPointInCircle(near, center, d-1) {
		t.Error("point outside radius should not be contained")
	}
	if IsPointInCircle(center, center, 0) {
		t.Error("zero radius must never contain")
	}
	if IsPointInCircle(center, center, -5) {
		t.Error("negative radius must never contain")
	}
}

func unitSquare() []GeoPoint {
	return []GeoPoint{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func TestIsPointInPolygon_Square(t *testing.T) {
	sq := unitSquare()
	if !IsPointInPolygon(GeoPoint{Lat: 0.5, Lon: 0.5}, sq) {
		t.Error("center of square should be inside")
	}
	if IsPointInPolygon(GeoPoint{Lat: 1.5, Lon: 0.5}, sq) {
		t.Error("point right of square should be outside")
	}
	if IsPointInPolygon(GeoPoint{Lat: 0.5, Lon: -0.5}, sq) {
		t.Error("point below square should be outside")
	}
}

func TestIsPointInPolygon_ClosedRing(t *testing.T) {
	ring := append(unitSquare(), GeoPoint{0, 0})
	if !IsPointInPolygon(GeoPoint{Lat: 0.25, Lon: 0.75}, ring) {
		t.Error("closed ring should behave like open ring")
	}
}

func TestIsPointInPolygon_Concave(t *testing.T) {
	// U shape opening toward high latitude.
	u := []GeoPoint{{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 2}, {3, 2}, {3, 3}, {0, 3}}
	if IsPointInPolygon(GeoPoint{Lat: 2, Lon: 1.5}, u) {
		t.Error("point in the notch should be outside")
	}
	if !IsPointInPolygon(GeoPoint{Lat: 0.5, Lon: 1.5}, u) {
		t.Error("point in the base should be inside")
	}
}

func TestIsPointInPolygon_Degenerate(t *testing.T) {
	if IsPointInPolygon(GeoPoint{}, nil) {
		t.Error("nil polygon")
	}
	if IsPointInPolygon(GeoPoint{Lat: 0.5}, []GeoPoint{{0, 0}, {1, 0}}) {
		t.Error("two vertices")
	}
}

func TestFindPointInPolygons(t *testing.T) {
	far := []GeoPoint{{10, 10}, {11, 10}, {11, 11}, {10, 11}}
	big := []GeoPoint{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}}
	polys := [][]GeoPoint{far, unitSquare(), big}

	if got := FindPointInPolygons(GeoPoint{Lat: 0.5, Lon: 0.5}, polys); got != 1 {
		t.Errorf("want first match 1, got %d", got)
	}
	if got := FindPointInPolygons(GeoPoint{Lat: 3, Lon: 3}, polys); got != 2 {
		t.Errorf("want 2, got %d", got)
	}
	if got := FindPointInPolygons(GeoPoint{Lat: 50, Lon: 50}, polys); got != -1 {
		t.Errorf("want -1, got %d", got)
	}
	if got := FindPointInPolygons(GeoPoint{}, nil); got != -1 {
		t.Errorf("want -1 for no polygons, got %d", got)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		valid    bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
		{0, -181, false},
	}
	for _, tt := range tests {
		if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.valid {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.valid)
		}
	}
}
