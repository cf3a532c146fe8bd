package geokit

import "github.com/kailas-cloud/geokit/internal/domain/geo"

// Point is a coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// IndexedPoint is a Point carrying a caller-chosen index.
// Cluster output refers to points by this index.
type IndexedPoint struct {
	Lat   float64
	Lon   float64
	Index int
}

// Cluster is one group of points. CenterIndex is the seed that opened it;
// Indices contains the seed and every absorbed point.
type Cluster struct {
	CenterIndex int
	Indices     []int
}

// Sample is a position on a path and the bearing of the segment it lies on.
type Sample struct {
	Lat     float64
	Lon     float64
	Bearing float64
}

// Nearest is the projection of a target onto a path.
// SegmentIndex is the start point of the closest segment.
type Nearest struct {
	Lat            float64
	Lon            float64
	SegmentIndex   int
	DistanceMeters float64
}

// Bounds is the extent of a path. Empty is set when the path had no points.
type Bounds struct {
	North     float64
	South     float64
	East      float64
	West      float64
	CenterLat float64
	CenterLon float64
	Empty     bool
}

// Tile is a slippy-map tile address.
type Tile struct {
	X, Y, Z int
}

// Pixel is a position in world pixel space.
type Pixel struct {
	X, Y float64
}

// HeatPoint is a weighted input point for Heatmap.
type HeatPoint struct {
	Lat    float64
	Lon    float64
	Weight float64
}

// HeatCell is one non-empty heatmap bucket.
type HeatCell struct {
	Lat       float64
	Lon       float64
	Intensity float64
}

// HealthStatus represents the result of the core self check.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// --- conversions ---

func toGeoPoints(pts []Point) []geo.GeoPoint {
	if pts == nil {
		return nil
	}
	out := make([]geo.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

func fromGeoPoints(pts []geo.GeoPoint) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

func toGeoPolygons(polys [][]Point) [][]geo.GeoPoint {
	out := make([][]geo.GeoPoint, len(polys))
	for i, p := range polys {
		out[i] = toGeoPoints(p)
	}
	return out
}

func fromClusterOutputs(cs []geo.ClusterOutput) []Cluster {
	out := make([]Cluster, len(cs))
	for i, c := range cs {
		out[i] = Cluster{CenterIndex: c.CenterIndex, Indices: c.Indices}
	}
	return out
}
