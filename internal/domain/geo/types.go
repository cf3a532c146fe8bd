// Package geo holds the geometry engine: pure functions over geographic
// coordinates in degrees. Nothing in this package performs I/O or keeps
// state between calls.
package geo

// GeoPoint is a coordinate in degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// ClusterPoint is a GeoPoint tagged with its ordinal position in the input.
type ClusterPoint struct {
	Lat   float64
	Lon   float64
	Index int
}

// ClusterOutput is one cluster. CenterIndex is the seed that started it;
// Indices includes the seed and every absorbed point.
type ClusterOutput struct {
	CenterIndex int
	Indices     []int
}

// BoundingBox is an axis-aligned rectangle in degree space.
// It is not geodesically correct and is only used for index pruning.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether the coordinate lies inside the box, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Intersects reports whether two boxes overlap, touching edges included.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return !(o.MinLat > b.MaxLat || o.MaxLat < b.MinLat ||
		o.MinLon > b.MaxLon || o.MaxLon < b.MinLon)
}

// PathBounds is the extent of a path. An empty path yields an inverted box
// (South > North, West > East).
type PathBounds struct {
	North     float64
	South     float64
	East      float64
	West      float64
	CenterLat float64
	CenterLon float64
}

// Empty reports whether b is the "no data" sentinel.
func (b PathBounds) Empty() bool {
	return b.South > b.North || b.West > b.East
}

// NearestPointResult is the projection of a target onto a path.
// Index is the start point of the winning segment.
type NearestPointResult struct {
	Lat            float64
	Lon            float64
	Index          int
	DistanceMeters float64
}

// Found reports whether the result carries a projection.
func (r NearestPointResult) Found() bool {
	return r.DistanceMeters != noDistance
}

// PathSample is a position on a path with the bearing of its segment.
type PathSample struct {
	Lat     float64
	Lon     float64
	Bearing float64
}

// TileResult is a slippy-map tile address.
type TileResult struct {
	X int
	Y int
	Z int
}

// PixelResult is a position in world pixel space at some zoom.
type PixelResult struct {
	X float64
	Y float64
}

// HeatmapPoint is a weighted input point for heatmap gridding.
type HeatmapPoint struct {
	Lat    float64
	Lon    float64
	Weight float64
}

// HeatmapGridCell is one non-empty grid bucket.
type HeatmapGridCell struct {
	Lat       float64
	Lon       float64
	Intensity float64
}
