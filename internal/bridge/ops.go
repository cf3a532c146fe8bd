package bridge

import (
	"slices"

	"github.com/kailas-cloud/geokit/internal/domain/cluster"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// emptyClusters is the packed form of "no clusters".
var emptyClusters = []int32{0}

// Cluster groups points given as parallel arrays. Bad input yields [0].
func Cluster(lats, lons []float64, radiusMeters float64) []int32 {
	pts, err := ClusterPoints(lats, lons)
	if err != nil {
		return slices.Clone(emptyClusters)
	}
	packed, err := PackClusters(cluster.Cluster(pts, radiusMeters))
	if err != nil {
		return slices.Clone(emptyClusters)
	}
	return packed
}

// Distance returns the haversine distance in metres.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(lat1, lon1, lat2, lon2)
}

// IsPointInCircle reports whether the point lies within radiusMeters of the
// center.
func IsPointInCircle(lat, lon, centerLat, centerLon, radiusMeters float64) bool {
	return geo.IsPointInCircle(geo.GeoPoint{Lat: lat, Lon: lon}, geo.GeoPoint{Lat: centerLat, Lon: centerLon}, radiusMeters)
}

// RectangleArea returns the area in m² of the box spanned by its south-west
// and north-east corners.
func RectangleArea(swLat, swLon, neLat, neLon float64) float64 {
	return geo.RectangleArea(geo.GeoPoint{Lat: swLat, Lon: swLon}, geo.GeoPoint{Lat: neLat, Lon: neLon})
}

// EncodeGeoHash encodes the point at the given precision.
func EncodeGeoHash(lat, lon float64, precision int) string {
	return geo.EncodeGeoHash(lat, lon, precision)
}

// IsPointInPolygon reports containment; mismatched arrays are never inside.
func IsPointInPolygon(lat, lon float64, polyLats, polyLons []float64) bool {
	poly, err := Points(polyLats, polyLons)
	if err != nil {
		return false
	}
	return geo.IsPointInPolygon(geo.GeoPoint{Lat: lat, Lon: lon}, poly)
}

// FindPointInPolygons returns the first polygon containing the point, or -1.
func FindPointInPolygons(lat, lon float64, polyLats, polyLons [][]float64) int {
	polys, err := Polygons(polyLats, polyLons)
	if err != nil {
		return -1
	}
	return geo.FindPointInPolygons(geo.GeoPoint{Lat: lat, Lon: lon}, polys)
}

// PolygonArea returns the area in m², 0 for bad input.
func PolygonArea(lats, lons []float64) float64 {
	poly, err := Points(lats, lons)
	if err != nil {
		return 0
	}
	return geo.PolygonArea(poly)
}

// Centroid returns [lat, lon]; bad input yields [0, 0].
func Centroid(lats, lons []float64) []float64 {
	poly, err := Points(lats, lons)
	if err != nil {
		return PackPoint(geo.GeoPoint{})
	}
	return PackPoint(geo.Centroid(poly))
}

// SimplifyPolyline returns the simplified path flattened; bad input yields nil.
func SimplifyPolyline(lats, lons []float64, toleranceMeters float64) []float64 {
	pts, err := Points(lats, lons)
	if err != nil {
		return nil
	}
	return PackPoints(geo.SimplifyPolyline(pts, toleranceMeters))
}

// PathLength returns the path length in metres, 0 for bad input.
func PathLength(lats, lons []float64) float64 {
	pts, err := Points(lats, lons)
	if err != nil {
		return 0
	}
	return geo.PathLength(pts)
}

// PointAtDistance returns [lat, lon, bearing] or nil.
func PointAtDistance(lats, lons []float64, distanceMeters float64) []float64 {
	pts, err := Points(lats, lons)
	if err != nil {
		return nil
	}
	return PackSample(geo.PointAtDistance(pts, distanceMeters))
}

// NearestPointOnPath returns [lat, lon, segmentIndex, distance] or nil when
// there is no path to project onto.
func NearestPointOnPath(lats, lons []float64, targetLat, targetLon float64) []float64 {
	pts, err := Points(lats, lons)
	if err != nil {
		return nil
	}
	r := geo.NearestPointOnPath(pts, geo.GeoPoint{Lat: targetLat, Lon: targetLon})
	if !r.Found() {
		return nil
	}
	return PackNearest(r)
}

// PathBounds returns the packed bounds; bad input yields the empty sentinel.
func PathBounds(lats, lons []float64) []float64 {
	pts, err := Points(lats, lons)
	if err != nil {
		pts = nil
	}
	return PackBounds(geo.CalculatePathBounds(pts))
}

// ParsePolyline parses "lon,lat;..." text into a flattened lat/lon slice.
func ParsePolyline(text string) []float64 {
	return PackPoints(geo.ParsePolyline(text))
}

// LatLngToTile returns [x, y, z].
func LatLngToTile(lat, lon float64, zoom int) []int32 {
	return PackTile(geo.LatLngToTile(lat, lon, zoom))
}

// TileToLatLng returns the tile's north-west corner as [lat, lon].
func TileToLatLng(x, y, zoom int) []float64 {
	return PackPoint(geo.TileToLatLng(x, y, zoom))
}

// LatLngToPixel returns [x, y] in world pixel space.
func LatLngToPixel(lat, lon float64, zoom int) []float64 {
	return PackPixel(geo.LatLngToPixel(lat, lon, zoom))
}

// PixelToLatLng returns [lat, lon].
func PixelToLatLng(x, y float64, zoom int) []float64 {
	return PackPoint(geo.PixelToLatLng(x, y, zoom))
}

// Heatmap aggregates weighted points; bad input yields nil.
func Heatmap(lats, lons, weights []float64, gridSizeMeters float64) []float64 {
	pts, err := HeatmapPoints(lats, lons, weights)
	if err != nil {
		return nil
	}
	cells := geo.GenerateHeatmapGrid(pts, gridSizeMeters)
	if cells == nil {
		return nil
	}
	return PackHeatmap(cells)
}
