package geo

import "math"

// degenerateArea is the signed-area threshold below which a ring is treated
// as collinear by Centroid.
const degenerateArea = 1e-9

// PolygonArea returns the approximate area of a ring in square meters using
// the spherical excess sum over consecutive edges. Rings with fewer than three
// vertices have no area.
func PolygonArea(polygon []GeoPoint) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}

	var total float64
	for i := range n {
		p1 := polygon[i]
		p2 := polygon[(i+1)%n]
		total += (p2.Lon - p1.Lon) * degToRad *
			(2 + math.Sin(p1.Lat*degToRad) + math.Sin(p2.Lat*degToRad))
	}

	return math.Abs(total) * EarthRadiusMeters * EarthRadiusMeters / 2
}

// RectangleArea returns the area of the rectangle spanned by the south-west
// and north-east corners.
func RectangleArea(sw, ne GeoPoint) float64 {
	return PolygonArea([]GeoPoint{
		{Lat: sw.Lat, Lon: sw.Lon},
		{Lat: sw.Lat, Lon: ne.Lon},
		{Lat: ne.Lat, Lon: ne.Lon},
		{Lat: ne.Lat, Lon: sw.Lon},
	})
}

// Centroid returns the planar area-weighted center of a ring, treating
// lat/lon as Cartesian. Only meaningful for small extents.
// A closing vertex equal to the first one is ignored. Degenerate rings fall
// back to the mean of all vertices; an empty ring yields the zero point.
func Centroid(polygon []GeoPoint) GeoPoint {
	n := len(polygon)
	if n == 0 {
		return GeoPoint{}
	}

	limit := n
	if polygon[0] == polygon[n-1] {
		limit = n - 1
	}

	var signedArea, cx, cy float64
	for i := range limit {
		x0, y0 := polygon[i].Lat, polygon[i].Lon
		next := polygon[(i+1)%n]
		x1, y1 := next.Lat, next.Lon

		a := x0*y1 - x1*y0
		signedArea += a
		cx += (x0 + x1) * a
		cy += (y0 + y1) * a
	}

	if math.Abs(signedArea) < degenerateArea {
		var sumLat, sumLon float64
		for _, p := range polygon {
			sumLat += p.Lat
			sumLon += p.Lon
		}
		return GeoPoint{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
	}

	signedArea /= 2
	return GeoPoint{
		Lat: cx / (6 * signedArea),
		Lon: cy / (6 * signedArea),
	}
}
