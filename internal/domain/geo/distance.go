package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// noDistance marks a NearestPointResult that found nothing.
	noDistance = math.MaxFloat64
)

// Distance returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * degToRad
	lat2r := lat2 * degToRad
	dLat := lat2r - lat1r
	dLon := (lon2 - lon1) * degToRad

	sinHalfLat := math.Sin(dLat / 2)
	sinHalfLon := math.Sin(dLon / 2)
	h := sinHalfLat*sinHalfLat + math.Cos(lat1r)*math.Cos(lat2r)*sinHalfLon*sinHalfLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// DistanceBetween is Distance for two GeoPoints.
func DistanceBetween(a, b GeoPoint) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Bearing returns the initial great-circle heading from the first point
// toward the second, in degrees normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dLam := (lon2 - lon1) * degToRad

	y := math.Sin(dLam) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLam)

	deg := math.Mod(math.Atan2(y, x)*radToDeg+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// IsPointInCircle reports whether the point lies within radiusMeters of the
// center. A non-positive radius never contains anything.
func IsPointInCircle(point, center GeoPoint, radiusMeters float64) bool {
	if radiusMeters <= 0 {
		return false
	}
	return DistanceBetween(point, center) <= radiusMeters
}

// IsPointInPolygon runs an even-odd ray cast over the ring. The ring does not
// need to be closed. Fewer than three vertices never contain anything.
// Points exactly on an edge may go either way.
func IsPointInPolygon(point GeoPoint, polygon []GeoPoint) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := polygon[i].Lat, polygon[i].Lon
		xj, yj := polygon[j].Lat, polygon[j].Lon

		if (yi > point.Lon) != (yj > point.Lon) &&
			point.Lat < (xj-xi)*(point.Lon-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// FindPointInPolygons returns the index of the first polygon containing the
// point, or -1.
func FindPointInPolygons(point GeoPoint, polygons [][]GeoPoint) int {
	for i, poly := range polygons {
		if IsPointInPolygon(point, poly) {
			return i
		}
	}
	return -1
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
