package geo

import "math"

// metersPerDegree is the equirectangular scale used by SimplifyPolyline.
const metersPerDegree = 111_319.9

// planar is a point in the local metric frame used for simplification.
type planar struct{ x, y float64 }

// sqSegDist returns the squared distance from p to the segment a-b.
func sqSegDist(p, a, b planar) float64 {
	x, y := a.x, a.y
	dx, dy := b.x-x, b.y-y

	if dx != 0 || dy != 0 {
		t := ((p.x-x)*dx + (p.y-y)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x, y = b.x, b.y
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}

	dx, dy = p.x-x, p.y-y
	return dx*dx + dy*dy
}

// simplifyStep appends, in path order, the indices kept strictly between
// first and last.
func simplifyStep(pts []planar, first, last int, sqTolerance float64, kept []int) []int {
	maxSqDist := sqTolerance
	index := 0

	for i := first + 1; i < last; i++ {
		if d := sqSegDist(pts[i], pts[first], pts[last]); d > maxSqDist {
			index = i
			maxSqDist = d
		}
	}

	if maxSqDist > sqTolerance {
		if index-first > 1 {
			kept = simplifyStep(pts, first, index, sqTolerance, kept)
		}
		kept = append(kept, index)
		if last-index > 1 {
			kept = simplifyStep(pts, index, last, sqTolerance, kept)
		}
	}
	return kept
}

// SimplifyPolyline reduces a path with Ramer-Douglas-Peucker. Deviation is
// measured in meters on an equirectangular frame anchored at the first point.
// The first and last points are always kept; paths of two points or fewer
// come back as a copy.
func SimplifyPolyline(points []GeoPoint, toleranceMeters float64) []GeoPoint {
	if len(points) <= 2 {
		return append([]GeoPoint(nil), points...)
	}

	ref := points[0]
	lonScale := metersPerDegree * math.Cos(ref.Lat*degToRad)

	projected := make([]planar, len(points))
	for i, p := range points {
		projected[i] = planar{
			x: (p.Lon - ref.Lon) * lonScale,
			y: (p.Lat - ref.Lat) * metersPerDegree,
		}
	}

	last := len(points) - 1
	kept := make([]int, 0, 16)
	kept = append(kept, 0)
	kept = simplifyStep(projected, 0, last, toleranceMeters*toleranceMeters, kept)
	kept = append(kept, last)

	out := make([]GeoPoint, len(kept))
	for i, idx := range kept {
		out[i] = points[idx]
	}
	return out
}

// PathLength sums the haversine length of consecutive segments.
func PathLength(points []GeoPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceBetween(points[i-1], points[i])
	}
	return total
}

// PointAtDistance walks the path and returns the position distanceMeters from
// the start together with the bearing of the segment it falls in. Distances
// past the end clamp to the last point. It fails for negative distances and
// paths shorter than two points.
func PointAtDistance(points []GeoPoint, distanceMeters float64) (PathSample, bool) {
	if len(points) < 2 || distanceMeters < 0 {
		return PathSample{}, false
	}

	if distanceMeters == 0 {
		a, b := points[0], points[1]
		return PathSample{Lat: a.Lat, Lon: a.Lon, Bearing: Bearing(a.Lat, a.Lon, b.Lat, b.Lon)}, true
	}

	var covered float64
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		d := DistanceBetween(a, b)
		if covered+d >= distanceMeters {
			fraction := (distanceMeters - covered) / d
			return PathSample{
				Lat:     a.Lat + (b.Lat-a.Lat)*fraction,
				Lon:     a.Lon + (b.Lon-a.Lon)*fraction,
				Bearing: Bearing(a.Lat, a.Lon, b.Lat, b.Lon),
			}, true
		}
		covered += d
	}

	prev, last := points[len(points)-2], points[len(points)-1]
	return PathSample{
		Lat:     last.Lat,
		Lon:     last.Lon,
		Bearing: Bearing(prev.Lat, prev.Lon, last.Lat, last.Lon),
	}, true
}

// NearestPointOnPath projects target onto every segment (planar, clamped to
// the segment) and keeps the projection with the smallest haversine distance.
// An empty path returns index 0 and a distance of math.MaxFloat64.
func NearestPointOnPath(path []GeoPoint, target GeoPoint) NearestPointResult {
	result := NearestPointResult{DistanceMeters: noDistance}

	switch len(path) {
	case 0:
		return result
	case 1:
		return NearestPointResult{
			Lat:            path[0].Lat,
			Lon:            path[0].Lon,
			DistanceMeters: DistanceBetween(target, path[0]),
		}
	}

	for i := 0; i < len(path)-1; i++ {
		ax, ay := path[i].Lat, path[i].Lon
		bx, by := path[i+1].Lat, path[i+1].Lon

		var t float64
		if l2 := (bx-ax)*(bx-ax) + (by-ay)*(by-ay); l2 > 0 {
			t = ((target.Lat-ax)*(bx-ax) + (target.Lon-ay)*(by-ay)) / l2
			t = math.Max(0, math.Min(1, t))
		}

		projLat := ax + t*(bx-ax)
		projLon := ay + t*(by-ay)

		if d := Distance(target.Lat, target.Lon, projLat, projLon); d < result.DistanceMeters {
			result = NearestPointResult{Lat: projLat, Lon: projLon, Index: i, DistanceMeters: d}
		}
	}
	return result
}

// CalculatePathBounds returns the axis-aligned extent of the points. Empty
// input yields the inverted sentinel box.
func CalculatePathBounds(points []GeoPoint) PathBounds {
	if len(points) == 0 {
		return PathBounds{North: -90, South: 90, East: -180, West: 180}
	}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}

	return PathBounds{
		North:     maxLat,
		South:     minLat,
		East:      maxLon,
		West:      minLon,
		CenterLat: (maxLat + minLat) / 2,
		CenterLon: (maxLon + minLon) / 2,
	}
}
