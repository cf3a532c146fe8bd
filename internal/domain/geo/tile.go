package geo

import "math"

const (
	// TileSize is the edge of a slippy-map tile in pixels.
	TileSize = 256

	// MaxMercatorLat is the latitude at which Web Mercator becomes a square.
	MaxMercatorLat = 85.05112878

	// MaxZoom bounds zoom so that world coordinates stay exact in float64.
	MaxZoom = 30
)

func clampZoom(zoom int) int {
	return max(0, min(zoom, MaxZoom))
}

func clampMercatorLat(lat float64) float64 {
	return math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, lat))
}

// mercatorUnit projects a coordinate to the unit square, origin at the
// north-west corner.
func mercatorUnit(lat, lon float64) (x, y float64) {
	sin := math.Sin(clampMercatorLat(lat) * degToRad)
	x = lon/360 + 0.5
	y = 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	return x, y
}

// inverseMercatorUnit is the inverse of mercatorUnit.
func inverseMercatorUnit(x, y float64) GeoPoint {
	return GeoPoint{
		Lat: math.Atan(math.Sinh(math.Pi*(1-2*y))) * radToDeg,
		Lon: x*360 - 180,
	}
}

// LatLngToTile returns the tile containing the coordinate at the given zoom.
func LatLngToTile(lat, lon float64, zoom int) TileResult {
	zoom = clampZoom(zoom)
	n := math.Ldexp(1, zoom)
	x, y := mercatorUnit(lat, lon)

	maxIdx := int(n) - 1
	return TileResult{
		X: max(0, min(int(math.Floor(x*n)), maxIdx)),
		Y: max(0, min(int(math.Floor(y*n)), maxIdx)),
		Z: zoom,
	}
}

// TileToLatLng returns the north-west corner of a tile.
func TileToLatLng(x, y, zoom int) GeoPoint {
	n := math.Ldexp(1, clampZoom(zoom))
	return inverseMercatorUnit(float64(x)/n, float64(y)/n)
}

// LatLngToPixel returns world pixel coordinates at the given zoom. The world
// is TileSize * 2^zoom pixels wide.
func LatLngToPixel(lat, lon float64, zoom int) PixelResult {
	size := TileSize * math.Ldexp(1, clampZoom(zoom))
	x, y := mercatorUnit(lat, lon)
	return PixelResult{X: x * size, Y: y * size}
}

// PixelToLatLng is the inverse of LatLngToPixel.
func PixelToLatLng(x, y float64, zoom int) GeoPoint {
	size := TileSize * math.Ldexp(1, clampZoom(zoom))
	return inverseMercatorUnit(x/size, y/size)
}
