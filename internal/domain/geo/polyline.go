package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twpayne/go-polyline"
)

// ParsePolyline reads a ';'-separated list of "lon,lat" pairs. Note the
// longitude-first order. Pairs without a comma or with non-numeric parts are
// skipped, as are empty segments.
func ParsePolyline(text string) []GeoPoint {
	if text == "" {
		return nil
	}

	var points []GeoPoint
	for segment := range strings.SplitSeq(text, ";") {
		lonText, latText, ok := strings.Cut(segment, ",")
		if !ok {
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
		if err != nil {
			continue
		}
		points = append(points, GeoPoint{Lat: lat, Lon: lon})
	}
	return points
}

// FormatPolyline is the inverse of ParsePolyline.
func FormatPolyline(points []GeoPoint) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	return sb.String()
}

// EncodeGooglePolyline encodes points with Google's polyline algorithm at
// 1e-5 precision.
func EncodeGooglePolyline(points []GeoPoint) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodeGooglePolyline decodes a Google encoded polyline.
func DecodeGooglePolyline(encoded string) ([]GeoPoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	points := make([]GeoPoint, len(coords))
	for i, c := range coords {
		points[i] = GeoPoint{Lat: c[0], Lon: c[1]}
	}
	return points, nil
}
