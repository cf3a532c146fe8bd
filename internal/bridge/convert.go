// Package bridge mirrors the flat-buffer boundary used by mobile platform
// bindings. Inputs arrive as parallel coordinate arrays; results leave as
// packed numeric slices. Nil or mismatched arrays never reach the core and
// produce the neutral result of each operation instead.
package bridge

import (
	"fmt"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// Points zips parallel latitude and longitude arrays.
func Points(lats, lons []float64) ([]geo.GeoPoint, error) {
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("lats=%d lons=%d: %w", len(lats), len(lons), domain.ErrLengthMismatch)
	}
	pts := make([]geo.GeoPoint, len(lats))
	for i := range lats {
		pts[i] = geo.GeoPoint{Lat: lats[i], Lon: lons[i]}
	}
	return pts, nil
}

// ClusterPoints zips parallel arrays and tags each point with its position.
func ClusterPoints(lats, lons []float64) ([]geo.ClusterPoint, error) {
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("lats=%d lons=%d: %w", len(lats), len(lons), domain.ErrLengthMismatch)
	}
	pts := make([]geo.ClusterPoint, len(lats))
	for i := range lats {
		pts[i] = geo.ClusterPoint{Lat: lats[i], Lon: lons[i], Index: i}
	}
	return pts, nil
}

// HeatmapPoints zips parallel latitude, longitude and weight arrays.
func HeatmapPoints(lats, lons, weights []float64) ([]geo.HeatmapPoint, error) {
	if len(lats) != len(lons) || len(lats) != len(weights) {
		return nil, fmt.Errorf("lats=%d lons=%d weights=%d: %w",
			len(lats), len(lons), len(weights), domain.ErrLengthMismatch)
	}
	pts := make([]geo.HeatmapPoint, len(lats))
	for i := range lats {
		pts[i] = geo.HeatmapPoint{Lat: lats[i], Lon: lons[i], Weight: weights[i]}
	}
	return pts, nil
}

// Polygons zips one pair of arrays per polygon.
func Polygons(lats, lons [][]float64) ([][]geo.GeoPoint, error) {
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("polygons lats=%d lons=%d: %w", len(lats), len(lons), domain.ErrLengthMismatch)
	}
	polys := make([][]geo.GeoPoint, len(lats))
	for i := range lats {
		p, err := Points(lats[i], lons[i])
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		polys[i] = p
	}
	return polys, nil
}
