// Package geojson renders geometry results as RFC 7946 feature collections.
// Coordinates are emitted in GeoJSON order: longitude first.
package geojson

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

func point(p geo.GeoPoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

func lineString(pts []geo.GeoPoint) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = point(p)
	}
	return ls
}

// Clusters renders one Point feature per cluster, placed at its seed.
// Clusters whose seed is not among points are skipped.
func Clusters(points []geo.ClusterPoint, clusters []geo.ClusterOutput) *geojson.FeatureCollection {
	byIndex := make(map[int]geo.ClusterPoint, len(points))
	for _, p := range points {
		byIndex[p.Index] = p
	}

	fc := geojson.NewFeatureCollection()
	for _, c := range clusters {
		seed, ok := byIndex[c.CenterIndex]
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.Point{seed.Lon, seed.Lat})
		f.Properties["center_index"] = c.CenterIndex
		f.Properties["count"] = len(c.Indices)
		f.Properties["indices"] = c.Indices
		fc.Append(f)
	}
	return fc
}

// Heatmap renders one Point feature per grid cell with its intensity.
func Heatmap(cells []geo.HeatmapGridCell) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range cells {
		f := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		f.Properties["intensity"] = c.Intensity
		fc.Append(f)
	}
	return fc
}

// Path renders a path as a single LineString feature. Paths with fewer than
// two points become a MultiPoint so that the output stays valid GeoJSON.
func Path(pts []geo.GeoPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	var g orb.Geometry
	if len(pts) >= 2 {
		g = lineString(pts)
	} else {
		g = orb.MultiPoint(lineString(pts))
	}
	f := geojson.NewFeature(g)
	f.Properties["points"] = len(pts)
	fc.Append(f)
	return fc
}

// Bounds renders path bounds as a Polygon feature with its centre as
// properties. The empty sentinel box has no geometry.
func Bounds(b geo.PathBounds) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if b.Empty() {
		f := geojson.NewFeature(nil)
		f.Properties["empty"] = true
		fc.Append(f)
		return fc
	}

	bound := orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
	f := geojson.NewFeature(bound.ToPolygon())
	f.BBox = geojson.NewBBox(bound)
	f.Properties["center"] = []float64{b.CenterLon, b.CenterLat}
	fc.Append(f)
	return fc
}

// Sample renders a point-at-distance sample with its bearing.
func Sample(s geo.PathSample) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{s.Lon, s.Lat})
	f.Properties["bearing"] = s.Bearing
	fc.Append(f)
	return fc
}

// Nearest renders the projection of a target onto a path.
func Nearest(r geo.NearestPointResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{r.Lon, r.Lat})
	f.Properties["segment_index"] = r.Index
	f.Properties["distance_meters"] = r.DistanceMeters
	fc.Append(f)
	return fc
}
