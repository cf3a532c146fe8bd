package geokit

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

func toGeo(p Point) geo.GeoPoint { return geo.GeoPoint{Lat: p.Lat, Lon: p.Lon} }

// Distance returns the great-circle distance between a and b in metres.
func (c *Client) Distance(ctx context.Context, a, b Point) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("distance", start, 2, err) }()

	d, err := c.geom.Distance(ctx, toGeo(a), toGeo(b))
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	return d, nil
}

// Bearing returns the initial bearing from a to b in degrees [0, 360).
func (c *Client) Bearing(ctx context.Context, a, b Point) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("bearing", start, 2, err) }()

	d, err := c.geom.Bearing(ctx, toGeo(a), toGeo(b))
	if err != nil {
		return 0, fmt.Errorf("bearing: %w", err)
	}
	return d, nil
}

// InCircle reports whether point lies within radiusMeters of center.
func (c *Client) InCircle(ctx context.Context, point, center Point, radiusMeters float64) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("in_circle", start, 2, err) }()

	ok, err := c.geom.InCircle(ctx, toGeo(point), toGeo(center), radiusMeters)
	if err != nil {
		return false, fmt.Errorf("in circle: %w", err)
	}
	return ok, nil
}

// InPolygon reports whether point lies inside the polygon (ray casting in
// degree space). Polygons with fewer than 3 vertices contain nothing.
func (c *Client) InPolygon(ctx context.Context, point Point, polygon []Point) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("in_polygon", start, len(polygon), err) }()

	ok, err := c.geom.InPolygon(ctx, toGeo(point), toGeoPoints(polygon))
	if err != nil {
		return false, fmt.Errorf("in polygon: %w", err)
	}
	return ok, nil
}

// FindPolygon returns the index of the first polygon containing point,
// or -1.
func (c *Client) FindPolygon(ctx context.Context, point Point, polygons [][]Point) (_ int, err error) {
	start := time.Now()
	total := 0
	for _, p := range polygons {
		total += len(p)
	}
	defer func() { c.obs.observe("find_polygon", start, total, err) }()

	idx, err := c.geom.FindPolygon(ctx, toGeo(point), toGeoPolygons(polygons))
	if err != nil {
		return -1, fmt.Errorf("find polygon: %w", err)
	}
	return idx, nil
}

// PolygonArea returns the spherical area of the polygon in square metres.
func (c *Client) PolygonArea(ctx context.Context, polygon []Point) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("polygon_area", start, len(polygon), err) }()

	a, err := c.geom.PolygonArea(ctx, toGeoPoints(polygon))
	if err != nil {
		return 0, fmt.Errorf("polygon area: %w", err)
	}
	return a, nil
}

// RectangleArea returns the area of the lat/lon rectangle spanned by sw and ne.
func (c *Client) RectangleArea(ctx context.Context, sw, ne Point) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rectangle_area", start, 2, err) }()

	a, err := c.geom.RectangleArea(ctx, toGeo(sw), toGeo(ne))
	if err != nil {
		return 0, fmt.Errorf("rectangle area: %w", err)
	}
	return a, nil
}

// Centroid returns the planar area-weighted center of the polygon.
func (c *Client) Centroid(ctx context.Context, polygon []Point) (_ Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("centroid", start, len(polygon), err) }()

	p, err := c.geom.Centroid(ctx, toGeoPoints(polygon))
	if err != nil {
		return Point{}, fmt.Errorf("centroid: %w", err)
	}
	return Point{Lat: p.Lat, Lon: p.Lon}, nil
}
