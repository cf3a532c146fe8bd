package geokit

import (
	"context"
	"fmt"
	"time"
)

// Simplify reduces a path with Douglas-Peucker. Endpoints are always kept.
func (c *Client) Simplify(ctx context.Context, points []Point, toleranceMeters float64) (_ []Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("simplify", start, len(points), err) }()

	out, err := c.geom.Simplify(ctx, toGeoPoints(points), toleranceMeters)
	if err != nil {
		return nil, fmt.Errorf("simplify: %w", err)
	}
	return fromGeoPoints(out), nil
}

// PathLength returns the summed great-circle length of the path in metres.
func (c *Client) PathLength(ctx context.Context, points []Point) (_ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("path_length", start, len(points), err) }()

	l, err := c.geom.PathLength(ctx, toGeoPoints(points))
	if err != nil {
		return 0, fmt.Errorf("path length: %w", err)
	}
	return l, nil
}

// PointAt returns the position distanceMeters along the path. Distances past
// the end clamp to the last point; an empty path returns ErrNotFound.
func (c *Client) PointAt(ctx context.Context, points []Point, distanceMeters float64) (_ Sample, err error) {
	start := time.Now()
	defer func() { c.obs.observe("point_at", start, len(points), err) }()

	s, err := c.geom.PointAt(ctx, toGeoPoints(points), distanceMeters)
	if err != nil {
		return Sample{}, fmt.Errorf("point at: %w", err)
	}
	return Sample{Lat: s.Lat, Lon: s.Lon, Bearing: s.Bearing}, nil
}

// NearestPoint projects target onto the path.
func (c *Client) NearestPoint(ctx context.Context, path []Point, target Point) (_ Nearest, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearest_point", start, len(path), err) }()

	r, err := c.geom.NearestPoint(ctx, toGeoPoints(path), toGeo(target))
	if err != nil {
		return Nearest{}, fmt.Errorf("nearest point: %w", err)
	}
	return Nearest{Lat: r.Lat, Lon: r.Lon, SegmentIndex: r.Index, DistanceMeters: r.DistanceMeters}, nil
}

// PathBounds returns the extent of the path.
func (c *Client) PathBounds(ctx context.Context, points []Point) (_ Bounds, err error) {
	start := time.Now()
	defer func() { c.obs.observe("path_bounds", start, len(points), err) }()

	b, err := c.geom.PathBounds(ctx, toGeoPoints(points))
	if err != nil {
		return Bounds{}, fmt.Errorf("path bounds: %w", err)
	}
	return Bounds{
		North:     b.North,
		South:     b.South,
		East:      b.East,
		West:      b.West,
		CenterLat: b.CenterLat,
		CenterLon: b.CenterLon,
		Empty:     b.Empty(),
	}, nil
}

// ParsePolyline parses "lon,lat;lon,lat" text. Malformed pairs are skipped.
func (c *Client) ParsePolyline(ctx context.Context, text string) (_ []Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("parse_polyline", start, 0, err) }()

	pts, err := c.geom.ParsePolyline(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse polyline: %w", err)
	}
	return fromGeoPoints(pts), nil
}

// EncodePolyline encodes the path in Google's encoded polyline format.
func (c *Client) EncodePolyline(ctx context.Context, points []Point) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("encode_polyline", start, len(points), err) }()

	s, err := c.geom.EncodePolyline(ctx, toGeoPoints(points))
	if err != nil {
		return "", fmt.Errorf("encode polyline: %w", err)
	}
	return s, nil
}

// DecodePolyline decodes a Google encoded polyline.
func (c *Client) DecodePolyline(ctx context.Context, encoded string) (_ []Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("decode_polyline", start, 0, err) }()

	pts, err := c.geom.DecodePolyline(ctx, encoded)
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	return fromGeoPoints(pts), nil
}
