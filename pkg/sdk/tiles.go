package geokit

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// GeoHash encodes p. Precision 0 uses WithGeoHashPrecision; other values
// are clamped to [1, 12].
func (c *Client) GeoHash(ctx context.Context, p Point, precision int) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("geohash", start, 1, err) }()

	h, err := c.geom.GeoHash(ctx, toGeo(p), precision)
	if err != nil {
		return "", fmt.Errorf("geohash: %w", err)
	}
	return h, nil
}

// Tile returns the slippy-map tile containing p at zoom.
func (c *Client) Tile(ctx context.Context, p Point, zoom int) (_ Tile, err error) {
	start := time.Now()
	defer func() { c.obs.observe("tile", start, 1, err) }()

	t, err := c.geom.Tile(ctx, toGeo(p), zoom)
	if err != nil {
		return Tile{}, fmt.Errorf("tile: %w", err)
	}
	return Tile{X: t.X, Y: t.Y, Z: t.Z}, nil
}

// TileCorner returns the north-west corner of tile t.
func (c *Client) TileCorner(ctx context.Context, t Tile) (_ Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("tile_corner", start, 1, err) }()

	p, err := c.geom.TileCorner(ctx, t.X, t.Y, t.Z)
	if err != nil {
		return Point{}, fmt.Errorf("tile corner: %w", err)
	}
	return Point{Lat: p.Lat, Lon: p.Lon}, nil
}

// Pixel returns the world pixel position of p at zoom (256px tiles).
func (c *Client) Pixel(ctx context.Context, p Point, zoom int) (_ Pixel, err error) {
	start := time.Now()
	defer func() { c.obs.observe("pixel", start, 1, err) }()

	px, err := c.geom.Pixel(ctx, toGeo(p), zoom)
	if err != nil {
		return Pixel{}, fmt.Errorf("pixel: %w", err)
	}
	return Pixel{X: px.X, Y: px.Y}, nil
}

// PixelToLatLng inverts Pixel.
func (c *Client) PixelToLatLng(ctx context.Context, px Pixel, zoom int) (_ Point, err error) {
	start := time.Now()
	defer func() { c.obs.observe("pixel_latlng", start, 1, err) }()

	p, err := c.geom.PixelToLatLng(ctx, geo.PixelResult{X: px.X, Y: px.Y}, zoom)
	if err != nil {
		return Point{}, fmt.Errorf("pixel to latlng: %w", err)
	}
	return Point{Lat: p.Lat, Lon: p.Lon}, nil
}

// Heatmap buckets weighted points into cells of roughly gridSizeMeters.
// Cells are ordered by row, then column.
func (c *Client) Heatmap(ctx context.Context, points []HeatPoint, gridSizeMeters float64) (_ []HeatCell, err error) {
	start := time.Now()
	defer func() { c.obs.observe("heatmap", start, len(points), err) }()

	in := make([]geo.HeatmapPoint, len(points))
	for i, p := range points {
		in[i] = geo.HeatmapPoint{Lat: p.Lat, Lon: p.Lon, Weight: p.Weight}
	}
	cells, err := c.geom.Heatmap(ctx, in, gridSizeMeters)
	if err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}
	out := make([]HeatCell, len(cells))
	for i, cell := range cells {
		out[i] = HeatCell{Lat: cell.Lat, Lon: cell.Lon, Intensity: cell.Intensity}
	}
	return out, nil
}
