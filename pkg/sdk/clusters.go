package geokit

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// Cluster groups points within radiusMeters of an input-order seed.
// Cluster indices refer to positions in points. A radius <= 0 or an empty
// input yields no clusters.
func (c *Client) Cluster(
	ctx context.Context, points []Point, radiusMeters float64,
) (_ []Cluster, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cluster", start, len(points), err) }()

	in := make([]geo.ClusterPoint, len(points))
	for i, p := range points {
		in[i] = geo.ClusterPoint{Lat: p.Lat, Lon: p.Lon, Index: i}
	}
	out, err := c.geom.Cluster(ctx, in, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	return fromClusterOutputs(out), nil
}

// ClusterIndexed is Cluster with caller-chosen indices. Indices must be in
// [0, math.MaxInt32] and at most the WithMaxClusterIndex cap; duplicates are
// allowed and share one visited slot.
func (c *Client) ClusterIndexed(
	ctx context.Context, points []IndexedPoint, radiusMeters float64,
) (_ []Cluster, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cluster_indexed", start, len(points), err) }()

	in := make([]geo.ClusterPoint, len(points))
	for i, p := range points {
		in[i] = geo.ClusterPoint{Lat: p.Lat, Lon: p.Lon, Index: p.Index}
	}
	out, err := c.geom.Cluster(ctx, in, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("cluster indexed: %w", err)
	}
	return fromClusterOutputs(out), nil
}
