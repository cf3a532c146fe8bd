// Package cluster groups points by radius with a greedy, input-order seeded
// pass over a quadtree.
//
// The first unvisited point in input order seeds a cluster and absorbs every
// unvisited point within the radius of the seed itself. Membership is not
// transitive: if A-B and B-C are within radius but A-C is not, A absorbs B and
// C seeds its own cluster. The result depends on input order.
package cluster

import (
	"errors"
	"fmt"
	"math"

	"github.com/kailas-cloud/geokit/internal/domain/geo"
	"github.com/kailas-cloud/geokit/internal/domain/quadtree"
)

const (
	// boundsPadding pads the index region on each side, in degrees.
	boundsPadding = 1.0

	// metersPerDegree converts the radius to a degree-space search window.
	metersPerDegree = 111_000.0

	// polarCos is the |cos(lat)| below which the longitude window spans
	// the whole globe.
	polarCos = 1e-5
)

// MaxIndex is the largest point index accepted by ValidateIndices. Packed
// cluster output carries indices as int32.
const MaxIndex = math.MaxInt32

// denseSlotsPerPoint bounds the visited bitset to this many slots per input
// point. Sparser indices are remapped to dense slots first.
const denseSlotsPerPoint = 4

// ErrIndexOutOfRange reports a point index that cannot be tracked.
var ErrIndexOutOfRange = errors.New("point index out of range")

// Options tunes the index used during clustering. The zero value uses
// quadtree.DefaultCapacity. Results do not depend on it.
type Options struct {
	Capacity int
	// KnownMaxIndex, when positive, is the largest index as returned by
	// ValidateIndices and saves a pass over the points.
	KnownMaxIndex int
}

// ValidateIndices returns the largest index in points, or an error naming the
// first index outside [0, MaxIndex].
func ValidateIndices(points []geo.ClusterPoint) (int, error) {
	maxIndex := -1
	for i, p := range points {
		if p.Index < 0 || p.Index > MaxIndex {
			return 0, fmt.Errorf("point %d: index %d not in [0, %d]: %w", i, p.Index, MaxIndex, ErrIndexOutOfRange)
		}
		maxIndex = max(maxIndex, p.Index)
	}
	return maxIndex, nil
}

// Cluster partitions points into radius-based clusters. Empty input or a
// non-positive radius yields no clusters. Points with a negative index are
// skipped.
func Cluster(points []geo.ClusterPoint, radiusMeters float64) []geo.ClusterOutput {
	return ClusterWithOptions(points, radiusMeters, Options{})
}

// ClusterWithOptions is Cluster with an explicit index configuration.
func ClusterWithOptions(points []geo.ClusterPoint, radiusMeters float64, opts Options) []geo.ClusterOutput {
	if len(points) == 0 || radiusMeters <= 0 {
		return nil
	}

	maxIndex := opts.KnownMaxIndex
	if maxIndex <= 0 {
		maxIndex = largestIndex(points)
	}

	work, slots := points, []int(nil)
	var size int
	if maxIndex >= denseSlotsPerPoint*len(points)+64 {
		work, slots = remapIndices(points)
		size = len(slots)
	} else {
		size = maxIndex + 1
	}

	clusters := greedy(work, radiusMeters, NewVisited(size), opts.Capacity)
	if slots != nil {
		for i := range clusters {
			clusters[i].CenterIndex = slots[clusters[i].CenterIndex]
			for j, idx := range clusters[i].Indices {
				clusters[i].Indices[j] = slots[idx]
			}
		}
	}
	return clusters
}

func greedy(points []geo.ClusterPoint, radiusMeters float64, visited *Visited, capacity int) []geo.ClusterOutput {
	tree := buildIndex(points, capacity)
	latSpan := radiusMeters / metersPerDegree

	var clusters []geo.ClusterOutput
	for _, p := range points {
		if !visited.InRange(p.Index) || visited.Test(p.Index) {
			continue
		}

		c := geo.ClusterOutput{CenterIndex: p.Index, Indices: []int{p.Index}}
		visited.Set(p.Index)

		lonSpan := 360.0
		if cosLat := math.Abs(math.Cos(p.Lat * math.Pi / 180)); cosLat >= polarCos {
			lonSpan = radiusMeters / (metersPerDegree * cosLat)
		}

		window := geo.BoundingBox{
			MinLat: p.Lat - latSpan,
			MinLon: p.Lon - lonSpan,
			MaxLat: p.Lat + latSpan,
			MaxLon: p.Lon + lonSpan,
		}
		for _, n := range tree.Query(window) {
			if !visited.InRange(n.Index) || visited.Test(n.Index) {
				continue
			}
			if geo.Distance(p.Lat, p.Lon, n.Lat, n.Lon) <= radiusMeters {
				c.Indices = append(c.Indices, n.Index)
				visited.Set(n.Index)
			}
		}

		clusters = append(clusters, c)
	}
	return clusters
}

func largestIndex(points []geo.ClusterPoint) int {
	maxIndex := -1
	for _, p := range points {
		maxIndex = max(maxIndex, p.Index)
	}
	return maxIndex
}

// remapIndices returns a copy of points whose indices are dense slots, plus
// the slot-to-index table. Equal indices share a slot; negative indices stay
// negative so they are still skipped.
func remapIndices(points []geo.ClusterPoint) ([]geo.ClusterPoint, []int) {
	slotOf := make(map[int]int, len(points))
	slots := make([]int, 0, len(points))
	out := make([]geo.ClusterPoint, len(points))
	for i, p := range points {
		out[i] = p
		if p.Index < 0 {
			continue
		}
		slot, ok := slotOf[p.Index]
		if !ok {
			slot = len(slots)
			slotOf[p.Index] = slot
			slots = append(slots, p.Index)
		}
		out[i].Index = slot
	}
	return out, slots
}

// buildIndex inserts every point into a quadtree over their padded extent.
func buildIndex(points []geo.ClusterPoint, capacity int) *quadtree.Tree {
	bounds := geo.BoundingBox{MinLat: 90, MinLon: 180, MaxLat: -90, MaxLon: -180}
	for _, p := range points {
		bounds.MinLat = math.Min(bounds.MinLat, p.Lat)
		bounds.MaxLat = math.Max(bounds.MaxLat, p.Lat)
		bounds.MinLon = math.Min(bounds.MinLon, p.Lon)
		bounds.MaxLon = math.Max(bounds.MaxLon, p.Lon)
	}

	bounds.MinLat -= boundsPadding
	bounds.MinLon -= boundsPadding
	bounds.MaxLat += boundsPadding
	bounds.MaxLon += boundsPadding

	tree := quadtree.New(bounds, capacity)
	for _, p := range points {
		tree.Insert(p)
	}
	return tree
}
