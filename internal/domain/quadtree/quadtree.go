// Package quadtree is a point-region quadtree over a fixed degree-space box.
// It exists to prune candidates before exact distance checks.
package quadtree

import "github.com/kailas-cloud/geokit/internal/domain/geo"

// DefaultCapacity is the number of points a leaf holds before it splits.
const DefaultCapacity = 20

// MaxDepth stops subdivision. Leaves at this depth keep every point they
// receive, so duplicate coordinates degrade to a linear scan instead of
// splitting forever.
const MaxDepth = 32

const (
	northWest = iota
	northEast
	southWest
	southEast
)

// Tree is a quadtree node. A node either stores points directly or, after its
// one-time split, owns exactly four children tiling its box.
type Tree struct {
	bounds   geo.BoundingBox
	capacity int
	depth    int
	points   []geo.ClusterPoint
	children *[4]*Tree
}

// New creates an empty tree over bounds. A capacity below 1 falls back to
// DefaultCapacity.
func New(bounds geo.BoundingBox, capacity int) *Tree {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Tree{bounds: bounds, capacity: capacity}
}

// Bounds returns the region covered by the tree.
func (t *Tree) Bounds() geo.BoundingBox { return t.bounds }

// Insert stores p and reports whether it was accepted. Points outside the
// tree are rejected. A point that no child accepts after a split is lost.
func (t *Tree) Insert(p geo.ClusterPoint) bool {
	if !t.bounds.Contains(p.Lat, p.Lon) {
		return false
	}

	if t.children == nil {
		if len(t.points) < t.capacity || t.depth >= MaxDepth {
			t.points = append(t.points, p)
			return true
		}
		t.subdivide()
	}

	return t.insertIntoChild(p)
}

func (t *Tree) insertIntoChild(p geo.ClusterPoint) bool {
	for _, c := range t.children {
		if c.Insert(p) {
			return true
		}
	}
	return false
}

func (t *Tree) subdivide() {
	b := t.bounds
	midLat := (b.MinLat + b.MaxLat) / 2
	midLon := (b.MinLon + b.MaxLon) / 2

	child := func(box geo.BoundingBox) *Tree {
		return &Tree{bounds: box, capacity: t.capacity, depth: t.depth + 1}
	}

	var children [4]*Tree
	children[northWest] = child(geo.BoundingBox{MinLat: midLat, MinLon: b.MinLon, MaxLat: b.MaxLat, MaxLon: midLon})
	children[northEast] = child(geo.BoundingBox{MinLat: midLat, MinLon: midLon, MaxLat: b.MaxLat, MaxLon: b.MaxLon})
	children[southWest] = child(geo.BoundingBox{MinLat: b.MinLat, MinLon: b.MinLon, MaxLat: midLat, MaxLon: midLon})
	children[southEast] = child(geo.BoundingBox{MinLat: b.MinLat, MinLon: midLon, MaxLat: midLat, MaxLon: b.MaxLon})
	t.children = &children

	held := t.points
	t.points = nil
	for _, p := range held {
		t.insertIntoChild(p)
	}
}

// Query returns every stored point inside rng.
func (t *Tree) Query(rng geo.BoundingBox) []geo.ClusterPoint {
	var found []geo.ClusterPoint
	return t.query(rng, found)
}

func (t *Tree) query(rng geo.BoundingBox, found []geo.ClusterPoint) []geo.ClusterPoint {
	if !t.bounds.Intersects(rng) {
		return found
	}
	for _, p := range t.points {
		if rng.Contains(p.Lat, p.Lon) {
			found = append(found, p)
		}
	}
	if t.children != nil {
		for _, c := range t.children {
			found = c.query(rng, found)
		}
	}
	return found
}

// Len returns the number of points stored in the tree.
func (t *Tree) Len() int {
	n := len(t.points)
	if t.children != nil {
		for _, c := range t.children {
			n += c.Len()
		}
	}
	return n
}

// Clear drops all points and children.
func (t *Tree) Clear() {
	t.points = nil
	t.children = nil
}
