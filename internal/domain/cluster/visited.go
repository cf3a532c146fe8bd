package cluster

import "math/bits"

// Visited is a fixed-size bitset of point indices.
type Visited struct {
	words []uint64
	n     int
}

// NewVisited creates a bitset for indices [0, n).
func NewVisited(n int) *Visited {
	n = max(n, 0)
	return &Visited{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the number of addressable indices.
func (v *Visited) Len() int { return v.n }

// InRange reports whether i can be tracked.
func (v *Visited) InRange(i int) bool { return i >= 0 && i < v.n }

// Test reports whether i is marked. Out-of-range indices are never marked.
func (v *Visited) Test(i int) bool {
	if !v.InRange(i) {
		return false
	}
	return v.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set marks i. Out-of-range indices are ignored.
func (v *Visited) Set(i int) {
	if v.InRange(i) {
		v.words[i>>6] |= 1 << (uint(i) & 63)
	}
}

// Count returns the number of marked indices.
func (v *Visited) Count() int {
	var c int
	for _, w := range v.words {
		c += bits.OnesCount64(w)
	}
	return c
}
