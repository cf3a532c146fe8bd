package domain

import "math"

// Limits holds operator-side bounds applied around the pure geometry core.
type Limits struct {
	// MaxPoints caps the size of any single input sequence. 0 disables the cap.
	MaxPoints int
	// QuadTreeCapacity is the leaf capacity used while clustering.
	QuadTreeCapacity int
	// DefaultGeoHashPrecision is used when a request omits precision.
	DefaultGeoHashPrecision int
	// MaxZoom caps tile and pixel zoom levels.
	MaxZoom int
	// MaxClusterIndex caps caller-supplied cluster point indices.
	MaxClusterIndex int
}

// DefaultLimits returns limits sized for interactive map rendering.
func DefaultLimits() Limits {
	return Limits{
		MaxPoints:               200_000,
		QuadTreeCapacity:        20,
		DefaultGeoHashPrecision: 7,
		MaxZoom:                 22,
		MaxClusterIndex:         math.MaxInt32,
	}
}
