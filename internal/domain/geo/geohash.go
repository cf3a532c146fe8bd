package geo

import "strings"

const (
	geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

	// MinGeoHashPrecision and MaxGeoHashPrecision bound the hash length.
	MinGeoHashPrecision = 1
	MaxGeoHashPrecision = 12
)

// hashState is the bisection state machine: a 5-bit accumulator, the bit
// position inside it and the axis that the next bit refines.
type hashState struct {
	bit     int
	ch      int
	lonTurn bool

	minLat, maxLat float64
	minLon, maxLon float64
}

func newHashState() hashState {
	return hashState{lonTurn: true, minLat: -90, maxLat: 90, minLon: -180, maxLon: 180}
}

// step refines one axis and reports whether a character is complete.
func (s *hashState) step(lat, lon float64) bool {
	if s.lonTurn {
		mid := (s.minLon + s.maxLon) / 2
		if lon > mid {
			s.ch |= 1 << (4 - s.bit)
			s.minLon = mid
		} else {
			s.maxLon = mid
		}
	} else {
		mid := (s.minLat + s.maxLat) / 2
		if lat > mid {
			s.ch |= 1 << (4 - s.bit)
			s.minLat = mid
		} else {
			s.maxLat = mid
		}
	}
	s.lonTurn = !s.lonTurn

	if s.bit < 4 {
		s.bit++
		return false
	}
	return true
}

// emit returns the completed character and resets the accumulator.
func (s *hashState) emit() byte {
	c := geohashAlphabet[s.ch]
	s.bit, s.ch = 0, 0
	return c
}

// ClampGeoHashPrecision limits precision to [1, 12].
func ClampGeoHashPrecision(precision int) int {
	return max(MinGeoHashPrecision, min(precision, MaxGeoHashPrecision))
}

// EncodeGeoHash encodes a coordinate as a base-32 geohash. Precision is
// clamped to [1, 12].
func EncodeGeoHash(lat, lon float64, precision int) string {
	precision = ClampGeoHashPrecision(precision)

	var sb strings.Builder
	sb.Grow(precision)

	s := newHashState()
	for sb.Len() < precision {
		if s.step(lat, lon) {
			sb.WriteByte(s.emit())
		}
	}
	return sb.String()
}
