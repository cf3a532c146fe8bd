package bridge

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// PackClusters serializes clusters as
// [count, (centerIndex, memberCount, member...)*]. An index that does not fit
// in int32 is an ErrInvalidArgument; nothing is truncated.
func PackClusters(clusters []geo.ClusterOutput) ([]int32, error) {
	size := 1
	for _, c := range clusters {
		size += 2 + len(c.Indices)
	}

	out := make([]int32, 0, size)
	out = append(out, int32(len(clusters)))
	for _, c := range clusters {
		if !fitsInt32(c.CenterIndex) {
			return nil, fmt.Errorf("center index %d does not fit the packed layout: %w",
				c.CenterIndex, domain.ErrInvalidArgument)
		}
		out = append(out, int32(c.CenterIndex), int32(len(c.Indices)))
		for _, idx := range c.Indices {
			if !fitsInt32(idx) {
				return nil, fmt.Errorf("index %d does not fit the packed layout: %w", idx, domain.ErrInvalidArgument)
			}
			out = append(out, int32(idx))
		}
	}
	return out, nil
}

func fitsInt32(i int) bool { return i >= math.MinInt32 && i <= math.MaxInt32 }

// UnpackClusters is the inverse of PackClusters.
func UnpackClusters(packed []int32) ([]geo.ClusterOutput, error) {
	if len(packed) == 0 {
		return nil, fmt.Errorf("empty cluster buffer: %w", domain.ErrInvalidArgument)
	}

	count := int(packed[0])
	clusters := make([]geo.ClusterOutput, 0, max(count, 0))
	pos := 1
	for i := range count {
		if pos+2 > len(packed) {
			return nil, fmt.Errorf("cluster %d header truncated: %w", i, domain.ErrInvalidArgument)
		}
		center, n := int(packed[pos]), int(packed[pos+1])
		pos += 2
		if n < 0 || pos+n > len(packed) {
			return nil, fmt.Errorf("cluster %d members truncated: %w", i, domain.ErrInvalidArgument)
		}
		members := make([]int, n)
		for j := range n {
			members[j] = int(packed[pos+j])
		}
		pos += n
		clusters = append(clusters, geo.ClusterOutput{CenterIndex: center, Indices: members})
	}
	if pos != len(packed) {
		return nil, fmt.Errorf("%d trailing values: %w", len(packed)-pos, domain.ErrInvalidArgument)
	}
	return clusters, nil
}

// PackNearest serializes a nearest-point result as
// [lat, lon, segmentIndex, distanceMeters].
func PackNearest(r geo.NearestPointResult) []float64 {
	return []float64{r.Lat, r.Lon, float64(r.Index), r.DistanceMeters}
}

// PackBounds serializes path bounds as
// [north, south, east, west, centerLat, centerLon].
func PackBounds(b geo.PathBounds) []float64 {
	return []float64{b.North, b.South, b.East, b.West, b.CenterLat, b.CenterLon}
}

// PackSample serializes a path sample as [lat, lon, bearing], or nil when
// there is no sample.
func PackSample(s geo.PathSample, ok bool) []float64 {
	if !ok {
		return nil
	}
	return []float64{s.Lat, s.Lon, s.Bearing}
}

// PackPoints flattens points as [lat0, lon0, lat1, lon1, ...].
func PackPoints(pts []geo.GeoPoint) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.Lat, p.Lon)
	}
	return out
}

// PackPoint serializes one coordinate as [lat, lon].
func PackPoint(p geo.GeoPoint) []float64 {
	return []float64{p.Lat, p.Lon}
}

// PackTile serializes a tile as [x, y, z].
func PackTile(t geo.TileResult) []int32 {
	return []int32{int32(t.X), int32(t.Y), int32(t.Z)}
}

// PackPixel serializes a pixel as [x, y].
func PackPixel(p geo.PixelResult) []float64 {
	return []float64{p.X, p.Y}
}

// PackHeatmap flattens cells as [lat, lon, intensity]*.
func PackHeatmap(cells []geo.HeatmapGridCell) []float64 {
	out := make([]float64, 0, 3*len(cells))
	for _, c := range cells {
		out = append(out, c.Lat, c.Lon, c.Intensity)
	}
	return out
}
