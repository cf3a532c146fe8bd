package geo

import (
	"cmp"
	"math"
	"slices"
)

const (
	// metersPerLatDegree is the heatmap grid scale for one degree of latitude.
	metersPerLatDegree = 111_320.0

	minHeatmapCos = 1e-5
)

type gridKey struct{ row, col int }

// GenerateHeatmapGrid buckets weighted points into square cells of
// gridSizeMeters and returns one cell per non-empty bucket, with the summed
// weight as intensity. Longitude cell width follows the cosine of the row's
// center latitude. Cells come back ordered by row then column.
func GenerateHeatmapGrid(points []HeatmapPoint, gridSizeMeters float64) []HeatmapGridCell {
	if len(points) == 0 || gridSizeMeters <= 0 {
		return nil
	}

	latStep := gridSizeMeters / metersPerLatDegree
	lonStepForRow := func(row int) float64 {
		c := math.Cos((float64(row) + 0.5) * latStep * degToRad)
		return gridSizeMeters / (metersPerLatDegree * math.Max(math.Abs(c), minHeatmapCos))
	}

	sums := make(map[gridKey]float64)
	for _, p := range points {
		row := int(math.Floor(p.Lat / latStep))
		col := int(math.Floor(p.Lon / lonStepForRow(row)))
		sums[gridKey{row, col}] += p.Weight
	}

	keys := make([]gridKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b gridKey) int {
		if c := cmp.Compare(a.row, b.row); c != 0 {
			return c
		}
		return cmp.Compare(a.col, b.col)
	})

	cells := make([]HeatmapGridCell, len(keys))
	for i, k := range keys {
		lonStep := lonStepForRow(k.row)
		cells[i] = HeatmapGridCell{
			Lat:       (float64(k.row) + 0.5) * latStep,
			Lon:       (float64(k.col) + 0.5) * lonStep,
			Intensity: sums[k],
		}
	}
	return cells
}
