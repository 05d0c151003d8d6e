package analysis

import (
	"math"
	"strings"
)

const shades = " .:-=+*#%@"

// HeatMap renders rows of values as shaded characters, first row at the
// bottom so a latitude-major grid appears north up. The grid is resampled
// by nearest neighbour to width x height cells. NaN cells render blank.
func HeatMap(rows [][]float64, width, height int) string {
	if len(rows) == 0 || len(rows[0]) == 0 || width < 1 || height < 1 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) || math.IsNaN(rng) {
		rng = 1
	}

	var sb strings.Builder
	for r := 0; r < height; r++ {
		src := rows[(height-1-r)*len(rows)/height]
		for c := 0; c < width; c++ {
			v := src[c*len(src)/width]
			if math.IsNaN(v) {
				sb.WriteByte(' ')
				continue
			}
			idx := int((v - lo) / rng * float64(len(shades)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			sb.WriteByte(shades[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
