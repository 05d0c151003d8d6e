// Package export renders survey results as standalone SVG documents.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrNoData = errors.New("export: not enough data")

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

// ProfileSVG draws ys against xs as a single path with 10% padding on
// each axis. Non-finite points break the path.
func ProfileSVG(xs, ys []float64, width, height int, stroke string) (string, error) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return "", ErrNoData
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	rangeX, rangeY := maxX-minX, maxY-minY
	if !(rangeX > 0) {
		rangeX = 1
	}
	if !(rangeY > 0) {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)

	cmd := "M"
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) || math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
			cmd = "M"
			continue
		}
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, x, y)
		cmd = "L"
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}

// HeatMapSVG draws one square cell of the given size per value, first row
// at the bottom, colored from blue (lowest) to red (highest).
func HeatMapSVG(rows [][]float64, cell float64) (string, error) {
	if len(rows) == 0 || len(rows[0]) == 0 || !(cell > 0) {
		return "", ErrNoData
	}

	var all []float64
	for _, row := range rows {
		all = append(all, row...)
	}
	lo, hi := bounds(all)
	rng := hi - lo
	if !(rng > 0) {
		rng = 1
	}

	width := int(math.Ceil(float64(len(rows[0])) * cell))
	height := int(math.Ceil(float64(len(rows)) * cell))

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString("<g>\n")
	for r, row := range rows {
		y := float64(len(rows)-1-r) * cell
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*cell, y, cell, cell, ramp((v-lo)/rng))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

// ramp maps t in [0, 1] onto a blue-white-red diverging scale.
func ramp(t float64) string {
	t = math.Max(0, math.Min(1, t))
	var r, g, b float64
	if t < 0.5 {
		k := t / 0.5
		r, g, b = 40+215*k, 80+175*k, 255
	} else {
		k := (t - 0.5) / 0.5
		r, g, b = 255, 255-215*k, 255-215*k
	}
	return fmt.Sprintf("#%02x%02x%02x", int(r), int(g), int(b))
}
