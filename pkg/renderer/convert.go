package renderer

import (
	"fmt"
	"math"

	"github.com/mpld3/matplotlylib/pkg/figure"
)

// dashMap translates matplotlib dash style names to plotly dash names.
var dashMap = map[string]string{
	"solid":   "solid",
	"dashed":  "dash",
	"dashdot": "dashdot",
	"dotted":  "dot",
}

// convertDash returns the plotly dash name for a matplotlib dash style,
// falling back to solid for anything unrecognized.
func convertDash(style string) string {
	if d, ok := dashMap[style]; ok {
		return d
	}
	return "solid"
}

// symbolMap translates matplotlib marker characters to plotly symbols.
var symbolMap = map[string]string{
	"o": "dot",
	"v": "triangle-down",
	"^": "triangle-up",
	"<": "triangle-left",
	">": "triangle-right",
	"s": "square",
	"+": "cross",
	"x": "x",
	"*": "x",
	"D": "diamond",
	"d": "diamond",
}

// convertSymbol returns the plotly symbol for a matplotlib marker,
// defaulting to dot.
func convertSymbol(symbol string) string {
	if s, ok := symbolMap[symbol]; ok {
		return s
	}
	return "dot"
}

// convertVAlign maps matplotlib vertical alignment to a plotly yanchor.
// Horizontal alignment needs no mapping.
func convertVAlign(valign string) string {
	switch valign {
	case "baseline", "bottom":
		return "bottom"
	case "center":
		return "middle"
	case "top":
		return "top"
	default:
		return "middle"
	}
}

// rgbString formats an RGBA color's channels as a plotly rgb() string.
// Alpha travels separately as an opacity value.
func rgbString(c figure.RGBA) string {
	r := int(c[0] * 255)
	g := int(c[1] * 255)
	b := int(c[2] * 255)
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// xDomain maps an axes' horizontal extent from figure fraction into the
// plotly domain, which spans [0, 1] across the margin-trimmed plot area.
func xDomain(bounds [4]float64, xBounds [2]float64) []float64 {
	width := xBounds[1] - xBounds[0]
	if width <= 0 {
		return []float64{0, 1}
	}
	return []float64{
		(bounds[0] - xBounds[0]) / width,
		(bounds[0] + bounds[2] - xBounds[0]) / width,
	}
}

// yDomain is the vertical counterpart of xDomain.
func yDomain(bounds [4]float64, yBounds [2]float64) []float64 {
	height := yBounds[1] - yBounds[0]
	if height <= 0 {
		return []float64{0, 1}
	}
	return []float64{
		(bounds[1] - yBounds[0]) / height,
		(bounds[1] + bounds[3] - yBounds[0]) / height,
	}
}

// paperPos converts a pixel position into plotly paper coordinates, which
// span [0, 1] over the plot area inside the margins.
func paperPos(xPx, yPx float64, width, height float64, margin margins) (x, y float64) {
	plotWidth := width - float64(margin.l) - float64(margin.r)
	plotHeight := height - float64(margin.t) - float64(margin.b)
	if plotWidth <= 0 || plotHeight <= 0 {
		return 0, 0
	}
	x = (xPx - float64(margin.l)) / plotWidth
	y = (yPx - float64(margin.b)) / plotHeight
	return x, y
}

// margins holds the pixel margins computed at figure open.
type margins struct {
	l, r, t, b int
}

// trunc converts a pixel quantity to the integer form layout fields carry.
func trunc(v float64) int {
	return int(math.Trunc(v))
}
