package renderer

import (
	"sort"

	"github.com/mpld3/matplotlylib/pkg/exporter"
	"github.com/mpld3/matplotlylib/pkg/figure"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// bar is one rectangle patch classified as a candidate bar.
type bar struct {
	dir            string // "v" or "h"
	x0, x1, y0, y1 float64
	style          figure.PathStyle
}

// classifyBars decides whether a path is a bar candidate. A vertical bar is
// an axis-aligned rectangle with an edge on y=0; a horizontal bar has an
// edge on x=0. A square sitting on the origin matches both.
func classifyBars(p exporter.PathProps) []bar {
	x0, x1, y0, y1, ok := rectangle(p.Vertices)
	if !ok {
		return nil
	}
	var bars []bar
	if y0 == 0 || y1 == 0 {
		bars = append(bars, bar{dir: "v", x0: x0, x1: x1, y0: y0, y1: y1, style: p.Style})
	}
	if x0 == 0 || x1 == 0 {
		bars = append(bars, bar{dir: "h", x0: x0, x1: x1, y0: y0, y1: y1, style: p.Style})
	}
	return bars
}

func rectangle(v [][2]float64) (x0, x1, y0, y1 float64, ok bool) {
	p := figure.Path{Vertices: v}
	return p.IsRectangle()
}

// matches reports whether two bars belong to the same group: same
// orientation and same style.
func (b bar) matches(other bar) bool {
	return b.dir == other.dir && b.style == other.style
}

// fileBar appends b to the first group it matches, or starts a new group.
// Bars arrive one at a time, so grouping happens incrementally and the
// groups flush when the axes closes.
func (r *PlotlyRenderer) fileBar(b bar) {
	for i := range r.patches {
		if r.patches[i][0].matches(b) {
			r.patches[i] = append(r.patches[i], b)
			return
		}
	}
	r.patches = append(r.patches, []bar{b})
}

// flushBars converts each accumulated bar group into a bar trace. A group
// with a single member is assumed to be a lone rectangle, not a chart, and
// is dropped with a warning.
func (r *PlotlyRenderer) flushBars() {
	for _, group := range r.patches {
		if len(group) <= 1 {
			r.logger().Warn("found bar chart data with length <= 1, assuming data redundancy, not plotting")
			continue
		}
		r.fig.Data = append(r.fig.Data, r.barTrace(group))
	}
	r.patches = nil
}

func (r *PlotlyRenderer) barTrace(group []bar) plotly.Object {
	dir := group[0].dir
	x := make([]float64, len(group))
	y := make([]float64, len(group))
	if dir == "v" {
		sort.Slice(group, func(i, j int) bool { return group[i].x0 < group[j].x0 })
		for i, b := range group {
			x[i] = b.x0 + (b.x1-b.x0)/2
			y[i] = b.y1
		}
	} else {
		sort.Slice(group, func(i, j int) bool { return group[i].y0 < group[j].y0 })
		for i, b := range group {
			x[i] = b.y0 + (b.y1-b.y0)/2
			y[i] = b.x1
		}
	}
	style := group[0].style
	return plotly.Object{
		"type":   "bar",
		"bardir": dir,
		"x":      x,
		"y":      y,
		"xaxis":  r.xAxisRef(),
		"yaxis":  r.yAxisRef(),
		"marker": plotly.Object{
			"color": style.FaceColor,
			"line":  plotly.Object{"width": style.EdgeWidth},
		},
		"opacity": style.Alpha,
	}
}
