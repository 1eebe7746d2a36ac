package renderer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mpld3/matplotlylib/pkg/exporter"
	"github.com/mpld3/matplotlylib/pkg/figure"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// PlotlyRenderer accumulates a plotly document from exporter draw events.
// Use it with [exporter.Export]:
//
//	r := renderer.New(logger)
//	if err := exporter.Export(fig, r); err != nil { ... }
//	doc := r.Figure()
//
// The zero value is not usable; construct with [New].
type PlotlyRenderer struct {
	// Logger receives warnings about artists that cannot be represented
	// in plotly. Never nil.
	Logger *log.Logger

	fig *plotly.Figure

	axisCt    int // 1-based index of the open axes
	axesTotal int
	xBounds   [2]float64
	yBounds   [2]float64
	width     float64 // pixels
	height    float64
	margin    margins
	curBounds [4]float64
	curXLim   [2]float64
	curYLim   [2]float64
	patches   [][]bar
}

var _ exporter.Renderer = (*PlotlyRenderer)(nil)

// New returns a renderer ready to receive draw events. A nil logger
// discards warnings.
func New(logger *log.Logger) *PlotlyRenderer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &PlotlyRenderer{
		Logger: logger,
		fig:    plotly.NewFigure(),
	}
}

// Figure returns the accumulated document. Valid after CloseFigure.
func (r *PlotlyRenderer) Figure() *plotly.Figure { return r.fig }

func (r *PlotlyRenderer) logger() *log.Logger { return r.Logger }

// OpenFigure sizes the layout to mirror the source figure exactly:
// autosize off, pixel dimensions from the figure, and margins covering the
// space outside the union of axes bounds.
func (r *PlotlyRenderer) OpenFigure(fig exporter.FigureProps) error {
	r.width = fig.PixelWidth()
	r.height = fig.PixelHeight()
	r.axesTotal = fig.AxesCount
	r.xBounds = fig.XBounds
	r.yBounds = fig.YBounds

	r.margin = margins{
		l: trunc(fig.XBounds[0] * r.width),
		r: trunc((1 - fig.XBounds[1]) * r.width),
		t: trunc((1 - fig.YBounds[1]) * r.height),
		b: trunc(fig.YBounds[0] * r.height),
	}
	r.fig.Layout["width"] = trunc(r.width)
	r.fig.Layout["height"] = trunc(r.height)
	r.fig.Layout["autosize"] = false
	r.fig.Layout["margin"] = plotly.Object{
		"l":   r.margin.l,
		"r":   r.margin.r,
		"t":   r.margin.t,
		"b":   r.margin.b,
		"pad": 0,
	}
	return nil
}

// CloseFigure repairs and cleans the accumulated document. The legend is
// disabled: legend entries survive the conversion poorly, so the service
// is left to render without one.
func (r *PlotlyRenderer) CloseFigure() error {
	r.fig.Repair()
	r.fig.Clean()
	r.fig.Layout["showlegend"] = false
	return nil
}

// OpenAxes starts a numbered subplot: an xaxis{n}/yaxis{n} pair anchored
// to each other, with ranges from the data limits and domains mapping the
// axes position into the margin-trimmed plot area.
func (r *PlotlyRenderer) OpenAxes(ax exporter.AxesProps) error {
	r.axisCt++
	r.curBounds = ax.Bounds
	r.curXLim = ax.XAxis.Range
	r.curYLim = ax.YAxis.Range

	r.fig.Layout[fmt.Sprintf("xaxis%d", r.axisCt)] = plotly.Object{
		"range":    []float64{ax.XAxis.Range[0], ax.XAxis.Range[1]},
		"showgrid": ax.XAxis.Grid,
		"domain":   xDomain(ax.Bounds, r.xBounds),
		"anchor":   fmt.Sprintf("y%d", r.axisCt),
		"zeroline": false,
	}
	r.fig.Layout[fmt.Sprintf("yaxis%d", r.axisCt)] = plotly.Object{
		"range":    []float64{ax.YAxis.Range[0], ax.YAxis.Range[1]},
		"showgrid": ax.YAxis.Grid,
		"domain":   yDomain(ax.Bounds, r.yBounds),
		"anchor":   fmt.Sprintf("x%d", r.axisCt),
		"zeroline": false,
	}
	return nil
}

// CloseAxes flushes bar patches collected while the axes was open. Bars
// arrive one rectangle at a time, so they can only be grouped into traces
// once the axes is complete.
func (r *PlotlyRenderer) CloseAxes() error {
	r.flushBars()
	return nil
}

func (r *PlotlyRenderer) xAxisRef() string { return fmt.Sprintf("x%d", r.axisCt) }
func (r *PlotlyRenderer) yAxisRef() string { return fmt.Sprintf("y%d", r.axisCt) }

// DrawLine appends a lines-mode scatter trace. Only data-coordinate lines
// have a plotly representation.
func (r *PlotlyRenderer) DrawLine(line exporter.LineProps) error {
	if line.Coordinates != figure.CoordData {
		r.logger().Warn("line artist not in data coordinates, skipping")
		return nil
	}
	x, y := splitXY(line.XY)
	trace := plotly.Object{
		"mode":  "lines",
		"x":     x,
		"y":     y,
		"xaxis": r.xAxisRef(),
		"yaxis": r.yAxisRef(),
		"line": plotly.Object{
			"opacity": line.Style.Alpha,
			"color":   line.Style.Color,
			"width":   line.Style.Width,
			"dash":    convertDash(line.Style.DashStyle),
		},
	}
	if line.Label != "" {
		trace["name"] = line.Label
	}
	r.fig.Data = append(r.fig.Data, trace)
	return nil
}

// DrawMarkers appends a markers-mode scatter trace.
func (r *PlotlyRenderer) DrawMarkers(m exporter.MarkerProps) error {
	if m.Coordinates != figure.CoordData {
		r.logger().Warn("marker artist not in data coordinates, skipping")
		return nil
	}
	x, y := splitXY(m.XY)
	marker := plotly.Object{
		"opacity": m.Style.Alpha,
		"color":   m.Style.FaceColor,
		"symbol":  convertSymbol(m.Style.Symbol),
		"line": plotly.Object{
			"color": m.Style.EdgeColor,
			"width": m.Style.EdgeWidth,
		},
	}
	if m.Style.Size > 0 {
		marker["size"] = m.Style.Size
	}
	trace := plotly.Object{
		"mode":   "markers",
		"x":      x,
		"y":      y,
		"xaxis":  r.xAxisRef(),
		"yaxis":  r.yAxisRef(),
		"marker": marker,
	}
	if m.Label != "" {
		trace["name"] = m.Label
	}
	r.fig.Data = append(r.fig.Data, trace)
	return nil
}

// DrawPath files rectangle patches that touch an axis into bar groups.
// Anything else has no plotly counterpart and is skipped with a warning.
func (r *PlotlyRenderer) DrawPath(p exporter.PathProps) error {
	bars := classifyBars(p)
	if len(bars) == 0 {
		r.logger().Warn("path object does not look like part of a bar chart, skipping")
		return nil
	}
	for _, b := range bars {
		r.fileBar(b)
	}
	return nil
}

// DrawPathCollection renders a collection as a markers trace, taking the
// first entry of each style array as the uniform style.
func (r *PlotlyRenderer) DrawPathCollection(coll exporter.CollectionProps) error {
	if coll.OffsetCoordinates != figure.CoordData {
		r.logger().Warn("path collection is not linked to data, skipping")
		return nil
	}
	style := &figure.MarkerStyle{Symbol: coll.Symbol}
	if len(coll.FaceColors) > 0 {
		style.FaceColor = rgbString(coll.FaceColors[0])
		style.Alpha = coll.FaceColors[0][3]
	}
	if len(coll.EdgeColors) > 0 {
		style.EdgeColor = rgbString(coll.EdgeColors[0])
	}
	if len(coll.EdgeWidths) > 0 {
		style.EdgeWidth = coll.EdgeWidths[0]
	}
	if len(coll.Sizes) > 0 {
		style.Size = coll.Sizes[0]
	}
	return r.DrawMarkers(exporter.MarkerProps{
		XY:          coll.Offsets,
		Coordinates: coll.OffsetCoordinates,
		Style:       style,
	})
}

// DrawImage is unsupported: the upload API has no slot for raster data.
func (r *PlotlyRenderer) DrawImage(exporter.ImageProps) error {
	r.logger().Warn("image artists are not supported, image will not show up")
	return nil
}

// Resize drops the exact sizing constraints from the layout so the
// service can choose its own dimensions.
func (r *PlotlyRenderer) Resize() {
	for _, key := range []string{"width", "height", "autosize", "margin"} {
		delete(r.fig.Layout, key)
	}
}

// StripStyle removes style information from the accumulated document,
// keeping only the data-bearing keys.
func (r *PlotlyRenderer) StripStyle() {
	r.fig.Strip()
	r.fig.Clean()
}

func splitXY(xy [][2]float64) (x, y []float64) {
	x = make([]float64, len(xy))
	y = make([]float64, len(xy))
	for i, p := range xy {
		x[i] = p[0]
		y[i] = p[1]
	}
	return x, y
}
