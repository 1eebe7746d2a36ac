package renderer

import (
	"fmt"

	"github.com/mpld3/matplotlylib/pkg/exporter"
	"github.com/mpld3/matplotlylib/pkg/figure"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// DrawText routes a text artist by role: axis labels land on the matching
// axis object, titles on the layout (or, in multi-axes figures, as a
// paper-referenced annotation), everything else becomes an annotation.
func (r *PlotlyRenderer) DrawText(t exporter.TextProps) error {
	switch t.Role {
	case figure.RoleXLabel:
		r.drawAxisLabel(fmt.Sprintf("xaxis%d", r.axisCt), t)
	case figure.RoleYLabel:
		r.drawAxisLabel(fmt.Sprintf("yaxis%d", r.axisCt), t)
	case figure.RoleTitle:
		r.drawTitle(t)
	default:
		r.drawAnnotation(t)
	}
	return nil
}

func (r *PlotlyRenderer) drawAxisLabel(axisKey string, t exporter.TextProps) {
	axis, ok := r.fig.Layout[axisKey].(plotly.Object)
	if !ok {
		axis = plotly.Object{}
		r.fig.Layout[axisKey] = axis
	}
	axis["title"] = t.Text
	axis["titlefont"] = titleFont(t.Style)
}

// drawTitle places the title on the layout when the figure is a single
// plot. With subplots there is no single title slot, so the text becomes a
// paper-referenced annotation at its original position.
func (r *PlotlyRenderer) drawTitle(t exporter.TextProps) {
	if r.axesTotal > 1 {
		x, y := r.paperPosition(t.Position, t.Coordinates)
		r.appendAnnotation(plotly.Object{
			"text":      t.Text,
			"font":      titleFont(t.Style),
			"xref":      "paper",
			"yref":      "paper",
			"x":         x,
			"y":         y,
			"xanchor":   "center",
			"yanchor":   "bottom",
			"showarrow": false,
		})
		return
	}
	r.fig.Layout["title"] = t.Text
	r.fig.Layout["titlefont"] = titleFont(t.Style)
}

func (r *PlotlyRenderer) drawAnnotation(t exporter.TextProps) {
	var (
		x, y             float64
		xref, yref       string
		xanchor, yanchor string
	)
	if t.Coordinates == figure.CoordData {
		x, y = t.Position[0], t.Position[1]
		xref = r.xAxisRef()
		yref = r.yAxisRef()
		xanchor = "center"
		yanchor = "middle"
	} else {
		x, y = r.paperPosition(t.Position, t.Coordinates)
		xref = "paper"
		yref = "paper"
		xanchor = t.Style.HAlign
		yanchor = convertVAlign(t.Style.VAlign)
	}
	r.appendAnnotation(plotly.Object{
		"text":      t.Text,
		"opacity":   t.Style.Alpha,
		"x":         x,
		"y":         y,
		"xref":      xref,
		"yref":      yref,
		"xanchor":   xanchor,
		"yanchor":   yanchor,
		"font":      annotationFont(t.Style),
		"showarrow": false,
	})
}

func (r *PlotlyRenderer) appendAnnotation(ann plotly.Object) {
	list, _ := r.fig.Layout["annotations"].(plotly.ObjectList)
	r.fig.Layout["annotations"] = append(list, ann)
}

// paperPosition converts a text position to plotly paper coordinates via
// figure pixels. Data coordinates map through the current axes limits and
// bounds; axes and figure fractions map through their frames; display
// positions are already pixels.
func (r *PlotlyRenderer) paperPosition(pos [2]float64, coords string) (x, y float64) {
	var xPx, yPx float64
	switch coords {
	case figure.CoordAxes:
		xPx = (r.curBounds[0] + pos[0]*r.curBounds[2]) * r.width
		yPx = (r.curBounds[1] + pos[1]*r.curBounds[3]) * r.height
	case figure.CoordFigure:
		xPx = pos[0] * r.width
		yPx = pos[1] * r.height
	case figure.CoordDisplay:
		xPx, yPx = pos[0], pos[1]
	case figure.CoordData:
		xFrac := fraction(pos[0], r.curXLim)
		yFrac := fraction(pos[1], r.curYLim)
		xPx = (r.curBounds[0] + xFrac*r.curBounds[2]) * r.width
		yPx = (r.curBounds[1] + yFrac*r.curBounds[3]) * r.height
	}
	return paperPos(xPx, yPx, r.width, r.height, r.margin)
}

func fraction(v float64, lim [2]float64) float64 {
	span := lim[1] - lim[0]
	if span == 0 {
		return 0
	}
	return (v - lim[0]) / span
}

func titleFont(s figure.TextStyle) plotly.Object {
	return plotly.Object{"size": s.FontSize, "color": s.Color}
}

func annotationFont(s figure.TextStyle) plotly.Object {
	return plotly.Object{"color": s.Color, "size": s.FontSize}
}
