package exporter

import (
	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/figure"
)

// Export walks fig and replays it as draw events on r. The walk is
// deterministic: axes in declaration order, and within each axes lines,
// paths, collections, images and texts in that order. The first renderer
// error aborts the walk.
func Export(fig *figure.Figure, r Renderer) error {
	if fig == nil {
		return errors.New(errors.ErrCodeInvalidFigure, "figure is nil")
	}
	if err := figure.Validate(fig); err != nil {
		return err
	}

	dpi := fig.DPI
	if dpi == 0 {
		dpi = figure.DefaultDPI
	}
	xb, yb := fig.Bounds()
	props := FigureProps{
		Width:     fig.Width,
		Height:    fig.Height,
		DPI:       dpi,
		AxesCount: len(fig.Axes),
		XBounds:   xb,
		YBounds:   yb,
	}
	if err := r.OpenFigure(props); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open figure")
	}

	for i, ax := range fig.Axes {
		if err := exportAxes(ax, i, r); err != nil {
			return err
		}
	}

	if err := r.CloseFigure(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close figure")
	}
	return nil
}

func exportAxes(ax *figure.Axes, index int, r Renderer) error {
	props := AxesProps{
		Index:  index,
		Bounds: ax.Bounds,
		XAxis:  AxisProps{Range: ax.XLim, Scale: scaleOrLinear(ax.XScale), Grid: ax.XGrid},
		YAxis:  AxisProps{Range: ax.YLim, Scale: scaleOrLinear(ax.YScale), Grid: ax.YGrid},
	}
	if err := r.OpenAxes(props); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open axes %d", index)
	}

	for j, line := range ax.Lines {
		if err := exportLine(line, r); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "axes %d line %d", index, j)
		}
	}
	for j, p := range ax.Paths {
		err := r.DrawPath(PathProps{
			Vertices:    p.Vertices,
			Coordinates: coordsOrData(p.Coordinates),
			Style:       p.Style,
		})
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "axes %d path %d", index, j)
		}
	}
	for j, c := range ax.Collections {
		err := r.DrawPathCollection(CollectionProps{
			Offsets:           c.Offsets,
			OffsetCoordinates: coordsOrData(c.OffsetCoordinates),
			Symbol:            symbolOrCircle(c.Symbol),
			FaceColors:        c.FaceColors,
			EdgeColors:        c.EdgeColors,
			EdgeWidths:        c.EdgeWidths,
			Sizes:             c.Sizes,
		})
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "axes %d collection %d", index, j)
		}
	}
	for j, img := range ax.Images {
		err := r.DrawImage(ImageProps{
			Data:        img.Data,
			Extent:      img.Extent,
			Coordinates: coordsOrData(img.Coordinates),
		})
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "axes %d image %d", index, j)
		}
	}
	for j, t := range ax.Texts {
		if t.Text == "" {
			continue
		}
		err := r.DrawText(TextProps{
			Text:        t.Text,
			Position:    t.Position,
			Coordinates: coordsOrData(t.Coordinates),
			Role:        t.Role,
			Style:       t.Style,
		})
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "axes %d text %d", index, j)
		}
	}

	if err := r.CloseAxes(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close axes %d", index)
	}
	return nil
}

// exportLine splits a line artist into its stroke and marker passes.
func exportLine(line *figure.Line, r Renderer) error {
	coords := coordsOrData(line.Coordinates)
	if line.Style != nil && line.Style.DashStyle != "none" {
		err := r.DrawLine(LineProps{
			XY:          line.XY,
			Coordinates: coords,
			Label:       line.Label,
			Style:       line.Style,
		})
		if err != nil {
			return err
		}
	}
	if line.Marker != nil && line.Marker.Symbol != "" && line.Marker.Symbol != "none" {
		err := r.DrawMarkers(MarkerProps{
			XY:          line.XY,
			Coordinates: coords,
			Label:       line.Label,
			Style:       line.Marker,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func coordsOrData(c string) string {
	if c == "" {
		return figure.CoordData
	}
	return c
}

func scaleOrLinear(s string) string {
	if s == "" {
		return "linear"
	}
	return s
}

func symbolOrCircle(s string) string {
	if s == "" {
		return "o"
	}
	return s
}
