package exporter

import "github.com/mpld3/matplotlylib/pkg/figure"

// FigureProps carries the figure-level properties a renderer needs before
// any axes are drawn.
type FigureProps struct {
	// Width and Height are the figure size in inches.
	Width  float64
	Height float64
	// DPI converts inches to pixels.
	DPI float64
	// AxesCount is the number of axes the walk will visit.
	AxesCount int
	// XBounds and YBounds are the union of all axes bounds in figure
	// fraction, as (min, max) per dimension.
	XBounds [2]float64
	YBounds [2]float64
}

// PixelWidth returns the figure width in pixels.
func (p FigureProps) PixelWidth() float64 { return p.Width * p.DPI }

// PixelHeight returns the figure height in pixels.
func (p FigureProps) PixelHeight() float64 { return p.Height * p.DPI }

// AxisProps describes one axis of an axes.
type AxisProps struct {
	// Range is the data limits [min, max].
	Range [2]float64
	// Scale is "linear" or "log".
	Scale string
	// Grid reports whether grid lines are shown along this axis.
	Grid bool
}

// AxesProps describes one axes within the figure.
type AxesProps struct {
	// Index is the zero-based position of the axes within the figure.
	Index int
	// Bounds is the axes position in figure fraction: left, bottom,
	// width, height.
	Bounds [4]float64
	// XAxis and YAxis describe the two axes.
	XAxis AxisProps
	YAxis AxisProps
}

// LineProps carries a stroked line artist.
type LineProps struct {
	// XY is the vertex list in the coordinate system named by Coordinates.
	XY [][2]float64
	// Coordinates is one of the figure coordinate frames.
	Coordinates string
	// Label is the legend label, empty when unset.
	Label string
	// Style is the stroke style. Never nil for a DrawLine event.
	Style *figure.LineStyle
}

// MarkerProps carries a marker artist. The exporter emits markers for any
// line artist that declares a marker style, with the same vertices as the
// stroke pass.
type MarkerProps struct {
	XY          [][2]float64
	Coordinates string
	Label       string
	// Style is the marker style. Never nil for a DrawMarkers event.
	Style *figure.MarkerStyle
}

// PathProps carries a single filled or stroked path.
type PathProps struct {
	Vertices    [][2]float64
	Coordinates string
	Style       figure.PathStyle
}

// CollectionProps carries a path collection, matplotlib's vectorized form
// for scatter plots and similar artists.
type CollectionProps struct {
	// Offsets are the per-element positions.
	Offsets [][2]float64
	// OffsetCoordinates names the frame the offsets live in.
	OffsetCoordinates string
	// Symbol is the shared marker symbol for the collection.
	Symbol string
	// FaceColors, EdgeColors, EdgeWidths and Sizes are per-element styles.
	// Each may be shorter than Offsets, in which case it cycles.
	FaceColors []figure.RGBA
	EdgeColors []figure.RGBA
	EdgeWidths []float64
	Sizes      []float64
}

// TextProps carries a text artist.
type TextProps struct {
	Text        string
	Position    [2]float64
	Coordinates string
	// Role marks axis labels and the axes title so renderers can route
	// them to dedicated layout slots. Empty for plain text.
	Role  string
	Style figure.TextStyle
}

// ImageProps carries a raster image artist.
type ImageProps struct {
	// Data is the base64-encoded PNG payload.
	Data string
	// Extent is the image placement as [x0, x1, y0, y1].
	Extent      [4]float64
	Coordinates string
}

// Renderer receives draw events from an [Exporter]. Implementations
// accumulate whatever output they produce and may rely on the traversal
// order documented on the package.
type Renderer interface {
	OpenFigure(fig FigureProps) error
	CloseFigure() error

	OpenAxes(ax AxesProps) error
	CloseAxes() error

	DrawLine(line LineProps) error
	DrawMarkers(markers MarkerProps) error
	DrawPath(path PathProps) error
	DrawPathCollection(coll CollectionProps) error
	DrawText(text TextProps) error
	DrawImage(img ImageProps) error
}
