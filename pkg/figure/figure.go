package figure

// Coordinate frame identifiers used by positioned artists.
const (
	CoordData    = "data"
	CoordAxes    = "axes"
	CoordFigure  = "figure"
	CoordDisplay = "display"
)

// Text roles distinguish axis decorations from free annotations.
const (
	RoleTitle  = "title"
	RoleXLabel = "xlabel"
	RoleYLabel = "ylabel"
)

// DefaultDPI is assumed when a figure does not specify its resolution.
const DefaultDPI = 80

// Figure is the root of the figure object tree.
// Width and Height are in inches, matching the matplotlib convention;
// pixel dimensions are Width*DPI by Height*DPI.
type Figure struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	DPI    float64 `json:"dpi,omitempty"`
	Axes   []*Axes `json:"axes"`
}

// PixelWidth returns the figure width in pixels.
func (f *Figure) PixelWidth() float64 { return f.Width * f.dpi() }

// PixelHeight returns the figure height in pixels.
func (f *Figure) PixelHeight() float64 { return f.Height * f.dpi() }

func (f *Figure) dpi() float64 {
	if f.DPI > 0 {
		return f.DPI
	}
	return DefaultDPI
}

// Bounds returns the union of all axes bounds as (xmin, xmax, ymin, ymax)
// in figure fraction coordinates. A figure without axes spans the full
// [0, 1] range on both dimensions.
func (f *Figure) Bounds() (x [2]float64, y [2]float64) {
	if len(f.Axes) == 0 {
		return [2]float64{0, 1}, [2]float64{0, 1}
	}
	x = [2]float64{1, 0}
	y = [2]float64{1, 0}
	for _, ax := range f.Axes {
		x[0] = min(x[0], ax.Bounds[0])
		x[1] = max(x[1], ax.Bounds[0]+ax.Bounds[2])
		y[0] = min(y[0], ax.Bounds[1])
		y[1] = max(y[1], ax.Bounds[1]+ax.Bounds[3])
	}
	return x, y
}

// Axes is a single plotting area within a figure.
// Bounds is [left, bottom, width, height] in figure fraction coordinates.
type Axes struct {
	Bounds [4]float64 `json:"bounds"`
	XLim   [2]float64 `json:"xlim"`
	YLim   [2]float64 `json:"ylim"`
	XScale string     `json:"xscale,omitempty"` // "linear" (default), "log", "date"
	YScale string     `json:"yscale,omitempty"`
	XGrid  bool       `json:"xgrid,omitempty"`
	YGrid  bool       `json:"ygrid,omitempty"`

	Lines       []*Line       `json:"lines,omitempty"`
	Paths       []*Path       `json:"paths,omitempty"`
	Collections []*Collection `json:"collections,omitempty"`
	Texts       []*Text       `json:"texts,omitempty"`
	Images      []*Image      `json:"images,omitempty"`
}

// Line is a 2D line artist, optionally with markers at each vertex.
// A nil Style means the connecting line is not drawn (markers only);
// a nil Marker means no markers are drawn.
type Line struct {
	XY          [][2]float64 `json:"xy"`
	Coordinates string       `json:"coordinates,omitempty"` // defaults to "data"
	Label       string       `json:"label,omitempty"`
	Style       *LineStyle   `json:"style,omitempty"`
	Marker      *MarkerStyle `json:"marker,omitempty"`
}

// LineStyle carries the stroke properties of a line artist.
type LineStyle struct {
	Color     string  `json:"color,omitempty"`
	Alpha     float64 `json:"alpha,omitempty"`
	Width     float64 `json:"width,omitempty"`
	DashStyle string  `json:"dashstyle,omitempty"` // "solid", "dashed", "dashdot", "dotted"
}

// MarkerStyle carries the marker properties of a line or collection artist.
// Symbol uses the matplotlib single-character vocabulary ("o", "s", "^", ...).
type MarkerStyle struct {
	Symbol    string  `json:"symbol,omitempty"`
	FaceColor string  `json:"facecolor,omitempty"`
	EdgeColor string  `json:"edgecolor,omitempty"`
	EdgeWidth float64 `json:"edgewidth,omitempty"`
	Alpha     float64 `json:"alpha,omitempty"`
	Size      float64 `json:"size,omitempty"` // marker diameter in points
}

// Path is a filled polygon artist. Bar charts arrive as one Path per bar;
// the plotly renderer detects and regroups them.
type Path struct {
	Vertices    [][2]float64 `json:"vertices"`
	Coordinates string       `json:"coordinates,omitempty"`
	Style       PathStyle    `json:"style"`
}

// PathStyle carries fill and stroke properties of a path artist.
type PathStyle struct {
	FaceColor string  `json:"facecolor,omitempty"`
	EdgeColor string  `json:"edgecolor,omitempty"`
	EdgeWidth float64 `json:"edgewidth,omitempty"`
	Alpha     float64 `json:"alpha,omitempty"`
}

// IsRectangle reports whether the path is an axis-aligned rectangle and
// returns its extent as (x0, x1, y0, y1). Both open (4 vertex) and closed
// (5 vertex, last == first) forms are recognized.
func (p *Path) IsRectangle() (x0, x1, y0, y1 float64, ok bool) {
	v := p.Vertices
	if len(v) == 5 && v[0] == v[4] {
		v = v[:4]
	}
	if len(v) != 4 {
		return 0, 0, 0, 0, false
	}

	x0, x1 = v[0][0], v[0][0]
	y0, y1 = v[0][1], v[0][1]
	for _, pt := range v[1:] {
		x0 = min(x0, pt[0])
		x1 = max(x1, pt[0])
		y0 = min(y0, pt[1])
		y1 = max(y1, pt[1])
	}

	// Every vertex must sit on a corner of the bounding box.
	for _, pt := range v {
		onX := pt[0] == x0 || pt[0] == x1
		onY := pt[1] == y0 || pt[1] == y1
		if !onX || !onY {
			return 0, 0, 0, 0, false
		}
	}
	return x0, x1, y0, y1, true
}

// Collection is a scatter-style artist: one marker shape stamped at many
// offsets, with per-point styling arrays. Arrays shorter than Offsets are
// cycled, matching the matplotlib broadcast convention; renderers that
// only support uniform style read index 0.
type Collection struct {
	Offsets           [][2]float64 `json:"offsets"`
	OffsetCoordinates string       `json:"offset_coordinates,omitempty"`
	Symbol            string       `json:"symbol,omitempty"` // marker vocabulary, defaults to "o"
	FaceColors        []RGBA       `json:"facecolors,omitempty"`
	EdgeColors        []RGBA       `json:"edgecolors,omitempty"`
	EdgeWidths        []float64    `json:"edgewidths,omitempty"`
	Sizes             []float64    `json:"sizes,omitempty"` // marker diameters in points
}

// RGBA is a color with components in [0, 1].
type RGBA [4]float64

// Text is a text artist: free annotation or axis decoration (see Role).
type Text struct {
	Text        string     `json:"text"`
	Position    [2]float64 `json:"position"`
	Coordinates string     `json:"coordinates,omitempty"`
	Role        string     `json:"role,omitempty"` // "", "title", "xlabel", "ylabel"
	Style       TextStyle  `json:"style"`
}

// TextStyle carries font and alignment properties of a text artist.
type TextStyle struct {
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontsize,omitempty"`
	Alpha    float64 `json:"alpha,omitempty"`
	HAlign   string  `json:"halign,omitempty"` // "left", "center", "right"
	VAlign   string  `json:"valign,omitempty"` // "top", "center", "bottom", "baseline"
	Rotation float64 `json:"rotation,omitempty"`
}

// Image is a raster artist. Data is base64-encoded PNG; Extent is
// [x0, x1, y0, y1] in data coordinates.
type Image struct {
	Data        string     `json:"data"`
	Extent      [4]float64 `json:"extent"`
	Coordinates string     `json:"coordinates,omitempty"`
}
