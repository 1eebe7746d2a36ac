package exporter

import (
	"fmt"
	"math"
	"testing"

	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/figure"
)

// recorder logs every event name in order and keeps the last props of each
// kind for inspection.
type recorder struct {
	events []string

	figure      FigureProps
	axes        []AxesProps
	lines       []LineProps
	markers     []MarkerProps
	paths       []PathProps
	collections []CollectionProps
	texts       []TextProps
	images      []ImageProps

	failOn string
}

func (r *recorder) record(name string) error {
	r.events = append(r.events, name)
	if name == r.failOn {
		return fmt.Errorf("forced failure at %s", name)
	}
	return nil
}

func (r *recorder) OpenFigure(fig FigureProps) error {
	r.figure = fig
	return r.record("OpenFigure")
}
func (r *recorder) CloseFigure() error { return r.record("CloseFigure") }
func (r *recorder) OpenAxes(ax AxesProps) error {
	r.axes = append(r.axes, ax)
	return r.record("OpenAxes")
}
func (r *recorder) CloseAxes() error { return r.record("CloseAxes") }
func (r *recorder) DrawLine(line LineProps) error {
	r.lines = append(r.lines, line)
	return r.record("DrawLine")
}
func (r *recorder) DrawMarkers(m MarkerProps) error {
	r.markers = append(r.markers, m)
	return r.record("DrawMarkers")
}
func (r *recorder) DrawPath(p PathProps) error {
	r.paths = append(r.paths, p)
	return r.record("DrawPath")
}
func (r *recorder) DrawPathCollection(c CollectionProps) error {
	r.collections = append(r.collections, c)
	return r.record("DrawPathCollection")
}
func (r *recorder) DrawText(t TextProps) error {
	r.texts = append(r.texts, t)
	return r.record("DrawText")
}
func (r *recorder) DrawImage(img ImageProps) error {
	r.images = append(r.images, img)
	return r.record("DrawImage")
}

func sampleFigure() *figure.Figure {
	return &figure.Figure{
		Width:  8,
		Height: 6,
		DPI:    100,
		Axes: []*figure.Axes{
			{
				Bounds: [4]float64{0.125, 0.11, 0.775, 0.77},
				XLim:   [2]float64{0, 10},
				YLim:   [2]float64{-1, 1},
				XGrid:  true,
				Lines: []*figure.Line{
					{
						XY:    [][2]float64{{0, 0}, {1, 1}, {2, 0}},
						Label: "signal",
						Style: &figure.LineStyle{Color: "#1f77b4", Alpha: 1, Width: 1.5, DashStyle: "solid"},
						Marker: &figure.MarkerStyle{
							Symbol: "o", FaceColor: "#1f77b4", EdgeColor: "#1f77b4",
							EdgeWidth: 1, Alpha: 1, Size: 6,
						},
					},
				},
				Paths: []*figure.Path{
					{
						Vertices: [][2]float64{{0, 0}, {1, 0}, {1, 2}, {0, 2}},
						Style:    figure.PathStyle{FaceColor: "#ff7f0e", Alpha: 1},
					},
				},
				Texts: []*figure.Text{
					{Text: "my title", Position: [2]float64{0.5, 1.02}, Coordinates: figure.CoordAxes, Role: figure.RoleTitle},
					{Text: "", Position: [2]float64{0, 0}},
				},
			},
		},
	}
}

func TestExportOrder(t *testing.T) {
	rec := &recorder{}
	if err := Export(sampleFigure(), rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := []string{
		"OpenFigure",
		"OpenAxes",
		"DrawLine",
		"DrawMarkers",
		"DrawPath",
		"DrawText",
		"CloseAxes",
		"CloseFigure",
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i, name := range want {
		if rec.events[i] != name {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], name)
		}
	}
}

func TestExportFigureProps(t *testing.T) {
	rec := &recorder{}
	if err := Export(sampleFigure(), rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := rec.figure.PixelWidth(); got != 800 {
		t.Errorf("PixelWidth() = %v, want 800", got)
	}
	if got := rec.figure.PixelHeight(); got != 600 {
		t.Errorf("PixelHeight() = %v, want 600", got)
	}
	if rec.figure.AxesCount != 1 {
		t.Errorf("AxesCount = %d, want 1", rec.figure.AxesCount)
	}
	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	if !approx(rec.figure.XBounds[0], 0.125) || !approx(rec.figure.XBounds[1], 0.9) {
		t.Errorf("XBounds = %v", rec.figure.XBounds)
	}
	if !approx(rec.figure.YBounds[0], 0.11) || !approx(rec.figure.YBounds[1], 0.88) {
		t.Errorf("YBounds = %v", rec.figure.YBounds)
	}
}

func TestExportDefaultDPI(t *testing.T) {
	fig := sampleFigure()
	fig.DPI = 0
	rec := &recorder{}
	if err := Export(fig, rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if rec.figure.DPI != figure.DefaultDPI {
		t.Errorf("DPI = %v, want %v", rec.figure.DPI, figure.DefaultDPI)
	}
}

func TestExportAxesProps(t *testing.T) {
	rec := &recorder{}
	if err := Export(sampleFigure(), rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(rec.axes) != 1 {
		t.Fatalf("axes events = %d, want 1", len(rec.axes))
	}
	ax := rec.axes[0]
	if ax.Index != 0 {
		t.Errorf("Index = %d, want 0", ax.Index)
	}
	if ax.XAxis.Range != [2]float64{0, 10} {
		t.Errorf("XAxis.Range = %v", ax.XAxis.Range)
	}
	if ax.XAxis.Scale != "linear" {
		t.Errorf("XAxis.Scale = %q, want linear", ax.XAxis.Scale)
	}
	if !ax.XAxis.Grid || ax.YAxis.Grid {
		t.Errorf("grid = %v/%v, want true/false", ax.XAxis.Grid, ax.YAxis.Grid)
	}
}

func TestExportLineSplit(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*figure.Line)
		wantLines   int
		wantMarkers int
	}{
		{"stroke and marker", func(l *figure.Line) {}, 1, 1},
		{"marker only", func(l *figure.Line) { l.Style.DashStyle = "none" }, 0, 1},
		{"stroke only", func(l *figure.Line) { l.Marker = nil }, 1, 0},
		{"marker symbol none", func(l *figure.Line) { l.Marker.Symbol = "none" }, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := sampleFigure()
			tt.mutate(fig.Axes[0].Lines[0])
			rec := &recorder{}
			if err := Export(fig, rec); err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if len(rec.lines) != tt.wantLines {
				t.Errorf("DrawLine events = %d, want %d", len(rec.lines), tt.wantLines)
			}
			if len(rec.markers) != tt.wantMarkers {
				t.Errorf("DrawMarkers events = %d, want %d", len(rec.markers), tt.wantMarkers)
			}
		})
	}
}

func TestExportCoordinateDefault(t *testing.T) {
	rec := &recorder{}
	if err := Export(sampleFigure(), rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(rec.lines) != 1 || rec.lines[0].Coordinates != figure.CoordData {
		t.Fatalf("line coordinates = %+v, want %q default", rec.lines, figure.CoordData)
	}
	if len(rec.paths) != 1 || rec.paths[0].Coordinates != figure.CoordData {
		t.Fatalf("path coordinates = %+v, want %q default", rec.paths, figure.CoordData)
	}
}

func TestExportSkipsEmptyText(t *testing.T) {
	rec := &recorder{}
	if err := Export(sampleFigure(), rec); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(rec.texts) != 1 {
		t.Fatalf("text events = %d, want 1", len(rec.texts))
	}
	if rec.texts[0].Role != figure.RoleTitle {
		t.Errorf("Role = %q, want %q", rec.texts[0].Role, figure.RoleTitle)
	}
}

func TestExportNilFigure(t *testing.T) {
	err := Export(nil, &recorder{})
	if errors.GetCode(err) != errors.ErrCodeInvalidFigure {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFigure)
	}
}

func TestExportStopsOnRendererError(t *testing.T) {
	rec := &recorder{failOn: "DrawPath"}
	err := Export(sampleFigure(), rec)
	if err == nil {
		t.Fatal("Export() error = nil, want failure")
	}
	if errors.GetCode(err) != errors.ErrCodeInternal {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}
	last := rec.events[len(rec.events)-1]
	if last != "DrawPath" {
		t.Errorf("last event = %q, want DrawPath", last)
	}
}
