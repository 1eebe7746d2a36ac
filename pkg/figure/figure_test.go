package figure

import (
	"bytes"
	"strings"
	"testing"
)

func sampleFigure() *Figure {
	return &Figure{
		Width:  8,
		Height: 6,
		DPI:    100,
		Axes: []*Axes{
			{
				Bounds: [4]float64{0.125, 0.1, 0.775, 0.8},
				XLim:   [2]float64{0, 10},
				YLim:   [2]float64{-1, 1},
				Lines: []*Line{
					{
						XY:    [][2]float64{{0, 0}, {1, 0.8}, {2, 0.9}},
						Style: &LineStyle{Color: "#1f77b4", Alpha: 1, Width: 1.5, DashStyle: "solid"},
					},
				},
				Texts: []*Text{
					{Text: "sine", Position: [2]float64{0.5, 1.02}, Coordinates: CoordAxes, Role: RoleTitle,
						Style: TextStyle{Color: "#000000", FontSize: 12, HAlign: "center", VAlign: "bottom"}},
				},
			},
		},
	}
}

func TestPixelDimensions(t *testing.T) {
	fig := sampleFigure()
	if got := fig.PixelWidth(); got != 800 {
		t.Errorf("PixelWidth() = %v, want 800", got)
	}
	if got := fig.PixelHeight(); got != 600 {
		t.Errorf("PixelHeight() = %v, want 600", got)
	}

	// Default DPI applies when unset
	fig.DPI = 0
	if got := fig.PixelWidth(); got != 8*DefaultDPI {
		t.Errorf("PixelWidth() with default DPI = %v, want %v", got, 8*DefaultDPI)
	}
}

func TestBounds(t *testing.T) {
	fig := &Figure{
		Width: 8, Height: 6,
		Axes: []*Axes{
			{Bounds: [4]float64{0.1, 0.1, 0.35, 0.8}},
			{Bounds: [4]float64{0.55, 0.2, 0.35, 0.7}},
		},
	}
	x, y := fig.Bounds()
	if x != [2]float64{0.1, 0.9} {
		t.Errorf("x bounds = %v, want [0.1 0.9]", x)
	}
	if y != [2]float64{0.1, 0.9} {
		t.Errorf("y bounds = %v, want [0.1 0.9]", y)
	}
}

func TestBoundsNoAxes(t *testing.T) {
	fig := &Figure{Width: 8, Height: 6}
	x, y := fig.Bounds()
	if x != [2]float64{0, 1} || y != [2]float64{0, 1} {
		t.Errorf("bounds without axes = %v, %v, want full range", x, y)
	}
}

func TestIsRectangle(t *testing.T) {
	tests := []struct {
		name     string
		vertices [][2]float64
		ok       bool
	}{
		{"open rect", [][2]float64{{0, 0}, {2, 0}, {2, 5}, {0, 5}}, true},
		{"closed rect", [][2]float64{{0, 0}, {2, 0}, {2, 5}, {0, 5}, {0, 0}}, true},
		{"reversed winding", [][2]float64{{0, 5}, {2, 5}, {2, 0}, {0, 0}}, true},
		{"triangle", [][2]float64{{0, 0}, {1, 0}, {0.5, 1}}, false},
		{"parallelogram", [][2]float64{{0, 0}, {2, 0}, {3, 5}, {1, 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Path{Vertices: tt.vertices}
			x0, x1, y0, y1, ok := p.IsRectangle()
			if ok != tt.ok {
				t.Fatalf("IsRectangle() ok = %v, want %v", ok, tt.ok)
			}
			if ok && (x0 != 0 || x1 != 2 || y0 != 0 || y1 != 5) {
				t.Errorf("extent = (%v,%v,%v,%v), want (0,2,0,5)", x0, x1, y0, y1)
			}
		})
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	fig := sampleFigure()

	var buf bytes.Buffer
	if err := Write(fig, &buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if got.Width != fig.Width || got.Height != fig.Height || got.DPI != fig.DPI {
		t.Errorf("dimensions changed in round trip: %+v", got)
	}
	if len(got.Axes) != 1 {
		t.Fatalf("axes count = %d, want 1", len(got.Axes))
	}
	ax := got.Axes[0]
	if ax.XLim != [2]float64{0, 10} {
		t.Errorf("XLim = %v", ax.XLim)
	}
	if len(ax.Lines) != 1 || len(ax.Lines[0].XY) != 3 {
		t.Errorf("line data lost in round trip")
	}
	if len(ax.Texts) != 1 || ax.Texts[0].Role != RoleTitle {
		t.Errorf("text role lost in round trip")
	}
}

func TestReadRejectsUnknownFields(t *testing.T) {
	input := `{"width": 8, "height": 6, "frobnicate": true, "axes": []}`
	if _, err := Read(strings.NewReader(input)); err == nil {
		t.Error("Read should reject unknown fields")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Figure)
		wantErr bool
	}{
		{"valid", func(f *Figure) {}, false},
		{"zero width", func(f *Figure) { f.Width = 0 }, true},
		{"negative height", func(f *Figure) { f.Height = -1 }, true},
		{"bounds outside figure", func(f *Figure) { f.Axes[0].Bounds = [4]float64{0.5, 0.5, 0.8, 0.4} }, true},
		{"zero-extent bounds", func(f *Figure) { f.Axes[0].Bounds = [4]float64{0.1, 0.1, 0, 0.5} }, true},
		{"empty line", func(f *Figure) { f.Axes[0].Lines[0].XY = nil }, true},
		{"bad coordinates", func(f *Figure) { f.Axes[0].Lines[0].Coordinates = "pixels" }, true},
		{"bad text role", func(f *Figure) { f.Axes[0].Texts[0].Role = "subtitle" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := sampleFigure()
			tt.mutate(fig)
			err := Validate(fig)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
