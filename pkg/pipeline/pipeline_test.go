package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/figure"
	plotlyapi "github.com/mpld3/matplotlylib/pkg/integrations/plotly"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// memCache is an in-memory cache backend that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// fakeUploader records the upload and returns a canned response.
type fakeUploader struct {
	doc   *plotly.Figure
	opts  plotlyapi.PlotOptions
	calls int
	resp  *plotlyapi.PlotResponse
	err   error
}

func (u *fakeUploader) Plot(_ context.Context, doc *plotly.Figure, opts plotlyapi.PlotOptions) (*plotlyapi.PlotResponse, error) {
	u.doc = doc
	u.opts = opts
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	if u.resp != nil {
		return u.resp, nil
	}
	return &plotlyapi.PlotResponse{URL: "https://plot.ly/~tester/1", Filename: opts.Filename}, nil
}

func lineFigure() *figure.Figure {
	return &figure.Figure{
		Width:  8,
		Height: 6,
		DPI:    100,
		Axes: []*figure.Axes{
			{
				Bounds: [4]float64{0.25, 0.25, 0.5, 0.5},
				XLim:   [2]float64{0, 10},
				YLim:   [2]float64{-1, 1},
				Lines: []*figure.Line{
					{
						XY:    [][2]float64{{0, 0}, {1, 1}, {2, 0}},
						Style: &figure.LineStyle{Color: "#1f77b4", Alpha: 1, Width: 1.5, DashStyle: "solid"},
					},
				},
			},
		},
	}
}

func TestExecuteFullPipeline(t *testing.T) {
	uploader := &fakeUploader{}
	runner := NewRunner(newMemCache(), nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Figure:        lineFigure(),
		Filename:      "test plot",
		WorldReadable: true,
		Uploader:      uploader,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.URL != "https://plot.ly/~tester/1" {
		t.Errorf("URL = %q", result.URL)
	}
	if result.Filename != "test plot" {
		t.Errorf("Filename = %q", result.Filename)
	}
	if result.Document == nil || len(result.Document.Data) != 1 {
		t.Fatalf("Document traces = %+v, want 1 trace", result.Document)
	}
	if result.Stats.TraceCount != 1 {
		t.Errorf("Stats.TraceCount = %d, want 1", result.Stats.TraceCount)
	}
	if result.Stats.AxesCount != 1 {
		t.Errorf("Stats.AxesCount = %d, want 1", result.Stats.AxesCount)
	}
	if result.FigureHash == "" {
		t.Error("FigureHash should be set")
	}
	if result.CacheInfo.ExportHit {
		t.Error("first export should not be a cache hit")
	}

	if uploader.calls != 1 {
		t.Errorf("uploader called %d times, want 1", uploader.calls)
	}
	if uploader.opts.FileOpt != DefaultFileOpt {
		t.Errorf("FileOpt = %q, want %q", uploader.opts.FileOpt, DefaultFileOpt)
	}
	if !uploader.opts.WorldReadable {
		t.Error("WorldReadable should be passed through")
	}
}

func TestExportCacheHitOnSecondRun(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	fig := lineFigure()
	opts := Options{Figure: fig}

	first, hit, err := runner.ExportWithCacheInfo(context.Background(), fig, opts)
	if err != nil {
		t.Fatalf("first export error = %v", err)
	}
	if hit {
		t.Fatal("first export should miss the cache")
	}

	second, hit, err := runner.ExportWithCacheInfo(context.Background(), fig, opts)
	if err != nil {
		t.Fatalf("second export error = %v", err)
	}
	if !hit {
		t.Fatal("second export of an identical figure should hit the cache")
	}
	if len(second.Data) != len(first.Data) {
		t.Errorf("cached document has %d traces, want %d", len(second.Data), len(first.Data))
	}

	// Different export options key separately.
	_, hit, err = runner.ExportWithCacheInfo(context.Background(), fig, Options{Figure: fig, Resize: true})
	if err != nil {
		t.Fatalf("resize export error = %v", err)
	}
	if hit {
		t.Error("export with different options should not reuse the cached entry")
	}
}

func TestExportRefreshBypassesCache(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	fig := lineFigure()

	if _, _, err := runner.ExportWithCacheInfo(context.Background(), fig, Options{Figure: fig}); err != nil {
		t.Fatalf("first export error = %v", err)
	}
	setsBefore := c.sets

	_, hit, err := runner.ExportWithCacheInfo(context.Background(), fig, Options{Figure: fig, Refresh: true})
	if err != nil {
		t.Fatalf("refresh export error = %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
	if c.sets <= setsBefore {
		t.Error("refresh should rewrite the cache entry")
	}
}

func TestLoadFromFile(t *testing.T) {
	data, err := figure.Marshal(lineFigure())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "figure.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	fig, err := runner.Load(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(fig.Axes) != 1 || len(fig.Axes[0].Lines) != 1 {
		t.Errorf("loaded figure has %d axes, want 1 with 1 line", len(fig.Axes))
	}
}

func TestLoadFromURL(t *testing.T) {
	data, err := figure.Marshal(lineFigure())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(data)
	}))
	defer server.Close()

	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	ctx := context.Background()

	fig, err := runner.Load(ctx, Options{Input: server.URL})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(fig.Axes) != 1 || len(fig.Axes[0].Lines) != 1 {
		t.Errorf("loaded figure has %d axes, want 1 with 1 line", len(fig.Axes))
	}

	// Second load serves from the cache.
	if _, err := runner.Load(ctx, Options{Input: server.URL}); err != nil {
		t.Fatalf("Load() second run error = %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("requests = %d, want 1 (second load cached)", requests.Load())
	}

	// Refresh bypasses the cached response.
	if _, err := runner.Load(ctx, Options{Input: server.URL, Refresh: true}); err != nil {
		t.Fatalf("Load() refresh error = %v", err)
	}
	if requests.Load() != 2 {
		t.Errorf("requests = %d after refresh, want 2", requests.Load())
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "missing input",
			opts: Options{},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad fileopt",
			opts: Options{Figure: lineFigure(), FileOpt: "replace"},
			code: errors.ErrCodeInvalidFileOpt,
		},
		{
			name: "bad filename",
			opts: Options{Figure: lineFigure(), Filename: "a/../b"},
			code: errors.ErrCodeInvalidFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestDefaultFilenameGenerated(t *testing.T) {
	opts := Options{Figure: lineFigure()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if !strings.HasPrefix(opts.Filename, "figure-") {
		t.Errorf("Filename = %q, want generated figure-* name", opts.Filename)
	}
	if opts.FileOpt != DefaultFileOpt {
		t.Errorf("FileOpt = %q, want %q", opts.FileOpt, DefaultFileOpt)
	}
}

func TestPublishUploadError(t *testing.T) {
	uploader := &fakeUploader{err: errors.New(errors.ErrCodeUnauthorized, "bad api key")}
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{
		Figure:   lineFigure(),
		Uploader: uploader,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetCode(err) != errors.ErrCodeUnauthorized {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnauthorized)
	}
}
