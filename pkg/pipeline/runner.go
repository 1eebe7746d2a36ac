package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mpld3/matplotlylib/pkg/cache"
	"github.com/mpld3/matplotlylib/pkg/credentials"
	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/exporter"
	"github.com/mpld3/matplotlylib/pkg/figure"
	"github.com/mpld3/matplotlylib/pkg/integrations"
	plotlyapi "github.com/mpld3/matplotlylib/pkg/integrations/plotly"
	"github.com/mpld3/matplotlylib/pkg/observability"
	"github.com/mpld3/matplotlylib/pkg/plotly"
	"github.com/mpld3/matplotlylib/pkg/renderer"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → export → publish pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	fig, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Figure = fig
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.AxesCount = len(fig.Axes)
	if data, err := figure.Marshal(fig); err == nil {
		result.FigureHash = cache.Hash(data)
	}

	opts.Logger.Info("loaded figure",
		"axes", len(fig.Axes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Export
	exportStart := time.Now()
	doc, exportHit, err := r.ExportWithCacheInfo(ctx, fig, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.ExportTime = time.Since(exportStart)
	result.Stats.TraceCount = len(doc.Data)
	result.CacheInfo.ExportHit = exportHit

	opts.Logger.Info("exported document",
		"traces", len(doc.Data),
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	// Stage 3: Publish
	publishStart := time.Now()
	resp, err := r.Publish(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.URL = resp.URL
	result.Filename = resp.Filename
	result.Warning = resp.Warning
	result.Message = resp.Message
	result.Stats.PublishTime = time.Since(publishStart)

	opts.Logger.Info("published figure",
		"url", resp.URL,
		"duration", result.Stats.PublishTime)

	return result, nil
}

// Load reads the figure named by the options, or returns the in-memory
// figure when one was supplied. Inputs starting with http:// or https://
// are fetched over the network and cached.
func (r *Runner) Load(ctx context.Context, opts Options) (*figure.Figure, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	start := time.Now()

	var (
		fig *figure.Figure
		err error
	)
	if opts.Figure != nil {
		fig = opts.Figure
		err = figure.Validate(fig)
	} else if isRemote(opts.Input) {
		fig, err = r.fetchFigure(ctx, opts)
	} else {
		fig, err = figure.ReadFile(opts.Input)
	}

	observability.Pipeline().OnLoadComplete(ctx, opts.Input, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return fig, nil
}

// isRemote reports whether input names an http(s) URL rather than a local
// file.
func isRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// fetchFigure downloads a figure over HTTP. Responses go through the
// runner's cache, so repeated runs against the same URL only hit the
// network when Refresh is set or the entry expired.
func (r *Runner) fetchFigure(ctx context.Context, opts Options) (*figure.Figure, error) {
	client := integrations.NewClient(r.Cache, "figure:", cache.TTLHTTP, nil)

	var fig figure.Figure
	err := client.Cached(ctx, opts.Input, opts.Refresh, &fig, func() error {
		return client.Get(ctx, opts.Input, &fig)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch figure %s", opts.Input)
	}
	if err := figure.Validate(&fig); err != nil {
		return nil, err
	}
	return &fig, nil
}

// ExportWithCacheInfo builds the plotly document for a figure with caching
// and returns cache hit info.
//
// The cache key hashes the figure content together with the export options,
// so the same figure exported with different options is cached separately.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, fig *figure.Figure, opts Options) (*plotly.Figure, bool, error) {
	if fig == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidFigure, "figure is nil")
	}
	r.applyLogger(&opts)

	figData, err := figure.Marshal(fig)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidFigure, err, "serialize figure for cache key")
	}
	cacheKey := r.Keyer.ExportKey(cache.Hash(figData), opts.ExportKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc plotly.Figure
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, "export")
				return &doc, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "export")
	}

	observability.Pipeline().OnExportStart(ctx, len(fig.Axes))
	start := time.Now()

	rend := renderer.New(opts.Logger)
	err = exporter.Export(fig, rend)
	if err != nil {
		observability.Pipeline().OnExportComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	if opts.Resize {
		rend.Resize()
	}
	if opts.StripStyle {
		rend.StripStyle()
	}
	doc := rend.Figure()
	observability.Pipeline().OnExportComplete(ctx, len(doc.Data), time.Since(start), nil)

	// Cache the result
	if data, err := doc.Marshal(); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLExport)
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}

	return doc, false, nil // Cache miss
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Export(ctx context.Context, fig *figure.Figure, opts Options) (*plotly.Figure, error) {
	doc, _, err := r.ExportWithCacheInfo(ctx, fig, opts)
	return doc, err
}

// Publish uploads a document to the plotting service.
//
// Credentials come from the options when set, otherwise from the credentials
// file and environment. Exactly one remote call is made per publish; the
// upload is never served from cache.
func (r *Runner) Publish(ctx context.Context, doc *plotly.Figure, opts Options) (*plotlyapi.PlotResponse, error) {
	if err := opts.ValidateForPublish(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	uploader := opts.Uploader
	if uploader == nil {
		creds := opts.Credentials
		if creds == nil {
			store, err := credentials.NewStore("")
			if err != nil {
				return nil, err
			}
			creds, err = store.Resolve()
			if err != nil {
				return nil, err
			}
		}
		uploader = plotlyapi.NewClient(r.Cache, plotlyapi.Config{
			Username: creds.Username,
			APIKey:   creds.APIKey,
			Endpoint: creds.Endpoint,
		})
	}

	observability.Pipeline().OnPublishStart(ctx, opts.Filename, opts.FileOpt)
	start := time.Now()
	resp, err := uploader.Plot(ctx, doc, opts.PlotOptions())
	observability.Pipeline().OnPublishComplete(ctx, opts.Filename, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
