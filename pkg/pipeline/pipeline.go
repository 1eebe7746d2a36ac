// Package pipeline provides the core figure publishing pipeline for matplotly.
//
// This package implements the complete load → export → publish pipeline that
// can be used by CLI and library callers. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a serialized matplotlib figure from a file or reader
//  2. Export: Walk the figure and build the equivalent plotly document
//  3. Publish: Upload the document to the plotting service
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "figure.json",
//	    Filename: "my plot",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.URL)
//
// Run individual stages:
//
//	// Load only
//	fig, err := runner.Load(ctx, opts)
//
//	// Export with an existing figure
//	doc, err := runner.Export(ctx, fig, opts)
//
//	// Publish an existing document
//	resp, err := runner.Publish(ctx, doc, opts)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mpld3/matplotlylib/pkg/cache"
	"github.com/mpld3/matplotlylib/pkg/credentials"
	"github.com/mpld3/matplotlylib/pkg/errors"
	"github.com/mpld3/matplotlylib/pkg/figure"
	plotlyapi "github.com/mpld3/matplotlylib/pkg/integrations/plotly"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultFileOpt is how the service handles filename collisions when
	// no behavior is requested.
	DefaultFileOpt = "new"

	// generatedFilenameLen is how many characters of the generated id make
	// it into a default filename.
	generatedFilenameLen = 8
)

// Uploader is the publish-stage dependency. The production implementation is
// [plotlyapi.Client]; tests substitute a fake.
type Uploader interface {
	Plot(ctx context.Context, doc *plotly.Figure, opts plotlyapi.PlotOptions) (*plotlyapi.PlotResponse, error)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the publishing pipeline.
// This struct supports JSON serialization for library callers.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Export options
	Resize     bool `json:"resize,omitempty"`
	StripStyle bool `json:"strip_style,omitempty"`
	Refresh    bool `json:"refresh,omitempty"`

	// Publish options
	Filename      string `json:"filename,omitempty"`
	FileOpt       string `json:"fileopt,omitempty"`
	WorldReadable bool   `json:"world_readable,omitempty"`

	// Runtime options (not serialized)
	Figure      *figure.Figure           `json:"-"`
	Credentials *credentials.Credentials `json:"-"`
	Uploader    Uploader                 `json:"-"`
	Logger      *log.Logger              `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Figure is the loaded matplotlib figure.
	Figure *figure.Figure

	// FigureHash is the content hash of the figure.
	FigureHash string

	// Document is the exported plotly document.
	Document *plotly.Figure

	// URL is the shareable address returned by the service.
	URL string

	// Filename is the name the service stored the figure under.
	Filename string

	// Warning and Message are non-fatal notices from the service.
	Warning string
	Message string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AxesCount   int
	TraceCount  int
	LoadTime    time.Duration
	ExportTime  time.Duration
	PublishTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ExportHit bool // Whether the exported document came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForPublish(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Figure == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input path or figure is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetPublishDefaults sets default values for publishing. A missing filename
// gets a generated one so repeated publishes do not collide.
func (o *Options) SetPublishDefaults() {
	if o.Filename == "" {
		o.Filename = "figure-" + uuid.NewString()[:generatedFilenameLen]
	}
	if o.FileOpt == "" {
		o.FileOpt = DefaultFileOpt
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPublish validates and sets defaults for publishing.
func (o *Options) ValidateForPublish() error {
	o.SetPublishDefaults()
	if err := errors.ValidateFilename(o.Filename); err != nil {
		return err
	}
	return errors.ValidateFileOpt(o.FileOpt)
}

// ExportKeyOpts returns cache key options for the export stage.
func (o *Options) ExportKeyOpts() cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Resize:     o.Resize,
		StripStyle: o.StripStyle,
	}
}

// PlotOptions returns the upload options for the publish stage.
func (o *Options) PlotOptions() plotlyapi.PlotOptions {
	return plotlyapi.PlotOptions{
		Filename:      o.Filename,
		FileOpt:       o.FileOpt,
		WorldReadable: o.WorldReadable,
	}
}
