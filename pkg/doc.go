// Package pkg provides the core libraries for matplotly figure publishing.
//
// # Overview
//
// Matplotly converts serialized matplotlib figures into plotly documents
// and publishes them to the plotly service. The pkg directory is organized
// into four main areas:
//
//  1. [figure] / [exporter] - Figure model and traversal
//  2. [renderer] / [plotly] - Document construction and the plotly schema
//  3. [integrations] / [credentials] - The upload client and account state
//  4. [pipeline] - Orchestration (load → export → publish)
//
// # Architecture
//
// The typical data flow through matplotly:
//
//	Serialized figure (JSON)
//	         ↓
//	    [figure] package (model + validation)
//	         ↓
//	    [exporter] package (axes-by-axes traversal)
//	         ↓
//	    [renderer] package (plotly traces + layout)
//	         ↓
//	    [integrations/plotly] package (clientresp upload)
//	         ↓
//	    Shareable URL
//
// # Quick Start
//
// Convert a figure and upload it:
//
//	import (
//	    "context"
//	    "github.com/mpld3/matplotlylib/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:    "figure.json",
//	    Filename: "my plot",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.URL)
//
// # Main Packages
//
// ## Figure Model and Export
//
// [figure] - The serialized matplotlib figure model: axes, lines, markers,
// paths, collections, text, and images, with validation and JSON I/O.
//
// [exporter] - Event-driven traversal of a figure. Export walks the figure
// in drawing order and calls a Renderer for each element.
//
// [renderer] - The plotly renderer. Builds traces and layout from exporter
// events: margin and domain math, bar chart detection, dash and symbol
// conversion, annotation placement.
//
// [plotly] - The plotly document model: key whitelists per object kind,
// Clean/Strip/Validate/Repair operations, and JSON serialization.
//
// ## Infrastructure
//
// [cache] - Cache backends (file, Redis, null) with content-hash keys for
// exported documents and HTTP responses.
//
// [credentials] - TOML credentials file with environment overrides.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Optional hooks for metrics and tracing.
//
// ## External Integrations
//
// [integrations] - Base HTTP client with caching and retries.
//
// [integrations/plotly] - The clientresp upload client.
//
// ## Orchestration
//
// [pipeline] - Complete publishing pipeline (load → export → publish) used
// by the CLI and library callers. Ensures consistent behavior across all
// entry points.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/renderer/...     # Specific package
//
// [figure]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/figure
// [exporter]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/exporter
// [renderer]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/renderer
// [plotly]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/plotly
// [cache]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/cache
// [credentials]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/credentials
// [errors]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/observability
// [integrations]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/integrations
// [integrations/plotly]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/integrations/plotly
// [pipeline]: https://pkg.go.dev/github.com/mpld3/matplotlylib/pkg/pipeline
package pkg
