// Package integrations provides HTTP clients for remote plotting services.
//
// # Overview
//
// Each service has its own subpackage; currently that is [plotly], the
// hosted plotting service figures are published to.
//
// # Client Pattern
//
// Service clients embed the shared [Client], which handles:
//   - HTTP requests with retry and backoff
//   - Response caching through a [cache.Cache] backend
//   - Common request headers
//
// A typical construction:
//
//	backend, _ := cache.NewFileCache("")
//	client := plotly.NewClient(backend, creds)
//	resp, err := client.Plot(ctx, doc, opts)
//
// [plotly]: github.com/mpld3/matplotlylib/pkg/integrations/plotly
// [cache.Cache]: github.com/mpld3/matplotlylib/pkg/cache.Cache
package integrations
