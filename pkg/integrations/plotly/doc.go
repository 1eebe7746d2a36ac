// Package plotly provides a client for the plotly upload API.
//
// # Overview
//
// The service accepts a complete figure document in a single form-encoded
// POST to its clientresp endpoint. The trace list travels in the args
// field and the remaining plot parameters (filename, file option, layout,
// visibility) in the kwargs field, both as JSON. The response carries the
// shareable URL of the stored figure.
//
// # Usage
//
//	client := plotly.NewClient(nil, plotly.Config{
//		Username: "demo",
//		APIKey:   "abc123",
//	})
//	resp, err := client.Plot(ctx, doc, plotly.PlotOptions{Filename: "my plot"})
//	// resp.URL -> https://plot.ly/~demo/42
//
// Errors reported by the service in an otherwise successful HTTP exchange
// surface as [errors.ErrCodeRejected] or [errors.ErrCodeUnauthorized];
// warnings and informational messages are returned on [PlotResponse] for
// the caller to log.
package plotly
