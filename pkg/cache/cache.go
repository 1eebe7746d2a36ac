// Package cache provides caching for the export pipeline and HTTP clients.
//
// Three backends implement the [Cache] interface:
//   - [FileCache]: file-based cache for CLI usage (~/.cache/matplotly/)
//   - [RedisCache]: shared cache for CI runners and multi-user setups
//   - [NullCache]: no-op cache when caching is disabled
//
// Cache keys are generated by a [Keyer] so that the CLI and library callers
// produce identical keys for identical inputs. Keys hash the figure content
// together with the export options, so changing either invalidates the entry.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cache entry kinds.
const (
	// TTLExport is how long exported plotly documents are kept. Export is
	// deterministic, so entries only expire to bound disk usage.
	TTLExport = 7 * 24 * time.Hour

	// TTLHTTP is how long remote API responses are kept.
	TTLHTTP = 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ExportKeyOpts are the export options that participate in export cache keys.
// Two exports of the same figure with different options must not collide.
type ExportKeyOpts struct {
	Resize     bool
	StripStyle bool
}

// Keyer generates cache keys for the different entry kinds.
type Keyer interface {
	// HTTPKey generates a key for a raw HTTP response.
	HTTPKey(namespace, key string) string

	// ExportKey generates a key for an exported plotly document,
	// derived from the figure content hash and the export options.
	ExportKey(figureHash string, opts ExportKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}

// ExportKey generates a key for exported document caching.
func (k *DefaultKeyer) ExportKey(figureHash string, opts ExportKeyOpts) string {
	return hashKey("export", figureHash, opts)
}
