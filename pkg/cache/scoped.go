package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Shared backends (Redis) use this so different users or projects sharing
// one cache instance never collide.
//
// Example usage:
//
//	// Per-user keys on a shared Redis instance
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:alice:")
//
//	// Global keys for local file caching
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ExportKey generates a prefixed key for exported document caching.
func (k *ScopedKeyer) ExportKey(figureHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(figureHash, opts)
}
