package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or
// contexts need separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private circuits
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared results
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

// ResultKey generates a prefixed key for synthesis result caching.
func (k *ScopedKeyer) ResultKey(circuitHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(circuitHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(circuitHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(circuitHash, format)
}
