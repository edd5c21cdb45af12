package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP service uses this so different users or contexts get separate
// cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private charts
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared documents
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

// SolveKey generates a prefixed key for solve result caching.
func (k *ScopedKeyer) SolveKey(docHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solveHash, opts)
}
