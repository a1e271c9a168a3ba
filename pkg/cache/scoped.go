package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when one cache backend serves multiple curators whose
// boards must not collide.
//
// Example usage:
//
//	// Per-curator keys for private boards
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "curator:abc123:")
//
//	// Global keys for shared platform charts
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

// CandidateKey generates a prefixed key for candidate caching.
func (k *ScopedKeyer) CandidateKey(platform string, opts CandidateKeyOpts) string {
	return k.prefix + k.inner.CandidateKey(platform, opts)
}

// BoardKey generates a prefixed key for board caching.
func (k *ScopedKeyer) BoardKey(trendsHash string, opts BoardKeyOpts) string {
	return k.prefix + k.inner.BoardKey(trendsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(boardHash, opts)
}
