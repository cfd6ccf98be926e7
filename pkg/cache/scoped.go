package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. This is
// useful when several deployments share one redis or mongo instance and
// need separate cache namespaces.
//
// Example usage:
//
//	// Keys scoped to one deployment
//	editionKeyer := NewScopedKeyer(NewDefaultKeyer(), "edition:xyz:")
//
//	// Unscoped keys
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

// ScoreKey generates a prefixed key for a fetched score document.
func (k *ScopedKeyer) ScoreKey(source, ref string) string {
	return k.prefix + k.inner.ScoreKey(source, ref)
}

// LayoutKey generates a prefixed key for processed layout state.
func (k *ScopedKeyer) LayoutKey(scoreHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(scoreHash, opts)
}

// ArtifactKey generates a prefixed key for an exported artifact.
func (k *ScopedKeyer) ArtifactKey(scoreHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scoreHash, opts)
}
