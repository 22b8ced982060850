package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that caches shared
// between tools (the CLI and the HTTP server, say) do not collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner uses the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(payload string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(payload, opts)
}
