package cache

// ScopedKeyer wraps a Keyer with a prefix, so clients talking to different
// backends can share one cache without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), BackendScope("https://api.example.com"))
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

// BackendScope returns a short, stable prefix for a backend base URL.
func BackendScope(baseURL string) string {
	return "backend:" + Hash([]byte(baseURL))[:12] + ":"
}

// GenerationKey returns the prefixed generation key.
func (k *ScopedKeyer) GenerationKey() string {
	return k.prefix + k.inner.GenerationKey()
}

// ListKey returns the prefixed list key.
func (k *ScopedKeyer) ListKey(generation string, page, limit int) string {
	return k.prefix + k.inner.ListKey(generation, page, limit)
}
