package location

import (
	"sync"

	"github.com/vango-dev/vroute/pkg/history"
)

// hubKey identifies a hub configuration: one source binding under one base
// path. Two requests with equal keys share a single hub, so they share its
// host listener and subscriber bookkeeping.
type hubKey struct {
	source history.Source
	base   string
}

// Registry lazily creates and shares Hubs per configuration. It replaces a
// module-level singleton: construct one per process (or per test) and tear
// it down with Close.
type Registry struct {
	mu   sync.Mutex
	hubs map[hubKey]*Hub
	opts []HubOption
}

// NewRegistry creates an empty registry. The given options are applied to
// every hub it constructs (WithBase is ignored here; the base comes from
// the Hub call).
func NewRegistry(opts ...HubOption) *Registry {
	return &Registry{
		hubs: make(map[hubKey]*Hub),
		opts: opts,
	}
}

// Hub returns the hub for (source, base), creating it on first request.
func (r *Registry) Hub(source history.Source, base string) (*Hub, error) {
	if source == nil {
		return nil, ErrNoSource
	}

	key := hubKey{source: source, base: base}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.hubs[key]; ok {
		return h, nil
	}

	opts := append(append([]HubOption{}, r.opts...), WithBase(base))
	h, err := NewHub(source, opts...)
	if err != nil {
		return nil, err
	}
	r.hubs[key] = h
	return h, nil
}

// Len returns the number of distinct hubs created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hubs)
}

// Close tears down every hub and empties the registry. Subsequent Hub
// calls start fresh.
func (r *Registry) Close() {
	r.mu.Lock()
	hubs := r.hubs
	r.hubs = make(map[hubKey]*Hub)
	r.mu.Unlock()

	for _, h := range hubs {
		h.Close()
	}
}
