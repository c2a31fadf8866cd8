package location

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/vango-dev/vroute/pkg/history"
)

// ErrNoSource is returned when a Hub is constructed without a host source.
// The failure surfaces at construction time, not on first use.
var ErrNoSource = errors.New("location: no host navigation source")

// Hub binds one host source and one base path, and owns the three
// projection stores observers subscribe to. Create Hubs with NewHub or
// share them through a Registry.
type Hub struct {
	source   history.Source
	base     string
	logger   *slog.Logger
	observer Observer

	path   *Store[string]
	search *Store[string]
	state  *Store[any]

	mu             sync.Mutex
	active         int
	cancelListener func()
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithBase mounts the hub under a base path prefix. Observed paths are
// resolved against it and navigation targets are prefixed with it.
func WithBase(base string) HubOption {
	return func(h *Hub) {
		h.base = base
	}
}

// WithLogger sets the logger used for subscriber panic reports.
func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithObserver registers an instrumentation observer.
func WithObserver(obs Observer) HubOption {
	return func(h *Hub) {
		h.observer = obs
	}
}

// NewHub creates a Hub over the given source.
func NewHub(source history.Source, opts ...HubOption) (*Hub, error) {
	if source == nil {
		return nil, ErrNoSource
	}

	h := &Hub{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.path = newStore("path", h, func() string {
		path, _ := source.Location()
		return Resolve(path, h.base)
	}, stringsEqual)

	h.search = newStore("search", h, func() string {
		_, search := source.Location()
		return search
	}, stringsEqual)

	h.state = newStore("state", h, source.State, stateEqual)

	return h, nil
}

// Base returns the configured base path.
func (h *Hub) Base() string {
	return h.base
}

// Source returns the wrapped host source.
func (h *Hub) Source() history.Source {
	return h.source
}

// Path returns the resolved-path store.
func (h *Hub) Path() *Store[string] {
	return h.path
}

// Search returns the search-string store.
func (h *Hub) Search() *Store[string] {
	return h.search
}

// State returns the history-state store.
func (h *Hub) State() *Store[any] {
	return h.state
}

// Location is shorthand for Path().Snapshot().
func (h *Hub) Location() string {
	return h.path.Snapshot()
}

// retain counts one subscription. The 0→1 transition primes the stores and
// attaches the host back/forward listener.
func (h *Hub) retain() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.active++
	if h.active == 1 {
		h.path.prime()
		h.search.prime()
		h.state.prime()
		h.cancelListener = h.source.Listen(h.sync)
	}
}

// release undoes one retain. The 1→0 transition detaches the host listener
// so an idle hub leaks nothing.
func (h *Hub) release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.active--
	if h.active == 0 && h.cancelListener != nil {
		h.cancelListener()
		h.cancelListener = nil
	}
}

// sync recomputes every projection and notifies the stores whose values
// changed. It runs synchronously on the caller's goroutine, both for host
// back/forward signals and for Navigate.
func (h *Hub) sync() {
	h.path.deliver()
	h.search.deliver()
	h.state.deliver()
}

// Close force-detaches the host listener and drops all subscribers. Used
// for registry teardown and test isolation.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.cancelListener != nil {
		h.cancelListener()
		h.cancelListener = nil
	}
	h.active = 0
	h.mu.Unlock()

	h.path.reset()
	h.search.reset()
	h.state.reset()
}
