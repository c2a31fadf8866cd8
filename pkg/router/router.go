package router

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/vroute/pkg/history"
	"github.com/vango-dev/vroute/pkg/location"
	"github.com/vango-dev/vroute/pkg/pattern"
)

// Router binds a location hub to a matcher. It answers "which pattern
// applies to where we are now" and forwards navigation and subscription to
// its hub.
type Router struct {
	hub     *location.Hub
	matcher pattern.Matcher
}

// config collects constructor options before the hub exists.
type config struct {
	hub     *location.Hub
	source  history.Source
	base    string
	matcher pattern.Matcher
	logger  *slog.Logger
	hubOpts []location.HubOption
}

// Option configures a Router.
type Option func(*config)

// WithSource sets the host navigation source the router's hub wraps.
func WithSource(src history.Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithBase mounts the router under a base path.
func WithBase(base string) Option {
	return func(c *config) {
		c.base = base
	}
}

// WithMatcher replaces the default compiler-backed matcher.
func WithMatcher(m pattern.Matcher) Option {
	return func(c *config) {
		c.matcher = m
	}
}

// WithHub injects a prebuilt hub, e.g. one shared through a
// location.Registry. WithSource and WithBase are ignored when a hub is
// injected; the hub already carries both.
func WithHub(h *location.Hub) Option {
	return func(c *config) {
		c.hub = h
	}
}

// WithLogger sets the logger for the hub the router constructs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHubOptions forwards extra options (e.g. location.WithObserver) to
// the hub the router constructs.
func WithHubOptions(opts ...location.HubOption) Option {
	return func(c *config) {
		c.hubOpts = append(c.hubOpts, opts...)
	}
}

// New creates a Router. A host source (or a prebuilt hub) is required; its
// absence is reported here, not on first use.
func New(opts ...Option) (*Router, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	hub := cfg.hub
	if hub == nil {
		hubOpts := append([]location.HubOption{location.WithBase(cfg.base)}, cfg.hubOpts...)
		if cfg.logger != nil {
			hubOpts = append(hubOpts, location.WithLogger(cfg.logger))
		}
		var err error
		hub, err = location.NewHub(cfg.source, hubOpts...)
		if err != nil {
			return nil, err
		}
	}

	matcher := cfg.matcher
	if matcher == nil {
		matcher = pattern.NewCompiler()
	}

	return &Router{hub: hub, matcher: matcher}, nil
}

// Hub returns the router's location hub.
func (r *Router) Hub() *location.Hub {
	return r.hub
}

// Matcher returns the configured matcher.
func (r *Router) Matcher() pattern.Matcher {
	return r.matcher
}

// Base returns the configured base path.
func (r *Router) Base() string {
	return r.hub.Base()
}

// Location returns the current resolved path.
func (r *Router) Location() string {
	return r.hub.Location()
}

// Search returns the current ?-prefixed search string, or "".
func (r *Router) Search() string {
	return r.hub.Search().Snapshot()
}

// Subscribe observes resolved-path changes.
func (r *Router) Subscribe(fn func(path string)) (cancel func()) {
	return r.hub.Path().Subscribe(fn)
}

// Navigate forwards to the hub's dispatcher.
func (r *Router) Navigate(to string, opts ...location.NavigateOption) {
	r.hub.Navigate(to, opts...)
}

// Href builds a base-aware absolute href for a link target.
func (r *Router) Href(to string) string {
	return r.hub.Href(to)
}

// Route matches pat against the current location. Patterns carrying the
// absolute-escape marker bypass base resolution and match the raw host
// path instead.
func (r *Router) Route(pat string) (pattern.Result, error) {
	if strings.HasPrefix(pat, location.EscapePrefix) {
		raw, _ := r.hub.Source().Location()
		return r.matcher.Match(strings.TrimPrefix(pat, location.EscapePrefix), raw)
	}
	return r.matcher.Match(pat, r.Location())
}
