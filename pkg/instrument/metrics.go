// Package instrument provides optional observability hooks for the
// routing core: a Prometheus-backed observer for the pattern cache and
// location stores, and an OpenTelemetry-traced matcher decorator.
package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vroute/pkg/location"
	"github.com/vango-dev/vroute/pkg/pattern"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vroute",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics observes the compilation cache and the location stores.
//
// Metrics collected:
//   - vroute_pattern_cache_hits_total: Counter of cache hits
//   - vroute_pattern_cache_misses_total: Counter of compilations
//   - vroute_notifications_total: Counter of delivery passes by store
//   - vroute_store_subscribers: Gauge of active subscribers by store
//
// Wire it into both engines:
//
//	m := instrument.Prometheus()
//	compiler := pattern.NewCompiler(pattern.WithCacheObserver(m))
//	hub, err := location.NewHub(src, location.WithObserver(m))
type Metrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	notifications *prometheus.CounterVec
	subscribers   *prometheus.GaugeVec
}

var (
	_ pattern.CacheObserver = (*Metrics)(nil)
	_ location.Observer     = (*Metrics)(nil)
)

// Prometheus creates a Metrics observer and registers its collectors.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pattern_cache_hits_total",
			Help:        "Total pattern compilations served from cache",
			ConstLabels: config.ConstLabels,
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pattern_cache_misses_total",
			Help:        "Total pattern compilations that built a new entry",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total store delivery passes that notified subscribers",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_subscribers",
			Help:        "Active subscribers per location store",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),
	}
}

// CacheHit implements pattern.CacheObserver. The pattern text is not used
// as a label to keep cardinality bounded.
func (m *Metrics) CacheHit(string) {
	m.cacheHits.Inc()
}

// CacheMiss implements pattern.CacheObserver.
func (m *Metrics) CacheMiss(string) {
	m.cacheMisses.Inc()
}

// Notified implements location.Observer.
func (m *Metrics) Notified(store string) {
	m.notifications.WithLabelValues(store).Inc()
}

// Subscribers implements location.Observer.
func (m *Metrics) Subscribers(store string, n int) {
	m.subscribers.WithLabelValues(store).Set(float64(n))
}
