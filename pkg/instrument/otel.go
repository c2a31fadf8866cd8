package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vroute/pkg/pattern"
)

// Default tracer name for the traced matcher.
const defaultTracerName = "vroute"

// TraceConfig configures the traced matcher.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "vroute").
	TracerName string

	// IncludePath includes the candidate path in span attributes.
	// Paths can carry user data; enabled by default, disable if that is
	// a concern.
	IncludePath bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the traced matcher.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithIncludePath enables/disables recording the candidate path.
func WithIncludePath(include bool) TraceOption {
	return func(c *TraceConfig) {
		c.IncludePath = include
	}
}

func defaultTraceConfig() TraceConfig {
	return TraceConfig{
		TracerName:  defaultTracerName,
		IncludePath: true,
	}
}

// tracedMatcher decorates a pattern.Matcher with a span per match call.
type tracedMatcher struct {
	next   pattern.Matcher
	config TraceConfig
}

// TraceMatcher wraps next so every match produces a "vroute.match" span
// with the pattern, the outcome, and (optionally) the candidate path. The
// tracer comes from the global OpenTelemetry tracer provider; configure it
// in main() before matching.
func TraceMatcher(next pattern.Matcher, opts ...TraceOption) pattern.Matcher {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &tracedMatcher{next: next, config: config}
}

// Match implements pattern.Matcher.
func (t *tracedMatcher) Match(pat, path string) (pattern.Result, error) {
	attrs := []attribute.KeyValue{
		attribute.String("vroute.pattern", pat),
	}
	if t.config.IncludePath {
		attrs = append(attrs, attribute.String("vroute.path", path))
	}

	_, span := t.config.tracer.Start(
		context.Background(),
		"vroute.match",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	res, err := t.next.Match(pat, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(attribute.Bool("vroute.matched", res.Matched))
	span.SetStatus(codes.Ok, "")
	return res, nil
}
