package location

import "strings"

// NavigateOptions configures a navigation.
type NavigateOptions struct {
	// Replace overwrites the current history entry instead of pushing a
	// new one.
	Replace bool

	// State is opaque data attached to the target entry, recoverable from
	// the state store after navigation and after back/forward traversal.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches state to the target history entry.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}

// Navigate mutates the host source and synchronously runs the notification
// pass, so a snapshot read after Navigate returns the new value. The base
// path is prefixed onto to unless to carries the absolute-escape marker,
// which addresses the host verbatim.
//
// Push and Replace on the host are silent by contract; Navigate is the
// bridge that makes dispatcher-originated changes observable.
func (h *Hub) Navigate(to string, opts ...NavigateOption) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	target := to
	if strings.HasPrefix(to, EscapePrefix) {
		target = strings.TrimPrefix(to, EscapePrefix)
	} else if h.base != "" {
		target = h.base + to
	}

	if options.Replace {
		h.source.Replace(target, options.State)
	} else {
		h.source.Push(target, options.State)
	}

	h.sync()
}

// Href builds the absolute href for a navigation target: the base prefix
// plus to, or to verbatim (marker stripped) when it carries the
// absolute-escape marker.
func (h *Hub) Href(to string) string {
	if strings.HasPrefix(to, EscapePrefix) {
		return strings.TrimPrefix(to, EscapePrefix)
	}
	return h.base + to
}
