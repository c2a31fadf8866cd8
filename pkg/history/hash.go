package history

import "strings"

// Hash is a navigation source addressed by the URL fragment. Entries keep
// the full href; the projected location is everything after the first "#",
// so the part of the href before the fragment never changes under Push or
// Replace. An absent or empty fragment projects as "/".
type Hash struct {
	stack   *entryStack
	signals signalList
}

// NewHash creates a Hash source positioned at the given href, e.g.
// "/index.html#/inbox". An empty href defaults to "/".
func NewHash(href string) *Hash {
	if href == "" {
		href = "/"
	}
	return &Hash{
		stack: newEntryStack(Entry{Path: href}),
	}
}

// Location implements Source. The path and search are read from the
// fragment, so "/index.html#/inbox?filter=new" projects as
// ("/inbox", "?filter=new").
func (h *Hash) Location() (path, search string) {
	return splitSearch(fragment(h.stack.current().Path))
}

// State implements Source.
func (h *Hash) State() any {
	return h.stack.current().State
}

// Push implements Source. Only the fragment of the href changes.
func (h *Hash) Push(to string, state any) {
	h.stack.push(Entry{Path: h.withFragment(to), State: state})
}

// Replace implements Source.
func (h *Hash) Replace(to string, state any) {
	h.stack.replace(Entry{Path: h.withFragment(to), State: state})
}

// Listen implements Source.
func (h *Hash) Listen(fn func()) (cancel func()) {
	return h.signals.add(fn)
}

// Back traverses one entry toward the oldest and signals listeners.
func (h *Hash) Back() {
	if h.stack.back() {
		h.signals.emit()
	}
}

// Forward traverses one entry toward the newest and signals listeners.
func (h *Hash) Forward() {
	if h.stack.forward() {
		h.signals.emit()
	}
}

// Len returns the number of entries on the stack.
func (h *Hash) Len() int {
	return h.stack.len()
}

// Href returns the full current href, fragment included.
func (h *Hash) Href() string {
	return h.stack.current().Path
}

// withFragment rewrites the fragment of the current href.
func (h *Hash) withFragment(to string) string {
	base := h.stack.current().Path
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + normalizePath(to)
}

// fragment extracts the part of href after the first "#".
func fragment(href string) string {
	i := strings.IndexByte(href, '#')
	if i < 0 || i == len(href)-1 {
		return "/"
	}
	return href[i+1:]
}
