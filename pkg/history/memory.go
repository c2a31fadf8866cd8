package history

import "strings"

// Memory is an in-memory navigation source backed by a real entry stack.
// Back and Forward emit the implicit-navigation signal; Push and Replace
// do not, matching the Source contract.
type Memory struct {
	stack   *entryStack
	signals signalList
}

// NewMemory creates a Memory source positioned at initial. An empty
// initial path defaults to "/".
func NewMemory(initial string) *Memory {
	return &Memory{
		stack: newEntryStack(Entry{Path: normalizePath(initial)}),
	}
}

// Location implements Source.
func (m *Memory) Location() (path, search string) {
	return splitSearch(m.stack.current().Path)
}

// State implements Source.
func (m *Memory) State() any {
	return m.stack.current().State
}

// Push implements Source. Entries ahead of the current one are discarded.
func (m *Memory) Push(to string, state any) {
	m.stack.push(Entry{Path: normalizePath(to), State: state})
}

// Replace implements Source.
func (m *Memory) Replace(to string, state any) {
	m.stack.replace(Entry{Path: normalizePath(to), State: state})
}

// Listen implements Source.
func (m *Memory) Listen(fn func()) (cancel func()) {
	return m.signals.add(fn)
}

// Back traverses one entry toward the oldest and signals listeners. It is
// a no-op at the bottom of the stack.
func (m *Memory) Back() {
	if m.stack.back() {
		m.signals.emit()
	}
}

// Forward traverses one entry toward the newest and signals listeners. It
// is a no-op at the top of the stack.
func (m *Memory) Forward() {
	if m.stack.forward() {
		m.signals.emit()
	}
}

// Len returns the number of entries on the stack.
func (m *Memory) Len() int {
	return m.stack.len()
}

// normalizePath forces an absolute path.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
