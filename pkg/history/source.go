package history

import (
	"strings"
	"sync"
)

// Entry is one navigation stack entry: a location plus its associated
// opaque state.
type Entry struct {
	// Path is the full location, including any ?-prefixed search string.
	Path string

	// State is opaque data attached at push/replace time and recovered
	// after back/forward traversal to this entry.
	State any
}

// Source is the host navigation contract. Implementations must be safe for
// concurrent use.
type Source interface {
	// Location returns the current path and the ?-prefixed search string
	// (or "" when there is none).
	Location() (path, search string)

	// State returns the state attached to the current entry.
	State() any

	// Push adds a new entry on top of the current one, discarding any
	// forward entries. It does not signal listeners.
	Push(to string, state any)

	// Replace overwrites the current entry in place. It does not signal
	// listeners.
	Replace(to string, state any)

	// Listen registers fn to be called on implicit navigation
	// (back/forward). The returned cancel removes the registration.
	Listen(fn func()) (cancel func())
}

// splitSearch splits a location into its path and ?-prefixed search parts.
func splitSearch(loc string) (path, search string) {
	if i := strings.IndexByte(loc, '?'); i >= 0 {
		return loc[:i], loc[i:]
	}
	return loc, ""
}

// signalList manages back/forward listeners. Registration order is
// preserved and notification copies the list first so a callback may
// cancel itself.
type signalList struct {
	mu     sync.Mutex
	nextID uint64
	subs   []signalSub
}

type signalSub struct {
	id uint64
	fn func()
}

func (l *signalList) add(fn func()) (cancel func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, signalSub{id: id, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *signalList) emit() {
	l.mu.Lock()
	subs := make([]signalSub, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

// entryStack is the shared stack bookkeeping behind Memory and Hash.
type entryStack struct {
	mu      sync.Mutex
	entries []Entry
	index   int
}

func newEntryStack(initial Entry) *entryStack {
	return &entryStack{entries: []Entry{initial}}
}

func (s *entryStack) current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index]
}

func (s *entryStack) push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.index+1], e)
	s.index = len(s.entries) - 1
}

func (s *entryStack) replace(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.index] = e
}

// back moves toward the oldest entry; it reports whether the index moved.
func (s *entryStack) back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// forward moves toward the newest entry; it reports whether the index moved.
func (s *entryStack) forward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == len(s.entries)-1 {
		return false
	}
	s.index++
	return true
}

func (s *entryStack) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
