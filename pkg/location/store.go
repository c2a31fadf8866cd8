package location

import (
	"log/slog"
	"reflect"
	"sync"
)

// Observer receives store events for instrumentation. Implementations must
// be safe for concurrent use. See the instrument package for a Prometheus
// backed implementation.
type Observer interface {
	// Notified is called once per delivery pass in which the named store's
	// projected value changed.
	Notified(store string)

	// Subscribers is called with the store's subscriber count after every
	// subscribe and unsubscribe.
	Subscribers(store string, n int)
}

// Store is one observable projection of a Hub: the resolved path, the
// search string, or the history state.
//
// Snapshot reads are recomputed from the source on every call, so a store
// with no subscribers never serves a stale value. Subscribers are notified
// in registration order; a panicking subscriber is isolated and logged so
// the rest of the pass still runs.
type Store[T any] struct {
	name    string
	hub     *Hub
	project func() T
	equal   func(a, b T) bool

	mu     sync.Mutex
	last   T
	subs   []storeSub[T]
	nextID uint64
}

type storeSub[T any] struct {
	id uint64
	fn func(T)
}

func newStore[T any](name string, hub *Hub, project func() T, equal func(a, b T) bool) *Store[T] {
	return &Store[T]{
		name:    name,
		hub:     hub,
		project: project,
		equal:   equal,
	}
}

// Name returns the projection name ("path", "search" or "state").
func (s *Store[T]) Name() string {
	return s.name
}

// Snapshot returns the current projected value.
func (s *Store[T]) Snapshot() T {
	return s.project()
}

// Subscribe registers fn and returns its cancel. The first subscription
// across the hub's stores attaches the host listener; cancelling the last
// one detaches it. Each registration has its own identity, so cancel is
// idempotent and never removes a later re-registration of the same
// function.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.hub.retain()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, storeSub[T]{id: id, fn: fn})
	n := len(s.subs)
	s.mu.Unlock()

	s.observeSubscribers(n)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
			n := len(s.subs)
			s.mu.Unlock()

			s.observeSubscribers(n)
			s.hub.release()
		})
	}
}

// prime records the current projection as the last delivered value. Called
// when the hub goes active so the first host signal is compared against
// reality, not a zero value.
func (s *Store[T]) prime() {
	val := s.project()
	s.mu.Lock()
	s.last = val
	s.mu.Unlock()
}

// deliver recomputes the projection and, only if it differs from the last
// delivered value, notifies every subscriber exactly once, synchronously,
// in registration order.
func (s *Store[T]) deliver() {
	val := s.project()

	s.mu.Lock()
	if s.equal(s.last, val) {
		s.mu.Unlock()
		return
	}
	s.last = val
	subs := make([]storeSub[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if obs := s.hub.observer; obs != nil && len(subs) > 0 {
		obs.Notified(s.name)
	}

	for _, sub := range subs {
		s.notifyOne(sub, val)
	}
}

// notifyOne invokes a single subscriber, containing panics so one failing
// callback cannot starve the rest of the pass.
func (s *Store[T]) notifyOne(sub storeSub[T], val T) {
	defer func() {
		if r := recover(); r != nil {
			s.hub.logger.Error("location: subscriber panicked",
				slog.String("store", s.name),
				slog.Any("panic", r))
		}
	}()
	sub.fn(val)
}

// reset drops every subscriber. Used by Hub.Close.
func (s *Store[T]) reset() {
	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
}

func (s *Store[T]) observeSubscribers(n int) {
	if obs := s.hub.observer; obs != nil {
		obs.Subscribers(s.name, n)
	}
}

// stringsEqual is the equality used for path and search projections.
func stringsEqual(a, b string) bool { return a == b }

// stateEqual is the shallow equality used for history state: comparable
// values of the same dynamic type compare by ==, everything else counts as
// changed.
func stateEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
