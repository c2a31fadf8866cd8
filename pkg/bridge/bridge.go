// Package bridge implements a history.Source whose real navigation stack
// lives in a browser on the far side of a WebSocket connection.
//
// The server keeps a mirror of the browser's current entry. Push and
// Replace update the mirror and send a frame telling the client to call
// the corresponding history mutation; pop frames arrive when the user
// traverses back/forward and are surfaced through Listen, exactly like the
// implicit-navigation signal of any other source.
package bridge

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vroute/pkg/history"
)

// Default I/O deadlines for the bridge connection.
const (
	DefaultReadTimeout  = 60 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// Source mirrors a browser's history over a WebSocket. It satisfies
// history.Source once a connection is attached.
type Source struct {
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	current history.Entry

	listeners listenerList
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger for read-loop and write errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithReadTimeout sets the per-message read deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.readTimeout = d
	}
}

// WithWriteTimeout sets the per-message write deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.writeTimeout = d
	}
}

// New creates an unattached Source.
func New(opts ...Option) *Source {
	s := &Source{
		logger:       slog.Default(),
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach binds the connection and synchronously consumes the hello frame,
// so the mirror is primed before any store wraps this source. Call
// ReadLoop afterwards to receive pop frames.
func (s *Source) Attach(conn *websocket.Conn) error {
	conn.SetReadDeadline(time.Now().Add(s.readTimeout))

	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		return fmt.Errorf("bridge: reading handshake: %w", err)
	}
	if err := frame.validate(); err != nil {
		return err
	}
	if frame.Type != FrameHello {
		return fmt.Errorf("%w: expected %s frame, got %s", ErrInvalidFrame, FrameHello, frame.Type)
	}

	s.mu.Lock()
	s.conn = conn
	s.current = history.Entry{Path: frame.Href, State: frame.State}
	s.mu.Unlock()
	return nil
}

// Attached reports whether a connection is bound.
func (s *Source) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// ReadLoop reads frames until the connection closes or errors. Pop frames
// update the mirror and signal listeners; everything else is logged and
// skipped. The method blocks; run it on its own goroutine.
func (s *Source) ReadLoop() {
	for {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			return
		}

		conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("bridge: read error", "error", err)
			}
			return
		}

		if err := frame.validate(); err != nil {
			s.logger.Error("bridge: dropping frame", "error", err)
			continue
		}

		switch frame.Type {
		case FramePop:
			s.mu.Lock()
			s.current = history.Entry{Path: frame.Href, State: frame.State}
			s.mu.Unlock()
			s.listeners.emit()

		case FrameHello:
			// Late hello, e.g. after a client-side reload on the same
			// connection: treat it as a silent re-sync.
			s.mu.Lock()
			s.current = history.Entry{Path: frame.Href, State: frame.State}
			s.mu.Unlock()
		}
	}
}

// Close closes the attached connection, which also ends ReadLoop.
func (s *Source) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Location implements history.Source.
func (s *Source) Location() (path, search string) {
	s.mu.Lock()
	href := s.current.Path
	s.mu.Unlock()

	if href == "" {
		href = "/"
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		return href[:i], href[i:]
	}
	return href, ""
}

// State implements history.Source.
func (s *Source) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.State
}

// Push implements history.Source: update the mirror and tell the browser
// to push.
func (s *Source) Push(to string, state any) {
	s.send(FramePush, to, state)
}

// Replace implements history.Source.
func (s *Source) Replace(to string, state any) {
	s.send(FrameReplace, to, state)
}

// Listen implements history.Source. Listeners fire on pop frames.
func (s *Source) Listen(fn func()) (cancel func()) {
	return s.listeners.add(fn)
}

// send writes one mutation frame and updates the mirror. A mutation before
// attach is dropped and logged, leaving the mirror untouched: the mirror
// only ever reflects entries the browser has been told about. A write
// failure on a live connection keeps the mirror update so local reads stay
// consistent even on a wedged connection.
func (s *Source) send(ft FrameType, to string, state any) {
	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		s.logger.Error("bridge: mutation before attach", "type", string(ft), "error", ErrNotAttached)
		return
	}
	s.current = history.Entry{Path: to, State: state}
	conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	err := conn.WriteJSON(Frame{Type: ft, Href: to, State: state})
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("bridge: write error", "type", string(ft), "error", err)
	}
}

// listenerList is the bridge's back/forward listener bookkeeping:
// registration order preserved, copy-before-notify.
type listenerList struct {
	mu     sync.Mutex
	nextID uint64
	subs   []listener
}

type listener struct {
	id uint64
	fn func()
}

func (l *listenerList) add(fn func()) (cancel func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, listener{id: id, fn: fn})
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

func (l *listenerList) emit() {
	l.mu.Lock()
	subs := make([]listener, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
