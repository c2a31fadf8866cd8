package bridge

import (
	"errors"
	"fmt"
)

// FrameType identifies a bridge frame.
type FrameType string

const (
	// FrameHello is the handshake, client → server: the browser reports
	// its current href and history state.
	FrameHello FrameType = "hello"

	// FramePush is server → client: push a new history entry.
	FramePush FrameType = "push"

	// FrameReplace is server → client: replace the current history entry.
	FrameReplace FrameType = "replace"

	// FramePop is client → server: the browser completed a back/forward
	// traversal and reports where it landed.
	FramePop FrameType = "pop"
)

// Frame is one bridge message. Frames are small and infrequent, so they
// travel as JSON text messages.
type Frame struct {
	Type  FrameType `json:"type"`
	Href  string    `json:"href,omitempty"`
	State any       `json:"state,omitempty"`
}

// Frame errors.
var (
	ErrInvalidFrame = errors.New("bridge: invalid frame")
	ErrNotAttached  = errors.New("bridge: no connection attached")
)

// validate checks the invariants of an inbound frame.
func (f *Frame) validate() error {
	switch f.Type {
	case FrameHello, FramePop:
		if f.Href == "" {
			return fmt.Errorf("%w: %s frame without href", ErrInvalidFrame, f.Type)
		}
		return nil
	case FramePush, FrameReplace:
		// Server-originated; a client must not send these.
		return fmt.Errorf("%w: unexpected %s frame from client", ErrInvalidFrame, f.Type)
	default:
		return fmt.Errorf("%w: unknown frame type %q", ErrInvalidFrame, f.Type)
	}
}
