// Package event defines the platform-neutral event vocabulary delivered to
// window handlers, and the status result a handler returns.
//
// Each platform adapter produces exactly one Event per logically distinct
// native notification. Coordinates are converted from physical to logical
// pixel space at normalization time, using the scale factor current at that
// moment.
package event

import "github.com/ingo-dsp/baseview/dpi"

// Status is the result of a handler invocation. Adapters that must decide
// whether to forward an event to default native processing (keyboard only)
// consult it.
type Status int

const (
	// Ignored means the handler did not consume the event; the adapter may
	// forward it to default native processing.
	Ignored Status = iota
	// Captured means the handler consumed the event.
	Captured
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Captured:
		return "captured"
	default:
		return "unknown"
	}
}

// Event is one normalized window, mouse or keyboard event. Events are
// immutable values; the concrete types below are the full set.
type Event interface {
	isEvent()
}

// WindowResized reports that the window geometry changed. Info carries the
// reconciled logical size, physical size and scale factor.
type WindowResized struct {
	Info dpi.WindowInfo
}

// WindowWillClose is delivered exactly once, before any native resource of
// the window is released, so the handler can clean up while the window is
// still nominally alive.
type WindowWillClose struct{}

// CursorMoved reports a pointer move in logical coordinates.
type CursorMoved struct {
	Position dpi.Point
}

// ButtonPressed reports a mouse button going down.
type ButtonPressed struct {
	Button MouseButton
}

// ButtonReleased reports a mouse button going up.
type ButtonReleased struct {
	Button MouseButton
}

// WheelScrolled reports wheel movement in lines.
type WheelScrolled struct {
	DeltaX float64
	DeltaY float64
}

// KeyPressed reports a key going down.
type KeyPressed struct {
	Key KeyboardEvent
}

// KeyReleased reports a key going up.
type KeyReleased struct {
	Key KeyboardEvent
}

func (WindowResized) isEvent()   {}
func (WindowWillClose) isEvent() {}
func (CursorMoved) isEvent()     {}
func (ButtonPressed) isEvent()   {}
func (ButtonReleased) isEvent()  {}
func (WheelScrolled) isEvent()   {}
func (KeyPressed) isEvent()      {}
func (KeyReleased) isEvent()     {}

// MouseButton identifies a mouse button, including the extended back and
// forward buttons.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseBack
	MouseForward
)

// String returns the string representation of the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseBack:
		return "back"
	case MouseForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Modifiers is a bit set of the modifier keys held during a keyboard event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// KeyboardEvent is the decoded form of one native key message, produced by
// the platform keyboard collaborator.
type KeyboardEvent struct {
	// Code is the raw platform key code (X11 keycode, win32 virtual key).
	Code uint32
	// Label is the platform-neutral name of the key ("a", "Return", ...).
	Label string
	// Rune is the character produced by the key, or 0 when none applies.
	Rune rune
	// Modifiers holds the modifier state at the time of the event.
	Modifiers Modifiers
}
