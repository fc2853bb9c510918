package key

import "fmt"

// EventType identifies the phase of a key event.
type EventType uint8

const (
	// KeyDown is delivered when a button goes down.
	KeyDown EventType = iota

	// KeyPress is delivered after KeyDown and carries the char code.
	KeyPress

	// KeyUp is delivered when a button is released.
	KeyUp
)

// String returns the DOM-style event name.
func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyPress:
		return "keypress"
	case KeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// Well-known key codes.
const (
	CodeEnter  = 13
	CodeEscape = 27
	CodeLeft   = 37
	CodeUp     = 38
	CodeRight  = 39
	CodeDown   = 40
)

// Event is a single remote-control key event.
// Events are transient: they are classified and routed synchronously and
// never retained.
type Event struct {
	// Type is the event phase.
	Type EventType

	// KeyCode is the hardware-independent key code.
	KeyCode int

	// CharCode is the character code. Hosts only fill it in for KeyPress.
	CharCode int

	// Synthetic marks events that were generated by the application
	// rather than by real key input (for example a click equivalent).
	Synthetic bool
}

// NewEvent creates a genuine key event.
func NewEvent(typ EventType, keyCode, charCode int) Event {
	return Event{
		Type:     typ,
		KeyCode:  keyCode,
		CharCode: charCode,
	}
}

// IsKeyboard returns true if the event came from real key input.
func (e Event) IsKeyboard() bool {
	return !e.Synthetic
}

// String returns a compact representation for logging.
func (e Event) String() string {
	return fmt.Sprintf("%s key=%d char=%d", e.Type, e.KeyCode, e.CharCode)
}
