package terminal

import "fmt"

// EventType discriminates Event payloads
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventPaste
	EventResize
	EventError
	EventClosed
)

// Event is a single input occurrence delivered on the backend channel.
// Only the fields for the event's Type are meaningful.
type Event struct {
	Type EventType

	// EventKey
	Key       Key
	Rune      rune
	Modifiers Modifier

	// EventMouse
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction

	// EventPaste
	Text string

	// EventResize
	Width  int
	Height int

	// EventError
	Err error
}

// String renders the event for logs and probes
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		if e.Key == KeyRune {
			if e.Modifiers != ModNone {
				return fmt.Sprintf("Key(%s+%q)", e.Modifiers, e.Rune)
			}
			return fmt.Sprintf("Key(%q)", e.Rune)
		}
		if e.Modifiers != ModNone {
			return fmt.Sprintf("Key(%s+%s)", e.Modifiers, e.Key)
		}
		return fmt.Sprintf("Key(%s)", e.Key)
	case EventMouse:
		if e.Modifiers != ModNone {
			return fmt.Sprintf("Mouse(%s %s %s at %d,%d)", e.Modifiers, e.MouseBtn, e.MouseAction, e.MouseX, e.MouseY)
		}
		return fmt.Sprintf("Mouse(%s %s at %d,%d)", e.MouseBtn, e.MouseAction, e.MouseX, e.MouseY)
	case EventPaste:
		return fmt.Sprintf("Paste(%d bytes)", len(e.Text))
	case EventResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	case EventError:
		return fmt.Sprintf("Error(%v)", e.Err)
	case EventClosed:
		return "Closed"
	}
	return fmt.Sprintf("Event(%d)", e.Type)
}
