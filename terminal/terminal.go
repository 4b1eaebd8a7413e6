package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/status"
)

// ErrNotTerminal is returned by Start when stdin or stdout is not a tty.
var ErrNotTerminal = errors.New("terminal: not a terminal")

// Backend is the command sink a renderer drives. Commands accumulate in the
// backend until Flush; nothing is guaranteed to reach the terminal before
// Flush returns.
type Backend interface {
	// Start enters raw mode and the alternate screen, hides the cursor,
	// and begins delivering input on Events.
	Start() error

	// Stop restores the terminal. Safe to call multiple times and after
	// a failed Start.
	Stop()

	// Size returns current terminal dimensions in cells.
	Size() (width, height int)

	// Events returns the input event channel. A backend that can no
	// longer read input delivers EventClosed or EventError and stops.
	Events() <-chan Event

	// MoveTo positions the cursor (0-indexed).
	MoveTo(x, y int)

	// SetForeground and SetBackground change the pen colors. Reset and
	// unset colors select the terminal default.
	SetForeground(c grid.Color)
	SetBackground(c grid.Color)

	// EnableAttr and DisableAttr toggle text attributes. On an ANSI
	// terminal disabling bold or dim clears both (shared intensity
	// attribute); AppendAttrOps compensates.
	EnableAttr(m grid.Modifier)
	DisableAttr(m grid.Modifier)

	// Print places one grapheme cluster at the cursor, which advances by
	// the grapheme's display width.
	Print(grapheme string)

	// Reset returns pen colors and attributes to terminal defaults.
	Reset()

	// Flush writes buffered commands to the terminal.
	Flush() error
}

// Options configures backend construction. The zero value detects color
// support from the environment and enables neither mouse reporting nor
// bracketed paste.
type Options struct {
	ColorMode      ColorMode
	Mouse          MouseMode
	BracketedPaste bool

	// Metrics receives backend counters when non-nil.
	Metrics *status.Registry
}

// New creates a backend by name: "ansi" (default) or "tcell".
func New(name string, opts Options) (Backend, error) {
	switch name {
	case "", "ansi":
		return NewANSI(opts), nil
	case "tcell":
		return NewTcell(opts), nil
	}
	return nil, fmt.Errorf("terminal: unknown backend %q", name)
}

// EmergencyReset attempts to restore the terminal to a sane state without
// consulting any backend state. Call from panic recovery when Stop cannot
// be reached.
func EmergencyReset(w io.Writer) {
	// Disable mouse tracking and bracketed paste
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiPasteOff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetCookedMode()
}
