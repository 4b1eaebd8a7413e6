// Package content ships ready-made window contents: a frame counter, a
// scrollable text viewer, an event log and a live metrics view. The core
// packages never depend on these; they exist for the demo binaries and as
// worked examples of the window.Content capability.
package content

import (
	"fmt"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
	"github.com/lixenwraith/termwin/window"
)

// Counter displays a number that grows by one every frame tick.
// Pressing 'r' restarts it at zero.
type Counter struct {
	n int
}

// NewCounter returns a counter starting at zero
func NewCounter() *Counter {
	return &Counter{}
}

// Redraw implements window.Content
func (c *Counter) Redraw(g *grid.Grid) window.ContentInfo {
	return c.paint(g)
}

// Update advances the count by one
func (c *Counter) Update(g *grid.Grid) window.ContentInfo {
	c.n++
	return c.paint(g)
}

// HandleEvent restarts the count on 'r'
func (c *Counter) HandleEvent(g *grid.Grid, ev terminal.Event) window.ContentInfo {
	if ev.Type == terminal.EventKey && ev.Key == terminal.KeyRune && ev.Rune == 'r' {
		c.n = 0
		return c.paint(g)
	}
	return window.ContentInfo{}
}

func (c *Counter) paint(g *grid.Grid) window.ContentInfo {
	// A shrinking number must not leave stale digits behind
	g.Reset()
	g.SetString(0, 0, fmt.Sprintf("number: %d", c.n), grid.StyleReset())
	return window.ContentInfo{}
}
