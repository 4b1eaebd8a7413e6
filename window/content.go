package window

import (
	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

// ContentInfo is the content's declaration of how the next border draw
// should present it. Recomputed on every Redraw/Update/HandleEvent call.
type ContentInfo struct {
	// ShowScrollbar replaces the right border rule with a scrollbar track
	ShowScrollbar bool
	// ScrollFraction positions the thumb, 0 = top, 1 = bottom
	ScrollFraction float64
}

// Content is the pluggable behavior behind a window. Each method receives
// exclusive mutable access to the window's interior grid for the duration
// of the call and returns the scrollbar declaration for the next border
// draw.
type Content interface {
	// Redraw repaints the whole interior. Called after any resize, when
	// the previous cell content is gone.
	Redraw(g *grid.Grid) ContentInfo

	// Update advances the content by one frame tick.
	Update(g *grid.Grid) ContentInfo

	// HandleEvent reacts to an input event routed to this window.
	HandleEvent(g *grid.Grid, ev terminal.Event) ContentInfo
}
