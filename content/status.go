package content

import (
	"strconv"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/status"
	"github.com/lixenwraith/termwin/terminal"
	"github.com/lixenwraith/termwin/window"
)

// valueColumn is where the numbers start; labels own the columns before it
const valueColumn = 12

// Status renders a live view of the render-loop counters, refreshed every
// tick. A nil registry shows zeros.
type Status struct {
	registry *status.Registry
}

// NewStatus displays reg's counters
func NewStatus(reg *status.Registry) *Status {
	return &Status{registry: reg}
}

// Redraw implements window.Content
func (s *Status) Redraw(g *grid.Grid) window.ContentInfo {
	return s.paint(g)
}

// Update repaints with fresh counter values
func (s *Status) Update(g *grid.Grid) window.ContentInfo {
	return s.paint(g)
}

// HandleEvent ignores input
func (s *Status) HandleEvent(g *grid.Grid, ev terminal.Event) window.ContentInfo {
	return window.ContentInfo{}
}

func (s *Status) paint(g *grid.Grid) window.ContentInfo {
	snap := s.registry.Snapshot()
	rows := []struct {
		label string
		value string
	}{
		{"frames", strconv.FormatInt(snap.FramesRendered, 10)},
		{"cells", strconv.FormatInt(snap.CellsEmitted, 10)},
		{"bytes", strconv.FormatInt(snap.BytesWritten, 10)},
		{"events", strconv.FormatInt(snap.EventsSeen, 10)},
		{"dropped", strconv.FormatInt(snap.EventsDropped, 10)},
		{"frame time", snap.LastFrame.String()},
	}

	g.Reset()
	width, height := g.Size()
	for row, r := range rows {
		if row >= height {
			break
		}
		g.SetString(0, row, r.label, grid.Style{Add: grid.ModDim})
		if valueColumn < width {
			g.SetString(valueColumn, row, r.value, grid.StyleReset())
		}
	}
	return window.ContentInfo{}
}
