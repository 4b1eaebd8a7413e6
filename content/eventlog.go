package content

import (
	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
	"github.com/lixenwraith/termwin/window"
)

// defaultLogEntries bounds the log when NewEventLog is given no capacity
const defaultLogEntries = 256

// EventLog records every event routed to it and displays the newest
// entries, one per row. It makes input routing visible: keys the manager
// does not claim, mouse reports and pastes all land here.
type EventLog struct {
	entries []string
	max     int
}

// NewEventLog keeps at most max entries; max <= 0 selects a default
func NewEventLog(max int) *EventLog {
	if max <= 0 {
		max = defaultLogEntries
	}
	return &EventLog{entries: make([]string, 0, max), max: max}
}

// Redraw implements window.Content
func (l *EventLog) Redraw(g *grid.Grid) window.ContentInfo {
	return l.paint(g)
}

// Update is a no-op; the log only grows on input
func (l *EventLog) Update(g *grid.Grid) window.ContentInfo {
	return l.info(g.Height())
}

// HandleEvent appends the event and repaints the tail
func (l *EventLog) HandleEvent(g *grid.Grid, ev terminal.Event) window.ContentInfo {
	if len(l.entries) >= l.max {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.max-1]
	}
	l.entries = append(l.entries, ev.String())
	return l.paint(g)
}

func (l *EventLog) paint(g *grid.Grid) window.ContentInfo {
	height := g.Height()
	start := len(l.entries) - height
	if start < 0 {
		start = 0
	}
	g.Reset()
	for row := 0; start+row < len(l.entries); row++ {
		g.SetString(0, row, l.entries[start+row], grid.StyleReset())
	}
	return l.info(height)
}

// info pins the thumb to the bottom; the log always shows the tail
func (l *EventLog) info(height int) window.ContentInfo {
	if len(l.entries) <= height {
		return window.ContentInfo{}
	}
	return window.ContentInfo{ShowScrollbar: true, ScrollFraction: 1}
}
