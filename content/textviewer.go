package content

import (
	"strings"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
	"github.com/lixenwraith/termwin/window"
)

// wheelStep is how many lines one mouse wheel notch scrolls
const wheelStep = 3

// TextViewer displays fixed text, one line per row, and scrolls it with
// the usual keys: arrows or j/k by line, PageUp/PageDown by half a screen,
// g/Home and G/End to either end, the mouse wheel by three lines.
type TextViewer struct {
	lines  []string
	offset int
}

// NewTextViewer splits text on newlines. Trailing carriage returns are
// stripped so CRLF input renders clean.
func NewTextViewer(text string) *TextViewer {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &TextViewer{lines: lines}
}

// Redraw implements window.Content
func (v *TextViewer) Redraw(g *grid.Grid) window.ContentInfo {
	return v.paint(g)
}

// Update is a no-op; the text only moves on input
func (v *TextViewer) Update(g *grid.Grid) window.ContentInfo {
	return v.info(g.Height())
}

// HandleEvent scrolls the view
func (v *TextViewer) HandleEvent(g *grid.Grid, ev terminal.Event) window.ContentInfo {
	before := v.offset
	switch ev.Type {
	case terminal.EventKey:
		switch {
		case ev.Key == terminal.KeyUp || (ev.Key == terminal.KeyRune && ev.Rune == 'k'):
			v.offset--
		case ev.Key == terminal.KeyDown || (ev.Key == terminal.KeyRune && ev.Rune == 'j'):
			v.offset++
		case ev.Key == terminal.KeyPageUp:
			v.offset -= pageDelta(g.Height())
		case ev.Key == terminal.KeyPageDown:
			v.offset += pageDelta(g.Height())
		case ev.Key == terminal.KeyHome || (ev.Key == terminal.KeyRune && ev.Rune == 'g'):
			v.offset = 0
		case ev.Key == terminal.KeyEnd || (ev.Key == terminal.KeyRune && ev.Rune == 'G'):
			v.offset = len(v.lines)
		}
	case terminal.EventMouse:
		switch ev.MouseBtn {
		case terminal.MouseBtnWheelUp:
			v.offset -= wheelStep
		case terminal.MouseBtnWheelDown:
			v.offset += wheelStep
		}
	}
	v.offset = clampScroll(v.offset, g.Height(), len(v.lines))
	if v.offset == before {
		return v.info(g.Height())
	}
	return v.paint(g)
}

func (v *TextViewer) paint(g *grid.Grid) window.ContentInfo {
	height := g.Height()
	v.offset = clampScroll(v.offset, height, len(v.lines))
	g.Reset()
	for row := 0; row < height && v.offset+row < len(v.lines); row++ {
		g.SetString(0, row, v.lines[v.offset+row], grid.StyleReset())
	}
	return v.info(height)
}

func (v *TextViewer) info(height int) window.ContentInfo {
	if len(v.lines) <= height {
		return window.ContentInfo{}
	}
	return window.ContentInfo{
		ShowScrollbar:  true,
		ScrollFraction: float64(v.offset) / float64(len(v.lines)-height),
	}
}

// clampScroll keeps the offset inside the scrollable range
func clampScroll(offset, visible, total int) int {
	if total <= visible {
		return 0
	}
	maxOffset := total - visible
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

// pageDelta returns how far PageUp/PageDown moves: half the visible rows,
// at least one
func pageDelta(visible int) int {
	delta := visible / 2
	if delta < 1 {
		delta = 1
	}
	return delta
}
