package content

import (
	"strings"
	"testing"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

// rowString reads row y as text with trailing blanks trimmed
func rowString(g *grid.Grid, y int) string {
	var b strings.Builder
	for x := 0; x < g.Width(); x++ {
		b.WriteString(g.At(x, y).Grapheme)
	}
	return strings.TrimRight(b.String(), " ")
}

func keyEvent(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func runeEvent(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func wheelEvent(btn terminal.MouseButton) terminal.Event {
	return terminal.Event{Type: terminal.EventMouse, MouseBtn: btn, MouseAction: terminal.MouseActionPress}
}

func TestCounterTicks(t *testing.T) {
	g := grid.New(20, 3)
	c := NewCounter()

	c.Redraw(g)
	if got := rowString(g, 0); got != "number: 0" {
		t.Errorf("Expected \"number: 0\", got %q", got)
	}

	c.Update(g)
	c.Update(g)
	if got := rowString(g, 0); got != "number: 2" {
		t.Errorf("Expected \"number: 2\" after two ticks, got %q", got)
	}
}

func TestCounterResetKey(t *testing.T) {
	g := grid.New(20, 3)
	c := NewCounter()
	c.Redraw(g)
	c.Update(g)
	c.Update(g)
	c.Update(g)

	c.HandleEvent(g, runeEvent('r'))
	if got := rowString(g, 0); got != "number: 0" {
		t.Errorf("Expected \"number: 0\" after reset, got %q", got)
	}

	c.HandleEvent(g, runeEvent('x'))
	if c.n != 0 {
		t.Errorf("Expected other keys ignored, got count %d", c.n)
	}
}

func TestCounterRepaintClearsStaleDigits(t *testing.T) {
	g := grid.New(20, 3)
	c := &Counter{n: 123}

	c.Redraw(g)
	if got := rowString(g, 0); got != "number: 123" {
		t.Errorf("Expected \"number: 123\", got %q", got)
	}

	c.HandleEvent(g, runeEvent('r'))
	if got := rowString(g, 0); got != "number: 0" {
		t.Errorf("Expected stale digits cleared, got %q", got)
	}
	if g.At(9, 0).Grapheme != " " {
		t.Errorf("Expected blank cell after the number, got %q", g.At(9, 0).Grapheme)
	}
}
