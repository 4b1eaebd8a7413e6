package window

import (
	"testing"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

// stubContent paints via an optional callback and records calls
type stubContent struct {
	info    ContentInfo
	paint   func(g *grid.Grid)
	redraws int
	updates int
	events  []terminal.Event
}

func (c *stubContent) Redraw(g *grid.Grid) ContentInfo {
	c.redraws++
	if c.paint != nil {
		c.paint(g)
	}
	return c.info
}

func (c *stubContent) Update(g *grid.Grid) ContentInfo {
	c.updates++
	if c.paint != nil {
		c.paint(g)
	}
	return c.info
}

func (c *stubContent) HandleEvent(g *grid.Grid, ev terminal.Event) ContentInfo {
	c.events = append(c.events, ev)
	return c.info
}

func TestNewPanicsBelowMinimum(t *testing.T) {
	tests := []struct {
		name string
		area grid.Rect
	}{
		{"narrow", grid.NewRect(0, 0, 2, 5)},
		{"short", grid.NewRect(0, 0, 5, 2)},
		{"empty", grid.NewRect(0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for area %dx%d", tt.area.Width, tt.area.Height)
				}
			}()
			New("x", tt.area, &stubContent{})
		})
	}
}

func TestNewPaintsInterior(t *testing.T) {
	content := &stubContent{paint: func(g *grid.Grid) {
		g.SetString(0, 0, "hi", grid.StyleReset())
	}}
	w := New("t", grid.NewRect(2, 1, 8, 4), content)

	if content.redraws != 1 {
		t.Errorf("Expected 1 redraw at construction, got %d", content.redraws)
	}
	iw, ih := w.interior.Size()
	if iw != 6 || ih != 2 {
		t.Errorf("Expected 6x2 interior, got %dx%d", iw, ih)
	}

	parent := grid.New(20, 10)
	w.Draw(parent)
	if got := parent.At(3, 2).Grapheme; got != "h" {
		t.Errorf("Expected interior cell at (3,2) to hold %q, got %q", "h", got)
	}
	if got := parent.At(4, 2).Grapheme; got != "i" {
		t.Errorf("Expected interior cell at (4,2) to hold %q, got %q", "i", got)
	}
}

func TestBorderShape(t *testing.T) {
	w := New("Test", grid.NewRect(4, 4, 30, 20), &stubContent{})
	parent := grid.New(40, 26)
	w.Draw(parent)

	corners := []struct {
		x, y int
		want string
	}{
		{4, 4, "╭"},
		{33, 4, "╮"},
		{4, 23, "╰"},
		{33, 23, "╯"},
	}
	for _, c := range corners {
		if got := parent.At(c.x, c.y).Grapheme; got != c.want {
			t.Errorf("Expected corner %q at (%d,%d), got %q", c.want, c.x, c.y, got)
		}
	}

	for i, r := range "Test" {
		cell := parent.At(5+i, 4)
		if cell.Grapheme != string(r) {
			t.Errorf("Expected title rune %q at (%d,4), got %q", r, 5+i, cell.Grapheme)
		}
		if !cell.Mods.Contains(grid.ModBold) {
			t.Errorf("Expected bold title cell at (%d,4)", 5+i)
		}
	}

	for x := 9; x < 33; x++ {
		if got := parent.At(x, 4).Grapheme; got != "─" {
			t.Errorf("Expected top rule at (%d,4), got %q", x, got)
		}
	}
	for x := 5; x < 33; x++ {
		if got := parent.At(x, 23).Grapheme; got != "─" {
			t.Errorf("Expected bottom rule at (%d,23), got %q", x, got)
		}
	}
	for y := 5; y < 23; y++ {
		if got := parent.At(4, y).Grapheme; got != "│" {
			t.Errorf("Expected left rule at (4,%d), got %q", y, got)
		}
		if got := parent.At(33, y).Grapheme; got != "│" {
			t.Errorf("Expected right rule at (33,%d), got %q", y, got)
		}
	}
}

func TestBorderTitleTruncation(t *testing.T) {
	w := New("abcdef", grid.NewRect(0, 0, 5, 3), &stubContent{})
	parent := grid.New(10, 5)
	w.Draw(parent)

	for i, want := range []string{"╭", "a", "b", "c", "╮"} {
		if got := parent.At(i, 0).Grapheme; got != want {
			t.Errorf("Expected %q at (%d,0), got %q", want, i, got)
		}
	}
}

func TestBorderScrollbar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		thumbY   int
	}{
		{"top", 0, 2},
		{"middle", 0.5, 4},
		{"bottom", 1, 6},
		{"below range", -0.5, 2},
		{"above range", 1.5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &stubContent{info: ContentInfo{ShowScrollbar: true, ScrollFraction: tt.fraction}}
			w := New("s", grid.NewRect(0, 0, 10, 10), content)
			parent := grid.New(12, 12)
			w.Draw(parent)

			if got := parent.At(9, 1).Grapheme; got != "▲" {
				t.Errorf("Expected up arrow at (9,1), got %q", got)
			}
			if got := parent.At(9, 8).Grapheme; got != "▼" {
				t.Errorf("Expected down arrow at (9,8), got %q", got)
			}
			for y := 2; y <= 7; y++ {
				want := "░"
				if y == tt.thumbY {
					want = "█"
				}
				if got := parent.At(9, y).Grapheme; got != want {
					t.Errorf("Expected %q at (9,%d), got %q", want, y, got)
				}
			}
			// Left edge keeps the plain rule
			for y := 1; y <= 8; y++ {
				if got := parent.At(0, y).Grapheme; got != "│" {
					t.Errorf("Expected left rule at (0,%d), got %q", y, got)
				}
			}
		})
	}
}

func TestScrollbarSuppressedWhenTooSmall(t *testing.T) {
	content := &stubContent{info: ContentInfo{ShowScrollbar: true, ScrollFraction: 1}}
	w := New("", grid.NewRect(0, 0, 4, 3), content)
	parent := grid.New(6, 5)
	w.Draw(parent)

	if got := parent.At(3, 1).Grapheme; got != "│" {
		t.Errorf("Expected plain rule on the right edge, got %q", got)
	}
}

func TestResizeRepaintsThroughContent(t *testing.T) {
	content := &stubContent{}
	w := New("r", grid.NewRect(0, 0, 5, 5), content)
	if content.redraws != 1 {
		t.Fatalf("Expected 1 redraw after New, got %d", content.redraws)
	}

	w.Resize(10, 8)
	if content.redraws != 2 {
		t.Errorf("Expected 2 redraws after Resize, got %d", content.redraws)
	}
	iw, ih := w.interior.Size()
	if iw != 8 || ih != 6 {
		t.Errorf("Expected 8x6 interior, got %dx%d", iw, ih)
	}

	w.ResizeBy(-20, -20)
	if w.area.Width != minDim || w.area.Height != minDim {
		t.Errorf("Expected clamp to %dx%d, got %dx%d", minDim, minDim, w.area.Width, w.area.Height)
	}
	if content.redraws != 3 {
		t.Errorf("Expected 3 redraws after ResizeBy, got %d", content.redraws)
	}

	// Already at the floor, nothing changes, no repaint
	w.ResizeBy(-1, 0)
	if content.redraws != 3 {
		t.Errorf("Expected no redraw for a no-op ResizeBy, got %d", content.redraws)
	}
}

func TestResizePanicsBelowMinimum(t *testing.T) {
	w := New("r", grid.NewRect(0, 0, 5, 5), &stubContent{})
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for resize below minimum")
		}
	}()
	w.Resize(2, 5)
}

func TestMoveClamping(t *testing.T) {
	w := New("m", grid.NewRect(1, 1, 4, 4), &stubContent{})

	w.MoveTo(-5, -5)
	if w.area.X != 0 || w.area.Y != 0 {
		t.Errorf("Expected clamp to origin, got (%d,%d)", w.area.X, w.area.Y)
	}

	w.MoveTo(1, 1)
	w.MoveBy(-3, 2)
	if w.area.X != 0 || w.area.Y != 3 {
		t.Errorf("Expected (0,3), got (%d,%d)", w.area.X, w.area.Y)
	}
}

func TestClampTo(t *testing.T) {
	tests := []struct {
		name      string
		area      grid.Rect
		sw, sh    int
		wantArea  grid.Rect
		wantSized bool
	}{
		{"inside untouched", grid.NewRect(10, 10, 20, 10), 80, 24, grid.NewRect(10, 10, 20, 10), false},
		{"shifted left and up", grid.NewRect(70, 20, 20, 10), 80, 24, grid.NewRect(60, 14, 20, 10), false},
		{"shrunk to surface", grid.NewRect(0, 0, 100, 30), 80, 24, grid.NewRect(0, 0, 80, 24), true},
		{"shrunk and shifted", grid.NewRect(5, 5, 20, 10), 10, 8, grid.NewRect(0, 0, 10, 8), true},
		{"floor beats surface", grid.NewRect(0, 0, 5, 5), 2, 2, grid.NewRect(0, 0, 3, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New("c", tt.area, &stubContent{})
			resized := w.ClampTo(tt.sw, tt.sh)
			if resized != tt.wantSized {
				t.Errorf("Expected resized=%v, got %v", tt.wantSized, resized)
			}
			if w.area != tt.wantArea {
				t.Errorf("Expected area %+v, got %+v", tt.wantArea, w.area)
			}
			iw, ih := w.interior.Size()
			if iw != w.area.Width-2 || ih != w.area.Height-2 {
				t.Errorf("Expected interior to track area, got %dx%d for %dx%d",
					iw, ih, w.area.Width, w.area.Height)
			}
		})
	}
}

func TestFitsIn(t *testing.T) {
	w := New("f", grid.NewRect(0, 0, 3, 3), &stubContent{})
	if !w.fitsIn(3, 3) {
		t.Error("Expected 3x3 window to fit a 3x3 surface")
	}
	if w.fitsIn(2, 3) {
		t.Error("Expected 3x3 window not to fit a 2x3 surface")
	}
}

func TestFocusStyling(t *testing.T) {
	w := New("f", grid.NewRect(0, 0, 6, 4), &stubContent{})
	parent := grid.New(8, 6)

	w.Draw(parent)
	if got := parent.At(0, 0).Fg; got != DefaultTheme.Border.Fg {
		t.Errorf("Expected base border color %+v, got %+v", DefaultTheme.Border.Fg, got)
	}

	w.setFocused(true)
	w.Draw(parent)
	if got := parent.At(0, 0).Fg; got != DefaultTheme.FocusBorder.Fg {
		t.Errorf("Expected focus border color %+v, got %+v", DefaultTheme.FocusBorder.Fg, got)
	}
}

func TestHandleEventForwardsToContent(t *testing.T) {
	content := &stubContent{info: ContentInfo{ShowScrollbar: true, ScrollFraction: 0.25}}
	w := New("e", grid.NewRect(0, 0, 8, 8), content)

	ev := terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'x'}
	w.HandleEvent(ev)

	if len(content.events) != 1 || content.events[0].Rune != 'x' {
		t.Fatalf("Expected content to receive the event, got %v", content.events)
	}
	if w.lastInfo != content.info {
		t.Errorf("Expected stored info %+v, got %+v", content.info, w.lastInfo)
	}
}

func TestDrawOverwritesOverlap(t *testing.T) {
	red := grid.RGB(200, 0, 0)
	under := New("under", grid.NewRect(0, 0, 12, 8), &stubContent{paint: func(g *grid.Grid) {
		width, height := g.Size()
		g.SetStyle(grid.NewRect(0, 0, width, height), grid.Style{Bg: red, Add: grid.ModReversed})
	}})
	over := New("over", grid.NewRect(2, 2, 8, 4), &stubContent{})

	parent := grid.New(14, 10)
	under.Draw(parent)
	over.Draw(parent)

	// Top border of the covering window sits on the red interior; every
	// chrome cell must come out clean, not patched over red
	checks := []struct{ x, y int }{
		{2, 2},  // corner
		{3, 2},  // title cell
		{8, 2},  // rule cell
		{2, 3},  // left rule
		{9, 3},  // right rule
		{5, 5},  // bottom rule
	}
	for _, c := range checks {
		cell := parent.At(c.x, c.y)
		if cell.Bg != grid.ColorReset {
			t.Errorf("Expected clean background at (%d,%d), got %+v", c.x, c.y, cell.Bg)
		}
		if cell.Mods.Contains(grid.ModReversed) {
			t.Errorf("Expected no leaked attributes at (%d,%d), got %s", c.x, c.y, cell.Mods)
		}
	}
}
