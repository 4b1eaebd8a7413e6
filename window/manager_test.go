package window

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

type printedCell struct {
	x, y int
	g    string
}

// fakeBackend records printed cells at a tracked pen position
type fakeBackend struct {
	width, height int
	events        chan terminal.Event
	penX, penY    int
	prints        []printedCell
	flushes       int
	failFlush     error
}

func newFakeBackend(width, height int) *fakeBackend {
	return &fakeBackend{width: width, height: height, events: make(chan terminal.Event, 16)}
}

func (f *fakeBackend) Start() error                  { return nil }
func (f *fakeBackend) Stop()                         {}
func (f *fakeBackend) Size() (width, height int)     { return f.width, f.height }
func (f *fakeBackend) Events() <-chan terminal.Event { return f.events }
func (f *fakeBackend) MoveTo(x, y int)               { f.penX, f.penY = x, y }
func (f *fakeBackend) SetForeground(grid.Color)      {}
func (f *fakeBackend) SetBackground(grid.Color)      {}
func (f *fakeBackend) EnableAttr(grid.Modifier)      {}
func (f *fakeBackend) DisableAttr(grid.Modifier)     {}
func (f *fakeBackend) Reset()                        {}

func (f *fakeBackend) Print(grapheme string) {
	f.prints = append(f.prints, printedCell{f.penX, f.penY, grapheme})
	f.penX++
}

func (f *fakeBackend) Flush() error {
	f.flushes++
	return f.failFlush
}

func gridBlank(g *grid.Grid) bool {
	def := grid.DefaultCell()
	width, height := g.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if *g.At(x, y) != def {
				return false
			}
		}
	}
	return true
}

// counterContent is the classic ticking payload: "number: N", one
// increment per update
type counterContent struct{ n int }

func (c *counterContent) paint(g *grid.Grid) ContentInfo {
	g.SetString(0, 0, fmt.Sprintf("number: %d", c.n), grid.StyleReset())
	return ContentInfo{}
}

func (c *counterContent) Redraw(g *grid.Grid) ContentInfo { return c.paint(g) }

func (c *counterContent) Update(g *grid.Grid) ContentInfo {
	c.n++
	return c.paint(g)
}

func (c *counterContent) HandleEvent(g *grid.Grid, ev terminal.Event) ContentInfo {
	return c.paint(g)
}

func TestManagerBufferAlternation(t *testing.T) {
	fake := newFakeBackend(20, 10)
	m := NewManager(fake, Options{})
	m.Add(New("b", grid.NewRect(2, 2, 8, 5), &stubContent{}))

	for frame := 0; frame < 4; frame++ {
		if m.current != frame%2 {
			t.Fatalf("Expected buffer %d current at frame %d, got %d", frame%2, frame, m.current)
		}
		m.composite()
		if err := m.render(); err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if !gridBlank(m.buffers[m.current]) {
			t.Errorf("Expected the vacated buffer to be blank after frame %d", frame)
		}
	}
}

func TestManagerEndToEnd(t *testing.T) {
	fake := newFakeBackend(80, 24)
	m := NewManager(fake, Options{})
	win := New("Test", grid.NewRect(4, 4, 30, 20), &counterContent{})
	m.Add(win)

	m.composite()
	if err := m.render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// First frame: the full border (2*30 + 2*18 = 96 cells) plus the text
	// minus its space, which matches a blank cell (8 cells)
	if len(fake.prints) != 104 {
		t.Errorf("Expected 104 cells in the first frame, got %d", len(fake.prints))
	}
	byPos := make(map[[2]int]string, len(fake.prints))
	for _, p := range fake.prints {
		byPos[[2]int{p.x, p.y}] = p.g
	}
	if byPos[[2]int{4, 4}] != "╭" {
		t.Errorf("Expected top-left corner at (4,4), got %q", byPos[[2]int{4, 4}])
	}
	if byPos[[2]int{13, 5}] != "0" {
		t.Errorf("Expected digit 0 at (13,5), got %q", byPos[[2]int{13, 5}])
	}

	// Second frame after one tick: only the digit changed
	fake.prints = nil
	win.Update()
	m.composite()
	if err := m.render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(fake.prints) != 1 {
		t.Fatalf("Expected exactly 1 changed cell, got %d: %v", len(fake.prints), fake.prints)
	}
	if p := fake.prints[0]; p.x != 13 || p.y != 5 || p.g != "1" {
		t.Errorf("Expected %q at (13,5), got %q at (%d,%d)", "1", p.g, p.x, p.y)
	}
}

func TestManagerHandleKeyBindings(t *testing.T) {
	fake := newFakeBackend(80, 24)
	m := NewManager(fake, Options{})
	a := New("a", grid.NewRect(10, 10, 10, 6), &stubContent{})
	b := New("b", grid.NewRect(30, 5, 12, 8), &stubContent{})
	m.Add(a)
	m.Add(b)

	if !a.Focused() || b.Focused() {
		t.Fatal("Expected the first added window to be focused")
	}

	key := func(k terminal.Key, mods terminal.Modifier) terminal.Event {
		return terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: mods}
	}

	if !m.handleKey(key(terminal.KeyLeft, terminal.ModCtrl)) {
		t.Error("Expected Ctrl+Left to be consumed")
	}
	if a.area.X != 9 {
		t.Errorf("Expected focused window at x=9, got %d", a.area.X)
	}

	if !m.handleKey(key(terminal.KeyRight, terminal.ModCtrl|terminal.ModShift)) {
		t.Error("Expected Ctrl+Shift+Right to be consumed")
	}
	if a.area.Width != 11 {
		t.Errorf("Expected focused window width 11, got %d", a.area.Width)
	}

	if !m.handleKey(key(terminal.KeyPageDown, terminal.ModCtrl)) {
		t.Error("Expected Ctrl+PageDown to be consumed")
	}
	if m.windows[0] != b || !b.Focused() || a.Focused() {
		t.Error("Expected focus to rotate to the second window")
	}

	if !m.handleKey(key(terminal.KeyPageUp, terminal.ModCtrl)) {
		t.Error("Expected Ctrl+PageUp to be consumed")
	}
	if m.windows[0] != a || !a.Focused() {
		t.Error("Expected focus to rotate back to the first window")
	}

	if m.handleKey(key(terminal.KeyRune, terminal.ModNone)) {
		t.Error("Expected a plain key to pass through")
	}
	if m.handleKey(key(terminal.KeyHome, terminal.ModCtrl)) {
		t.Error("Expected an unbound Ctrl chord to pass through")
	}

	if !m.handleKey(key(terminal.KeyCtrlC, terminal.ModNone)) {
		t.Error("Expected Ctrl+C to be consumed")
	}
	if !m.exiting {
		t.Error("Expected Ctrl+C to set the exit flag")
	}
}

func TestManagerMoveClampedToSurface(t *testing.T) {
	fake := newFakeBackend(20, 10)
	m := NewManager(fake, Options{})
	w := New("m", grid.NewRect(16, 6, 4, 4), &stubContent{})
	m.Add(w)

	right := terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRight, Modifiers: terminal.ModCtrl}
	m.handleKey(right)
	if w.area.X != 16 {
		t.Errorf("Expected the window pinned at x=16, got %d", w.area.X)
	}

	grow := terminal.Event{Type: terminal.EventKey, Key: terminal.KeyDown, Modifiers: terminal.ModCtrl | terminal.ModShift}
	m.handleKey(grow)
	if w.area != grid.NewRect(16, 5, 4, 5) {
		t.Errorf("Expected growth at the bottom edge to slide the window up, got %+v", w.area)
	}
}

func TestManagerResizeClampsWindows(t *testing.T) {
	fake := newFakeBackend(80, 24)
	m := NewManager(fake, Options{})
	content := &stubContent{}
	w := New("r", grid.NewRect(60, 10, 20, 10), content)
	m.Add(w)

	m.resize(40, 12)

	if width, height := m.buffers[0].Size(); width != 40 || height != 12 {
		t.Errorf("Expected 40x12 buffers, got %dx%d", width, height)
	}
	if width, height := m.buffers[1].Size(); width != 40 || height != 12 {
		t.Errorf("Expected both buffers resized, got %dx%d", width, height)
	}
	if w.area != grid.NewRect(20, 2, 20, 10) {
		t.Errorf("Expected window shifted inside, got %+v", w.area)
	}
	if content.redraws != 2 {
		t.Errorf("Expected a redraw after the terminal resize, got %d", content.redraws)
	}

	m.resize(10, 6)
	if w.area != grid.NewRect(0, 0, 10, 6) {
		t.Errorf("Expected window shrunk to the terminal, got %+v", w.area)
	}
	if content.redraws != 3 {
		t.Errorf("Expected a redraw after shrinking, got %d", content.redraws)
	}
}

func TestManagerSkipsWindowBeyondFloor(t *testing.T) {
	fake := newFakeBackend(8, 8)
	m := NewManager(fake, Options{})
	m.Add(New("s", grid.NewRect(0, 0, 5, 5), &stubContent{}))

	m.resize(2, 2)
	fake.prints = nil
	m.composite()
	if err := m.render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(fake.prints) != 0 {
		t.Errorf("Expected nothing drawn on a sub-minimum surface, got %d cells", len(fake.prints))
	}
}

func TestManagerRunRoutesEvents(t *testing.T) {
	fake := newFakeBackend(40, 12)
	m := NewManager(fake, Options{})
	content := &stubContent{}
	m.Add(New("w", grid.NewRect(1, 1, 10, 6), content))

	fake.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'x'}
	fake.events <- terminal.Event{
		Type: terminal.EventMouse, MouseX: 3, MouseY: 4,
		MouseBtn: terminal.MouseBtnLeft, MouseAction: terminal.MouseActionPress,
	}
	fake.events <- terminal.Event{Type: terminal.EventPaste, Text: "clip"}
	fake.events <- terminal.Event{Type: terminal.EventClosed}

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(content.events) != 3 {
		t.Fatalf("Expected 3 routed events, got %d", len(content.events))
	}
	wantTypes := []terminal.EventType{terminal.EventKey, terminal.EventMouse, terminal.EventPaste}
	for i, want := range wantTypes {
		if content.events[i].Type != want {
			t.Errorf("Expected event %d of type %d, got %d", i, want, content.events[i].Type)
		}
	}
	if content.events[2].Text != "clip" {
		t.Errorf("Expected paste text %q, got %q", "clip", content.events[2].Text)
	}
}

func TestManagerRunExitsOnCtrlC(t *testing.T) {
	fake := newFakeBackend(40, 12)
	m := NewManager(fake, Options{})
	m.Add(New("w", grid.NewRect(1, 1, 10, 6), &stubContent{}))

	fake.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyCtrlC}

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !m.exiting {
		t.Error("Expected the exit flag to be set")
	}
	// The exit iteration still renders
	if fake.flushes == 0 {
		t.Error("Expected a final redraw before exit")
	}
}

func TestManagerRunStopsOnBackendError(t *testing.T) {
	fake := newFakeBackend(40, 12)
	m := NewManager(fake, Options{})

	boom := errors.New("boom")
	fake.events <- terminal.Event{Type: terminal.EventError, Err: boom}

	err := m.Run()
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("Expected the backend error wrapped, got %v", err)
	}
}

func TestManagerRunStopsOnRenderError(t *testing.T) {
	fake := newFakeBackend(40, 12)
	fake.failFlush = errors.New("pipe")
	m := NewManager(fake, Options{})
	m.Add(New("w", grid.NewRect(1, 1, 10, 6), &stubContent{}))

	fake.events <- terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'x'}

	err := m.Run()
	if err == nil || !strings.Contains(err.Error(), "pipe") {
		t.Fatalf("Expected the flush error surfaced, got %v", err)
	}
}

func TestManagerRunTicksOnTimeout(t *testing.T) {
	fake := newFakeBackend(20, 8)
	m := NewManager(fake, Options{FrameBudget: time.Millisecond})
	content := &stubContent{}
	m.Add(New("t", grid.NewRect(0, 0, 6, 4), content))

	go func() {
		time.Sleep(50 * time.Millisecond)
		fake.events <- terminal.Event{Type: terminal.EventClosed}
	}()

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if content.updates == 0 {
		t.Error("Expected at least one update tick")
	}
}

func TestManagerRunHandlesResizeEvent(t *testing.T) {
	fake := newFakeBackend(80, 24)
	m := NewManager(fake, Options{})
	w := New("r", grid.NewRect(60, 10, 20, 10), &stubContent{})
	m.Add(w)

	fake.events <- terminal.Event{Type: terminal.EventResize, Width: 40, Height: 12}
	fake.events <- terminal.Event{Type: terminal.EventClosed}

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if width, height := m.buffers[0].Size(); width != 40 || height != 12 {
		t.Errorf("Expected 40x12 buffers after resize, got %dx%d", width, height)
	}
	if w.area.Right() > 40 || w.area.Bottom() > 12 {
		t.Errorf("Expected the window inside the new bounds, got %+v", w.area)
	}
}
