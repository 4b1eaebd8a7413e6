package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/status"
)

// TcellBackend implements Backend on top of a tcell.Screen. tcell keeps
// its own cell buffer and negotiates color support itself, so
// Options.ColorMode is ignored here.
type TcellBackend struct {
	screen  tcell.Screen
	mouse   MouseMode
	paste   bool
	eventCh chan Event
	metrics *status.Registry
	doneCh  chan struct{}

	// Pen state between MoveTo and Print
	penX  int
	penY  int
	style tcell.Style

	mu      sync.Mutex
	started bool
	stopped bool
}

func NewTcell(opts Options) *TcellBackend {
	return &TcellBackend{
		mouse:   opts.Mouse,
		paste:   opts.BracketedPaste,
		eventCh: make(chan Event, 256),
		metrics: opts.Metrics,
		doneCh:  make(chan struct{}),
		style:   tcell.StyleDefault,
	}
}

func (t *TcellBackend) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}

	screen.HideCursor()
	if t.mouse != MouseModeNone {
		var flags tcell.MouseFlags
		if t.mouse&MouseModeClick != 0 {
			flags |= tcell.MouseButtonEvents
		}
		if t.mouse&MouseModeDrag != 0 {
			flags |= tcell.MouseDragEvents
		}
		if t.mouse&MouseModeMotion != 0 {
			flags |= tcell.MouseMotionEvents
		}
		screen.EnableMouse(flags)
	}
	if t.paste {
		screen.EnablePaste()
	}
	screen.Clear()

	t.screen = screen
	t.style = tcell.StyleDefault

	go t.pump()

	t.started = true
	return nil
}

func (t *TcellBackend) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started || t.stopped {
		return
	}

	// Fini makes PollEvent return nil, which ends the pump
	t.screen.Fini()
	<-t.doneCh
	t.stopped = true
}

func (t *TcellBackend) Size() (int, int) {
	return t.screen.Size()
}

func (t *TcellBackend) Events() <-chan Event {
	return t.eventCh
}

// pump translates tcell events until the screen is finalized
func (t *TcellBackend) pump() {
	var lastBtns tcell.ButtonMask
	var pasting bool
	var pasteBuf []rune

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.postEvent(Event{Type: EventClosed})
			close(t.doneCh)
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if pasting {
				// tcell delivers paste payload as key events
				switch ev.Key() {
				case tcell.KeyRune:
					pasteBuf = append(pasteBuf, ev.Rune())
				case tcell.KeyEnter, tcell.KeyCtrlJ:
					pasteBuf = append(pasteBuf, '\n')
				case tcell.KeyTab:
					pasteBuf = append(pasteBuf, '\t')
				}
				continue
			}
			t.postEvent(keyEventFromTcell(ev))

		case *tcell.EventPaste:
			if ev.Start() {
				pasting = true
				pasteBuf = pasteBuf[:0]
			} else {
				pasting = false
				t.postEvent(Event{Type: EventPaste, Text: string(pasteBuf)})
			}

		case *tcell.EventMouse:
			lastBtns = t.postMouse(ev, lastBtns)

		case *tcell.EventResize:
			w, h := ev.Size()
			t.screen.Sync()
			t.postEvent(Event{Type: EventResize, Width: w, Height: h})

		case *tcell.EventError:
			t.postEvent(Event{Type: EventError, Err: fmt.Errorf("tcell: %s", ev.Error())})
		}
	}
}

// keyEventFromTcell maps a tcell key event to the native representation.
// Control letters come back as dedicated keys without a Ctrl modifier,
// matching the raw-parser behavior.
func keyEventFromTcell(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey}

	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		out.Modifiers |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out.Modifiers |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out.Modifiers |= ModCtrl
	}

	switch ev.Key() {
	case tcell.KeyRune:
		out.Key = KeyRune
		out.Rune = ev.Rune()
	case tcell.KeyEnter: // Also Ctrl+M
		out.Key = KeyEnter
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlJ:
		out.Key = KeyEnter
		out.Modifiers &^= ModCtrl
	case tcell.KeyTab: // Also Ctrl+I
		out.Key = KeyTab
		out.Modifiers &^= ModCtrl
	case tcell.KeyBacktab:
		out.Key = KeyBacktab
		out.Modifiers |= ModShift
	case tcell.KeyBackspace, tcell.KeyBackspace2: // Also Ctrl+H
		out.Key = KeyBackspace
		out.Modifiers &^= ModCtrl
	case tcell.KeyEscape: // Also Ctrl+[
		out.Key = KeyEscape
		out.Modifiers &^= ModCtrl
	case tcell.KeyDelete:
		out.Key = KeyDelete
	case tcell.KeyInsert:
		out.Key = KeyInsert
	case tcell.KeyUp:
		out.Key = KeyUp
	case tcell.KeyDown:
		out.Key = KeyDown
	case tcell.KeyLeft:
		out.Key = KeyLeft
	case tcell.KeyRight:
		out.Key = KeyRight
	case tcell.KeyHome:
		out.Key = KeyHome
	case tcell.KeyEnd:
		out.Key = KeyEnd
	case tcell.KeyPgUp:
		out.Key = KeyPageUp
	case tcell.KeyPgDn:
		out.Key = KeyPageDown
	case tcell.KeyF1:
		out.Key = KeyF1
	case tcell.KeyF2:
		out.Key = KeyF2
	case tcell.KeyF3:
		out.Key = KeyF3
	case tcell.KeyF4:
		out.Key = KeyF4
	case tcell.KeyF5:
		out.Key = KeyF5
	case tcell.KeyF6:
		out.Key = KeyF6
	case tcell.KeyF7:
		out.Key = KeyF7
	case tcell.KeyF8:
		out.Key = KeyF8
	case tcell.KeyF9:
		out.Key = KeyF9
	case tcell.KeyF10:
		out.Key = KeyF10
	case tcell.KeyF11:
		out.Key = KeyF11
	case tcell.KeyF12:
		out.Key = KeyF12
	case tcell.KeyCtrlA:
		out.Key = KeyCtrlA
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlB:
		out.Key = KeyCtrlB
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlC:
		out.Key = KeyCtrlC
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlD:
		out.Key = KeyCtrlD
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlE:
		out.Key = KeyCtrlE
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlF:
		out.Key = KeyCtrlF
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlG:
		out.Key = KeyCtrlG
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlK:
		out.Key = KeyCtrlK
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlL:
		out.Key = KeyCtrlL
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlN:
		out.Key = KeyCtrlN
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlO:
		out.Key = KeyCtrlO
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlP:
		out.Key = KeyCtrlP
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlQ:
		out.Key = KeyCtrlQ
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlR:
		out.Key = KeyCtrlR
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlS:
		out.Key = KeyCtrlS
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlT:
		out.Key = KeyCtrlT
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlU:
		out.Key = KeyCtrlU
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlV:
		out.Key = KeyCtrlV
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlW:
		out.Key = KeyCtrlW
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlX:
		out.Key = KeyCtrlX
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlY:
		out.Key = KeyCtrlY
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlZ:
		out.Key = KeyCtrlZ
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlSpace:
		out.Key = KeyCtrlSpace
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlBackslash:
		out.Key = KeyCtrlBackslash
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlRightSq:
		out.Key = KeyCtrlBracketRight
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlCarat:
		out.Key = KeyCtrlCaret
		out.Modifiers &^= ModCtrl
	case tcell.KeyCtrlUnderscore:
		out.Key = KeyCtrlUnderscore
		out.Modifiers &^= ModCtrl
	default:
		out.Key = KeyNone
	}
	return out
}

var tcellButtons = []struct {
	mask tcell.ButtonMask
	btn  MouseButton
}{
	{tcell.Button1, MouseBtnLeft},
	{tcell.Button3, MouseBtnMiddle},
	{tcell.Button2, MouseBtnRight},
	{tcell.Button4, MouseBtnBack},
	{tcell.Button5, MouseBtnForward},
}

const tcellWheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// postMouse turns a tcell mouse state snapshot into press, release,
// drag and move events by comparing against the previous button mask
func (t *TcellBackend) postMouse(ev *tcell.EventMouse, lastBtns tcell.ButtonMask) tcell.ButtonMask {
	x, y := ev.Position()
	btns := ev.Buttons()

	var mods Modifier
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mods |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mods |= ModCtrl
	}

	base := Event{Type: EventMouse, MouseX: x, MouseY: y, Modifiers: mods}

	// Wheel bits are momentary
	if btns&tcell.WheelUp != 0 {
		wheel := base
		wheel.MouseBtn = MouseBtnWheelUp
		wheel.MouseAction = MouseActionPress
		t.postEvent(wheel)
	}
	if btns&tcell.WheelDown != 0 {
		wheel := base
		wheel.MouseBtn = MouseBtnWheelDown
		wheel.MouseAction = MouseActionPress
		t.postEvent(wheel)
	}

	held := btns &^ tcellWheelMask
	prev := lastBtns &^ tcellWheelMask
	pressed := held &^ prev
	released := prev &^ held

	for _, bm := range tcellButtons {
		if pressed&bm.mask != 0 {
			e := base
			e.MouseBtn = bm.btn
			e.MouseAction = MouseActionPress
			t.postEvent(e)
		}
		if released&bm.mask != 0 {
			e := base
			e.MouseBtn = bm.btn
			e.MouseAction = MouseActionRelease
			t.postEvent(e)
		}
	}

	// Pure motion report
	if pressed == 0 && released == 0 && btns&tcellWheelMask == 0 {
		e := base
		if held != 0 {
			e.MouseBtn = heldButton(held)
			e.MouseAction = MouseActionDrag
		} else {
			e.MouseAction = MouseActionMove
		}
		t.postEvent(e)
	}

	return btns
}

func heldButton(m tcell.ButtonMask) MouseButton {
	switch {
	case m&tcell.Button1 != 0:
		return MouseBtnLeft
	case m&tcell.Button3 != 0:
		return MouseBtnMiddle
	case m&tcell.Button2 != 0:
		return MouseBtnRight
	}
	return MouseBtnNone
}

func (t *TcellBackend) MoveTo(x, y int) {
	t.penX, t.penY = x, y
}

func toTcellColor(c grid.Color) tcell.Color {
	switch c.Kind {
	case grid.ColorKindANSI, grid.ColorKindIndexed:
		return tcell.PaletteColor(int(c.R))
	case grid.ColorKindRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorReset
}

func (t *TcellBackend) SetForeground(c grid.Color) {
	t.style = t.style.Foreground(toTcellColor(c))
}

func (t *TcellBackend) SetBackground(c grid.Color) {
	t.style = t.style.Background(toTcellColor(c))
}

func tcellAttrs(m grid.Modifier) tcell.AttrMask {
	var a tcell.AttrMask
	if m.Contains(grid.ModBold) {
		a |= tcell.AttrBold
	}
	if m.Contains(grid.ModDim) {
		a |= tcell.AttrDim
	}
	if m.Contains(grid.ModItalic) {
		a |= tcell.AttrItalic
	}
	if m.Contains(grid.ModUnderlined) {
		a |= tcell.AttrUnderline
	}
	if m&(grid.ModSlowBlink|grid.ModRapidBlink) != 0 {
		a |= tcell.AttrBlink
	}
	if m.Contains(grid.ModReversed) {
		a |= tcell.AttrReverse
	}
	if m.Contains(grid.ModCrossedOut) {
		a |= tcell.AttrStrikeThrough
	}
	return a
}

func (t *TcellBackend) EnableAttr(m grid.Modifier) {
	_, _, attrs := t.style.Decompose()
	t.style = t.style.Attributes(attrs | tcellAttrs(m))
}

func (t *TcellBackend) DisableAttr(m grid.Modifier) {
	_, _, attrs := t.style.Decompose()
	t.style = t.style.Attributes(attrs &^ tcellAttrs(m))
}

func (t *TcellBackend) Print(grapheme string) {
	var main rune
	var comb []rune
	for i, r := range grapheme {
		if i == 0 {
			main = r
		} else {
			comb = append(comb, r)
		}
	}
	if main == 0 {
		return
	}
	t.screen.SetContent(t.penX, t.penY, main, comb, t.style)
	t.penX += runewidth.RuneWidth(main)
}

func (t *TcellBackend) Reset() {
	t.style = tcell.StyleDefault
}

func (t *TcellBackend) Flush() error {
	t.screen.Show()
	return nil
}

func (t *TcellBackend) postEvent(ev Event) {
	t.metrics.CountEvent()
	select {
	case t.eventCh <- ev:
	default:
		t.metrics.CountDroppedEvent()
	}
}
