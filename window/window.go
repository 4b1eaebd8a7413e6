package window

import (
	"fmt"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

// minDim is the smallest legal window edge: two border cells plus one
// interior cell
const minDim = 3

// Window is one rectangular region of the screen: a bordered frame around
// an interior grid that a Content implementation mutates. The window
// composites itself into a parent grid; nothing here writes to the
// terminal directly.
type Window struct {
	title    string
	area     grid.Rect
	interior *grid.Grid
	content  Content
	lastInfo ContentInfo
	theme    Theme
	focused  bool
}

// New creates a window and lets content paint the initial interior.
// Panics when area is below the 3x3 minimum; the border alone consumes
// two cells per axis.
func New(title string, area grid.Rect, content Content) *Window {
	if area.Width < minDim || area.Height < minDim {
		panic(fmt.Sprintf("window: area %dx%d is below the %dx%d minimum",
			area.Width, area.Height, minDim, minDim))
	}
	w := &Window{
		title:    title,
		area:     area,
		interior: grid.New(area.Width-2, area.Height-2),
		content:  content,
		theme:    DefaultTheme,
	}
	w.lastInfo = content.Redraw(w.interior)
	return w
}

// Title returns the border caption
func (w *Window) Title() string { return w.title }

// Area returns the window's outer rectangle in parent coordinates
func (w *Window) Area() grid.Rect { return w.area }

// Focused reports whether the manager considers this window focused
func (w *Window) Focused() bool { return w.focused }

// SetTheme replaces the chrome styles
func (w *Window) SetTheme(t Theme) { w.theme = t }

func (w *Window) setFocused(f bool) { w.focused = f }

// Resize sets the outer dimensions, blanks the interior and repaints it
// through the content's Redraw. Panics below the 3x3 minimum
func (w *Window) Resize(width, height int) {
	if width < minDim || height < minDim {
		panic(fmt.Sprintf("window: resize to %dx%d is below the %dx%d minimum",
			width, height, minDim, minDim))
	}
	w.area.Width = width
	w.area.Height = height
	w.interior.Resize(width-2, height-2)
	w.lastInfo = w.content.Redraw(w.interior)
}

// ResizeBy grows or shrinks the window, clamping at the 3x3 minimum
func (w *Window) ResizeBy(dx, dy int) {
	width := w.area.Width + dx
	if width < minDim {
		width = minDim
	}
	height := w.area.Height + dy
	if height < minDim {
		height = minDim
	}
	if width == w.area.Width && height == w.area.Height {
		return
	}
	w.Resize(width, height)
}

// MoveTo places the window's top-left corner, clamped at the origin
func (w *Window) MoveTo(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	w.area.X = x
	w.area.Y = y
}

// MoveBy shifts the window, clamping at the origin
func (w *Window) MoveBy(dx, dy int) {
	w.MoveTo(w.area.X+dx, w.area.Y+dy)
}

// HandleEvent routes an input event to the content
func (w *Window) HandleEvent(ev terminal.Event) {
	w.lastInfo = w.content.HandleEvent(w.interior, ev)
}

// Update advances the content by one frame tick
func (w *Window) Update() {
	w.lastInfo = w.content.Update(w.interior)
}

// Redraw asks the content for a full interior repaint
func (w *Window) Redraw() {
	w.lastInfo = w.content.Redraw(w.interior)
}

// Draw composites the window into parent: interior first, then the frame
// on top of the surrounding ring. The caller guarantees the window lies
// inside parent
func (w *Window) Draw(parent *grid.Grid) {
	parent.Insert(w.area.X+1, w.area.Y+1, w.interior)
	w.drawBorder(parent)
}

// ClampTo shrinks and shifts the window until it lies inside a
// width x height surface, respecting the 3x3 floor. Reports whether the
// size changed, in which case the interior is blank and the caller owes
// the content a Redraw
func (w *Window) ClampTo(width, height int) bool {
	nw, nh := w.area.Width, w.area.Height
	if nw > width {
		nw = width
	}
	if nh > height {
		nh = height
	}
	if nw < minDim {
		nw = minDim
	}
	if nh < minDim {
		nh = minDim
	}

	x, y := w.area.X, w.area.Y
	if x+nw > width {
		x = width - nw
	}
	if y+nh > height {
		y = height - nh
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	w.area.X, w.area.Y = x, y

	resized := nw != w.area.Width || nh != w.area.Height
	if resized {
		w.area.Width, w.area.Height = nw, nh
		w.interior.Resize(nw-2, nh-2)
	}
	return resized
}

// fitsIn reports whether the window lies fully inside a width x height
// surface. Only a terminal smaller than the 3x3 floor can make this false
// after a ClampTo
func (w *Window) fitsIn(width, height int) bool {
	return w.area.X >= 0 && w.area.Y >= 0 &&
		w.area.Right() <= width && w.area.Bottom() <= height
}
