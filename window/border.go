package window

import (
	"github.com/lixenwraith/termwin/grid"
)

// Box drawing runes for the window frame
var boxChars = [6]rune{'╭', '─', '╮', '│', '╰', '╯'}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Scrollbar glyphs on the right edge
const (
	scrollUp    = '▲'
	scrollDown  = '▼'
	scrollTrack = '░'
	scrollThumb = '█'
)

// putRune overwrites one parent cell verbatim, discarding whatever an
// earlier window left there
func putRune(g *grid.Grid, x, y int, r rune, style grid.Style) {
	c := g.At(x, y)
	c.Reset()
	c.SetRune(r).ApplyStyle(style)
}

// drawBorder renders the frame onto the parent grid around the interior,
// shaping the right edge from the stored ContentInfo
func (w *Window) drawBorder(parent *grid.Grid) {
	style := w.theme.Border
	if w.focused {
		style = w.theme.FocusBorder
	}

	left := w.area.X
	top := w.area.Y
	right := w.area.Right() - 1
	bottom := w.area.Bottom() - 1

	// Top edge: corner, title, rule up to the far corner. The title is
	// patched onto the cells, so clear the span of any styling left by an
	// overlapped window first
	putRune(parent, left, top, boxChars[boxTL], style)
	for x := left + 1; x < right; x++ {
		parent.At(x, top).Reset()
	}
	endX, _ := parent.SetStringN(left+1, top, w.title, w.area.Width-2, w.theme.Title)
	for x := endX; x < right; x++ {
		putRune(parent, x, top, boxChars[boxH], style)
	}
	putRune(parent, right, top, boxChars[boxTR], style)

	// Side edges. The right one becomes a scrollbar when the content asks
	// for it and both arrows have room
	for y := top + 1; y < bottom; y++ {
		putRune(parent, left, y, boxChars[boxV], style)
	}
	if w.lastInfo.ShowScrollbar && w.area.Height >= 4 {
		w.drawScrollbar(parent, right)
	} else {
		for y := top + 1; y < bottom; y++ {
			putRune(parent, right, y, boxChars[boxV], style)
		}
	}

	// Bottom edge mirrors the top without a title
	putRune(parent, left, bottom, boxChars[boxBL], style)
	for x := left + 1; x < right; x++ {
		putRune(parent, x, bottom, boxChars[boxH], style)
	}
	putRune(parent, right, bottom, boxChars[boxBR], style)
}

// drawScrollbar renders column x of the frame as arrows, track and thumb.
// The thumb offset scales ScrollFraction over interiorHeight-4, the rows
// it can occupy between the arrows
func (w *Window) drawScrollbar(parent *grid.Grid, x int) {
	style := w.theme.Scrollbar
	top := w.area.Y
	bottom := w.area.Bottom() - 1
	interiorH := w.area.Height - 2

	putRune(parent, x, top+1, scrollUp, style)
	putRune(parent, x, bottom-1, scrollDown, style)
	for y := top + 2; y < bottom-1; y++ {
		putRune(parent, x, y, scrollTrack, style)
	}

	if interiorH < 4 {
		return
	}
	f := w.lastInfo.ScrollFraction
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	thumbY := top + 2 + int(float64(interiorH-4)*f)
	putRune(parent, x, thumbY, scrollThumb, style)
}
