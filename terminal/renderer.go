package terminal

import (
	"fmt"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/status"
)

// CellSource yields positioned cells in row-major order. Both
// *grid.DrawIter and *grid.DiffIter satisfy it.
type CellSource interface {
	Next() (x, y int, cell *grid.Cell, ok bool)
}

// Renderer replays cell updates onto a backend with as few commands as
// it can: cursor moves only on discontinuities, color and attribute
// directives only on change.
type Renderer struct {
	backend Backend
	metrics *status.Registry

	// Parking position for the cursor after each pass
	cursorX int
	cursorY int

	ops []AttrOp
}

func NewRenderer(b Backend, metrics *status.Registry) *Renderer {
	return &Renderer{backend: b, metrics: metrics}
}

// SetCursor sets where the cursor parks after each Draw
func (r *Renderer) SetCursor(x, y int) {
	r.cursorX = x
	r.cursorY = y
}

// Draw replays src onto the backend and flushes. Pen state is tracked
// per pass: the first cell always positions the cursor and the pass
// ends by resetting colors and attributes and parking the cursor.
func (r *Renderer) Draw(src CellSource) error {
	fg := grid.ColorReset
	bg := grid.ColorReset
	mods := grid.ModNone
	lastX, lastY := 0, 0
	posValid := false
	var cells int64

	for {
		x, y, cell, ok := src.Next()
		if !ok {
			break
		}

		if !posValid || x != lastX+1 || y != lastY {
			r.backend.MoveTo(x, y)
		}

		if cell.Mods != mods {
			r.ops = AppendAttrOps(r.ops[:0], mods, cell.Mods)
			for _, op := range r.ops {
				if op.Enable {
					r.backend.EnableAttr(op.Attr)
				} else {
					r.backend.DisableAttr(op.Attr)
				}
			}
			mods = cell.Mods
		}
		if cell.Fg != fg {
			r.backend.SetForeground(cell.Fg)
			fg = cell.Fg
		}
		if cell.Bg != bg {
			r.backend.SetBackground(cell.Bg)
			bg = cell.Bg
		}

		r.backend.Print(cell.Grapheme)

		// A wide grapheme leaves the cursor past more than one column
		lastX = x + cell.Width() - 1
		lastY = y
		posValid = true
		cells++
	}

	r.backend.SetForeground(grid.ColorReset)
	r.backend.SetBackground(grid.ColorReset)
	r.backend.Reset()
	r.backend.MoveTo(r.cursorX, r.cursorY)

	r.metrics.AddCells(cells)

	if err := r.backend.Flush(); err != nil {
		return fmt.Errorf("render flush: %w", err)
	}
	return nil
}
