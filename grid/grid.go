package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grid is a fixed-size rectangular array of cells backing one rendering
// surface: a window interior or a full-screen composite. Cells are stored
// row-major; len(cells) == width*height at all times
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New allocates a grid of blank cells
func New(width, height int) *Grid {
	return NewFilled(width, height, DefaultCell())
}

// NewFilled allocates a grid with every cell cloned from template
func NewFilled(width, height int, template Cell) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = template
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in cells
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *Grid) Height() int { return g.height }

// Size returns both dimensions
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// Resize changes the dimensions. Content is not preserved; every cell
// comes out blank. Reallocates only if capacity is insufficient
func (g *Grid) Resize(width, height int) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	size := width * height
	if cap(g.cells) < size {
		g.cells = make([]Cell, size)
	} else {
		g.cells = g.cells[:size]
	}
	g.width = width
	g.height = height
	g.Reset()
}

// Reset restores every cell to the default blank state using
// exponential copy
func (g *Grid) Reset() {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = DefaultCell()
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}

// IndexOf maps (x, y) to the row-major cell index.
// Panics when the coordinate lies outside the grid
func (g *Grid) IndexOf(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("grid: position outside the %dx%d grid: x=%d, y=%d",
			g.width, g.height, x, y))
	}
	return y*g.width + x
}

// PosOf maps a cell index back to (x, y).
// Panics when the index lies outside the content
func (g *Grid) PosOf(i int) (x, y int) {
	if i < 0 || i >= len(g.cells) {
		panic(fmt.Sprintf("grid: index outside the content: i=%d len=%d",
			i, len(g.cells)))
	}
	return i % g.width, i / g.width
}

// At returns the cell at (x, y). Panics on out-of-range coordinates
func (g *Grid) At(x, y int) *Cell {
	return &g.cells[g.IndexOf(x, y)]
}

// SetString places text starting at (x, y), bounded by the grid width
func (g *Grid) SetString(x, y int, text string, style Style) {
	g.SetStringN(x, y, text, math.MaxInt, style)
}

// SetStringN places at most maxWidth display columns of text starting at
// (x, y), iterating by extended grapheme cluster. Zero-width graphemes are
// skipped without consuming a cell. A wide grapheme occupies one cell and
// blanks the following width-1 cells so they are never drawn separately.
// Placement stops when the next grapheme would not fit; it never splits or
// skips ahead. Returns the position immediately after the last placement
func (g *Grid) SetStringN(x, y int, text string, maxWidth int, style Style) (int, int) {
	index := g.IndexOf(x, y)
	xOffset := x
	maxOffset := g.width
	if maxWidth < g.width-x {
		maxOffset = x + maxWidth
	}

	state := -1
	var cluster string
	for rest := text; rest != ""; {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := graphemeWidth(cluster)
		if w == 0 {
			continue
		}
		if w > maxOffset-xOffset {
			break
		}

		g.cells[index].SetGrapheme(cluster)
		g.cells[index].ApplyStyle(style)
		// Blank the cells hidden under a multi-width grapheme
		for i := index + 1; i < index+w; i++ {
			g.cells[i].Reset()
		}
		index += w
		xOffset += w
	}
	return xOffset, y
}

// SetLines splits text on line boundaries and places each line at
// increasing y
func (g *Grid) SetLines(x, y int, text string, style Style) {
	for i, line := range strings.Split(text, "\n") {
		g.SetString(x, y+i, strings.TrimSuffix(line, "\r"), style)
	}
}

// SetStyle patches every cell inside area, leaving graphemes untouched
func (g *Grid) SetStyle(area Rect, style Style) {
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			g.cells[g.IndexOf(x, y)].ApplyStyle(style)
		}
	}
}

// Insert copies every cell of other into the grid at offset (x, y),
// overwriting destination cells verbatim
func (g *Grid) Insert(x, y int, other *Grid) {
	for i := range other.cells {
		xc, yc := other.PosOf(i)
		g.cells[g.IndexOf(x+xc, y+yc)] = other.cells[i]
	}
}

// graphemeWidth returns the display width of one grapheme cluster,
// measured by its first rune
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	for _, r := range cluster {
		return runewidth.RuneWidth(r)
	}
	return 0
}
