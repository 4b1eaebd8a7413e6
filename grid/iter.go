package grid

import "fmt"

// DrawIter walks every visible cell in row-major order, skipping cells
// claimed by external overlays. Obtain a fresh iterator to restart
type DrawIter struct {
	grid  *Grid
	index int
}

// Draw returns an iterator over (x, y, cell) for every cell with Skip unset
func (g *Grid) Draw() *DrawIter {
	return &DrawIter{grid: g}
}

// Next returns the next visible cell. ok is false when the grid is exhausted
func (it *DrawIter) Next() (x, y int, cell *Cell, ok bool) {
	for it.index < len(it.grid.cells) {
		i := it.index
		it.index++
		if it.grid.cells[i].Skip {
			continue
		}
		return i % it.grid.width, i / it.grid.width, &it.grid.cells[i], true
	}
	return 0, 0, nil, false
}

// DiffIter walks the cells that differ between two equally sized grids in
// ascending row-major order, yielding the target grid's cell. This is the
// authoritative change-set: nothing outside it may be rendered
type DiffIter struct {
	cur   *Grid
	prev  *Grid
	index int
}

// Diff returns an iterator over the cells where the grid differs from prev.
// Equality is exact across grapheme, colors, attributes and skip flag.
// Panics when dimensions differ
func (g *Grid) Diff(prev *Grid) *DiffIter {
	if g.width != prev.width || g.height != prev.height {
		panic(fmt.Sprintf("grid: diff dimension mismatch: %dx%d vs %dx%d",
			g.width, g.height, prev.width, prev.height))
	}
	return &DiffIter{cur: g, prev: prev}
}

// Next returns the next changed cell. ok is false when exhausted
func (it *DiffIter) Next() (x, y int, cell *Cell, ok bool) {
	for it.index < len(it.cur.cells) {
		i := it.index
		it.index++
		if it.cur.cells[i] != it.prev.cells[i] {
			return i % it.cur.width, i / it.cur.width, &it.cur.cells[i], true
		}
	}
	return 0, 0, nil, false
}
