package grid

// Cell is a single grid position's visible state: one extended grapheme
// cluster plus colors and attributes. Skip marks cells that belong to an
// externally drawn overlay (terminal graphics protocols); the visible-cells
// iterator honors it, nothing in this module ever sets it
type Cell struct {
	Grapheme string
	Fg       Color
	Bg       Color
	Mods     Modifier
	Skip     bool
}

// DefaultCell returns a blank cell: a single space with default colors
func DefaultCell() Cell {
	return Cell{Grapheme: " ", Fg: ColorReset, Bg: ColorReset}
}

// SetGrapheme replaces the cell's grapheme cluster
func (c *Cell) SetGrapheme(s string) *Cell {
	c.Grapheme = s
	return c
}

// SetRune replaces the cell's grapheme with a single rune
func (c *Cell) SetRune(r rune) *Cell {
	c.Grapheme = string(r)
	return c
}

// SetFg sets the foreground color
func (c *Cell) SetFg(color Color) *Cell {
	c.Fg = color
	return c
}

// SetBg sets the background color
func (c *Cell) SetBg(color Color) *Cell {
	c.Bg = color
	return c
}

// ApplyStyle patches the cell with style: explicit colors replace,
// added attribute bits are set, subtracted bits are cleared
func (c *Cell) ApplyStyle(style Style) *Cell {
	if style.Fg.IsSet() {
		c.Fg = style.Fg
	}
	if style.Bg.IsSet() {
		c.Bg = style.Bg
	}
	c.Mods |= style.Add
	c.Mods &^= style.Sub
	return c
}

// Style returns the cell's appearance as an explicit style
func (c *Cell) Style() Style {
	return Style{Fg: c.Fg, Bg: c.Bg, Add: c.Mods}
}

// SetSkip marks or unmarks the cell as overlay-owned
func (c *Cell) SetSkip(skip bool) *Cell {
	c.Skip = skip
	return c
}

// Width returns the cell's display width in columns: 0, 1 or 2
func (c *Cell) Width() int {
	return graphemeWidth(c.Grapheme)
}

// Reset restores the default blank state
func (c *Cell) Reset() {
	c.Grapheme = " "
	c.Fg = ColorReset
	c.Bg = ColorReset
	c.Mods = ModNone
	c.Skip = false
}
