package grid

// Style describes a change to apply to a cell's appearance: optional
// foreground/background colors plus attribute bits to add and to remove.
// Add and Sub are kept mutually exclusive by every operation
type Style struct {
	Fg  Color
	Bg  Color
	Add Modifier
	Sub Modifier
}

// StyleReset returns a style that forces every property back to default
func StyleReset() Style {
	return Style{
		Fg:  ColorReset,
		Bg:  ColorReset,
		Sub: modAll,
	}
}

// WithFg returns a copy with an explicit foreground
func (s Style) WithFg(c Color) Style {
	s.Fg = c
	return s
}

// WithBg returns a copy with an explicit background
func (s Style) WithBg(c Color) Style {
	s.Bg = c
	return s
}

// WithAdded returns a copy that additionally enables m.
// m is cleared from the subtract set to keep Add/Sub disjoint
func (s Style) WithAdded(m Modifier) Style {
	s.Sub &^= m
	s.Add |= m
	return s
}

// WithRemoved returns a copy that additionally disables m.
// m is cleared from the add set to keep Add/Sub disjoint
func (s Style) WithRemoved(m Modifier) Style {
	s.Add &^= m
	s.Sub |= m
	return s
}

// Patch combines the style with other so that the result equals applying
// the two styles in sequence. Other's explicit colors win; anything other
// adds ends up present, anything other subtracts ends up absent
func (s Style) Patch(other Style) Style {
	if other.Fg.IsSet() {
		s.Fg = other.Fg
	}
	if other.Bg.IsSet() {
		s.Bg = other.Bg
	}

	s.Add &^= other.Sub
	s.Add |= other.Add
	s.Sub &^= other.Add
	s.Sub |= other.Sub

	return s
}
