package window

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termwin/grid"
)

// Theme defines the styles used for window chrome
type Theme struct {
	Border      grid.Style
	FocusBorder grid.Style
	Title       grid.Style
	Scrollbar   grid.Style
}

// DefaultTheme provides reasonable defaults
var DefaultTheme = NewTheme(
	grid.RGB(60, 80, 100),
	grid.RGB(200, 200, 200),
	grid.RGB(100, 100, 100),
)

// NewTheme builds a theme from base colors. The focused border style is
// derived from the border color rather than configured separately, so the
// two always stay in the same family.
func NewTheme(border, title, scrollbar grid.Color) Theme {
	return Theme{
		Border:      grid.Style{Fg: border},
		FocusBorder: grid.Style{Fg: Lighten(border, 0.25)},
		Title:       grid.Style{Fg: title, Add: grid.ModBold},
		Scrollbar:   grid.Style{Fg: scrollbar},
	}
}

// Lighten raises the color's luminance by amount in HCL space, clamped to
// the displayable gamut. Palette colors pass through unchanged; their
// channels are indices, not light levels.
func Lighten(c grid.Color, amount float64) grid.Color {
	if c.Kind != grid.ColorKindRGB {
		return c
	}
	in := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, ch, l := in.Hcl()
	l += amount
	if l > 1 {
		l = 1
	}
	r, g, b := colorful.Hcl(h, ch, l).Clamped().RGB255()
	return grid.RGB(r, g, b)
}

// ParseHex converts a "#rrggbb" config string to an RGB color
func ParseHex(s string) (grid.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return grid.Color{}, fmt.Errorf("window: color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return grid.RGB(r, g, b), nil
}
