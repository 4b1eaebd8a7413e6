package grid

// ColorKind discriminates how a Color is encoded
type ColorKind uint8

const (
	// ColorKindNone means no explicit color; only meaningful in Style,
	// where it leaves the cell's existing color untouched
	ColorKindNone ColorKind = iota
	// ColorKindReset selects the terminal's default foreground/background
	ColorKindReset
	// ColorKindANSI is an index into the 16-color palette (R holds 0-15)
	ColorKindANSI
	// ColorKindIndexed is an index into the xterm-256 palette (R holds it)
	ColorKindIndexed
	// ColorKindRGB is 24-bit direct color
	ColorKindRGB
)

// Color is a terminal color. The zero value is "unset" and distinct from
// ColorReset, which is the terminal default
type Color struct {
	Kind ColorKind
	// R, G, B are the RGB channels; R doubles as the palette index for
	// ANSI and Indexed kinds
	R, G, B uint8
}

// The standard 16-color palette plus the terminal default
var (
	ColorReset = Color{Kind: ColorKindReset}

	ColorBlack   = Color{Kind: ColorKindANSI, R: 0}
	ColorRed     = Color{Kind: ColorKindANSI, R: 1}
	ColorGreen   = Color{Kind: ColorKindANSI, R: 2}
	ColorYellow  = Color{Kind: ColorKindANSI, R: 3}
	ColorBlue    = Color{Kind: ColorKindANSI, R: 4}
	ColorMagenta = Color{Kind: ColorKindANSI, R: 5}
	ColorCyan    = Color{Kind: ColorKindANSI, R: 6}
	ColorWhite   = Color{Kind: ColorKindANSI, R: 7}

	ColorBrightBlack   = Color{Kind: ColorKindANSI, R: 8}
	ColorBrightRed     = Color{Kind: ColorKindANSI, R: 9}
	ColorBrightGreen   = Color{Kind: ColorKindANSI, R: 10}
	ColorBrightYellow  = Color{Kind: ColorKindANSI, R: 11}
	ColorBrightBlue    = Color{Kind: ColorKindANSI, R: 12}
	ColorBrightMagenta = Color{Kind: ColorKindANSI, R: 13}
	ColorBrightCyan    = Color{Kind: ColorKindANSI, R: 14}
	ColorBrightWhite   = Color{Kind: ColorKindANSI, R: 15}
)

// RGB constructs a 24-bit color
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// Indexed constructs an xterm-256 palette color
func Indexed(i uint8) Color {
	return Color{Kind: ColorKindIndexed, R: i}
}

// IsSet reports whether the color carries an explicit value
// (anything other than the unset zero value)
func (c Color) IsSet() bool {
	return c.Kind != ColorKindNone
}

// IsReset reports whether the color is the terminal default
func (c Color) IsReset() bool {
	return c.Kind == ColorKindReset
}
