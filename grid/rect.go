package grid

// Rect is a plain rectangle value. Coordinates are top-left based
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect constructs a rectangle
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Area returns width*height
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Left returns the leftmost column
func (r Rect) Left() int {
	return r.X
}

// Right returns the first column past the rectangle
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the topmost row
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the first row past the rectangle
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
