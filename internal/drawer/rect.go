package drawer

// Rect is an axis-aligned frame in container coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// WithY returns r moved vertically to y.
func (r Rect) WithY(y float64) Rect {
	r.Y = y
	return r
}
