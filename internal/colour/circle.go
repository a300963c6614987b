package colour

import "math"

// DefaultCanvasSize is the side length of the avatar canvas.
const DefaultCanvasSize = 512

// Circle describes the visible region of a square avatar canvas.
type Circle struct {
	Size   int
	CX, CY int
	Radius float64
}

// NewCircle returns the mask for a size×size canvas: centre at size/2-1 on
// both axes, radius size/2.
func NewCircle(size int) Circle {
	return Circle{
		Size:   size,
		CX:     size/2 - 1,
		CY:     size/2 - 1,
		Radius: float64(size / 2),
	}
}

// DefaultCircle returns the mask for the default canvas.
func DefaultCircle() Circle {
	return NewCircle(DefaultCanvasSize)
}

// Contains reports whether (x, y) lies within the circle. The boundary is
// included.
func (c Circle) Contains(x, y int) bool {
	dx := float64(x - c.CX)
	dy := float64(y - c.CY)
	return math.Sqrt(dx*dx+dy*dy) <= c.Radius
}

// IsInsideCircle reports whether (x, y) is visible on the default canvas.
func IsInsideCircle(x, y int) bool {
	return DefaultCircle().Contains(x, y)
}
