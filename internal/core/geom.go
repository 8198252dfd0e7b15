// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in world units.
// X and Y are the top-left corner, Y grows downwards.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlaps reports whether the two boxes intersect with positive area.
// Boxes that only share an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.X+other.W &&
		b.X+b.W > other.X &&
		b.Y < other.Y+other.H &&
		b.Y+b.H > other.Y
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps world coordinates onto a grid of screen cells.
type Viewport struct {
	OffsetY int     // First screen row used by the world
	ScaleX  float64 // Cells per world unit, horizontally
	ScaleY  float64 // Cells per world unit, vertically
}

// NewViewport fits a worldW x worldH world into cols x rows cells starting at offsetY.
func NewViewport(worldW, worldH float64, cols, rows, offsetY int) Viewport {
	v := Viewport{OffsetY: offsetY}
	if worldW > 0 {
		v.ScaleX = float64(cols) / worldW
	}
	if worldH > 0 {
		v.ScaleY = float64(rows) / worldH
	}
	return v
}

// Project converts a world box to the screen cells it covers.
// Any box with positive size covers at least one cell.
func (v Viewport) Project(b Box) Rect {
	x0 := int(math.Floor(b.X * v.ScaleX))
	y0 := int(math.Floor(b.Y * v.ScaleY))
	x1 := int(math.Ceil(b.Right() * v.ScaleX))
	y1 := int(math.Ceil(b.Bottom() * v.ScaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0+v.OffsetY, x1-x0, y1-y0)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
