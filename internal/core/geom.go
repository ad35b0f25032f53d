// Package core provides fundamental types and utilities shared by the simulation
// and the platform layer. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Vector2i is an integer grid coordinate. X is the column, Y the row.
type Vector2i struct {
	X, Y int
}

// Vec2i creates a new integer vector.
func Vec2i(x, y int) Vector2i {
	return Vector2i{X: x, Y: y}
}

// Plus returns the component-wise sum.
func (v Vector2i) Plus(o Vector2i) Vector2i {
	return Vector2i{X: v.X + o.X, Y: v.Y + o.Y}
}

// Minus returns the component-wise difference.
func (v Vector2i) Minus(o Vector2i) Vector2i {
	return Vector2i{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scaled multiplies both components by n.
func (v Vector2i) Scaled(n int) Vector2i {
	return Vector2i{X: v.X * n, Y: v.Y * n}
}

// EuclideanDist returns the straight-line distance to another tile.
func (v Vector2i) EuclideanDist(o Vector2i) float64 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanDist returns the taxicab distance to another tile.
func (v Vector2i) ManhattanDist(o Vector2i) int {
	return Abs(v.X-o.X) + Abs(v.Y-o.Y)
}

// Float converts to continuous coordinates (tile centers have integer values).
func (v Vector2i) Float() Vector2f {
	return Vector2f{X: float64(v.X), Y: float64(v.Y)}
}

// Vector2f is a continuous position measured in tiles. The center of tile
// (c, r) is at (c, r).
type Vector2f struct {
	X, Y float64
}

// Vec2f creates a new float vector.
func Vec2f(x, y float64) Vector2f {
	return Vector2f{X: x, Y: y}
}

// Tile returns the tile containing this position.
func (v Vector2f) Tile() Vector2i {
	return Vector2i{X: int(math.Floor(v.X + 0.5)), Y: int(math.Floor(v.Y + 0.5))}
}

// Plus returns the component-wise sum.
func (v Vector2f) Plus(o Vector2f) Vector2f {
	return Vector2f{X: v.X + o.X, Y: v.Y + o.Y}
}

// Dist returns the euclidean distance to another position.
func (v Vector2f) Dist(o Vector2f) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Direction is one of the four orthogonal movement directions.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirLeft
	DirDown
	DirRight
)

// Directions lists the movement directions in arcade tie-break order.
var Directions = [4]Direction{DirUp, DirLeft, DirDown, DirRight}

// Vector returns the unit grid step for the direction.
func (d Direction) Vector() Vector2i {
	switch d {
	case DirUp:
		return Vector2i{X: 0, Y: -1}
	case DirLeft:
		return Vector2i{X: -1, Y: 0}
	case DirDown:
		return Vector2i{X: 0, Y: 1}
	case DirRight:
		return Vector2i{X: 1, Y: 0}
	default:
		return Vector2i{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// IsHorizontal reports whether the direction is left or right.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// Valid reports whether d is one of the four movement directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Rect represents an axis-aligned bounding box.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
