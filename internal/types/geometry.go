package types

import "math"

// Rect is a frame in the normalized coordinate convention: origin at the
// bottom-left of the primary display, Y growing upward.
type Rect struct {
	X      float64 `json:"x"`      // Left edge
	Y      float64 `json:"y"`      // Bottom edge
	Width  float64 `json:"width"`  // Width in points
	Height float64 `json:"height"` // Height in points
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the bottom edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// IsZero reports whether the rect carries no frame information.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect. Edges are half-open so
// that adjacent rects never share a point: the left edge belongs to the
// rect, the right one does not. In the Y-up frame the top edge belongs to
// the rect and the bottom one does not, matching the top-row-inclusive
// Y-down screen frames the rects come from.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y > r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect checks if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.MinX() >= r.MinX() && other.MaxX() <= r.MaxX() &&
		other.MinY() >= r.MinY() && other.MaxY() <= r.MaxY()
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	bottom := max(r.Y, other.Y)
	top := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || bottom >= top {
		return 0
	}
	return (right - left) * (top - bottom)
}

// OverlapsVertically checks if the Y ranges of two rects intersect.
func (r Rect) OverlapsVertically(other Rect) bool {
	return r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// OverlapsHorizontally checks if the X ranges of two rects intersect.
func (r Rect) OverlapsHorizontally(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction represents navigation direction
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	default:
		return 0, false
	}
}
