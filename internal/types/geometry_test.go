package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "origin rect",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 100},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "offset rect",
			rect: Rect{X: 100, Y: 200, Width: 50, Height: 80},
			want: Point{X: 125, Y: 240},
		},
		{
			name: "zero size",
			rect: Rect{X: 10, Y: 20, Width: 0, Height: 0},
			want: Point{X: 10, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rect.Center())
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 50}, true},
		{"top-left corner", Point{X: 0, Y: 100}, true},
		{"bottom-left corner", Point{X: 0, Y: 0}, false},
		{"top-right corner", Point{X: 100, Y: 100}, false},
		{"outside right", Point{X: 150, Y: 50}, false},
		{"outside left", Point{X: -10, Y: 50}, false},
		{"outside bottom", Point{X: 50, Y: -10}, false},
		{"outside top", Point{X: 50, Y: 150}, false},
		{"on left edge", Point{X: 0, Y: 50}, true},
		{"on right edge", Point{X: 100, Y: 50}, false},
		{"on top edge", Point{X: 50, Y: 100}, true},
		{"on bottom edge", Point{X: 50, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rect.Contains(tt.point), "Contains(%v)", tt.point)
		})
	}
}

func TestRectContains_AdjacentRectsShareNoPoint(t *testing.T) {
	left := Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	right := Rect{X: 1000, Y: 0, Width: 1000, Height: 1000}
	below := Rect{X: 0, Y: -800, Width: 1000, Height: 800}

	seam := Point{X: 1000, Y: 500}
	assert.False(t, left.Contains(seam), "vertical seam belongs to the right rect")
	assert.True(t, right.Contains(seam))

	floor := Point{X: 500, Y: 0}
	assert.False(t, left.Contains(floor), "horizontal seam belongs to the rect below")
	assert.True(t, below.Contains(floor))
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirLeft, "left"},
		{DirRight, "right"},
		{DirUp, "up"},
		{DirDown, "down"},
		{Direction(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dir.String())
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		wantDir Direction
		wantOK  bool
	}{
		{"left", DirLeft, true},
		{"right", DirRight, true},
		{"up", DirUp, true},
		{"down", DirDown, true},
		{"invalid", 0, false},
		{"LEFT", 0, false}, // case sensitive
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotDir, gotOK := ParseDirection(tt.input)
			assert.Equal(t, tt.wantDir, gotDir)
			assert.Equal(t, tt.wantOK, gotOK)
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 300, Height: 200}

	assert.Equal(t, 100.0, r.MinX())
	assert.Equal(t, 400.0, r.MaxX())
	assert.Equal(t, 50.0, r.MinY())
	assert.Equal(t, 250.0, r.MaxY())
	assert.False(t, r.IsZero())
	assert.True(t, Rect{}.IsZero())
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"fully inside", Rect{X: 100, Y: 100, Width: 200, Height: 200}, true},
		{"same frame", outer, true},
		{"sticks out right", Rect{X: 900, Y: 100, Width: 200, Height: 200}, false},
		{"sticks out top", Rect{X: 100, Y: 700, Width: 200, Height: 200}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outer.ContainsRect(tt.inner))
		})
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	assert.Equal(t, 2500.0, a.Overlap(Rect{X: 50, Y: 50, Width: 100, Height: 100}))
	assert.Zero(t, a.Overlap(Rect{X: 100, Y: 0, Width: 100, Height: 100}), "touching rects")
}

func TestRectOverlapAxes(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	beside := Rect{X: 200, Y: 50, Width: 100, Height: 100}
	above := Rect{X: 50, Y: 200, Width: 100, Height: 100}

	assert.True(t, a.OverlapsVertically(beside))
	assert.False(t, a.OverlapsHorizontally(beside))
	assert.True(t, a.OverlapsHorizontally(above))
	assert.False(t, a.OverlapsVertically(above))
}

func TestPointDistance(t *testing.T) {
	p := Point{X: 0, Y: 0}
	assert.Equal(t, 5.0, p.Distance(Point{X: 3, Y: 4}))
}

func TestDirectionIota(t *testing.T) {
	assert.Equal(t, Direction(0), DirLeft)
	assert.Equal(t, Direction(1), DirRight)
	assert.Equal(t, Direction(2), DirUp)
	assert.Equal(t, Direction(3), DirDown)
}
