package output

import (
	"math"

	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/types"
)

// cellAspect is the height:width ratio of a terminal character.
const cellAspect = 2.0

// Scaler maps normalized desktop coordinates (Y-up) onto terminal cells
// (row 0 at the top). One scale is used for both axes, corrected for the
// character aspect, so display proportions survive.
type Scaler struct {
	Bounds types.Rect
	Cols   int
	Rows   int
	Scale  float64 // cells per point, horizontally
}

// NewScaler fits the union of the display frames into cols x rows cells.
func NewScaler(displays []server.Display, cols, rows int) *Scaler {
	bounds := unionFrames(displays)
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = types.Rect{Width: 1920, Height: 1080}
	}

	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}

	scaleX := float64(cols-1) / bounds.Width
	scaleY := float64(rows-1) * cellAspect / bounds.Height

	return &Scaler{
		Bounds: bounds,
		Cols:   cols,
		Rows:   rows,
		Scale:  math.Min(scaleX, scaleY),
	}
}

// Cell converts a desktop point to a terminal cell.
func (s *Scaler) Cell(p types.Point) (col, row int) {
	col = int(math.Round((p.X - s.Bounds.MinX()) * s.Scale))
	row = int(math.Round((s.Bounds.MaxY() - p.Y) * s.Scale / cellAspect))
	return col, row
}

// Box converts a desktop frame to a cell box (x, y, width, height). Boxes
// are at least 2x2 so they stay visible.
func (s *Scaler) Box(r types.Rect) (x, y, w, h int) {
	x, y = s.Cell(types.Point{X: r.MinX(), Y: r.MaxY()})
	x2, y2 := s.Cell(types.Point{X: r.MaxX(), Y: r.MinY()})

	w = x2 - x + 1
	h = y2 - y + 1
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return x, y, w, h
}

// Size returns the canvas size needed for the scaled bounds.
func (s *Scaler) Size() (cols, rows int) {
	_, _, w, h := s.Box(s.Bounds)
	return w, h
}

func unionFrames(displays []server.Display) types.Rect {
	if len(displays) == 0 {
		return types.Rect{}
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, d := range displays {
		minX = math.Min(minX, d.Frame.MinX())
		minY = math.Min(minY, d.Frame.MinY())
		maxX = math.Max(maxX, d.Frame.MaxX())
		maxY = math.Max(maxY, d.Frame.MaxY())
	}
	return types.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
