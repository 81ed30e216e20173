// Package coords converts introspection data into the single normalized
// coordinate convention and decides which windows count for navigation.
//
// Two conventions exist on the wire. Window, display and pointer data from
// the introspection server is Y-down with the origin at the top-left of the
// primary display. Everything else in this module works Y-up with the
// origin at the bottom-left of the primary display. Only this package
// converts between the two.
package coords

import "github.com/yourusername/spaces-cli/internal/types"

const (
	// NoiseThreshold is the minimum width and height (exclusive) for a
	// window to count. Tracking windows and invisible tooltip helpers sit
	// below it.
	NoiseThreshold = 10.0

	// StandardLayer is the window level of normal application content.
	StandardLayer = 0
)

// Normalize converts a Y-down frame anchored at the primary display's
// top-left into the Y-up, bottom-left-anchored convention.
func Normalize(raw types.Rect, referenceHeight float64) types.Rect {
	return types.Rect{
		X:      raw.X,
		Y:      referenceHeight - (raw.Y + raw.Height),
		Width:  raw.Width,
		Height: raw.Height,
	}
}

// Denormalize is the inverse of Normalize.
func Denormalize(frame types.Rect, referenceHeight float64) types.Rect {
	// The transform is its own inverse.
	return Normalize(frame, referenceHeight)
}

// NormalizePoint converts a Y-down point into the normalized convention.
func NormalizePoint(raw types.Point, referenceHeight float64) types.Point {
	return types.Point{X: raw.X, Y: referenceHeight - raw.Y}
}

// DenormalizePoint converts a normalized point back to Y-down, e.g. for
// pointer warps.
func DenormalizePoint(p types.Point, referenceHeight float64) types.Point {
	return types.Point{X: p.X, Y: referenceHeight - p.Y}
}

// ReferenceHeight picks the height of the primary display from raw Y-down
// display frames: the one anchored at the origin, else the first.
func ReferenceHeight(rawDisplayFrames []types.Rect) float64 {
	for _, f := range rawDisplayFrames {
		if f.X == 0 && f.Y == 0 {
			return f.Height
		}
	}
	if len(rawDisplayFrames) > 0 {
		return rawDisplayFrames[0].Height
	}
	return 0
}

// IsSignificant returns false for frames whose width or height is at or
// below the noise threshold.
func IsSignificant(frame types.Rect) bool {
	return frame.Width > NoiseThreshold && frame.Height > NoiseThreshold
}

// IsStandardContentWindow returns true only for the base content layer.
// Overlays, status items and panels are excluded from navigation and from
// display membership.
func IsStandardContentWindow(layer int) bool {
	return layer == StandardLayer
}

// Qualifies reports whether a window takes part in navigation and display
// membership: standard layer, significant size, not minimized.
func Qualifies(frame types.Rect, layer int, minimized bool) bool {
	return !minimized && IsStandardContentWindow(layer) && IsSignificant(frame)
}
