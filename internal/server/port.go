// Package server defines the introspection port the engine consumes and an
// implementation backed by the local introspection server.
package server

import (
	"context"

	"github.com/yourusername/spaces-cli/internal/coords"
	"github.com/yourusername/spaces-cli/internal/types"
)

// Process is a running application instance. BundleID is its stable
// identity; PID is only valid for the current run.
type Process struct {
	PID         int    `json:"pid"`
	BundleID    string `json:"bundleId"`
	Name        string `json:"name"`
	IsHidden    bool   `json:"isHidden"`
	IsRegular   bool   `json:"isRegular"`
	IsFrontmost bool   `json:"isFrontmost"`
}

// Window is an on-screen window. Frame is normalized (Y-up).
// Windows are re-enumerated on every query and never cached.
type Window struct {
	ID          uint32     `json:"id"`
	PID         int        `json:"pid"`
	Title       string     `json:"title"`
	Frame       types.Rect `json:"frame"`
	IsMinimized bool       `json:"isMinimized"`
	IsMain      bool       `json:"isMain"`
	IsFocused   bool       `json:"isFocused"`
	Layer       int        `json:"layer"`
}

// Display is a connected physical screen. Frame is normalized (Y-up).
type Display struct {
	Name   string     `json:"name"`
	Frame  types.Rect `json:"frame"`
	IsMain bool       `json:"isMain"`
}

// Element is a node of a window's accessibility element tree.
type Element struct {
	ID       string    `json:"id"`
	Role     string    `json:"role"`
	Children []Element `json:"children,omitempty"`
}

// Port is the OS window/display introspection service.
//
// Windows uses the per-process accessibility channel, which misses windows
// living in full-screen spaces. AllWindows uses the system-wide window list
// filtered by owning pid; it sees full-screen spaces but returns overlays
// and helper windows too, so callers filter by layer and size.
type Port interface {
	Windows(ctx context.Context, pids []int) ([]Window, error)
	AllWindows(ctx context.Context, pids []int) ([]Window, error)

	// FocusedProcess returns nil when nothing holds focus.
	FocusedProcess(ctx context.Context) (*Process, error)
	VisibleProcesses(ctx context.Context) ([]Process, error)
	RunningProcesses(ctx context.Context) ([]Process, error)

	Displays(ctx context.Context) ([]Display, error)
	PointerLocation(ctx context.Context) (types.Point, error)

	// FocusWindow reports false when the OS rejected the focus request.
	FocusWindow(ctx context.Context, w Window) (bool, error)
	Activate(ctx context.Context, p Process) error
	WarpPointer(ctx context.Context, p types.Point) error
	PostNeutralKey(ctx context.Context) error

	WindowElements(ctx context.Context, w Window) (*Element, error)
	FocusElement(ctx context.Context, w Window, e Element) error
}

// PIDs returns the process ids of the given processes.
func PIDs(procs []Process) []int {
	pids := make([]int, 0, len(procs))
	for _, p := range procs {
		pids = append(pids, p.PID)
	}
	return pids
}

// MainDisplay returns the display flagged main, else the first one.
// Returns false when no display is connected.
func MainDisplay(displays []Display) (Display, bool) {
	for _, d := range displays {
		if d.IsMain {
			return d, true
		}
	}
	if len(displays) > 0 {
		return displays[0], true
	}
	return Display{}, false
}

// DisplayNamed finds a connected display by name.
func DisplayNamed(displays []Display, name string) (Display, bool) {
	for _, d := range displays {
		if d.Name == name {
			return d, true
		}
	}
	return Display{}, false
}

// DisplayAt returns the display containing the point.
func DisplayAt(displays []Display, p types.Point) (Display, bool) {
	for _, d := range displays {
		if d.Frame.Contains(p) {
			return d, true
		}
	}
	return Display{}, false
}

// DisplayForFrame attributes a window frame to a display: the one holding
// the frame's center, else the one with the largest overlap.
func DisplayForFrame(displays []Display, frame types.Rect) (Display, bool) {
	if d, ok := DisplayAt(displays, frame.Center()); ok {
		return d, true
	}

	var best Display
	bestArea := 0.0
	for _, d := range displays {
		if area := d.Frame.Overlap(frame); area > bestArea {
			best = d
			bestArea = area
		}
	}
	return best, bestArea > 0
}

// Qualifies reports whether the window takes part in navigation.
func (w Window) Qualifies() bool {
	return coords.Qualifies(w.Frame, w.Layer, w.IsMinimized)
}

// Center returns the center of the window frame.
func (w Window) Center() types.Point {
	return w.Frame.Center()
}
