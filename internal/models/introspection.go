package models

import (
	"encoding/json"
	"fmt"
)

// Raw records returned by the introspection server. Frames and points are
// in the server's native convention: global coordinates, origin at the
// top-left of the primary display, Y growing downward.

// RawFrame is a window or display frame as reported by the server.
// Accepts both {x, y, width, height} and [[x, y], [width, height]].
type RawFrame struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// UnmarshalJSON decodes either frame format.
func (f *RawFrame) UnmarshalJSON(data []byte) error {
	var obj struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*f = RawFrame{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}
		return nil
	}

	var arr [][]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("unsupported frame format: %s", string(data))
	}
	if len(arr) != 2 || len(arr[0]) < 2 || len(arr[1]) < 2 {
		return fmt.Errorf("frame array must be [[x, y], [width, height]]")
	}
	*f = RawFrame{X: arr[0][0], Y: arr[0][1], Width: arr[1][0], Height: arr[1][1]}
	return nil
}

// RawWindow is a single window record.
type RawWindow struct {
	ID          uint32   `json:"id"`
	PID         int      `json:"pid"`
	Title       string   `json:"title"`
	Frame       RawFrame `json:"frame"`
	IsMinimized bool     `json:"isMinimized"`
	IsMain      bool     `json:"isMain"`
	IsFocused   bool     `json:"isFocused"`
	Layer       int      `json:"layer"`
}

// RawApplication is a running process record.
type RawApplication struct {
	PID              int    `json:"pid"`
	BundleIdentifier string `json:"bundleIdentifier"`
	LocalizedName    string `json:"localizedName"`
	IsActive         bool   `json:"isActive"`
	IsHidden         bool   `json:"isHidden"`
	ActivationPolicy string `json:"activationPolicy"` // "regular", "accessory", "prohibited"
}

// RawDisplay is a connected display record.
type RawDisplay struct {
	Name   string   `json:"name"`
	UUID   string   `json:"uuid"`
	Frame  RawFrame `json:"frame"`
	IsMain bool     `json:"isMain"`
}

// RawPoint is a pointer location.
type RawPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawElement is a node of a window's accessibility element tree.
type RawElement struct {
	ID       string       `json:"id"`
	Role     string       `json:"role"`
	Children []RawElement `json:"children,omitempty"`
}

// WindowList is the result of windows.list and windows.listAll.
type WindowList struct {
	Windows []RawWindow `json:"windows"`
}

// ApplicationList is the result of apps.running and apps.visible.
type ApplicationList struct {
	Apps []RawApplication `json:"apps"`
}

// FocusedApplication is the result of apps.focused.
type FocusedApplication struct {
	App *RawApplication `json:"app"`
}

// DisplayList is the result of displays.list.
type DisplayList struct {
	Displays []RawDisplay `json:"displays"`
}

// ElementTree is the result of window.elements.
type ElementTree struct {
	Root *RawElement `json:"root"`
}

// CommandResult is the result of commands that report acceptance.
type CommandResult struct {
	Success bool `json:"success"`
}

// Decode converts a generic RPC result map into a typed record.
func Decode(result map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return nil
}
