package server

import (
	"context"
	"fmt"

	"github.com/yourusername/spaces-cli/internal/coords"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/models"
	"github.com/yourusername/spaces-cli/internal/types"
)

// Caller sends a request to the introspection server and decodes the
// result. *client.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, method string, params map[string]interface{}, out interface{}) error
}

// Remote is the Port backed by the introspection server. It is the only
// code that sees raw Y-down coordinates.
type Remote struct {
	c Caller

	// referenceHeight is the primary display height from the most recent
	// displays.list call; zero until the first call.
	referenceHeight float64
}

// NewRemote wraps a server connection.
func NewRemote(c Caller) *Remote {
	return &Remote{c: c}
}

var _ Port = (*Remote)(nil)

// Windows lists windows of the given processes via the accessibility channel.
func (r *Remote) Windows(ctx context.Context, pids []int) ([]Window, error) {
	return r.listWindows(ctx, "windows.list", pids)
}

// AllWindows lists windows of the given processes via the system-wide window list.
func (r *Remote) AllWindows(ctx context.Context, pids []int) ([]Window, error) {
	return r.listWindows(ctx, "windows.listAll", pids)
}

func (r *Remote) listWindows(ctx context.Context, method string, pids []int) ([]Window, error) {
	if len(pids) == 0 {
		return nil, nil
	}

	var list models.WindowList
	if err := r.c.Call(ctx, method, map[string]interface{}{"pids": pids}, &list); err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}

	refHeight, err := r.reference(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(list.Windows))
	for _, raw := range list.Windows {
		windows = append(windows, Window{
			ID:          raw.ID,
			PID:         raw.PID,
			Title:       raw.Title,
			Frame:       coords.Normalize(rawRect(raw.Frame), refHeight),
			IsMinimized: raw.IsMinimized,
			IsMain:      raw.IsMain,
			IsFocused:   raw.IsFocused,
			Layer:       raw.Layer,
		})
	}
	return windows, nil
}

// FocusedProcess returns the frontmost process, or nil.
func (r *Remote) FocusedProcess(ctx context.Context) (*Process, error) {
	var focused models.FocusedApplication
	if err := r.c.Call(ctx, "apps.focused", nil, &focused); err != nil {
		return nil, fmt.Errorf("apps.focused failed: %w", err)
	}
	if focused.App == nil {
		return nil, nil
	}
	p := toProcess(*focused.App)
	return &p, nil
}

// VisibleProcesses lists regular, non-hidden processes.
func (r *Remote) VisibleProcesses(ctx context.Context) ([]Process, error) {
	return r.listApps(ctx, "apps.visible")
}

// RunningProcesses lists every running process with a bundle identifier.
func (r *Remote) RunningProcesses(ctx context.Context) ([]Process, error) {
	return r.listApps(ctx, "apps.running")
}

func (r *Remote) listApps(ctx context.Context, method string) ([]Process, error) {
	var list models.ApplicationList
	if err := r.c.Call(ctx, method, nil, &list); err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}

	procs := make([]Process, 0, len(list.Apps))
	for _, raw := range list.Apps {
		if raw.BundleIdentifier == "" {
			continue
		}
		procs = append(procs, toProcess(raw))
	}
	return procs, nil
}

// Displays lists connected displays.
func (r *Remote) Displays(ctx context.Context) ([]Display, error) {
	var list models.DisplayList
	if err := r.c.Call(ctx, "displays.list", nil, &list); err != nil {
		return nil, fmt.Errorf("displays.list failed: %w", err)
	}

	rawFrames := make([]types.Rect, len(list.Displays))
	for i, d := range list.Displays {
		rawFrames[i] = rawRect(d.Frame)
	}
	r.referenceHeight = coords.ReferenceHeight(rawFrames)

	displays := make([]Display, 0, len(list.Displays))
	for i, raw := range list.Displays {
		name := raw.Name
		if name == "" {
			name = raw.UUID
		}
		displays = append(displays, Display{
			Name:   name,
			Frame:  coords.Normalize(rawFrames[i], r.referenceHeight),
			IsMain: raw.IsMain,
		})
	}
	return displays, nil
}

// PointerLocation returns the normalized pointer position.
func (r *Remote) PointerLocation(ctx context.Context) (types.Point, error) {
	var raw models.RawPoint
	if err := r.c.Call(ctx, "mouse.location", nil, &raw); err != nil {
		return types.Point{}, fmt.Errorf("mouse.location failed: %w", err)
	}
	refHeight, err := r.reference(ctx)
	if err != nil {
		return types.Point{}, err
	}
	return coords.NormalizePoint(types.Point{X: raw.X, Y: raw.Y}, refHeight), nil
}

// FocusWindow asks the server to make the window key.
func (r *Remote) FocusWindow(ctx context.Context, w Window) (bool, error) {
	var res models.CommandResult
	err := r.c.Call(ctx, "window.focus", map[string]interface{}{
		"windowId": w.ID,
		"pid":      w.PID,
	}, &res)
	if err != nil {
		return false, fmt.Errorf("window.focus failed for window %d: %w", w.ID, err)
	}
	return res.Success, nil
}

// Activate brings the process to the foreground.
func (r *Remote) Activate(ctx context.Context, p Process) error {
	if err := r.c.Call(ctx, "app.activate", map[string]interface{}{"pid": p.PID}, nil); err != nil {
		return fmt.Errorf("app.activate failed for %s: %w", p.BundleID, err)
	}
	return nil
}

// WarpPointer moves the pointer to a normalized point.
func (r *Remote) WarpPointer(ctx context.Context, p types.Point) error {
	refHeight, err := r.reference(ctx)
	if err != nil {
		return err
	}
	raw := coords.DenormalizePoint(p, refHeight)
	if err := r.c.Call(ctx, "mouse.warp", map[string]interface{}{"x": raw.X, "y": raw.Y}, nil); err != nil {
		return fmt.Errorf("mouse warp failed: %w", err)
	}
	return nil
}

// PostNeutralKey posts a key event with no side effects, used to coax
// focus back after a rejected focus request.
func (r *Remote) PostNeutralKey(ctx context.Context) error {
	if err := r.c.Call(ctx, "key.postNeutral", nil, nil); err != nil {
		return fmt.Errorf("key.postNeutral failed: %w", err)
	}
	return nil
}

// WindowElements fetches the accessibility element tree of a window.
func (r *Remote) WindowElements(ctx context.Context, w Window) (*Element, error) {
	var tree models.ElementTree
	if err := r.c.Call(ctx, "window.elements", map[string]interface{}{"windowId": w.ID, "pid": w.PID}, &tree); err != nil {
		return nil, fmt.Errorf("window.elements failed for window %d: %w", w.ID, err)
	}
	if tree.Root == nil {
		return nil, nil
	}
	root := toElement(*tree.Root)
	return &root, nil
}

// FocusElement focuses an element inside a window.
func (r *Remote) FocusElement(ctx context.Context, w Window, e Element) error {
	err := r.c.Call(ctx, "element.focus", map[string]interface{}{
		"windowId":  w.ID,
		"pid":       w.PID,
		"elementId": e.ID,
	}, nil)
	if err != nil {
		return fmt.Errorf("element.focus failed for %s: %w", e.ID, err)
	}
	return nil
}

// reference returns the primary display height, querying displays on
// first use.
func (r *Remote) reference(ctx context.Context) (float64, error) {
	if r.referenceHeight > 0 {
		return r.referenceHeight, nil
	}
	if _, err := r.Displays(ctx); err != nil {
		return 0, err
	}
	if r.referenceHeight == 0 {
		logging.Warn().Msg("no primary display reported; coordinates left unconverted")
	}
	return r.referenceHeight, nil
}

func rawRect(f models.RawFrame) types.Rect {
	return types.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

func toProcess(raw models.RawApplication) Process {
	return Process{
		PID:         raw.PID,
		BundleID:    raw.BundleIdentifier,
		Name:        raw.LocalizedName,
		IsHidden:    raw.IsHidden,
		IsRegular:   raw.ActivationPolicy == "" || raw.ActivationPolicy == "regular",
		IsFrontmost: raw.IsActive,
	}
}

func toElement(raw models.RawElement) Element {
	el := Element{ID: raw.ID, Role: raw.Role}
	for _, child := range raw.Children {
		el.Children = append(el.Children, toElement(child))
	}
	return el
}
