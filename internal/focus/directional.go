package focus

import (
	"context"
	"sort"

	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/types"
)

// Directional moves focus to the nearest window in a direction.
type Directional struct {
	port    server.Port
	focuser *Focuser

	// FrontmostOnly skips candidates covered by another window.
	FrontmostOnly bool
	// CenterCursor warps the pointer to the newly focused window.
	CenterCursor bool
}

// NewDirectional creates a directional navigator.
func NewDirectional(port server.Port, focuser *Focuser) *Directional {
	return &Directional{port: port, focuser: focuser}
}

// Focus moves focus in the direction. It does nothing when no process or
// window has focus, or when no window lies in that direction.
func (d *Directional) Focus(ctx context.Context, dir types.Direction) {
	focused, err := d.port.FocusedProcess(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("focused app unavailable")
		return
	}
	if focused == nil {
		logging.Debug().Str("direction", dir.String()).Msg("no focused app")
		return
	}

	own, err := d.port.Windows(ctx, []int{focused.PID})
	if err != nil {
		logging.Warn().Err(err).Msg("listing focused app windows failed")
		return
	}
	current, ok := focusedWindow(own)
	if !ok {
		logging.Debug().Str("app", focused.BundleID).Msg("focused app has no window")
		return
	}

	visible, err := d.port.VisibleProcesses(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing visible apps failed")
		return
	}
	var shown []server.Process
	for _, p := range visible {
		if !p.IsHidden {
			shown = append(shown, p)
		}
	}

	windows, err := d.port.Windows(ctx, server.PIDs(shown))
	if err != nil {
		logging.Warn().Err(err).Msg("listing windows failed")
		return
	}
	windows = qualifying(windows)

	candidates := FindCandidates(current, windows, dir)
	if d.FrontmostOnly {
		candidates = unoccluded(candidates, windows, focused.PID)
	}
	if len(candidates) == 0 {
		logging.Debug().Str("direction", dir.String()).Msg("no window in direction")
		return
	}

	target := candidates[0]
	owner, ok := byPID(shown)[target.PID]
	if !ok {
		return
	}
	logging.Debug().
		Str("direction", dir.String()).
		Str("app", owner.BundleID).
		Uint32("window", target.ID).
		Msg("directional focus")
	d.focuser.Focus(ctx, owner, &target, d.CenterCursor)
}

// FindCandidates returns the windows lying in the direction from current,
// nearest first by center distance. Ties keep enumeration order.
func FindCandidates(current server.Window, windows []server.Window, dir types.Direction) []server.Window {
	var out []server.Window
	for _, w := range windows {
		if w.ID == current.ID && w.PID == current.PID {
			continue
		}
		if IsInDirection(current.Frame, w.Frame, dir) {
			out = append(out, w)
		}
	}

	from := current.Frame.Center()
	sort.SliceStable(out, func(i, j int) bool {
		return from.Distance(out[i].Frame.Center()) < from.Distance(out[j].Frame.Center())
	})
	return out
}

// IsInDirection checks whether other lies in the direction from f. Frames
// are normalized, so up means larger Y.
func IsInDirection(f, other types.Rect, dir types.Direction) bool {
	switch dir {
	case types.DirRight:
		return other.MaxX() > f.MaxX() && f.OverlapsVertically(other)
	case types.DirLeft:
		return other.MinX() < f.MinX() && f.OverlapsVertically(other)
	case types.DirUp:
		return other.MaxY() > f.MaxY() && f.OverlapsHorizontally(other)
	case types.DirDown:
		return other.MinY() < f.MinY() && f.OverlapsHorizontally(other)
	default:
		return false
	}
}

// unoccluded keeps the candidates not covered by any other visible window.
// Windows of the candidate's own process and of the focused process never
// count as covering. This approximates stacking order from geometry alone.
func unoccluded(candidates, windows []server.Window, focusedPID int) []server.Window {
	var out []server.Window
	for _, c := range candidates {
		if !isCovered(c, windows, focusedPID) {
			out = append(out, c)
		}
	}
	return out
}

func isCovered(c server.Window, windows []server.Window, focusedPID int) bool {
	center := c.Frame.Center()
	for _, w := range windows {
		if w.PID == c.PID || w.PID == focusedPID {
			continue
		}
		if w.Frame.ContainsRect(c.Frame) || w.Frame.Contains(center) {
			return true
		}
	}
	return false
}
