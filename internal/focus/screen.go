package focus

import (
	"context"
	"sort"

	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/mouse"
	"github.com/yourusername/spaces-cli/internal/server"
)

// ScreenSwitcher moves focus to the next or previous display, restoring
// the app that last had focus there.
type ScreenSwitcher struct {
	port    server.Port
	focuser *Focuser
	tracker *history.Tracker
}

// NewScreenSwitcher creates a screen switcher that reads and records
// focus history in tracker.
func NewScreenSwitcher(port server.Port, focuser *Focuser, tracker *history.Tracker) *ScreenSwitcher {
	return &ScreenSwitcher{port: port, focuser: focuser, tracker: tracker}
}

// Switch moves offset displays along the left-to-right order, wrapping at
// both ends.
func (s *ScreenSwitcher) Switch(ctx context.Context, offset int) {
	displays, err := s.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return
	}
	if len(displays) == 0 {
		return
	}
	SortLeftToRight(displays)

	current := s.currentIndex(ctx, displays)
	n := len(displays)
	target := displays[((current+offset)%n+n)%n]

	s.activate(ctx, target)
}

// SortLeftToRight orders displays by their left edge.
func SortLeftToRight(displays []server.Display) {
	sort.SliceStable(displays, func(i, j int) bool {
		return displays[i].Frame.MinX() < displays[j].Frame.MinX()
	})
}

// currentIndex is the display under the pointer, else the main display,
// else the first.
func (s *ScreenSwitcher) currentIndex(ctx context.Context, displays []server.Display) int {
	pointer, err := s.port.PointerLocation(ctx)
	if err != nil {
		logging.Debug().Err(err).Msg("pointer location unavailable")
	} else {
		for i, d := range displays {
			if d.Frame.Contains(pointer) {
				return i
			}
		}
	}

	for i, d := range displays {
		if d.IsMain {
			return i
		}
	}
	return 0
}

// activate focuses the best window on the display: one of the app last
// focused there, else the topmost. With no window the pointer alone moves.
func (s *ScreenSwitcher) activate(ctx context.Context, target server.Display) {
	visible, err := s.port.VisibleProcesses(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing visible apps failed")
	}

	var windows []server.Window
	if len(visible) > 0 {
		windows, err = s.port.Windows(ctx, server.PIDs(visible))
		if err != nil {
			logging.Warn().Err(err).Msg("listing windows failed")
		}
	}

	candidates := WindowsOnDisplay(qualifying(windows), target)
	if len(candidates) == 0 {
		logging.Debug().Str("display", target.Name).Msg("no window on display, moving pointer only")
		if err := mouse.WarpToDisplay(ctx, s.port, target); err != nil {
			logging.Warn().Err(err).Msg("pointer warp failed")
		}
		return
	}

	procs := byPID(visible)
	chosen := Topmost(candidates)
	if bundleID, ok := s.tracker.LastProcess(target.Name); ok {
		var own []server.Window
		for _, w := range candidates {
			if procs[w.PID].BundleID == bundleID {
				own = append(own, w)
			}
		}
		if len(own) > 0 {
			chosen = Topmost(own)
		}
	}

	owner := procs[chosen.PID]
	logging.Debug().
		Str("display", target.Name).
		Str("app", owner.BundleID).
		Uint32("window", chosen.ID).
		Msg("switch screen")
	s.focuser.Focus(ctx, owner, &chosen, true)

	count := 0
	for _, w := range windows {
		if w.PID == owner.PID {
			count++
		}
	}
	s.tracker.Record(target.Name, owner.BundleID, count)
}

// WindowsOnDisplay keeps the windows whose center lies on the display.
func WindowsOnDisplay(windows []server.Window, d server.Display) []server.Window {
	var out []server.Window
	for _, w := range windows {
		if d.Frame.Contains(w.Frame.Center()) {
			out = append(out, w)
		}
	}
	return out
}

// Topmost returns the window whose top edge is highest. Frames are
// normalized, so that is the largest MaxY. Ties keep the first.
func Topmost(windows []server.Window) server.Window {
	best := windows[0]
	for _, w := range windows[1:] {
		if w.Frame.MaxY() > best.Frame.MaxY() {
			best = w
		}
	}
	return best
}
