package focus

import (
	"context"
	"sort"

	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/state"
	"github.com/yourusername/spaces-cli/internal/workspace"
)

// Cycler walks the active workspace's apps, and the windows within them,
// with wrap-around.
type Cycler struct {
	port    server.Port
	focuser *Focuser
	repo    *workspace.Repository
	rs      *state.RuntimeState

	// CenterCursor warps the pointer to the newly focused window.
	CenterCursor bool
}

// NewCycler creates a cycling navigator.
func NewCycler(port server.Port, focuser *Focuser, repo *workspace.Repository, rs *state.RuntimeState) *Cycler {
	return &Cycler{port: port, focuser: focuser, repo: repo, rs: rs}
}

// cycleScope is the live data one cycling step works on.
type cycleScope struct {
	focused  server.Process
	windows  []server.Window // focused process, qualifying, id order
	display  server.Display  // display holding the focused window
	ws       *workspace.Workspace
	appList  []string
	running  map[string]server.Process
	order    []string // running bundle ids in enumeration order
	displays []server.Display
}

// scope gathers the focused process, its display and the active workspace.
func (c *Cycler) scope(ctx context.Context) (*cycleScope, bool) {
	focused, err := c.port.FocusedProcess(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("focused app unavailable")
		return nil, false
	}

	s := &cycleScope{}
	if focused != nil {
		s.focused = *focused
		own, err := c.port.Windows(ctx, []int{focused.PID})
		if err != nil {
			logging.Warn().Err(err).Msg("listing focused app windows failed")
		}
		s.windows = byID(qualifying(own))
	}

	s.displays, err = c.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return nil, false
	}
	var located bool
	if w, ok := focusedWindow(s.windows); ok {
		s.display, located = server.DisplayForFrame(s.displays, w.Frame)
	}
	if !located {
		s.display, _ = server.MainDisplay(s.displays)
	}

	ws, ok := c.repo.Active(c.rs, s.display.Name, s.focused.BundleID)
	if !ok {
		logging.Debug().Str("display", s.display.Name).Str("app", s.focused.BundleID).Msg("no active workspace")
		return nil, false
	}
	s.ws = ws
	s.appList = c.repo.AppList(ws)

	running, err := c.port.RunningProcesses(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing running apps failed")
		return nil, false
	}
	s.running = make(map[string]server.Process, len(running))
	for _, p := range running {
		if _, dup := s.running[p.BundleID]; !dup {
			s.running[p.BundleID] = p
			s.order = append(s.order, p.BundleID)
		}
	}

	return s, true
}

// queue returns the running apps to visit after the focused one, in
// cycling order. Floating apps only count when they have a window on the
// focused display.
func (c *Cycler) queue(ctx context.Context, s *cycleScope, forward bool) []server.Process {
	var out []server.Process
	for _, bundleID := range RotationQueue(s.appList, s.focused.BundleID, forward) {
		proc, ok := s.running[bundleID]
		if !ok {
			continue
		}
		if c.repo.IsFloating(bundleID) && !s.ws.HasApp(bundleID) && !c.onDisplay(ctx, proc, s) {
			continue
		}
		out = append(out, proc)
	}
	return out
}

func (c *Cycler) onDisplay(ctx context.Context, proc server.Process, s *cycleScope) bool {
	windows, err := c.port.Windows(ctx, []int{proc.PID})
	if err != nil {
		logging.Warn().Err(err).Str("app", proc.BundleID).Msg("listing windows failed")
		return false
	}
	for _, w := range qualifying(windows) {
		if d, ok := server.DisplayForFrame(s.displays, w.Frame); ok && d.Name == s.display.Name {
			return true
		}
	}
	return false
}

// NextApp activates the next running app of the active workspace.
func (c *Cycler) NextApp(ctx context.Context) {
	c.cycleApp(ctx, true)
}

// PreviousApp activates the previous running app of the active workspace.
func (c *Cycler) PreviousApp(ctx context.Context) {
	c.cycleApp(ctx, false)
}

func (c *Cycler) cycleApp(ctx context.Context, forward bool) {
	s, ok := c.scope(ctx)
	if !ok {
		return
	}

	queue := c.queue(ctx, s, forward)
	if len(queue) == 0 {
		logging.Debug().Str("workspace", s.ws.ID).Msg("no other running app")
		return
	}

	target := queue[0]
	windows := mainFirst(c.windowsOf(ctx, target))
	logging.Debug().Str("workspace", s.ws.ID).Str("app", target.BundleID).Msg("cycle app")
	if len(windows) == 0 {
		c.focuser.Focus(ctx, target, nil, false)
		return
	}
	c.focuser.Focus(ctx, target, &windows[0], c.CenterCursor)
}

// NextWindow focuses the next window of the focused app, rolling over to
// the first window of the next app after the last one. The focused window
// marks the current position.
func (c *Cycler) NextWindow(ctx context.Context) {
	c.cycleWindow(ctx, true)
}

// PreviousWindow focuses the previous window of the focused app, rolling
// over to the first window of the previous app before the first one.
func (c *Cycler) PreviousWindow(ctx context.Context) {
	c.cycleWindow(ctx, false)
}

// cycleWindow steps through the focused app's windows in ascending window id
// order, not main-window order, and rolls over to the first window (lowest
// id) of the next or previous app in either direction.
func (c *Cycler) cycleWindow(ctx context.Context, forward bool) {
	s, ok := c.scope(ctx)
	if !ok {
		return
	}

	idx := 0
	if w, ok := focusedWindow(s.windows); ok {
		idx = windowIndex(s.windows, w.ID)
	}

	atEdge := len(s.windows) == 0 ||
		(forward && idx >= len(s.windows)-1) ||
		(!forward && idx <= 0)

	if !atEdge {
		next := s.windows[CycleWindowIndex(idx, len(s.windows), forward)]
		c.focuser.Focus(ctx, s.focused, &next, c.CenterCursor)
		return
	}

	s.appList = OrderByList(c.runningInScope(s), s.appList)
	target := s.focused
	if queue := c.queue(ctx, s, forward); len(queue) > 0 {
		target = queue[0]
	}
	if target.BundleID == "" {
		return
	}

	windows := c.windowsOf(ctx, target)
	logging.Debug().Str("workspace", s.ws.ID).Str("app", target.BundleID).Msg("cycle window rollover")
	if len(windows) == 0 {
		c.focuser.Focus(ctx, target, nil, false)
		return
	}
	c.focuser.Focus(ctx, target, &windows[0], c.CenterCursor)
}

// runningInScope returns the running apps of the list plus the focused app,
// in enumeration order.
func (c *Cycler) runningInScope(s *cycleScope) []string {
	listed := make(map[string]bool, len(s.appList))
	for _, id := range s.appList {
		listed[id] = true
	}

	var out []string
	for _, id := range s.order {
		if listed[id] || id == s.focused.BundleID {
			out = append(out, id)
		}
	}
	return out
}

// windowsOf returns the qualifying windows of the process in id order.
func (c *Cycler) windowsOf(ctx context.Context, proc server.Process) []server.Window {
	windows, err := c.port.Windows(ctx, []int{proc.PID})
	if err != nil {
		logging.Warn().Err(err).Str("app", proc.BundleID).Msg("listing windows failed")
		return nil
	}
	return byID(qualifying(windows))
}

// OrderByList sorts ids by their position in order. Ids missing from order
// keep their relative order after the listed ones.
func OrderByList(ids, order []string) []string {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	out := append([]string(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := pos[out[i]]
		pj, jok := pos[out[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

// mainFirst moves the main window to the front, keeping the rest in order.
func mainFirst(windows []server.Window) []server.Window {
	out := append([]server.Window(nil), windows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsMain && !out[j].IsMain
	})
	return out
}

// byID orders windows by id. Stacking order changes on every focus, so
// cycling walks a stable order instead.
func byID(windows []server.Window) []server.Window {
	out := append([]server.Window(nil), windows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// windowIndex finds the index of a window ID in the slice.
// Returns -1 if not found.
func windowIndex(windows []server.Window, id uint32) int {
	for i, w := range windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}
