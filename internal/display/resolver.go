// Package display maps workspaces onto the physical displays they occupy.
package display

import (
	"context"

	"github.com/yourusername/spaces-cli/internal/apps"
	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/workspace"
)

// Resolver resolves workspaces to displays using one of three strategies:
// single-screen, dynamic, or static with an alias table.
type Resolver struct {
	port    server.Port
	aliases map[string]string
	tracker *history.Tracker
}

// NewResolver creates a resolver. aliases maps a source display name to the
// display to use while the source is disconnected.
func NewResolver(port server.Port, aliases map[string]string, tracker *history.Tracker) *Resolver {
	if aliases == nil {
		aliases = map[string]string{}
	}
	if tracker == nil {
		tracker = history.NewTracker()
	}
	return &Resolver{port: port, aliases: aliases, tracker: tracker}
}

// Resolve returns the displays the workspace occupies, in connected order.
// The result is empty only for a dynamic workspace with no visible windows
// or when no display could be listed.
func (r *Resolver) Resolve(ctx context.Context, ws *workspace.Workspace) []server.Display {
	displays, err := r.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return nil
	}

	switch {
	case len(displays) == 1:
		return displays
	case ws.Strategy() == workspace.StrategyDynamic:
		return r.resolveDynamic(ctx, ws, displays)
	default:
		if d, ok := r.resolveSingle(displays, ws.Display); ok {
			return []server.Display{d}
		}
		return nil
	}
}

// ResolveSingle resolves a configured display name to one connected display:
// the display itself, else its alias target, else the main display.
func (r *Resolver) ResolveSingle(ctx context.Context, name string) (server.Display, bool) {
	displays, err := r.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return server.Display{}, false
	}
	return r.resolveSingle(displays, name)
}

func (r *Resolver) resolveSingle(displays []server.Display, name string) (server.Display, bool) {
	if d, ok := server.DisplayNamed(displays, name); ok {
		return d, true
	}

	if target, ok := r.aliases[name]; ok {
		if d, ok := server.DisplayNamed(displays, target); ok {
			logging.Debug().Str("display", name).Str("alias", target).Msg("using alternative display")
			return d, true
		}
	}

	return server.MainDisplay(displays)
}

// resolveDynamic derives displays from the windows of the workspace's
// running apps. The accessibility channel is asked first; when it sees
// nothing, the system-wide window list is used instead.
func (r *Resolver) resolveDynamic(ctx context.Context, ws *workspace.Workspace, displays []server.Display) []server.Display {
	running, err := r.port.RunningProcesses(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing running apps failed")
		return nil
	}

	var standard, offscreen []server.Process
	for _, p := range running {
		if !ws.HasApp(p.BundleID) {
			continue
		}
		if apps.Lookup(p.BundleID) == apps.PolicyOffscreenPrimaryWindow {
			offscreen = append(offscreen, p)
		} else {
			standard = append(standard, p)
		}
	}
	if len(standard)+len(offscreen) == 0 {
		return nil
	}

	found := make(map[string]bool)

	if len(standard) > 0 {
		windows, err := r.port.Windows(ctx, server.PIDs(standard))
		if err != nil {
			logging.Warn().Err(err).Msg("accessibility window query failed")
		}
		r.collect(found, displays, windows)
	}

	if len(offscreen) > 0 {
		windows, err := r.port.AllWindows(ctx, server.PIDs(offscreen))
		if err != nil {
			logging.Warn().Err(err).Msg("system window query failed")
		}
		r.collect(found, displays, firstQualifyingPerProcess(windows))
	}

	if len(found) == 0 {
		logging.Debug().Str("workspace", ws.ID).Msg("no accessible windows, falling back to system window list")
		pids := append(server.PIDs(standard), server.PIDs(offscreen)...)
		windows, err := r.port.AllWindows(ctx, pids)
		if err != nil {
			logging.Warn().Err(err).Msg("system window query failed")
		}
		r.collect(found, displays, windows)
	}

	var out []server.Display
	for _, d := range displays {
		if found[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

func (r *Resolver) collect(found map[string]bool, displays []server.Display, windows []server.Window) {
	for _, w := range windows {
		if !w.Qualifies() {
			continue
		}
		if d, ok := server.DisplayForFrame(displays, w.Frame); ok {
			found[d.Name] = true
		}
	}
}

// firstQualifyingPerProcess keeps each process's first window that passes
// the layer and size filters, skipping the degenerate primary window.
func firstQualifyingPerProcess(windows []server.Window) []server.Window {
	seen := make(map[int]bool)
	var out []server.Window
	for _, w := range windows {
		if seen[w.PID] || !w.Qualifies() {
			continue
		}
		seen[w.PID] = true
		out = append(out, w)
	}
	return out
}

// CanActivate is false only when activating the workspace could have no
// visible effect: it is dynamic, resolves to no display, none of its apps
// run, and it does not open apps on activation.
func (r *Resolver) CanActivate(ctx context.Context, ws *workspace.Workspace) bool {
	if ws.Strategy() != workspace.StrategyDynamic || ws.OpenAppsOnActivation {
		return true
	}
	if len(r.Resolve(ctx, ws)) > 0 {
		return true
	}

	running, err := r.port.RunningProcesses(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing running apps failed")
		return false
	}
	for _, p := range running {
		if ws.HasApp(p.BundleID) {
			return true
		}
	}
	return false
}

// LastActiveDisplay picks one display out of candidates: the most recent
// focus history entry among them, else the display under the pointer, else
// the first candidate, else the main display.
func (r *Resolver) LastActiveDisplay(ctx context.Context, candidates []server.Display) (server.Display, bool) {
	byName := make(map[string]server.Display, len(candidates))
	for _, d := range candidates {
		byName[d.Name] = d
	}

	if e, ok := r.tracker.LastMatching(func(e history.Entry) bool {
		_, in := byName[e.Display]
		return in
	}); ok {
		return byName[e.Display], true
	}

	if pointer, err := r.port.PointerLocation(ctx); err == nil {
		if d, ok := server.DisplayAt(candidates, pointer); ok {
			return d, true
		}
	} else {
		logging.Debug().Err(err).Msg("pointer location unavailable")
	}

	if len(candidates) > 0 {
		return candidates[0], true
	}

	displays, err := r.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return server.Display{}, false
	}
	return server.MainDisplay(displays)
}

// ActiveDisplay resolves the workspace and narrows the result to one display.
func (r *Resolver) ActiveDisplay(ctx context.Context, ws *workspace.Workspace) (server.Display, bool) {
	return r.LastActiveDisplay(ctx, r.Resolve(ctx, ws))
}
