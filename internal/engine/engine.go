// Package engine wires the navigators around one shared focus history and
// exposes the named hotkey actions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yourusername/spaces-cli/internal/config"
	"github.com/yourusername/spaces-cli/internal/display"
	"github.com/yourusername/spaces-cli/internal/focus"
	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/state"
	"github.com/yourusername/spaces-cli/internal/types"
	"github.com/yourusername/spaces-cli/internal/workspace"
)

// ErrUnknownAction is returned by Run for a name missing from Actions.
var ErrUnknownAction = errors.New("unknown action")

// Action is a hotkey action. It never fails; its outcome is only visible
// in the resulting focus state.
type Action func(ctx context.Context)

// Engine owns the focus history and the active-workspace mapping for one
// invocation and hands them to every navigator.
type Engine struct {
	port     server.Port
	cfg      *config.Config
	rs       *state.RuntimeState
	repo     *workspace.Repository
	tracker  *history.Tracker
	resolver *display.Resolver

	directional *focus.Directional
	cycler      *focus.Cycler
	screens     *focus.ScreenSwitcher
}

// New builds an engine. The focus history is restored from rs; call Flush
// to write it back before saving rs.
func New(port server.Port, cfg *config.Config, rs *state.RuntimeState) (*Engine, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if rs == nil {
		rs = state.NewRuntimeState()
	}

	aliases, err := cfg.GetDisplayAliases()
	if err != nil {
		return nil, fmt.Errorf("display aliases: %w", err)
	}

	e := &Engine{
		port:    port,
		cfg:     cfg,
		rs:      rs,
		repo:    workspace.NewRepository(cfg),
		tracker: rs.Tracker(),
	}
	e.resolver = display.NewResolver(port, aliases, e.tracker)

	focuser := focus.NewFocuser(port, cfg.GetMaxElementDepth())

	e.directional = focus.NewDirectional(port, focuser)
	e.directional.FrontmostOnly = cfg.Settings.FocusFrontmostWindow
	e.directional.CenterCursor = cfg.Settings.CenterCursorOnFocus

	e.cycler = focus.NewCycler(port, focuser, e.repo, rs)
	e.cycler.CenterCursor = cfg.Settings.CenterCursorOnFocus

	e.screens = focus.NewScreenSwitcher(port, focuser, e.tracker)

	return e, nil
}

func (e *Engine) FocusLeft(ctx context.Context)  { e.Focus(ctx, types.DirLeft) }
func (e *Engine) FocusRight(ctx context.Context) { e.Focus(ctx, types.DirRight) }
func (e *Engine) FocusUp(ctx context.Context)    { e.Focus(ctx, types.DirUp) }
func (e *Engine) FocusDown(ctx context.Context)  { e.Focus(ctx, types.DirDown) }

// Focus moves focus to the nearest window in dir.
func (e *Engine) Focus(ctx context.Context, dir types.Direction) {
	e.directional.Focus(ctx, dir)
}

func (e *Engine) NextWorkspaceApp(ctx context.Context)     { e.cycler.NextApp(ctx) }
func (e *Engine) PreviousWorkspaceApp(ctx context.Context) { e.cycler.PreviousApp(ctx) }

func (e *Engine) NextWorkspaceWindow(ctx context.Context)     { e.cycler.NextWindow(ctx) }
func (e *Engine) PreviousWorkspaceWindow(ctx context.Context) { e.cycler.PreviousWindow(ctx) }

func (e *Engine) FocusNextScreen(ctx context.Context)     { e.screens.Switch(ctx, 1) }
func (e *Engine) FocusPreviousScreen(ctx context.Context) { e.screens.Switch(ctx, -1) }

// Actions returns the hotkey dispatch table.
func (e *Engine) Actions() map[string]Action {
	return map[string]Action{
		"focus-left":                e.FocusLeft,
		"focus-right":               e.FocusRight,
		"focus-up":                  e.FocusUp,
		"focus-down":                e.FocusDown,
		"next-workspace-app":        e.NextWorkspaceApp,
		"previous-workspace-app":    e.PreviousWorkspaceApp,
		"next-workspace-window":     e.NextWorkspaceWindow,
		"previous-workspace-window": e.PreviousWorkspaceWindow,
		"focus-next-screen":         e.FocusNextScreen,
		"focus-previous-screen":     e.FocusPreviousScreen,
	}
}

// ActionNames returns the dispatch table keys, sorted.
func (e *Engine) ActionNames() []string {
	actions := e.Actions()
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named action.
func (e *Engine) Run(ctx context.Context, name string) error {
	action, ok := e.Actions()[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	logging.Debug().Str("action", name).Msg("running action")
	action(ctx)
	return nil
}

// RecordFocus records the current focus in history: the focused app on the
// display holding its focused window, or under the pointer when it has none.
func (e *Engine) RecordFocus(ctx context.Context) {
	proc, err := e.port.FocusedProcess(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("focused app unavailable")
		return
	}
	if proc == nil {
		return
	}

	displays, err := e.port.Displays(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("listing displays failed")
		return
	}

	windows, err := e.port.Windows(ctx, []int{proc.PID})
	if err != nil {
		logging.Warn().Err(err).Msg("listing focused app windows failed")
	}

	var count int
	var current *server.Window
	for i, w := range windows {
		if !w.Qualifies() {
			continue
		}
		count++
		if current == nil || w.IsFocused {
			current = &windows[i]
		}
	}

	var d server.Display
	var ok bool
	if current != nil {
		d, ok = server.DisplayForFrame(displays, current.Frame)
	}
	if !ok {
		if pointer, err := e.port.PointerLocation(ctx); err == nil {
			d, ok = server.DisplayAt(displays, pointer)
		}
	}
	if !ok {
		logging.Debug().Str("app", proc.BundleID).Msg("focus not on any display")
		return
	}

	e.tracker.Record(d.Name, proc.BundleID, count)
}

// Flush writes the focus history back into the runtime state.
func (e *Engine) Flush() {
	e.rs.StoreTracker(e.tracker)
}

// Workspaces returns the configured workspaces.
func (e *Engine) Workspaces() *workspace.Repository {
	return e.repo
}

// Resolver returns the display resolver.
func (e *Engine) Resolver() *display.Resolver {
	return e.resolver
}

// History returns the focus history tracker.
func (e *Engine) History() *history.Tracker {
	return e.tracker
}

// ResetHistory forgets all focus history.
func (e *Engine) ResetHistory() {
	e.tracker.Reset()
}
