// Package workspace turns configured workspaces into the read-only model
// the engine navigates, and answers which workspace is active where.
package workspace

import (
	"github.com/yourusername/spaces-cli/internal/config"
)

// Strategy selects how a workspace is bound to displays.
type Strategy int

const (
	// StrategyStatic binds the workspace to its configured display.
	StrategyStatic Strategy = iota
	// StrategyDynamic derives displays from where the workspace's windows are.
	StrategyDynamic
)

func (s Strategy) String() string {
	if s == StrategyDynamic {
		return "dynamic"
	}
	return "static"
}

// App is an application assigned to a workspace.
type App struct {
	BundleID string
	Name     string
}

// Workspace is a named, ordered set of applications.
type Workspace struct {
	ID                   string
	Name                 string
	Display              string // configured display name; empty for dynamic
	Apps                 []App
	AppToFocus           string
	OpenAppsOnActivation bool

	strategy Strategy
}

// FromConfig builds a workspace. A workspace without its own display value
// inherits the global display mode.
func FromConfig(wc config.WorkspaceConfig, mode config.DisplayMode) Workspace {
	ws := Workspace{
		ID:                   wc.ID,
		Name:                 wc.Name,
		Display:              wc.Display,
		AppToFocus:           wc.AppToFocus,
		OpenAppsOnActivation: wc.OpenAppsOnActivation,
	}
	if ws.Name == "" {
		ws.Name = wc.ID
	}

	for _, a := range wc.Apps {
		ws.Apps = append(ws.Apps, App{BundleID: a.BundleID, Name: a.Name})
	}

	switch {
	case wc.Display == config.DynamicDisplay:
		ws.strategy = StrategyDynamic
		ws.Display = ""
	case wc.Display == "" && mode == config.DisplayModeDynamic:
		ws.strategy = StrategyDynamic
	default:
		ws.strategy = StrategyStatic
	}

	return ws
}

// Strategy returns the display strategy.
func (w *Workspace) Strategy() Strategy {
	return w.strategy
}

// HasApp reports whether the bundle id is one of the workspace's apps.
func (w *Workspace) HasApp(bundleID string) bool {
	for _, a := range w.Apps {
		if a.BundleID == bundleID {
			return true
		}
	}
	return false
}

// BundleIDs returns the app bundle ids in configured order.
func (w *Workspace) BundleIDs() []string {
	ids := make([]string, len(w.Apps))
	for i, a := range w.Apps {
		ids[i] = a.BundleID
	}
	return ids
}
