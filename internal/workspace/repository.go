package workspace

import (
	"fmt"

	"github.com/yourusername/spaces-cli/internal/apps"
	"github.com/yourusername/spaces-cli/internal/config"
	"github.com/yourusername/spaces-cli/internal/state"
)

// Repository holds every configured workspace plus the floating apps
// that belong to all of them.
type Repository struct {
	workspaces []Workspace
	floating   []string
}

// NewRepository builds the repository from configuration.
func NewRepository(cfg *config.Config) *Repository {
	r := &Repository{}
	if cfg == nil {
		return r
	}

	mode := cfg.GetDisplayMode()
	for _, wc := range cfg.Workspaces {
		r.workspaces = append(r.workspaces, FromConfig(wc, mode))
	}
	r.floating = append(r.floating, cfg.FloatingApps...)
	return r
}

// All returns the workspaces in configured order.
func (r *Repository) All() []Workspace {
	return r.workspaces
}

// Get returns a workspace by id.
func (r *Repository) Get(id string) (*Workspace, error) {
	for i := range r.workspaces {
		if r.workspaces[i].ID == id {
			return &r.workspaces[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", config.ErrWorkspaceNotFound, id)
}

// FloatingApps returns the bundle ids shown in every workspace.
func (r *Repository) FloatingApps() []string {
	return r.floating
}

// IsFloating reports whether the bundle id is a floating app.
func (r *Repository) IsFloating(bundleID string) bool {
	for _, id := range r.floating {
		if id == bundleID {
			return true
		}
	}
	return false
}

// Containing returns the first workspace whose app list has the bundle id.
func (r *Repository) Containing(bundleID string) (*Workspace, bool) {
	for i := range r.workspaces {
		if r.workspaces[i].HasApp(bundleID) {
			return &r.workspaces[i], true
		}
	}
	return nil, false
}

// Active returns the workspace active on the display, falling back to the
// first workspace listing the focused app when the display has no mapping.
// Floating apps are listed by every workspace.
func (r *Repository) Active(rs *state.RuntimeState, display, focusedBundleID string) (*Workspace, bool) {
	if rs != nil {
		if id, ok := rs.ActiveWorkspace(display); ok {
			if ws, err := r.Get(id); err == nil {
				return ws, true
			}
		}
	}
	if ws, ok := r.Containing(focusedBundleID); ok {
		return ws, true
	}
	if r.IsFloating(focusedBundleID) && len(r.workspaces) > 0 {
		return &r.workspaces[0], true
	}
	return nil, false
}

// AppList returns the workspace apps followed by the floating apps, with
// duplicates and the file manager removed.
func (r *Repository) AppList(ws *Workspace) []string {
	seen := make(map[string]bool)
	var list []string

	add := func(bundleID string) {
		if bundleID == "" || seen[bundleID] || apps.IsFileManager(bundleID) {
			return
		}
		seen[bundleID] = true
		list = append(list, bundleID)
	}

	if ws != nil {
		for _, a := range ws.Apps {
			add(a.BundleID)
		}
	}
	for _, id := range r.floating {
		add(id)
	}
	return list
}
