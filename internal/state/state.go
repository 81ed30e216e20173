package state

import (
	"time"

	"github.com/yourusername/spaces-cli/internal/history"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 2
)

// RuntimeState is the root state structure persisted to disk between
// invocations. The CLI lives for one hotkey press, so anything the engine
// must remember across presses lives here.
type RuntimeState struct {
	Version int `json:"version"`

	// FocusHistory is the focus ledger, oldest first.
	FocusHistory []history.Entry `json:"focusHistory"`

	// ActiveWorkspaces maps display name -> active workspace ID.
	ActiveWorkspaces map[string]string `json:"activeWorkspaces"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// NewRuntimeState creates a new empty runtime state
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{
		Version:          StateVersion,
		ActiveWorkspaces: make(map[string]string),
		LastUpdated:      time.Now(),
	}
}

// MarkUpdated updates the LastUpdated timestamp
func (rs *RuntimeState) MarkUpdated() {
	rs.LastUpdated = time.Now()
}

// ActiveWorkspace returns the workspace active on a display.
func (rs *RuntimeState) ActiveWorkspace(display string) (string, bool) {
	id, ok := rs.ActiveWorkspaces[display]
	return id, ok && id != ""
}

// SetActiveWorkspace records the workspace active on a display. A
// workspace is active on at most one display at a time.
func (rs *RuntimeState) SetActiveWorkspace(display, workspaceID string) {
	for d, id := range rs.ActiveWorkspaces {
		if id == workspaceID && d != display {
			delete(rs.ActiveWorkspaces, d)
		}
	}
	rs.ActiveWorkspaces[display] = workspaceID
	rs.MarkUpdated()
}

// ClearActiveWorkspace forgets the workspace active on a display.
func (rs *RuntimeState) ClearActiveWorkspace(display string) {
	delete(rs.ActiveWorkspaces, display)
	rs.MarkUpdated()
}

// Tracker builds a focus history tracker from the saved ledger.
func (rs *RuntimeState) Tracker() *history.Tracker {
	return history.Restore(rs.FocusHistory)
}

// StoreTracker copies the tracker's ledger back into the state.
func (rs *RuntimeState) StoreTracker(t *history.Tracker) {
	rs.FocusHistory = t.Entries()
	rs.MarkUpdated()
}

// Summary returns a summary of the state for display
func (rs *RuntimeState) Summary() map[string]interface{} {
	return map[string]interface{}{
		"version":          rs.Version,
		"lastUpdated":      rs.LastUpdated,
		"historyEntries":   len(rs.FocusHistory),
		"activeWorkspaces": rs.ActiveWorkspaces,
	}
}
