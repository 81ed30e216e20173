// Package history tracks which process last held focus on which display.
package history

import (
	"github.com/yourusername/spaces-cli/internal/apps"
	"github.com/yourusername/spaces-cli/internal/logging"
)

// Entry records that BundleID was the last process focused on Display.
type Entry struct {
	Display  string `json:"display"`
	BundleID string `json:"bundleId"`
}

// Tracker is a most-recent-wins ledger with at most one entry per display.
// Slice order is the recency order: the last entry is the newest.
// Not safe for concurrent use; the engine is single-threaded.
type Tracker struct {
	entries []Entry
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Restore creates a tracker from previously saved entries, oldest first.
// Duplicate displays keep only their newest entry.
func Restore(entries []Entry) *Tracker {
	t := NewTracker()
	for _, e := range entries {
		t.put(e)
	}
	return t
}

// Record makes (display, bundleID) the most recent entry. Focus on the
// file manager with no windows is a desktop click and is ignored.
func (t *Tracker) Record(display, bundleID string, windowCount int) {
	if display == "" || bundleID == "" {
		return
	}
	if windowCount == 0 && apps.IsFileManager(bundleID) {
		logging.Debug().Str("display", display).Msg("ignoring desktop focus")
		return
	}
	t.put(Entry{Display: display, BundleID: bundleID})
}

func (t *Tracker) put(e Entry) {
	for i, existing := range t.entries {
		if existing.Display == e.Display {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	t.entries = append(t.entries, e)
}

// LastMatching returns the newest entry satisfying pred.
func (t *Tracker) LastMatching(pred func(Entry) bool) (Entry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if pred(t.entries[i]) {
			return t.entries[i], true
		}
	}
	return Entry{}, false
}

// LastKnownDisplay returns the display the process was last focused on.
func (t *Tracker) LastKnownDisplay(bundleID string) (string, bool) {
	e, ok := t.LastMatching(func(e Entry) bool { return e.BundleID == bundleID })
	return e.Display, ok
}

// LastProcess returns the process last focused on the display.
func (t *Tracker) LastProcess(display string) (string, bool) {
	e, ok := t.LastMatching(func(e Entry) bool { return e.Display == display })
	return e.BundleID, ok
}

// Entries returns a copy of the ledger, oldest first.
func (t *Tracker) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Reset removes every entry.
func (t *Tracker) Reset() {
	t.entries = nil
}

// Len returns the number of entries.
func (t *Tracker) Len() int {
	return len(t.entries)
}
