package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MoveToFront(t *testing.T) {
	tr := NewTracker()
	tr.Record("left", "com.apple.mail", 1)
	tr.Record("right", "com.apple.Safari", 1)
	tr.Record("left", "com.apple.Notes", 2)

	require.Equal(t, 2, tr.Len(), "one entry per display")
	assert.Equal(t, []Entry{
		{Display: "right", BundleID: "com.apple.Safari"},
		{Display: "left", BundleID: "com.apple.Notes"},
	}, tr.Entries())
}

func TestRecord_IgnoresDesktopClick(t *testing.T) {
	tr := NewTracker()
	tr.Record("left", "com.apple.mail", 1)
	tr.Record("left", "com.apple.finder", 0)

	bundle, ok := tr.LastProcess("left")
	require.True(t, ok)
	assert.Equal(t, "com.apple.mail", bundle)

	tr.Record("left", "com.apple.finder", 1)
	bundle, _ = tr.LastProcess("left")
	assert.Equal(t, "com.apple.finder", bundle, "file manager with windows is recorded")
}

func TestRecord_IgnoresEmptyKeys(t *testing.T) {
	tr := NewTracker()
	tr.Record("", "com.apple.mail", 1)
	tr.Record("left", "", 1)
	assert.Equal(t, 0, tr.Len())
}

func TestLastMatching_NewestFirst(t *testing.T) {
	tr := NewTracker()
	tr.Record("a", "com.apple.mail", 1)
	tr.Record("b", "com.apple.mail", 1)
	tr.Record("c", "com.apple.Notes", 1)

	display, ok := tr.LastKnownDisplay("com.apple.mail")
	require.True(t, ok)
	assert.Equal(t, "b", display)

	_, ok = tr.LastKnownDisplay("com.apple.Safari")
	assert.False(t, ok)

	_, ok = tr.LastMatching(func(Entry) bool { return false })
	assert.False(t, ok)
}

func TestRestore_DedupesDisplays(t *testing.T) {
	tr := Restore([]Entry{
		{Display: "left", BundleID: "one"},
		{Display: "right", BundleID: "two"},
		{Display: "left", BundleID: "three"},
	})

	assert.Equal(t, []Entry{
		{Display: "right", BundleID: "two"},
		{Display: "left", BundleID: "three"},
	}, tr.Entries())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Record("left", "com.apple.mail", 1)

	entries := tr.Entries()
	entries[0].BundleID = "mutated"

	bundle, _ := tr.LastProcess("left")
	assert.Equal(t, "com.apple.mail", bundle)
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Record("left", "com.apple.mail", 1)
	tr.Reset()

	assert.Zero(t, tr.Len())
	_, ok := tr.LastProcess("left")
	assert.False(t, ok)
}
