package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/types"
)

var testDisplays = []server.Display{
	{Name: "Built-in", Frame: types.Rect{X: 0, Y: 0, Width: 1440, Height: 900}, IsMain: true},
	{Name: "External", Frame: types.Rect{X: 1440, Y: 0, Width: 1920, Height: 1080}},
}

func TestCanvas_DrawBoxAndText(t *testing.T) {
	c := NewCanvas(6, 3)
	c.DrawBox(0, 0, 6, 3, ASCIIStyle)
	c.DrawText(1, 1, "hello world", 4)

	assert.Equal(t, "+----+\n|hell|\n+----+", c.String())
	assert.Equal(t, ' ', c.GetCell(99, 99))
}

func TestCanvas_ClearRect(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawText(0, 0, "abcd", -1)
	c.ClearRect(1, 0, 2, 1)

	assert.Equal(t, "a  d\n", c.String())
}

func TestScaler_FlipsYAxis(t *testing.T) {
	sc := NewScaler(testDisplays, 80, 24)

	col, row := sc.Cell(types.Point{X: 0, Y: 1080})
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row, "top of the desktop is row 0")

	_, bottom := sc.Cell(types.Point{X: 0, Y: 0})
	assert.Greater(t, bottom, 0)

	cols, rows := sc.Size()
	assert.LessOrEqual(t, cols, 80)
	assert.LessOrEqual(t, rows, 24)
}

func TestScaler_EmptyDisplays(t *testing.T) {
	sc := NewScaler(nil, 80, 24)
	assert.Equal(t, 1920.0, sc.Bounds.Width)
}

func TestRenderArrangement(t *testing.T) {
	a := Arrangement{
		Displays: testDisplays,
		Windows: []ArrangedWindow{
			{Window: server.Window{ID: 7, Frame: types.Rect{X: 1600, Y: 100, Width: 1400, Height: 800}}, App: "Safari", Focused: true},
		},
	}

	out := RenderArrangement(a, ArrangementOptions{MaxWidth: 120, MaxHeight: 40})
	assert.Contains(t, out, "Built-in *")
	assert.Contains(t, out, "External")
	assert.Contains(t, out, "Safari [7]")
	assert.Contains(t, out, "#", "focused window uses the focus style")

	assert.Equal(t, "No displays found\n", RenderArrangement(Arrangement{}, ArrangementOptions{}))
}

func TestPrintDisplaysTable(t *testing.T) {
	var buf bytes.Buffer
	PrintDisplaysTable(&buf, testDisplays, map[string]string{"External": "web"})

	out := buf.String()
	assert.Contains(t, out, "Built-in")
	assert.Contains(t, out, "1440,0 1920x1080")
	assert.Contains(t, out, "web")
}

func TestPrintWorkspacesTable(t *testing.T) {
	var buf bytes.Buffer
	PrintWorkspacesTable(&buf, []WorkspaceRow{
		{ID: "dev", Name: "Dev", Strategy: "dynamic", Apps: []string{"a", "b"}, CanActivate: false},
		{ID: "web", Name: "Web", Strategy: "static", Displays: []string{"External"}, Apps: []string{"c"}, CanActivate: true},
	})

	out := buf.String()
	assert.Contains(t, out, "dynamic")
	assert.Contains(t, out, "External")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestPrintHistoryTable_NewestFirst(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryTable(&buf, []history.Entry{
		{Display: "Built-in", BundleID: "com.old"},
		{Display: "External", BundleID: "com.new"},
	})

	out := buf.String()
	assert.Less(t, strings.Index(out, "com.new"), strings.Index(out, "com.old"))
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	windows := []server.Window{
		{ID: 2, PID: 1, Title: "Inbox", Frame: types.Rect{X: 100, Y: 100, Width: 800, Height: 600}, IsFocused: true},
		{ID: 1, PID: 2, Frame: types.Rect{X: 1600, Y: 100, Width: 5, Height: 5}},
	}
	procs := map[int]server.Process{
		1: {PID: 1, BundleID: "com.apple.mail"},
		2: {PID: 2, BundleID: "org.mozilla.firefox"},
	}
	PrintWindowsTable(&buf, windows, procs, testDisplays)

	out := buf.String()
	assert.Contains(t, out, "Inbox")
	assert.Contains(t, out, "focused")
	assert.Contains(t, out, "ignored")
	assert.Contains(t, out, "offscreen-primary-window")
	assert.Less(t, strings.Index(out, "org.mozilla.firefox"), strings.Index(out, "com.apple.mail"), "sorted by id")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}
