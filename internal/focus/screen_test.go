package focus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/server/servertest"
	"github.com/yourusername/spaces-cli/internal/types"
)

var (
	left   = server.Display{Name: "A", Frame: types.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}, IsMain: true}
	middle = server.Display{Name: "B", Frame: types.Rect{X: 1000, Y: 0, Width: 1000, Height: 1000}}
	right  = server.Display{Name: "C", Frame: types.Rect{X: 2000, Y: 0, Width: 1000, Height: 1000}}
)

// threeScreens lists the displays out of order, one app window per display.
func threeScreens() *servertest.Port {
	port := servertest.New()
	port.Screens = []server.Display{right, left, middle}
	port.AddProcess(proc(1, "app.a"), win(1, 100, 100, 400, 400))
	port.AddProcess(proc(2, "app.b"), win(2, 1100, 100, 400, 400))
	port.AddProcess(proc(3, "app.c"), win(3, 2100, 100, 400, 400))
	return port
}

func newSwitcher(port server.Port, tracker *history.Tracker) *ScreenSwitcher {
	return NewScreenSwitcher(port, NewFocuser(port, 0), tracker)
}

func TestSwitch_Wraps(t *testing.T) {
	tests := []struct {
		name    string
		pointer types.Point
		offset  int
		want    uint32
	}{
		{"next from last wraps to first", types.Point{X: 2500, Y: 500}, 1, 1},
		{"previous from first wraps to last", types.Point{X: 500, Y: 500}, -1, 3},
		{"next from first", types.Point{X: 500, Y: 500}, 1, 2},
		{"pointer off screen uses main", types.Point{X: -50, Y: -50}, 1, 2},
		{"pointer on left edge of middle", types.Point{X: 1000, Y: 500}, -1, 1},
		{"pointer on left edge of last", types.Point{X: 2000, Y: 500}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := threeScreens()
			port.Pointer = tt.pointer
			newSwitcher(port, history.NewTracker()).Switch(context.Background(), tt.offset)

			assert.Equal(t, []uint32{tt.want}, port.FocusedWindows)
		})
	}
}

func TestSwitch_WarpsAndRecords(t *testing.T) {
	port := threeScreens()
	port.Pointer = types.Point{X: 1500, Y: 500}
	tracker := history.NewTracker()

	newSwitcher(port, tracker).Switch(context.Background(), 1)

	assert.Equal(t, []string{"app.c"}, port.Activated)
	assert.Equal(t, []types.Point{{X: 2300, Y: 300}}, port.Warps)
	last, ok := tracker.LastProcess("C")
	require.True(t, ok)
	assert.Equal(t, "app.c", last)
}

func TestSwitch_PrefersHistoryThenTopmost(t *testing.T) {
	port := threeScreens()
	port.AddProcess(proc(4, "app.high"), win(4, 1200, 500, 400, 400))
	port.Pointer = types.Point{X: 500, Y: 500}

	newSwitcher(port, history.NewTracker()).Switch(context.Background(), 1)
	assert.Equal(t, []uint32{4}, port.FocusedWindows, "topmost without history")

	port = threeScreens()
	port.AddProcess(proc(4, "app.high"), win(4, 1200, 500, 400, 400))
	port.Pointer = types.Point{X: 500, Y: 500}
	tracker := history.NewTracker()
	tracker.Record("B", "app.b", 1)

	newSwitcher(port, tracker).Switch(context.Background(), 1)
	assert.Equal(t, []uint32{2}, port.FocusedWindows, "history wins")
}

func TestSwitch_NoWindowWarpsToCenter(t *testing.T) {
	port := servertest.New()
	port.Screens = []server.Display{
		{Name: "Left", Frame: types.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, IsMain: true},
		{Name: "Right", Frame: types.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}
	port.AddProcess(proc(1, "app.right"), win(1, 2000, 100, 800, 600))
	port.Pointer = types.Point{X: 2500, Y: 500}
	tracker := history.NewTracker()

	newSwitcher(port, tracker).Switch(context.Background(), -1)

	assert.Empty(t, port.FocusedWindows)
	assert.Empty(t, port.Activated)
	assert.Equal(t, []types.Point{{X: 960, Y: 540}}, port.Warps)
	assert.Zero(t, tracker.Len())
}

func TestSwitch_TwoDisplaysPreviousFocusesLeft(t *testing.T) {
	port := servertest.New()
	port.Screens = []server.Display{
		{Name: "Left", Frame: types.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, IsMain: true},
		{Name: "Right", Frame: types.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}
	port.AddProcess(proc(1, "app.left"), win(1, 100, 100, 800, 600))
	port.AddProcess(proc(2, "app.right"), win(2, 2000, 100, 800, 600))
	port.Pointer = types.Point{X: 2500, Y: 500}

	newSwitcher(port, history.NewTracker()).Switch(context.Background(), -1)

	assert.Equal(t, []uint32{1}, port.FocusedWindows)
	assert.Equal(t, []types.Point{{X: 500, Y: 400}}, port.Warps)
}

func TestSwitch_NoDisplays(t *testing.T) {
	port := servertest.New()
	newSwitcher(port, history.NewTracker()).Switch(context.Background(), 1)

	assert.Empty(t, port.Warps)
	assert.Empty(t, port.FocusedWindows)
}

func TestTopmost(t *testing.T) {
	windows := []server.Window{
		win(1, 0, 0, 100, 100),
		win(2, 0, 300, 100, 100),
		win(3, 0, 300, 100, 100),
	}
	assert.Equal(t, uint32(2), Topmost(windows).ID)
}

func TestSortLeftToRight(t *testing.T) {
	displays := []server.Display{right, left, middle}
	SortLeftToRight(displays)
	assert.Equal(t, "A", displays[0].Name)
	assert.Equal(t, "B", displays[1].Name)
	assert.Equal(t, "C", displays[2].Name)
}
