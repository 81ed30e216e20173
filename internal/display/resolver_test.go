package display

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spaces-cli/internal/config"
	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/server/servertest"
	"github.com/yourusername/spaces-cli/internal/types"
	"github.com/yourusername/spaces-cli/internal/workspace"
)

var (
	builtin  = server.Display{Name: "Built-in", Frame: types.Rect{X: 0, Y: 0, Width: 1440, Height: 900}, IsMain: true}
	external = server.Display{Name: "External", Frame: types.Rect{X: 1440, Y: 0, Width: 1920, Height: 1080}}
)

func onBuiltin(id uint32) server.Window {
	return server.Window{ID: id, Frame: types.Rect{X: 100, Y: 100, Width: 800, Height: 600}}
}

func onExternal(id uint32) server.Window {
	return server.Window{ID: id, Frame: types.Rect{X: 1600, Y: 100, Width: 1000, Height: 700}}
}

func newPort() *servertest.Port {
	p := servertest.New()
	p.Screens = []server.Display{builtin, external}
	return p
}

func staticWorkspace(display string, bundleIDs ...string) *workspace.Workspace {
	wc := config.WorkspaceConfig{ID: "ws", Display: display}
	for _, id := range bundleIDs {
		wc.Apps = append(wc.Apps, config.AppConfig{BundleID: id})
	}
	ws := workspace.FromConfig(wc, config.DisplayModeStatic)
	return &ws
}

func dynamicWorkspace(bundleIDs ...string) *workspace.Workspace {
	return staticWorkspace(config.DynamicDisplay, bundleIDs...)
}

func names(displays []server.Display) []string {
	out := make([]string, 0, len(displays))
	for _, d := range displays {
		out = append(out, d.Name)
	}
	return out
}

func TestResolve_SingleScreen(t *testing.T) {
	port := servertest.New()
	port.Screens = []server.Display{external}
	r := NewResolver(port, nil, nil)

	for _, ws := range []*workspace.Workspace{
		staticWorkspace("Built-in"),
		dynamicWorkspace("com.apple.Safari"),
		staticWorkspace(""),
	} {
		assert.Equal(t, []string{"External"}, names(r.Resolve(context.Background(), ws)))
	}
	assert.Zero(t, port.WindowCalls, "single screen never queries windows")
}

func TestResolve_Static(t *testing.T) {
	aliases := map[string]string{
		"DELL":    "External",
		"LG":      "Projector",
		"Missing": "Built-in",
	}
	r := NewResolver(newPort(), aliases, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"connected", "External", "External"},
		{"alias to connected", "DELL", "External"},
		{"alias to disconnected", "LG", "Built-in"},
		{"no alias", "Sidecar", "Built-in"},
		{"unset", "", "Built-in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(ctx, staticWorkspace(tt.display))
			assert.Equal(t, []string{tt.want}, names(got))

			single, ok := r.ResolveSingle(ctx, tt.display)
			require.True(t, ok)
			assert.Equal(t, tt.want, single.Name)
		})
	}
}

func TestResolve_Dynamic(t *testing.T) {
	port := newPort()
	port.AddProcess(server.Process{PID: 1, BundleID: "com.apple.Safari", IsRegular: true}, onExternal(10))
	port.AddProcess(server.Process{PID: 2, BundleID: "com.apple.mail", IsRegular: true}, onBuiltin(20))
	port.AddProcess(server.Process{PID: 3, BundleID: "com.other", IsRegular: true}, onBuiltin(30))
	r := NewResolver(port, nil, nil)
	ctx := context.Background()

	assert.Equal(t, []string{"External"}, names(r.Resolve(ctx, dynamicWorkspace("com.apple.Safari"))))
	assert.Equal(t, []string{"Built-in", "External"},
		names(r.Resolve(ctx, dynamicWorkspace("com.apple.Safari", "com.apple.mail"))),
		"returned in connected order")
	assert.Empty(t, r.Resolve(ctx, dynamicWorkspace("com.not.running")))
	assert.Zero(t, port.AllWindowCalls)
}

func TestResolve_DynamicIgnoresNoise(t *testing.T) {
	port := newPort()
	port.AddProcess(server.Process{PID: 1, BundleID: "com.apple.Safari", IsRegular: true},
		server.Window{ID: 1, Frame: types.Rect{X: 1600, Y: 100, Width: 1, Height: 1}},
		server.Window{ID: 2, Frame: types.Rect{X: 1600, Y: 100, Width: 400, Height: 400}, Layer: 3},
		server.Window{ID: 3, Frame: types.Rect{X: 1600, Y: 100, Width: 400, Height: 400}, IsMinimized: true},
		onBuiltin(4),
	)
	r := NewResolver(port, nil, nil)

	assert.Equal(t, []string{"Built-in"}, names(r.Resolve(context.Background(), dynamicWorkspace("com.apple.Safari"))))
}

func TestResolve_DynamicFallsBackToSystemChannel(t *testing.T) {
	port := newPort()
	port.AddProcess(server.Process{PID: 1, BundleID: "com.apple.Safari", IsRegular: true})
	port.SystemWindows = map[int][]server.Window{
		1: {
			{ID: 5, PID: 1, Frame: types.Rect{X: 1500, Y: 0, Width: 5, Height: 5}},
			{ID: 6, PID: 1, Frame: external.Frame},
		},
	}
	r := NewResolver(port, nil, nil)

	got := r.Resolve(context.Background(), dynamicWorkspace("com.apple.Safari"))
	assert.Equal(t, []string{"External"}, names(got))
	assert.Equal(t, 1, port.WindowCalls)
	assert.Equal(t, 1, port.AllWindowCalls)
}

func TestResolve_DynamicOffscreenPrimaryWindow(t *testing.T) {
	port := newPort()
	// The accessibility channel reports the parked primary window on External.
	port.AddProcess(server.Process{PID: 7, BundleID: "org.mozilla.firefox", IsRegular: true}, onExternal(70))
	port.SystemWindows = map[int][]server.Window{
		7: {
			{ID: 71, PID: 7, Frame: types.Rect{X: -10, Y: 2000, Width: 1, Height: 1}},
			{ID: 72, PID: 7, Frame: types.Rect{X: 200, Y: 200, Width: 900, Height: 600}},
			{ID: 73, PID: 7, Frame: types.Rect{X: 1600, Y: 200, Width: 900, Height: 600}},
		},
	}
	r := NewResolver(port, nil, nil)

	got := r.Resolve(context.Background(), dynamicWorkspace("org.mozilla.firefox"))
	assert.Equal(t, []string{"Built-in"}, names(got), "matched by first significant window only")
	assert.Zero(t, port.WindowCalls, "excluded from the accessibility channel")
}

func TestResolve_DisplaysError(t *testing.T) {
	port := newPort()
	port.Err = assert.AnError
	r := NewResolver(port, nil, nil)

	assert.Empty(t, r.Resolve(context.Background(), staticWorkspace("Built-in")))
}

func TestCanActivate(t *testing.T) {
	port := newPort()
	port.AddProcess(server.Process{PID: 1, BundleID: "com.apple.Safari", IsRegular: true})
	r := NewResolver(port, nil, nil)
	ctx := context.Background()

	assert.True(t, r.CanActivate(ctx, staticWorkspace("Nowhere", "com.not.running")), "static always activates")
	assert.True(t, r.CanActivate(ctx, dynamicWorkspace("com.apple.Safari")), "app running without windows")
	assert.False(t, r.CanActivate(ctx, dynamicWorkspace("com.not.running")))

	opener := dynamicWorkspace("com.not.running")
	opener.OpenAppsOnActivation = true
	assert.True(t, r.CanActivate(ctx, opener))

	port.Screens = []server.Display{builtin}
	assert.True(t, r.CanActivate(ctx, dynamicWorkspace("com.not.running")), "single screen resolves to it")
}

func TestLastActiveDisplay(t *testing.T) {
	ctx := context.Background()
	both := []server.Display{builtin, external}

	t.Run("history", func(t *testing.T) {
		port := newPort()
		port.Pointer = types.Point{X: 100, Y: 100}
		tracker := history.NewTracker()
		tracker.Record("External", "com.apple.Safari", 1)
		tracker.Record("Projector", "com.apple.Keynote", 1)
		r := NewResolver(port, nil, tracker)

		d, ok := r.LastActiveDisplay(ctx, both)
		require.True(t, ok)
		assert.Equal(t, "External", d.Name)
	})

	t.Run("pointer", func(t *testing.T) {
		port := newPort()
		port.Pointer = types.Point{X: 2000, Y: 500}
		r := NewResolver(port, nil, nil)

		d, ok := r.LastActiveDisplay(ctx, both)
		require.True(t, ok)
		assert.Equal(t, "External", d.Name)
	})

	t.Run("first candidate", func(t *testing.T) {
		port := newPort()
		port.Pointer = types.Point{X: 100, Y: 100}
		r := NewResolver(port, nil, nil)

		d, ok := r.LastActiveDisplay(ctx, []server.Display{external})
		require.True(t, ok)
		assert.Equal(t, "External", d.Name)
	})

	t.Run("main display", func(t *testing.T) {
		r := NewResolver(newPort(), nil, nil)

		d, ok := r.LastActiveDisplay(ctx, nil)
		require.True(t, ok)
		assert.Equal(t, "Built-in", d.Name)
	})

	t.Run("nothing connected", func(t *testing.T) {
		r := NewResolver(servertest.New(), nil, nil)

		_, ok := r.LastActiveDisplay(ctx, nil)
		assert.False(t, ok)
	})
}

func TestActiveDisplay(t *testing.T) {
	port := newPort()
	port.AddProcess(server.Process{PID: 1, BundleID: "com.apple.Safari", IsRegular: true}, onBuiltin(1), onExternal(2))
	port.Pointer = types.Point{X: 2000, Y: 500}
	r := NewResolver(port, nil, nil)

	d, ok := r.ActiveDisplay(context.Background(), dynamicWorkspace("com.apple.Safari"))
	require.True(t, ok)
	assert.Equal(t, "External", d.Name)
}
