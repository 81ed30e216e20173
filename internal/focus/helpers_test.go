package focus

import (
	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/server/servertest"
	"github.com/yourusername/spaces-cli/internal/types"
)

var (
	builtin  = server.Display{Name: "Built-in", Frame: types.Rect{X: 0, Y: 0, Width: 1440, Height: 900}, IsMain: true}
	external = server.Display{Name: "External", Frame: types.Rect{X: 1440, Y: 0, Width: 1920, Height: 1080}}
)

func proc(pid int, bundleID string) server.Process {
	return server.Process{PID: pid, BundleID: bundleID, Name: bundleID, IsRegular: true}
}

func win(id uint32, x, y, w, h float64) server.Window {
	return server.Window{ID: id, Frame: types.Rect{X: x, Y: y, Width: w, Height: h}}
}

func newPort() *servertest.Port {
	p := servertest.New()
	p.Screens = []server.Display{builtin, external}
	return p
}
