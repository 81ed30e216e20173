// Package focus implements the navigation actions: directional focus,
// workspace app and window cycling, and screen switching.
package focus

import (
	"context"

	"github.com/yourusername/spaces-cli/internal/apps"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/mouse"
	"github.com/yourusername/spaces-cli/internal/server"
)

// Focuser is the single path through which every navigator hands focus to
// a window: focus the window, activate its process, then the per-app and
// pointer follow-ups.
type Focuser struct {
	port            server.Port
	maxElementDepth int
}

// NewFocuser creates a focuser. maxElementDepth caps the content element
// search; zero uses server.DefaultMaxElementDepth.
func NewFocuser(port server.Port, maxElementDepth int) *Focuser {
	return &Focuser{port: port, maxElementDepth: maxElementDepth}
}

// Focus gives focus to w (nil activates the process only). When the OS
// rejects the focus request a neutral key event is posted to coax focus
// back. With warp set the pointer moves to the window center.
// Failures are logged, never returned.
func (f *Focuser) Focus(ctx context.Context, proc server.Process, w *server.Window, warp bool) {
	if w != nil {
		ok, err := f.port.FocusWindow(ctx, *w)
		switch {
		case err != nil:
			logging.Warn().Err(err).Uint32("window", w.ID).Msg("focus window failed")
		case !ok:
			logging.Debug().Uint32("window", w.ID).Str("app", proc.BundleID).Msg("focus rejected, posting neutral key")
			if err := f.port.PostNeutralKey(ctx); err != nil {
				logging.Warn().Err(err).Msg("neutral key failed")
			}
		}
	}

	if err := f.port.Activate(ctx, proc); err != nil {
		logging.Warn().Err(err).Str("app", proc.BundleID).Msg("activate failed")
	}

	if w == nil {
		return
	}

	if apps.Lookup(proc.BundleID) == apps.PolicyFocusContent {
		f.focusContent(ctx, *w)
	}

	if warp {
		if err := mouse.WarpToWindow(ctx, f.port, *w); err != nil {
			logging.Warn().Err(err).Msg("pointer warp failed")
		}
	}
}

// focusContent moves keyboard focus into the window's content element.
func (f *Focuser) focusContent(ctx context.Context, w server.Window) {
	root, err := f.port.WindowElements(ctx, w)
	if err != nil {
		logging.Debug().Err(err).Uint32("window", w.ID).Msg("element tree unavailable")
		return
	}
	if root == nil {
		return
	}

	el, ok := server.FindElement(*root, server.HasRole(apps.ContentRole), f.maxElementDepth)
	if !ok {
		logging.Debug().Uint32("window", w.ID).Msg("no content element found")
		return
	}
	if err := f.port.FocusElement(ctx, w, el); err != nil {
		logging.Warn().Err(err).Str("element", el.ID).Msg("focus element failed")
	}
}

// focusedWindow returns the process's focused window, else its main
// window, else its first qualifying window.
func focusedWindow(windows []server.Window) (server.Window, bool) {
	for _, w := range windows {
		if w.IsFocused && !w.IsMinimized {
			return w, true
		}
	}
	for _, w := range windows {
		if w.IsMain && !w.IsMinimized {
			return w, true
		}
	}
	for _, w := range windows {
		if w.Qualifies() {
			return w, true
		}
	}
	return server.Window{}, false
}

// qualifying filters windows down to those that take part in navigation.
func qualifying(windows []server.Window) []server.Window {
	out := make([]server.Window, 0, len(windows))
	for _, w := range windows {
		if w.Qualifies() {
			out = append(out, w)
		}
	}
	return out
}

// byPID indexes processes by pid.
func byPID(procs []server.Process) map[int]server.Process {
	m := make(map[int]server.Process, len(procs))
	for _, p := range procs {
		m[p.PID] = p
	}
	return m
}
