// Package servertest provides an in-memory introspection port for tests.
package servertest

import (
	"context"

	"github.com/yourusername/spaces-cli/internal/server"
	"github.com/yourusername/spaces-cli/internal/types"
)

// Port is a scripted server.Port. Focus and activation calls mutate the
// scripted state the way the OS would, so sequences of actions can be
// tested end to end. Every side effect is recorded.
type Port struct {
	Procs         []server.Process
	AXWindows     map[int][]server.Window // accessibility channel, by pid
	SystemWindows map[int][]server.Window // system-wide channel, by pid; nil mirrors AXWindows
	Screens       []server.Display
	Pointer       types.Point
	Elements      map[uint32]*server.Element

	// FocusedPID is the frontmost process; 0 means none.
	FocusedPID int

	RejectFocus bool
	Err         error

	FocusedWindows  []uint32
	Activated       []string
	Warps           []types.Point
	NeutralKeys     int
	FocusedElements []string
	WindowCalls     int
	AllWindowCalls  int
}

var _ server.Port = (*Port)(nil)

// New returns an empty port.
func New() *Port {
	return &Port{
		AXWindows: make(map[int][]server.Window),
		Elements:  make(map[uint32]*server.Element),
	}
}

// AddProcess registers a running process and its accessibility-visible windows.
func (p *Port) AddProcess(proc server.Process, windows ...server.Window) {
	for i := range windows {
		windows[i].PID = proc.PID
	}
	p.Procs = append(p.Procs, proc)
	p.AXWindows[proc.PID] = append(p.AXWindows[proc.PID], windows...)
}

// Focus makes the process frontmost and the window focused and main.
func (p *Port) Focus(pid int, windowID uint32) {
	p.FocusedPID = pid
	p.setFocusedWindow(pid, windowID)
}

func (p *Port) Windows(_ context.Context, pids []int) ([]server.Window, error) {
	p.WindowCalls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.collect(p.AXWindows, pids), nil
}

func (p *Port) AllWindows(_ context.Context, pids []int) ([]server.Window, error) {
	p.AllWindowCalls++
	if p.Err != nil {
		return nil, p.Err
	}
	source := p.SystemWindows
	if source == nil {
		source = p.AXWindows
	}
	return p.collect(source, pids), nil
}

func (p *Port) collect(source map[int][]server.Window, pids []int) []server.Window {
	want := make(map[int]bool, len(pids))
	for _, pid := range pids {
		want[pid] = true
	}

	var out []server.Window
	for _, proc := range p.Procs {
		if !want[proc.PID] {
			continue
		}
		out = append(out, source[proc.PID]...)
	}
	return out
}

func (p *Port) FocusedProcess(_ context.Context) (*server.Process, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	for _, proc := range p.Procs {
		if proc.PID == p.FocusedPID {
			proc.IsFrontmost = true
			return &proc, nil
		}
	}
	return nil, nil
}

func (p *Port) VisibleProcesses(_ context.Context) ([]server.Process, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	var out []server.Process
	for _, proc := range p.Procs {
		if proc.IsRegular && !proc.IsHidden {
			out = append(out, proc)
		}
	}
	return out, nil
}

func (p *Port) RunningProcesses(_ context.Context) ([]server.Process, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]server.Process(nil), p.Procs...), nil
}

func (p *Port) Displays(_ context.Context) ([]server.Display, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]server.Display(nil), p.Screens...), nil
}

func (p *Port) PointerLocation(_ context.Context) (types.Point, error) {
	if p.Err != nil {
		return types.Point{}, p.Err
	}
	return p.Pointer, nil
}

func (p *Port) FocusWindow(_ context.Context, w server.Window) (bool, error) {
	if p.Err != nil {
		return false, p.Err
	}
	if p.RejectFocus {
		return false, nil
	}
	p.FocusedWindows = append(p.FocusedWindows, w.ID)
	p.setFocusedWindow(w.PID, w.ID)
	return true, nil
}

func (p *Port) Activate(_ context.Context, proc server.Process) error {
	if p.Err != nil {
		return p.Err
	}
	p.Activated = append(p.Activated, proc.BundleID)
	p.FocusedPID = proc.PID
	return nil
}

func (p *Port) WarpPointer(_ context.Context, pt types.Point) error {
	if p.Err != nil {
		return p.Err
	}
	p.Warps = append(p.Warps, pt)
	p.Pointer = pt
	return nil
}

func (p *Port) PostNeutralKey(_ context.Context) error {
	p.NeutralKeys++
	return nil
}

func (p *Port) WindowElements(_ context.Context, w server.Window) (*server.Element, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Elements[w.ID], nil
}

func (p *Port) FocusElement(_ context.Context, _ server.Window, e server.Element) error {
	if p.Err != nil {
		return p.Err
	}
	p.FocusedElements = append(p.FocusedElements, e.ID)
	return nil
}

func (p *Port) setFocusedWindow(pid int, windowID uint32) {
	for otherPID, windows := range p.AXWindows {
		for i := range windows {
			windows[i].IsFocused = windows[i].ID == windowID
			if otherPID == pid {
				windows[i].IsMain = windows[i].ID == windowID
			}
		}
	}
}
