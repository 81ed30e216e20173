package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/spaces-cli/internal/apps"
	"github.com/yourusername/spaces-cli/internal/history"
	"github.com/yourusername/spaces-cli/internal/server"
)

// PrintDisplaysTable prints displays with the workspace active on each.
func PrintDisplaysTable(w io.Writer, displays []server.Display, active map[string]string) {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Frame", "Main", "Workspace")

	for _, d := range displays {
		main := ""
		if d.IsMain {
			main = "★"
		}
		workspace := active[d.Name]
		if workspace == "" {
			workspace = "-"
		}

		table.Append(
			truncate(d.Name, 30),
			formatFrame(d),
			main,
			workspace,
		)
	}

	table.Render()
}

// WorkspaceRow is one line of the workspaces table.
type WorkspaceRow struct {
	ID          string
	Name        string
	Strategy    string
	Displays    []string
	Apps        []string
	CanActivate bool
}

// PrintWorkspacesTable prints workspaces with their resolved displays.
func PrintWorkspacesTable(w io.Writer, rows []WorkspaceRow) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Strategy", "Displays", "Apps", "Activatable")

	for _, r := range rows {
		displays := strings.Join(r.Displays, ", ")
		if displays == "" {
			displays = "-"
		}
		activatable := "no"
		if r.CanActivate {
			activatable = "yes"
		}

		table.Append(
			r.ID,
			truncate(r.Name, 20),
			r.Strategy,
			truncate(displays, 30),
			fmt.Sprintf("%d", len(r.Apps)),
			activatable,
		)
	}

	table.Render()
}

// PrintHistoryTable prints the focus history, newest first.
func PrintHistoryTable(w io.Writer, entries []history.Entry) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Display", "App")

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		table.Append(
			fmt.Sprintf("%d", len(entries)-i),
			truncate(e.Display, 30),
			truncate(e.BundleID, 40),
		)
	}

	table.Render()
}

// PrintWindowsTable prints windows with their owning app and display.
func PrintWindowsTable(w io.Writer, windows []server.Window, procs map[int]server.Process, displays []server.Display) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Title", "Display", "Size", "Flags")

	sorted := append([]server.Window(nil), windows...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	for _, win := range sorted {
		proc := procs[win.PID]
		display := "-"
		if d, ok := server.DisplayForFrame(displays, win.Frame); ok {
			display = d.Name
		}

		table.Append(
			fmt.Sprintf("%d", win.ID),
			truncate(proc.BundleID, 30),
			truncate(win.Title, 30),
			truncate(display, 20),
			fmt.Sprintf("%.0fx%.0f", win.Frame.Width, win.Frame.Height),
			windowFlags(win, proc),
		)
	}

	table.Render()
}

func windowFlags(win server.Window, proc server.Process) string {
	var flags []string
	if win.IsFocused {
		flags = append(flags, "focused")
	}
	if win.IsMain {
		flags = append(flags, "main")
	}
	if win.IsMinimized {
		flags = append(flags, "minimized")
	}
	if !win.Qualifies() && !win.IsMinimized {
		flags = append(flags, "ignored")
	}
	if p := apps.Lookup(proc.BundleID); p != apps.PolicyNone {
		flags = append(flags, p.String())
	}
	return strings.Join(flags, ",")
}

// Helper functions

func formatFrame(d server.Display) string {
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", d.Frame.X, d.Frame.Y, d.Frame.Width, d.Frame.Height)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
