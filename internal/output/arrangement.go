package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/spaces-cli/internal/server"
)

// ArrangementOptions controls the appearance of the arrangement view
type ArrangementOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultArrangementOptions sizes the view to the terminal.
func DefaultArrangementOptions() ArrangementOptions {
	width, height := getTerminalSize()
	return ArrangementOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height - 2, // header and prompt
	}
}

// ArrangedWindow is a window with the name of its app.
type ArrangedWindow struct {
	Window  server.Window
	App     string
	Focused bool
}

// Arrangement is the desktop to draw: connected displays and the windows
// on them, back to front.
type Arrangement struct {
	Displays []server.Display
	Windows  []ArrangedWindow
}

// RenderArrangement draws the displays as boxes in their physical layout
// with the windows on top. The focused window is drawn with the focus style.
func RenderArrangement(a Arrangement, opts ArrangementOptions) string {
	if len(a.Displays) == 0 {
		return "No displays found\n"
	}

	style, focusStyle := ASCIIStyle, ASCIIFocusStyle
	if opts.UseUnicode {
		style, focusStyle = UnicodeStyle, UnicodeFocusStyle
	}

	sc := NewScaler(a.Displays, opts.MaxWidth, opts.MaxHeight)
	cols, rows := sc.Size()
	canvas := NewCanvas(cols, rows)

	for _, d := range a.Displays {
		x, y, w, h := sc.Box(d.Frame)
		canvas.DrawBox(x, y, w, h, style)
		label := d.Name
		if d.IsMain {
			label += " *"
		}
		canvas.DrawText(x+2, y, " "+label+" ", w-4)
	}

	for _, aw := range a.Windows {
		x, y, w, h := sc.Box(aw.Window.Frame)
		if w < 3 || h < 3 {
			continue
		}
		canvas.ClearRect(x+1, y+1, w-2, h-2)
		if aw.Focused {
			canvas.DrawBox(x, y, w, h, focusStyle)
		} else {
			canvas.DrawBox(x, y, w, h, style)
		}
		canvas.DrawText(x+1, y+1, windowLabel(aw), w-2)
	}

	return canvas.String() + "\n"
}

// windowLabel creates a label for a window
func windowLabel(aw ArrangedWindow) string {
	app := aw.App
	if app == "" {
		app = "Unknown"
	}
	return fmt.Sprintf("%s [%d]", app, aw.Window.ID)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintArrangement writes the arrangement view, in cyan when color is on.
func PrintArrangement(w io.Writer, a Arrangement, opts ArrangementOptions) {
	result := RenderArrangement(a, opts)
	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	color.New(color.FgCyan).Fprint(w, result)
}
