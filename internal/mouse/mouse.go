// Package mouse moves the pointer to windows and displays.
package mouse

import (
	"context"
	"fmt"

	"github.com/yourusername/spaces-cli/internal/server"
)

// WarpToWindow moves the mouse cursor to the center of the specified window.
// Returns an error if the warp fails.
func WarpToWindow(ctx context.Context, port server.Port, w server.Window) error {
	if err := port.WarpPointer(ctx, w.Frame.Center()); err != nil {
		return fmt.Errorf("mouse warp to window %d failed: %w", w.ID, err)
	}
	return nil
}

// WarpToDisplay moves the mouse cursor to the center of the display.
func WarpToDisplay(ctx context.Context, port server.Port, d server.Display) error {
	if err := port.WarpPointer(ctx, d.Frame.Center()); err != nil {
		return fmt.Errorf("mouse warp to display %s failed: %w", d.Name, err)
	}
	return nil
}
