// Package apps holds the per-application special cases. Navigation and
// display code asks for a Policy instead of checking bundle ids itself.
package apps

// Policy describes how the engine must treat a particular application.
type Policy int

const (
	// PolicyNone is the default: no special handling.
	PolicyNone Policy = iota
	// PolicyFileManager marks the desktop/file manager. It is left out of
	// workspace app lists, and clicks on the bare desktop (no windows) are
	// not recorded in focus history.
	PolicyFileManager
	// PolicyOffscreenPrimaryWindow marks apps that park their primary
	// window off-screen at a degenerate size. Their display is derived
	// from the first significant window instead of the primary channel.
	PolicyOffscreenPrimaryWindow
	// PolicyFocusContent marks apps whose content element must receive
	// focus after the window does (keyboard input otherwise lands in the
	// toolbar).
	PolicyFocusContent
)

// FileManagerBundleID is the desktop/file manager process.
const FileManagerBundleID = "com.apple.finder"

// ContentRole is the element role focused for PolicyFocusContent apps.
const ContentRole = "AXWebArea"

var policies = map[string]Policy{
	FileManagerBundleID:            PolicyFileManager,
	"org.mozilla.firefox":          PolicyOffscreenPrimaryWindow,
	"org.mozilla.firefoxdeveloper": PolicyOffscreenPrimaryWindow,
	"app.zen-browser.zen":          PolicyOffscreenPrimaryWindow,
	"com.google.Chrome":            PolicyFocusContent,
	"com.apple.Safari":             PolicyFocusContent,
	"com.brave.Browser":            PolicyFocusContent,
}

// Lookup returns the policy for a bundle id.
func Lookup(bundleID string) Policy {
	return policies[bundleID]
}

// IsFileManager reports whether the bundle id is the file manager.
func IsFileManager(bundleID string) bool {
	return Lookup(bundleID) == PolicyFileManager
}

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyFileManager:
		return "file-manager"
	case PolicyOffscreenPrimaryWindow:
		return "offscreen-primary-window"
	case PolicyFocusContent:
		return "focus-content"
	default:
		return "unknown"
	}
}
