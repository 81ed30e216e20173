package config

// Config is the root configuration structure
type Config struct {
	Settings     Settings          `yaml:"settings" json:"settings"`
	Workspaces   []WorkspaceConfig `yaml:"workspaces" json:"workspaces"`
	FloatingApps []string          `yaml:"floatingApps,omitempty" json:"floatingApps,omitempty"` // Bundle IDs shown in every workspace
}

// DisplayMode selects how workspaces are bound to displays.
type DisplayMode string

const (
	DisplayModeStatic  DisplayMode = "static"
	DisplayModeDynamic DisplayMode = "dynamic"
)

// DynamicDisplay is the per-workspace display value that opts into dynamic resolution.
const DynamicDisplay = "dynamic"

// Settings contains global application settings
type Settings struct {
	DisplayMode          DisplayMode `yaml:"displayMode,omitempty" json:"displayMode,omitempty"`
	FocusFrontmostWindow bool        `yaml:"focusFrontmostWindow" json:"focusFrontmostWindow"` // Skip occluded windows in directional focus
	CenterCursorOnFocus  bool        `yaml:"centerCursorOnFocus" json:"centerCursorOnFocus"`
	DisplayAliases       string      `yaml:"displayAliases,omitempty" json:"displayAliases,omitempty"` // "source=target;source=target"
	MaxElementDepth      int         `yaml:"maxElementDepth,omitempty" json:"maxElementDepth,omitempty"`
}

// WorkspaceConfig is the configuration representation of a workspace
type WorkspaceConfig struct {
	ID                   string      `yaml:"id" json:"id"`
	Name                 string      `yaml:"name,omitempty" json:"name,omitempty"`
	Display              string      `yaml:"display,omitempty" json:"display,omitempty"` // Display name, or "dynamic"
	Apps                 []AppConfig `yaml:"apps" json:"apps"`
	AppToFocus           string      `yaml:"appToFocus,omitempty" json:"appToFocus,omitempty"` // Bundle ID
	OpenAppsOnActivation bool        `yaml:"openAppsOnActivation,omitempty" json:"openAppsOnActivation,omitempty"`
}

// AppConfig identifies an application assigned to a workspace
type AppConfig struct {
	BundleID string `yaml:"bundleId" json:"bundleId"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
}
