package config

import (
	"fmt"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	workspaceIDs := make(map[string]bool)
	for i, ws := range c.Workspaces {
		if ws.ID == "" {
			return fmt.Errorf("workspace %d: missing ID", i)
		}
		if workspaceIDs[ws.ID] {
			return fmt.Errorf("duplicate workspace ID: %s", ws.ID)
		}
		workspaceIDs[ws.ID] = true

		if err := validateWorkspace(&ws); err != nil {
			return fmt.Errorf("workspace %s: %w", ws.ID, err)
		}
	}

	for i, bundleID := range c.FloatingApps {
		if bundleID == "" {
			return fmt.Errorf("floatingApps %d: missing bundle ID", i)
		}
	}

	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

func validateWorkspace(ws *WorkspaceConfig) error {
	bundleIDs := make(map[string]bool)
	for i, app := range ws.Apps {
		if app.BundleID == "" {
			return fmt.Errorf("app %d: missing bundle ID", i)
		}
		if bundleIDs[app.BundleID] {
			return fmt.Errorf("duplicate app: %s", app.BundleID)
		}
		bundleIDs[app.BundleID] = true
	}

	if ws.AppToFocus != "" && !bundleIDs[ws.AppToFocus] {
		return fmt.Errorf("appToFocus %s is not one of the workspace apps", ws.AppToFocus)
	}

	return nil
}

func validateSettings(s *Settings) error {
	switch s.DisplayMode {
	case "", DisplayModeStatic, DisplayModeDynamic:
	default:
		return fmt.Errorf("invalid display mode: %s", s.DisplayMode)
	}

	if _, err := ParseDisplayAliases(s.DisplayAliases); err != nil {
		return fmt.Errorf("displayAliases: %w", err)
	}

	if s.MaxElementDepth < 0 {
		return fmt.Errorf("maxElementDepth cannot be negative")
	}

	return nil
}
