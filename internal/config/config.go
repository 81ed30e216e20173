package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/spaces"
	DefaultConfigFile = "config.yaml"
)

// ErrWorkspaceNotFound is returned when a workspace ID is not configured.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrConfigNotFound is returned when no config file exists at the default location.
var ErrConfigNotFound = errors.New("no config file found")

// LoadConfig loads configuration from the specified path or default location
// If path is empty, uses ~/.config/spaces/config.yaml
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return nil, fmt.Errorf("%w at %s or %s", ErrConfigNotFound, yamlPath, jsonPath)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// GetWorkspace returns a workspace by ID
func (c *Config) GetWorkspace(id string) (*WorkspaceConfig, error) {
	for i := range c.Workspaces {
		if c.Workspaces[i].ID == id {
			return &c.Workspaces[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
}

// GetWorkspaceIDs returns all configured workspace IDs in order
func (c *Config) GetWorkspaceIDs() []string {
	ids := make([]string, len(c.Workspaces))
	for i, w := range c.Workspaces {
		ids[i] = w.ID
	}
	return ids
}

// GetDisplayAliases parses the alias table from settings.
func (c *Config) GetDisplayAliases() (map[string]string, error) {
	return ParseDisplayAliases(c.Settings.DisplayAliases)
}

// GetDisplayMode returns the global display mode, static by default.
func (c *Config) GetDisplayMode() DisplayMode {
	if c.Settings.DisplayMode == "" {
		return DisplayModeStatic
	}
	return c.Settings.DisplayMode
}

// GetMaxElementDepth returns the element search cap, 10 by default.
func (c *Config) GetMaxElementDepth() int {
	if c.Settings.MaxElementDepth > 0 {
		return c.Settings.MaxElementDepth
	}
	return 10
}

// IsFloatingApp reports whether the bundle ID is shown in every workspace.
func (c *Config) IsFloatingApp(bundleID string) bool {
	for _, id := range c.FloatingApps {
		if id == bundleID {
			return true
		}
	}
	return false
}
