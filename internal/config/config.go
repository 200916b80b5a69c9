// pattern: Imperative Shell

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

var LogLevels = []string{"debug", "info", "warn", "error"}

// Content kinds a panel can display.
var ContentKinds = []string{"logs", "events", "state", "text"}

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Theme      string            `yaml:"theme"`
	LogLevel   string            `yaml:"log_level"`
	Store      StoreConfig       `yaml:"store"`
	Dock       DockConfig        `yaml:"dock"`
	Containers []ContainerConfig `yaml:"containers"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// DockConfig holds the interaction thresholds, in terminal cells, and the
// initial flags of every container. Saved layouts override the flags.
type DockConfig struct {
	EdgeThreshold     float64 `yaml:"edge_threshold"`
	SplitterProximity float64 `yaml:"splitter_proximity"`
	HeaderHeight      float64 `yaml:"header_height"`
	Locked            bool    `yaml:"locked"`
	AllowStacking     *bool   `yaml:"allow_stacking"`
}

type ContainerConfig struct {
	ID     string        `yaml:"id"`
	Panels []PanelConfig `yaml:"panels"`
}

type PanelConfig struct {
	ID           string  `yaml:"id"`
	Title        string  `yaml:"title"`
	Width        string  `yaml:"width"`
	MinWidth     float64 `yaml:"min_width"`
	Controls     bool    `yaml:"controls"`
	StackedUnder string  `yaml:"stacked_under"`
	Content      string  `yaml:"content"`
	Text         string  `yaml:"text"`
}

func DefaultConfig() Config {
	allow := true
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
		Store:    StoreConfig{Backend: BackendFile},
		Dock: DockConfig{
			EdgeThreshold:     2,
			SplitterProximity: 1,
			HeaderHeight:      1,
			AllowStacking:     &allow,
		},
		Containers: []ContainerConfig{DefaultContainer()},
	}
}

// DefaultContainer is the row shown when the config declares none.
func DefaultContainer() ContainerConfig {
	return ContainerConfig{
		ID: "main",
		Panels: []PanelConfig{
			{ID: "logs", Title: "Logs", Width: "40%", MinWidth: 20, Controls: true, Content: "logs"},
			{ID: "events", Title: "Events", MinWidth: 16, Controls: true, Content: "events"},
			{ID: "state", Title: "State", MinWidth: 16, Controls: true, Content: "state", StackedUnder: "events"},
			{ID: "help", Title: "Help", MinWidth: 12, Controls: true, Content: "text", Text: helpText},
		},
	}
}

const helpText = `Drag a header to move a panel.
Drop on a splitter or an edge to dock it.
Drop on another header to stack it.
Drag a boundary to resize.`

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom reads a config file over the defaults. A missing file yields
// the defaults.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Dock.EdgeThreshold <= 0 {
		c.Dock.EdgeThreshold = def.Dock.EdgeThreshold
	}
	if c.Dock.SplitterProximity <= 0 {
		c.Dock.SplitterProximity = def.Dock.SplitterProximity
	}
	if c.Dock.HeaderHeight <= 0 {
		c.Dock.HeaderHeight = def.Dock.HeaderHeight
	}
	if c.Dock.AllowStacking == nil {
		c.Dock.AllowStacking = def.Dock.AllowStacking
	}
	if len(c.Containers) == 0 {
		c.Containers = def.Containers
	}
}

// Validate reports the first problem found in the config.
func (c *Config) Validate() error {
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Theme)
	}
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}

	seen := make(map[string]bool, len(c.Containers))
	for _, ct := range c.Containers {
		if ct.ID == "" {
			return fmt.Errorf("%w: container without id", ErrInvalid)
		}
		if seen[ct.ID] {
			return fmt.Errorf("%w: duplicate container %q", ErrInvalid, ct.ID)
		}
		seen[ct.ID] = true

		panels := make(map[string]bool, len(ct.Panels))
		for _, p := range ct.Panels {
			if p.ID == "" {
				continue
			}
			if panels[p.ID] {
				return fmt.Errorf("%w: container %q: duplicate panel %q", ErrInvalid, ct.ID, p.ID)
			}
			panels[p.ID] = true
			if p.Content != "" && !slices.Contains(ContentKinds, p.Content) {
				return fmt.Errorf("%w: panel %q: unknown content %q", ErrInvalid, p.ID, p.Content)
			}
		}
	}
	return nil
}

// Container returns the declared container with the given id.
func (c *Config) Container(id string) (ContainerConfig, bool) {
	for _, ct := range c.Containers {
		if ct.ID == id {
			return ct, true
		}
	}
	return ContainerConfig{}, false
}

// StackingAllowed is the initial allow-stacking flag.
func (c *Config) StackingAllowed() bool {
	return c.Dock.AllowStacking == nil || *c.Dock.AllowStacking
}

// StorePath resolves the store location under dataDir when none is set.
func (c *Config) StorePath(dataDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Backend == BackendSQLite {
		return filepath.Join(dataDir, "layouts.db")
	}
	return filepath.Join(dataDir, "layouts")
}

// ResolveConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func ResolveConfigDir() string {
	return filepath.Dir(getConfigPath())
}

// ResolveDataDir returns the data directory, honoring XDG_DATA_HOME.
func ResolveDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "dockrow")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "dockrow")
	}

	return filepath.Join(home, ".local", "share", "dockrow")
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dockrow", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "dockrow", "config.yaml")
	}

	return filepath.Join(home, ".config", "dockrow", "config.yaml")
}
