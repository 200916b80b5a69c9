package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadFullConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	configContent := `
theme: latte
log_level: debug
store:
  backend: sqlite
  path: /tmp/layouts.db
dock:
  edge_threshold: 4
  splitter_proximity: 2
  header_height: 2
  locked: true
  allow_stacking: false
containers:
  - id: main
    panels:
      - {id: logs, title: Logs, width: "40%", min_width: 20, controls: true, content: logs}
      - {id: notes, title: Notes, content: text, text: hello, stacked_under: logs}
  - id: side
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Theme != "latte" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "latte")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.Path != "/tmp/layouts.db" {
		t.Errorf("Store: got %+v", cfg.Store)
	}
	if cfg.Dock.EdgeThreshold != 4 || cfg.Dock.SplitterProximity != 2 || cfg.Dock.HeaderHeight != 2 {
		t.Errorf("Dock thresholds: got %+v", cfg.Dock)
	}
	if !cfg.Dock.Locked {
		t.Error("Dock.Locked: got false, want true")
	}
	if cfg.StackingAllowed() {
		t.Error("StackingAllowed: got true, want false")
	}

	if len(cfg.Containers) != 2 {
		t.Fatalf("Containers: got %d, want 2", len(cfg.Containers))
	}
	main, ok := cfg.Container("main")
	if !ok || len(main.Panels) != 2 {
		t.Fatalf("Container(main): got %+v", main)
	}
	want := PanelConfig{ID: "logs", Title: "Logs", Width: "40%", MinWidth: 20, Controls: true, Content: "logs"}
	if main.Panels[0] != want {
		t.Errorf("Panels[0]: got %+v, want %+v", main.Panels[0], want)
	}
	if main.Panels[1].StackedUnder != "logs" || main.Panels[1].Text != "hello" {
		t.Errorf("Panels[1]: got %+v", main.Panels[1])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Theme != def.Theme || cfg.Store.Backend != BackendFile {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if !cfg.StackingAllowed() {
		t.Error("StackingAllowed: defaults should allow stacking")
	}
	if len(cfg.Containers) != 1 || cfg.Containers[0].ID != "main" {
		t.Errorf("Containers: got %+v", cfg.Containers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: frappe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Theme != "frappe" {
		t.Errorf("Theme: got %q", cfg.Theme)
	}
	if cfg.Dock.HeaderHeight != 1 || cfg.Dock.EdgeThreshold != 2 {
		t.Errorf("Dock: got %+v, want defaults", cfg.Dock)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err == nil {
		t.Fatal("LoadFrom: expected error for invalid YAML")
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme on error: got %q, want the default", cfg.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme = "solarized" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "redis" }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "duplicate container", mutate: func(c *Config) {
			c.Containers = append(c.Containers, ContainerConfig{ID: "main"})
		}},
		{name: "container without id", mutate: func(c *Config) {
			c.Containers = append(c.Containers, ContainerConfig{})
		}},
		{name: "duplicate panel", mutate: func(c *Config) {
			c.Containers[0].Panels = append(c.Containers[0].Panels, PanelConfig{ID: "logs"})
		}},
		{name: "unknown content", mutate: func(c *Config) {
			c.Containers[0].Panels[0].Content = "video"
		}},
		{name: "panels without ids", mutate: func(c *Config) {
			c.Containers[0].Panels = append(c.Containers[0].Panels, PanelConfig{Title: "a"}, PanelConfig{Title: "b"})
		}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate: got %v, want ErrInvalid", err)
			}
		})
	}
}

func TestStorePath(t *testing.T) {
	tests := []struct {
		backend, path, want string
	}{
		{backend: BackendFile, want: filepath.Join("/data", "layouts")},
		{backend: BackendSQLite, want: filepath.Join("/data", "layouts.db")},
		{backend: BackendSQLite, path: "/elsewhere.db", want: "/elsewhere.db"},
	}
	for _, tt := range tests {
		cfg := Config{Store: StoreConfig{Backend: tt.backend, Path: tt.path}}
		if got := cfg.StorePath("/data"); got != tt.want {
			t.Errorf("StorePath(%s, %q): got %q, want %q", tt.backend, tt.path, got, tt.want)
		}
	}
}

func TestResolveDirs_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	if got := ResolveDataDir(); got != filepath.Join("/xdg/data", "dockrow") {
		t.Errorf("ResolveDataDir: got %q", got)
	}
	if got := ResolveConfigDir(); got != filepath.Join("/xdg/config", "dockrow") {
		t.Errorf("ResolveConfigDir: got %q", got)
	}
	if got := ContainersDir(); got != filepath.Join("/xdg/config", "dockrow", "containers") {
		t.Errorf("ContainersDir: got %q", got)
	}
}

func TestResolveDataDir_Home(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ResolveDataDir(); got != filepath.Join(home, ".local", "share", "dockrow") {
		t.Errorf("ResolveDataDir: got %q", got)
	}
}

func TestDefaultConfigRoundTripsThroughYAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got, want := cfg.Containers[0].Panels, DefaultContainer().Panels; !slices.Equal(got, want) {
		t.Errorf("Panels: got %+v, want %+v", got, want)
	}
}

func TestLoadContainersFrom(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-side.yaml": "panels:\n  - {id: x, title: X}\n",
		"a.yaml":      "id: alpha\npanels:\n  - {id: y}\n",
		"notes.txt":   "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	cts, err := LoadContainersFrom(dir)
	if err != nil {
		t.Fatalf("LoadContainersFrom: %v", err)
	}
	var ids []string
	for _, ct := range cts {
		ids = append(ids, ct.ID)
	}
	if !slices.Equal(ids, []string{"alpha", "b-side"}) {
		t.Errorf("ids: got %v", ids)
	}

	cfg := DefaultConfig()
	skipped := cfg.AddContainers(append(cts, ContainerConfig{ID: "main"}))
	if !slices.Equal(skipped, []string{"main"}) {
		t.Errorf("AddContainers skipped: got %v", skipped)
	}
	if len(cfg.Containers) != 3 {
		t.Errorf("Containers: got %d, want 3", len(cfg.Containers))
	}
}

func TestLoadContainersFrom_Missing(t *testing.T) {
	cts, err := LoadContainersFrom(filepath.Join(t.TempDir(), "absent"))
	if err != nil || cts != nil {
		t.Errorf("got %v, %v; want nil, nil", cts, err)
	}
}

func TestLoadContainersFrom_BadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("panels: {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadContainersFrom(dir); err == nil {
		t.Error("LoadContainersFrom: expected error for invalid YAML")
	}
}
