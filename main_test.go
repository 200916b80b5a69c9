package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dockrow/internal/instance"
	"dockrow/internal/logging"
)

func TestLogManagerInitialization(t *testing.T) {
	// Create temp dir for logs
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	lm, err := logging.NewManager(logging.Config{
		FilePath:       logPath,
		MaxSizeMB:      1,
		MaxBackups:     1,
		MaxAgeDays:     1,
		ChannelBufSize: 10,
		Level:          "debug",
	})
	if err != nil {
		t.Fatalf("failed to create LogManager: %v", err)
	}
	defer lm.Close()

	logger := lm.For("engine.main")
	logger.Info("panel docked")

	lm.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file was not created")
	}

	select {
	case entry := <-lm.Entries():
		if entry.Scope != "engine.main" {
			t.Errorf("expected scope 'engine.main', got %q", entry.Scope)
		}
		if entry.Message != "panel docked" {
			t.Errorf("expected message 'panel docked', got %q", entry.Message)
		}
	default:
		t.Error("no log entry received on channel")
	}
}

func TestLoadConfig_MergesContainerFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "containers"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "config.yaml"), "theme: latte\n")
	writeFile(t, filepath.Join(dir, "containers", "side.yaml"), "panels:\n  - id: notes\n    title: Notes\n")
	writeFile(t, filepath.Join(dir, "containers", "main.yaml"), "panels:\n  - id: dup\n")

	cfg, err := loadConfig(dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.Theme)
	}
	side, ok := cfg.Container("side")
	if !ok || len(side.Panels) != 1 || side.Panels[0].ID != "notes" {
		t.Errorf("side container = %+v, %v", side, ok)
	}
	mainCt, _ := cfg.Container("main")
	for _, p := range mainCt.Panels {
		if p.ID == "dup" {
			t.Error("a container file must not replace the configured main container")
		}
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "theme: neon\n")

	cfg, err := loadConfig(dir)
	if err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
	if cfg.Theme == "neon" {
		t.Error("an invalid config should fall back to the defaults")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New("boom"), 1},
		{instance.ErrRunning, 2},
		{fmt.Errorf("%w (pid 42)", instance.ErrRunning), 2},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
