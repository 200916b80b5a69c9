// pattern: Imperative Shell
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"dockrow/internal/cli"
	"dockrow/internal/config"
	"dockrow/internal/instance"
	"dockrow/internal/logging"
	"dockrow/internal/tui"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/dockrow)")
	start := flag.String("container", "", "container shown first")

	env := &cli.Env{}

	flag.Usage = func() {
		app := cli.BuildApp(version, env)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	env.Config = cfg
	env.DataDir = cli.ResolveDataDir(*configDir)

	app := cli.BuildApp(version, env)
	launch, err := app.Execute(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	if launch {
		if err := runTUI(cfg, env.DataDir, *start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	}
}

func exitCode(err error) int {
	if errors.Is(err, instance.ErrRunning) {
		return 2
	}
	return 1
}

// loadConfig reads config.yaml and the per-container files next to it,
// then validates the result.
func loadConfig(configDir string) (config.Config, error) {
	var (
		cfg   config.Config
		err   error
		ctDir string
	)
	if configDir != "" {
		cfg, err = config.LoadFrom(filepath.Join(configDir, "config.yaml"))
		ctDir = filepath.Join(configDir, "containers")
	} else {
		cfg, err = config.Load()
		ctDir = config.ContainersDir()
	}
	if err != nil {
		return cfg, err
	}

	cts, err := config.LoadContainersFrom(ctDir)
	if err != nil {
		return cfg, err
	}
	if skipped := cfg.AddContainers(cts); len(skipped) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: duplicate container ids ignored: %v\n", skipped)
	}

	if err := cfg.Validate(); err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}

// runTUI launches the terminal host.
func runTUI(cfg config.Config, dataDir, start string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Acquire single-instance lock
	fl, err := instance.Lock(dataDir)
	if err != nil {
		return err
	}
	defer instance.Cleanup(dataDir, fl)
	if err := instance.WritePID(dataDir); err != nil {
		return err
	}

	logManager, err := logging.NewManager(logging.Config{
		FilePath:       cli.LogPath(dataDir),
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "data_dir", dataDir, "containers", len(cfg.Containers))

	store, closeStore, err := cli.OpenStore(cfg, dataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Error("store close error", "error", err)
		}
	}()

	model, err := tui.NewModel(tui.Options{
		Config:    cfg,
		Store:     store,
		StorePath: cfg.StorePath(dataDir),
		Watch:     true,
		Logs:      logManager,
		Entries:   logManager.Entries(),
		Start:     start,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		return fmt.Errorf("running program: %w", err)
	}

	appLogger.Info("application stopped")
	return nil
}
