// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dockrow/internal/config"
	"dockrow/internal/instance"
	"dockrow/internal/logging"
	"dockrow/internal/persist"
)

// Env is what commands need from the process: the loaded config, the
// data directory and where to write.
type Env struct {
	Config  config.Config
	DataDir string
	Logger  *logging.ScopedLogger
	Out     io.Writer
	Err     io.Writer
}

// ResolveDataDir returns the data directory for the lock, the log file and
// the file and sqlite stores. If configDir is specified it is used as is.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return config.ResolveDataDir()
}

// LogPath is the rotated JSON log written by the terminal host.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "dockrow.log")
}

// OpenStore opens the configured layout store. The returned close func is
// never nil.
func OpenStore(cfg config.Config, dataDir string) (persist.Store, func() error, error) {
	noop := func() error { return nil }
	path := cfg.StorePath(dataDir)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return persist.NewMemory(), noop, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, noop, fmt.Errorf("create store dir: %w", err)
		}
		s, err := persist.OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.BackendFile, "":
		s, err := persist.NewFileStore(path)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, env *Env) *App {
	app := NewApp(version)
	if env.Out != nil {
		app.Stdout = env.Out
	} else {
		env.Out = app.Stdout
	}
	if env.Err != nil {
		app.Stderr = env.Err
	} else {
		env.Err = app.Stderr
	}
	if env.Logger == nil {
		env.Logger = logging.NopLogger()
	}
	app.Guard = func() error { return instance.RequireIdle(env.DataDir) }

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: dockrow version",
		Run: func(args []string) error {
			fmt.Fprintln(env.Out, version)
			return nil
		},
	})

	app.AddCommand(&Command{
		Name:    "guide",
		Summary: "Print the interaction and command guide",
		Usage:   "Usage: dockrow guide",
		Run: func(args []string) error {
			app.PrintGuide(env.Out)
			return nil
		},
	})

	app.AddCommand(&Command{
		Name:    "logs",
		Summary: "Print or follow the host's log file",
		Usage:   "Usage: dockrow logs [-f] [-n N] [--scope S] [--level L] [--no-color]",
		Run: func(args []string) error {
			return runLogsCommand(env, args)
		},
	})

	layoutGroup := app.AddGroup("layout", "Inspect and edit saved layouts")
	RegisterLayoutCommands(layoutGroup, env)

	return app
}
