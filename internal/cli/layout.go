// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dockrow/internal/persist"
)

// RegisterLayoutCommands adds the saved-layout commands to the group.
func RegisterLayoutCommands(g *Group, env *Env) {
	g.AddCommand(&Command{
		Name:    "list",
		Summary: "List configured containers and their saved layouts",
		Usage:   "Usage: dockrow layout list",
		Run: func(args []string) error {
			return runLayoutList(env)
		},
	})
	g.AddCommand(&Command{
		Name:    "show",
		Summary: "Print a container's saved layout as JSON",
		Usage:   "Usage: dockrow layout show <container>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return usageError(env, "Usage: dockrow layout show <container>")
			}
			return runLayoutExport(env, args[0], "")
		},
	})
	g.AddCommand(&Command{
		Name:    "export",
		Summary: "Write a container's saved layout to a file or stdout",
		Usage:   "Usage: dockrow layout export <container> [file]",
		Run: func(args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return usageError(env, "Usage: dockrow layout export <container> [file]")
			}
			file := ""
			if len(args) == 2 {
				file = args[1]
			}
			return runLayoutExport(env, args[0], file)
		},
	})
	g.AddCommand(&Command{
		Name:    "import",
		Summary: "Replace a container's saved layout from a JSON file",
		Usage:   "Usage: dockrow layout import <container> <file>",
		Writes:  true,
		Run: func(args []string) error {
			if len(args) != 2 {
				return usageError(env, "Usage: dockrow layout import <container> <file>")
			}
			return runLayoutImport(env, args[0], args[1])
		},
	})
	g.AddCommand(&Command{
		Name:    "reset",
		Summary: "Forget a container's saved layout",
		Usage:   "Usage: dockrow layout reset <container>",
		Writes:  true,
		Run: func(args []string) error {
			if len(args) != 1 {
				return usageError(env, "Usage: dockrow layout reset <container>")
			}
			return runLayoutReset(env, args[0])
		},
	})
}

func usageError(env *Env, usage string) error {
	fmt.Fprintln(env.Err, usage)
	return ErrUsage
}

func withStore(env *Env, fn func(persist.Store) error) error {
	store, closeStore, err := OpenStore(env.Config, env.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()
	return fn(store)
}

func runLayoutList(env *Env) error {
	return withStore(env, func(store persist.Store) error {
		for _, ct := range env.Config.Containers {
			state, err := persist.NewAdapter(store, ct.ID, env.Logger).Load()
			switch {
			case errors.Is(err, persist.ErrNoState):
				fmt.Fprintf(env.Out, "%-16s %d panels  (no saved layout)\n", ct.ID, len(ct.Panels))
			case err != nil:
				fmt.Fprintf(env.Out, "%-16s %d panels  (unreadable: %v)\n", ct.ID, len(ct.Panels), err)
			default:
				fmt.Fprintf(env.Out, "%-16s %d panels  saved: %d windows, %d groups\n",
					ct.ID, len(ct.Panels), len(state.Windows), len(state.StackedWindows))
			}
		}
		return nil
	})
}

func runLayoutExport(env *Env, containerID, file string) error {
	return withStore(env, func(store persist.Store) error {
		state, err := persist.NewAdapter(store, containerID, env.Logger).Load()
		if errors.Is(err, persist.ErrNoState) {
			return fmt.Errorf("no saved layout for %q", containerID)
		}
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		data = append(data, '\n')

		if file == "" {
			_, err = env.Out.Write(data)
			return err
		}
		if err := os.WriteFile(file, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		fmt.Fprintf(env.Err, "Exported %q to %s\n", containerID, file)
		return nil
	})
}

func runLayoutImport(env *Env, containerID, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	state, err := persist.Parse(string(data))
	if err != nil {
		return fmt.Errorf("import %s: %w", file, err)
	}
	raw, err := persist.Marshal(*state)
	if err != nil {
		return err
	}
	return withStore(env, func(store persist.Store) error {
		if err := store.Set(persist.Key(containerID), raw); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		fmt.Fprintf(env.Err, "Imported %d windows into %q\n", len(state.Windows), containerID)
		return nil
	})
}

func runLayoutReset(env *Env, containerID string) error {
	return withStore(env, func(store persist.Store) error {
		if err := store.Set(persist.Key(containerID), ""); err != nil {
			return fmt.Errorf("reset layout: %w", err)
		}
		fmt.Fprintf(env.Err, "Reset saved layout of %q\n", containerID)
		return nil
	})
}
