// pattern: Functional Core
package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// ErrUsage is returned for an unknown command or missing arguments. The
// usage text has already been printed.
var ErrUsage = errors.New("usage error")

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	// Writes marks commands that change saved layouts. They refuse while a
	// running instance holds the data directory.
	Writes bool
	Run    func(args []string) error
}

// Group represents a group of related commands.
type Group struct {
	Name     string
	Summary  string
	Commands map[string]*Command
}

// App represents the top-level CLI application with groups and ungrouped commands.
type App struct {
	groups   map[string]*Group
	commands map[string]*Command
	version  string

	Stdout io.Writer
	Stderr io.Writer
	// Guard is consulted before every command marked Writes.
	Guard func() error
}

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		groups:   make(map[string]*Group),
		commands: make(map[string]*Command),
		version:  version,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// AddGroup creates and registers a new command group.
func (a *App) AddGroup(name, summary string) *Group {
	g := &Group{
		Name:     name,
		Summary:  summary,
		Commands: make(map[string]*Command),
	}
	a.groups[name] = g
	return g
}

// AddCommand registers an ungrouped (top-level) command.
func (a *App) AddCommand(cmd *Command) {
	a.commands[cmd.Name] = cmd
}

// AddCommand registers a command in the group.
func (g *Group) AddCommand(cmd *Command) {
	g.Commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the appropriate command.
// It returns true when the terminal host should be launched instead.
func (a *App) Execute(args []string) (bool, error) {
	// No args: launch the host
	if len(args) == 0 {
		return true, nil
	}

	cmdName := args[0]

	if cmd, ok := a.commands[cmdName]; ok {
		return false, a.run(cmd, args[1:])
	}

	if group, ok := a.groups[cmdName]; ok {
		// Group with no subcommand, "help", or --help/-h
		if len(args) < 2 || args[1] == "help" || args[1] == "--help" || args[1] == "-h" {
			group.PrintHelp(a.Stderr)
			return false, nil
		}

		if cmd, ok := group.Commands[args[1]]; ok {
			return false, a.run(cmd, args[2:])
		}

		group.PrintHelp(a.Stderr)
		return false, fmt.Errorf("%w: unknown command %q in %s", ErrUsage, args[1], group.Name)
	}

	a.PrintHelp(a.Stderr)
	return false, fmt.Errorf("%w: unknown command %q", ErrUsage, cmdName)
}

func (a *App) run(cmd *Command, args []string) error {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(a.Stderr, "%s\n", cmd.Usage)
			return nil
		}
	}
	if cmd.Writes && a.Guard != nil {
		if err := a.Guard(); err != nil {
			return err
		}
	}
	return cmd.Run(args)
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: dockrow [options] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")

	for _, name := range slices.Sorted(maps.Keys(a.commands)) {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}

	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Launch the terminal host")

	if len(a.groups) > 0 {
		fmt.Fprintf(w, "\nCommand Groups:\n")
		for _, name := range slices.Sorted(maps.Keys(a.groups)) {
			group := a.groups[name]
			fmt.Fprintf(w, "  %-10s %s\n", group.Name, group.Summary)
		}
	}

	fmt.Fprintf(w, "\nUse \"dockrow <group> help\" for group details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// PrintHelp prints help for a specific group.
func (g *Group) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: dockrow %s <command>\n\n", g.Name)
	fmt.Fprintf(w, "Commands:\n")
	// Sort command names for deterministic output
	names := slices.Sorted(maps.Keys(g.Commands))
	for _, name := range names {
		cmd := g.Commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"dockrow %s <command> --help\" for command details.\n", g.Name)
}
