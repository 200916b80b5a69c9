// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// PrintGuide prints the interaction guide followed by a command reference
// pulled from the registered commands.
func (a *App) PrintGuide(w io.Writer) {
	fmt.Fprintf(w, "DOCKROW %s\n", a.version)
	fmt.Fprintln(w, "==========")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERVIEW")
	fmt.Fprintln(w, "--------")
	fmt.Fprintln(w, "dockrow arranges panels in a single horizontal row per container. Panels")
	fmt.Fprintln(w, "can be resized, re-docked, stacked into tabbed groups, maximized and")
	fmt.Fprintln(w, "closed. Every change is saved per container and restored on the next start.")
	fmt.Fprintln(w, "One instance owns the data directory at a time (enforced by file lock).")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MOUSE")
	fmt.Fprintln(w, "-----")
	fmt.Fprintln(w, "  Drag a boundary column        resize the two panels beside it")
	fmt.Fprintln(w, "  Drag a header to an edge      dock the panel first or last")
	fmt.Fprintln(w, "  Drag a header to a boundary   dock the panel between its neighbours")
	fmt.Fprintln(w, "  Drop a header on a header     stack the panel into that group")
	fmt.Fprintln(w, "  Click a tab                   show that member of the group")
	fmt.Fprintln(w, "  Click [^] / [x]               maximize or restore / close")
	fmt.Fprintln(w, "  Release anywhere else         put the panel back where it was")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "KEYS")
	fmt.Fprintln(w, "----")
	fmt.Fprintln(w, "  tab  focus next panel      m  maximize focused    x  close focused")
	fmt.Fprintln(w, "  u    unstack focused       L  toggle lock         S  toggle stacking")
	fmt.Fprintln(w, "  r    reload saved layout   1-9 switch container   q  quit")
	fmt.Fprintln(w)

	a.printCommandReference(w)

	fmt.Fprintln(w, "EXIT CODES")
	fmt.Fprintln(w, "----------")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  Error (invalid arguments, command failed, etc.)")
	fmt.Fprintln(w, "  2  A running instance holds the data directory")
}

// printCommandReference prints the dynamic command reference section
// by iterating registered commands and groups.
func (a *App) printCommandReference(w io.Writer) {
	fmt.Fprintln(w, "COMMAND REFERENCE")
	fmt.Fprintln(w, "-----------------")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Top-level commands:")
	for _, name := range slices.Sorted(maps.Keys(a.commands)) {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-16s %s\n", cmd.Name, cmd.Summary)
		fmt.Fprintf(w, "                   %s\n", cmd.Usage)
	}
	fmt.Fprintln(w)

	for _, groupName := range slices.Sorted(maps.Keys(a.groups)) {
		group := a.groups[groupName]
		fmt.Fprintf(w, "%s commands: %s\n", group.Name, group.Summary)
		for _, name := range slices.Sorted(maps.Keys(group.Commands)) {
			cmd := group.Commands[name]
			label := fmt.Sprintf("%s %s", groupName, cmd.Name)
			if cmd.Writes {
				label += " *"
			}
			fmt.Fprintf(w, "  %-16s %s\n", label, cmd.Summary)
			fmt.Fprintf(w, "                   %s\n", cmd.Usage)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "* refuses while a dockrow instance is running")
	fmt.Fprintln(w)
}
