// pattern: Functional Core

package tui

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int // Left position (0-indexed)
	Y      int // Top position (0-indexed)
	Width  int // Width in cells
	Height int // Height in lines
}

// Layout holds computed regions for the host's chrome.
type Layout struct {
	Container Region // the dock container, handed to the scene
	StatusBar Region // Status bar (1 line)
	Help      Region // Key help (1 line, more when expanded)
}

const (
	statusBarHeight = 1
	minContainer    = 3 // header plus two body lines
)

// ComputeLayout calculates regions based on terminal dimensions and the
// current height of the help block.
func ComputeLayout(width, height, helpHeight int) Layout {
	if helpHeight < 1 {
		helpHeight = 1
	}
	containerHeight := height - statusBarHeight - helpHeight
	if containerHeight < minContainer {
		containerHeight = minContainer
	}

	y := 0
	container := Region{X: 0, Y: y, Width: width, Height: containerHeight}
	y += containerHeight

	status := Region{X: 0, Y: y, Width: width, Height: statusBarHeight}
	y += statusBarHeight

	help := Region{X: 0, Y: y, Width: width, Height: helpHeight}

	return Layout{
		Container: container,
		StatusBar: status,
		Help:      help,
	}
}

// Contains reports whether a terminal cell lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
