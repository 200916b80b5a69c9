// pattern: Functional Core

package layout

import (
	"fmt"
	"slices"
)

// DockKind is where a dragged panel lands in the row.
type DockKind int

const (
	DockNone DockKind = iota
	DockLeft
	DockRight
	DockBetween
)

func (k DockKind) String() string {
	switch k {
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	case DockBetween:
		return "between"
	default:
		return "none"
	}
}

// DockPosition is a resolved dock preview.
type DockPosition struct {
	Kind    DockKind
	LeftID  string // DockBetween only
	RightID string // DockBetween only
}

// Dock moves a top-level panel to a new place in the row and gives every
// top-level panel an equal share. Re-docking always normalizes widths, even
// when they were declared individually. A host hands its stack group to its
// first member before moving.
func Dock(m *Model, id string, pos DockPosition) (Change, error) {
	if !m.IsTopLevel(id) {
		return Change{}, fmt.Errorf("dock %q: %w", id, ErrNotTopLevel)
	}
	if pos.Kind == DockBetween && (pos.LeftID == id || !m.IsTopLevel(pos.LeftID)) {
		return Change{}, fmt.Errorf("dock %q after %q: %w", id, pos.LeftID, ErrNotTopLevel)
	}

	before := m.Order()
	change := detach(m, id)

	switch pos.Kind {
	case DockLeft:
		m.order = slices.Insert(m.order, 0, id)
	case DockRight:
		m.order = append(m.order, id)
	case DockBetween:
		m.order = slices.Insert(m.order, m.IndexOf(pos.LeftID)+1, id)
	default:
		return change, fmt.Errorf("dock %q: no position", id)
	}

	m.panels[id].Flex = FlexFixed
	change.OrderChanged = !slices.Equal(before, m.order)
	Equalize(m)
	return change, nil
}
