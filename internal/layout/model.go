// pattern: Functional Core

// Package layout is the authoritative state of one dock container: the
// panel arena, the left-to-right order of top-level panels and the stack
// groups layered on individual row slots.
//
// Panels are stored once, by id. Stack membership is expressed as a
// host id → group map plus a StackedUnder id on each member, never as
// pointers in both directions.
package layout

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"dockrow/internal/geometry"
)

var (
	ErrDuplicatePanel = errors.New("duplicate panel id")
	ErrUnknownPanel   = errors.New("unknown panel")
	ErrNotTopLevel    = errors.New("panel is not top-level")
	ErrNotStacked     = errors.New("panel is not a stack member")
	ErrSelfStack      = errors.New("panel cannot stack onto itself")
)

// FlexMode says how a panel takes part in width distribution.
type FlexMode int

const (
	FlexFixed FlexMode = iota
	FlexGrow
)

func (f FlexMode) String() string {
	if f == FlexGrow {
		return "grow"
	}
	return "fixed"
}

// Panel is one dockable unit.
type Panel struct {
	ID              string
	Title           string
	Width           float64 // percent of container width
	MinWidth        float64 // pixels
	Flex            FlexMode
	Maximized       bool
	ControlsEnabled bool
	StackedUnder    string // host id, empty for free panels

	Declared geometry.Declared
}

// StackGroup is a set of panels sharing one row slot.
type StackGroup struct {
	HostID    string
	MemberIDs []string
	ActiveID  string
}

func (g *StackGroup) clone() StackGroup {
	return StackGroup{
		HostID:    g.HostID,
		MemberIDs: slices.Clone(g.MemberIDs),
		ActiveID:  g.ActiveID,
	}
}

// Contains reports whether id is the host or a member of the group.
func (g StackGroup) Contains(id string) bool {
	return id == g.HostID || slices.Contains(g.MemberIDs, id)
}

// Model is the state of one container.
type Model struct {
	panels map[string]*Panel
	order  []string
	groups map[string]*StackGroup

	Locked        bool
	AllowStacking bool
}

// New returns an empty model with stacking allowed.
func New() *Model {
	return &Model{
		panels:        make(map[string]*Panel),
		groups:        make(map[string]*StackGroup),
		AllowStacking: true,
	}
}

// Add appends a panel to the end of the top-level order.
func (m *Model) Add(p Panel) error {
	if p.ID == "" {
		return fmt.Errorf("add panel: empty id")
	}
	if _, ok := m.panels[p.ID]; ok {
		return fmt.Errorf("add panel %q: %w", p.ID, ErrDuplicatePanel)
	}
	p.StackedUnder = ""
	m.panels[p.ID] = &p
	m.order = append(m.order, p.ID)
	return nil
}

// Panel returns the panel with the given id.
func (m *Model) Panel(id string) (*Panel, bool) {
	p, ok := m.panels[id]
	return p, ok
}

// Has reports whether a panel with the given id exists.
func (m *Model) Has(id string) bool {
	_, ok := m.panels[id]
	return ok
}

// Len returns the number of panels in the arena.
func (m *Model) Len() int { return len(m.panels) }

// Order returns the top-level panel ids from left to right.
func (m *Model) Order() []string { return slices.Clone(m.order) }

// IndexOf returns the position of id in the top-level order, or -1.
func (m *Model) IndexOf(id string) int { return slices.Index(m.order, id) }

// IsTopLevel reports whether id is a free or host panel in the row.
func (m *Model) IsTopLevel(id string) bool { return m.IndexOf(id) >= 0 }

// TopLevel returns the top-level panels in order.
func (m *Model) TopLevel() []*Panel {
	out := make([]*Panel, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.panels[id])
	}
	return out
}

// All returns every panel: the top-level order, each host followed by its members.
func (m *Model) All() []*Panel {
	out := make([]*Panel, 0, len(m.panels))
	for _, id := range m.order {
		out = append(out, m.panels[id])
		if g, ok := m.groups[id]; ok {
			for _, mid := range g.MemberIDs {
				out = append(out, m.panels[mid])
			}
		}
	}
	return out
}

// Group returns a copy of the stack group hosted by host.
func (m *Model) Group(host string) (StackGroup, bool) {
	g, ok := m.groups[host]
	if !ok {
		return StackGroup{}, false
	}
	return g.clone(), true
}

// GroupOf returns the group id belongs to, as host or member.
func (m *Model) GroupOf(id string) (StackGroup, bool) {
	if g, ok := m.groups[id]; ok {
		return g.clone(), true
	}
	if p, ok := m.panels[id]; ok && p.StackedUnder != "" {
		return m.Group(p.StackedUnder)
	}
	return StackGroup{}, false
}

// Groups returns copies of all stack groups in top-level order.
func (m *Model) Groups() []StackGroup {
	var out []StackGroup
	for _, id := range m.order {
		if g, ok := m.groups[id]; ok {
			out = append(out, g.clone())
		}
	}
	return out
}

// HostOf returns the top-level panel owning id's slot: id itself for
// top-level panels, the host for members.
func (m *Model) HostOf(id string) string {
	if p, ok := m.panels[id]; ok && p.StackedUnder != "" {
		return p.StackedUnder
	}
	return id
}

// SetTitle renames a panel. Tab labels are derived from titles, so the
// change is visible on the panel's stack group immediately.
func (m *Model) SetTitle(id, title string) error {
	p, ok := m.panels[id]
	if !ok {
		return fmt.Errorf("set title %q: %w", id, ErrUnknownPanel)
	}
	p.Title = title
	return nil
}

// Reorder replaces the top-level order. ids must be a permutation of the
// current top-level panels.
func (m *Model) Reorder(ids []string) error {
	if len(ids) != len(m.order) {
		return fmt.Errorf("reorder: got %d ids, want %d", len(ids), len(m.order))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !m.IsTopLevel(id) || seen[id] {
			return fmt.Errorf("reorder %q: %w", id, ErrNotTopLevel)
		}
		seen[id] = true
	}
	m.order = slices.Clone(ids)
	return nil
}

// Visible reports whether id is the interactive member of its slot.
func (m *Model) Visible(id string) bool {
	g, ok := m.GroupOf(id)
	if !ok {
		return m.IsTopLevel(id)
	}
	return g.ActiveID == id
}

// WidthSum returns the sum of top-level widths.
func (m *Model) WidthSum() float64 {
	var sum float64
	for _, id := range m.order {
		sum += m.panels[id].Width
	}
	return sum
}

// Check verifies the settled-state invariants against a container width.
func (m *Model) Check(containerWidth float64) error {
	if len(m.order) > 0 {
		if sum := m.WidthSum(); math.IsNaN(sum) || math.Abs(sum-100) > 0.01 {
			return fmt.Errorf("widths sum to %.4f%%, want 100%%", sum)
		}
	}

	var minTotal float64
	for _, id := range m.order {
		minTotal += m.panels[id].MinWidth
	}
	if containerWidth > 0 && minTotal <= containerWidth {
		for _, id := range m.order {
			p := m.panels[id]
			px := geometry.PercentToPixels(p.Width, containerWidth)
			if px+1e-6 < p.MinWidth {
				return fmt.Errorf("panel %q is %.2fpx, below its minimum %.2fpx", id, px, p.MinWidth)
			}
		}
	}

	placed := make(map[string]int, len(m.panels))
	for _, id := range m.order {
		placed[id]++
		if m.panels[id].StackedUnder != "" {
			return fmt.Errorf("top-level panel %q is marked stacked under %q", id, m.panels[id].StackedUnder)
		}
	}
	for host, g := range m.groups {
		if !m.IsTopLevel(host) {
			return fmt.Errorf("group host %q is not top-level", host)
		}
		if len(g.MemberIDs) == 0 {
			return fmt.Errorf("group %q has no members", host)
		}
		if !g.Contains(g.ActiveID) {
			return fmt.Errorf("group %q active %q is not in the group", host, g.ActiveID)
		}
		for _, mid := range g.MemberIDs {
			placed[mid]++
			p, ok := m.panels[mid]
			if !ok {
				return fmt.Errorf("group %q lists unknown member %q", host, mid)
			}
			if p.StackedUnder != host {
				return fmt.Errorf("member %q stacked under %q, listed in %q", mid, p.StackedUnder, host)
			}
		}
	}
	for id := range m.panels {
		if placed[id] != 1 {
			return fmt.Errorf("panel %q placed %d times", id, placed[id])
		}
	}
	return nil
}
