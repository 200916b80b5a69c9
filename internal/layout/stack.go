// pattern: Functional Core

package layout

import (
	"fmt"
	"slices"
)

// Z-order bands. Inactive members sit at the group base, the active member
// one above, and maximized groups float above every other group.
const (
	ZBase            = 10
	ZMaximizedOffset = 1000
)

// Change summarizes a structural mutation so the caller can decide which
// events to emit.
type Change struct {
	OrderChanged bool
	Stacked      []string // panels whose stack membership changed
	Promoted     string   // member promoted to host, if any
}

func (c *Change) merge(o Change) {
	c.OrderChanged = c.OrderChanged || o.OrderChanged
	c.Stacked = append(c.Stacked, o.Stacked...)
	if o.Promoted != "" {
		c.Promoted = o.Promoted
	}
}

// Empty reports whether nothing structural happened.
func (c Change) Empty() bool {
	return !c.OrderChanged && len(c.Stacked) == 0 && c.Promoted == ""
}

// Tab is one entry of a stack group's header.
type Tab struct {
	PanelID string
	Title   string
	Active  bool
}

// Tabs returns the header tabs of a stack group, host first. It returns nil
// for a panel that hosts no group, which renders a plain title header.
func Tabs(m *Model, host string) []Tab {
	g, ok := m.groups[host]
	if !ok {
		return nil
	}
	ids := append([]string{host}, g.MemberIDs...)
	tabs := make([]Tab, 0, len(ids))
	for _, id := range ids {
		tabs = append(tabs, Tab{PanelID: id, Title: m.panels[id].Title, Active: id == g.ActiveID})
	}
	return tabs
}

// Stack moves panel into the stack group hosted by host, creating the
// group when needed. If panel hosts a group itself, its first member is
// promoted into its slot first. If host is a member, the panel joins that
// member's group. Widths are not rebalanced; call Settle afterwards.
func Stack(m *Model, panel, host string) (Change, error) {
	var change Change
	if !m.Has(panel) {
		return change, fmt.Errorf("stack %q: %w", panel, ErrUnknownPanel)
	}
	if !m.Has(host) {
		return change, fmt.Errorf("stack onto %q: %w", host, ErrUnknownPanel)
	}
	host = m.HostOf(host)
	if panel == host {
		return change, fmt.Errorf("stack %q: %w", panel, ErrSelfStack)
	}
	if m.panels[panel].StackedUnder == host {
		return change, nil
	}

	change.merge(detach(m, panel))
	if !m.IsTopLevel(host) {
		return change, fmt.Errorf("stack onto %q: %w", host, ErrNotTopLevel)
	}

	g, ok := m.groups[host]
	if !ok {
		g = &StackGroup{HostID: host, ActiveID: host}
		m.groups[host] = g
	}
	g.MemberIDs = append(g.MemberIDs, panel)

	hp, p := m.panels[host], m.panels[panel]
	p.StackedUnder = host
	p.Width = hp.Width
	p.Flex = hp.Flex
	p.Maximized = hp.Maximized

	change.Stacked = append(change.Stacked, panel, host)
	return change, nil
}

// Unstack returns a member to the row, immediately right of its former
// host, with an equal share of the width.
func Unstack(m *Model, panel string) (Change, error) {
	p, ok := m.panels[panel]
	if !ok {
		return Change{}, fmt.Errorf("unstack %q: %w", panel, ErrUnknownPanel)
	}
	if p.StackedUnder == "" {
		return Change{}, fmt.Errorf("unstack %q: %w", panel, ErrNotStacked)
	}
	host := p.StackedUnder
	change := detach(m, panel)

	share := 100 / float64(len(m.order)+1)
	scale := (100 - share) / 100
	for _, tp := range m.TopLevel() {
		tp.Width *= scale
	}
	p.Width = share
	p.Flex = FlexFixed
	p.Maximized = false

	at := m.IndexOf(host) + 1
	m.order = slices.Insert(m.order, at, panel)
	change.OrderChanged = true
	change.Stacked = append(change.Stacked, host)
	return change, nil
}

// Activate makes one member of host's group the visible one. An empty
// member selects the host.
func Activate(m *Model, host, member string) error {
	host = m.HostOf(host)
	g, ok := m.groups[host]
	if !ok {
		return fmt.Errorf("activate in %q: %w", host, ErrNotStacked)
	}
	if member == "" {
		member = host
	}
	if !g.Contains(member) {
		return fmt.Errorf("activate %q in %q: %w", member, host, ErrUnknownPanel)
	}
	g.ActiveID = member
	return nil
}

// ZOrder returns the stacking order of a panel's node.
func ZOrder(m *Model, id string) int {
	p, ok := m.panels[id]
	if !ok {
		return 0
	}
	z := ZBase
	if p.Maximized {
		z += ZMaximizedOffset
	}
	if m.Visible(id) {
		z++
	}
	return z
}

// Remove deletes a panel. A host with members hands its slot to its first
// member; a member leaves its group; a free panel leaves the row.
// Widths are not rebalanced; call Settle afterwards.
func Remove(m *Model, id string) (Change, error) {
	if !m.Has(id) {
		return Change{}, fmt.Errorf("remove %q: %w", id, ErrUnknownPanel)
	}
	change := detach(m, id)
	delete(m.panels, id)
	return change, nil
}

// DetachHost hands host's slot to the first member of its group and
// re-attaches the remaining members under it. The host ends up outside
// the row and outside any group. It returns the promoted id, or "" when
// host had no group.
func DetachHost(m *Model, host string) string {
	g, ok := m.groups[host]
	if !ok || len(g.MemberIDs) == 0 {
		return ""
	}
	first, rest := g.MemberIDs[0], slices.Clone(g.MemberIDs[1:])
	hp, np := m.panels[host], m.panels[first]

	np.StackedUnder = ""
	np.Width = hp.Width
	np.Flex = hp.Flex
	np.Maximized = hp.Maximized
	if i := m.IndexOf(host); i >= 0 {
		m.order[i] = first
	}
	delete(m.groups, host)

	if len(rest) > 0 {
		active := first
		if slices.Contains(rest, g.ActiveID) {
			active = g.ActiveID
		}
		m.groups[first] = &StackGroup{HostID: first, MemberIDs: rest, ActiveID: active}
		for _, mid := range rest {
			m.panels[mid].StackedUnder = first
		}
	}
	return first
}

// detach takes id out of the row or its group so it can be re-placed or
// deleted. Hosts promote their first member.
func detach(m *Model, id string) Change {
	var change Change
	p := m.panels[id]

	if host := p.StackedUnder; host != "" {
		g := m.groups[host]
		g.MemberIDs = slices.DeleteFunc(g.MemberIDs, func(s string) bool { return s == id })
		if g.ActiveID == id {
			g.ActiveID = host
		}
		if len(g.MemberIDs) == 0 {
			delete(m.groups, host)
		}
		p.StackedUnder = ""
		change.Stacked = append(change.Stacked, id, host)
		return change
	}

	if promoted := DetachHost(m, id); promoted != "" {
		change.Promoted = promoted
		change.Stacked = append(change.Stacked, id, promoted)
		return change
	}

	if i := m.IndexOf(id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
		change.OrderChanged = true
	}
	return change
}

// Dissolve breaks up every stack group. Members return to the row right
// after their hosts, keeping whatever width they carry.
func Dissolve(m *Model) Change {
	var change Change
	for _, host := range m.Order() {
		g, ok := m.groups[host]
		if !ok {
			continue
		}
		at := m.IndexOf(host) + 1
		for _, mid := range g.MemberIDs {
			m.panels[mid].StackedUnder = ""
		}
		m.order = slices.Insert(m.order, at, g.MemberIDs...)
		delete(m.groups, host)
		change.OrderChanged = true
		change.Stacked = append(change.Stacked, host)
		change.Stacked = append(change.Stacked, g.MemberIDs...)
	}
	return change
}
