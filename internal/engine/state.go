// pattern: Imperative Shell

package engine

import (
	"errors"
	"slices"

	"dockrow/internal/events"
	"dockrow/internal/geometry"
	"dockrow/internal/layout"
	"dockrow/internal/persist"
)

// GetState snapshots the container. Top-level widths are read back from
// the rendered boxes; members report their host's width.
func (e *Engine) GetState() persist.State {
	s := persist.State{
		Windows:        make([]persist.Window, 0, e.model.Len()),
		StackedWindows: make(map[string][]string),
		Locked:         e.model.Locked,
		AllowStacking:  e.model.AllowStacking,
	}

	live := e.liveWidths()
	for i, p := range e.model.All() {
		width := p.Width
		if w, ok := live[e.model.HostOf(p.ID)]; ok {
			width = w
		}
		s.Windows = append(s.Windows, persist.Window{
			ID:         p.ID,
			Title:      p.Title,
			Width:      width,
			MinWidth:   p.MinWidth,
			Controlbox: p.ControlsEnabled,
			Maximized:  p.Maximized,
			Stacked:    persist.StringPtr(p.StackedUnder),
			Order:      i,
		})
	}

	for _, g := range e.model.Groups() {
		s.StackedWindows[g.HostID] = g.MemberIDs
		if s.ActiveStackedWindows == nil {
			s.ActiveStackedWindows = make(map[string]string)
			s.ActiveStackedWindow = persist.StringPtr(g.ActiveID)
		}
		s.ActiveStackedWindows[g.HostID] = g.ActiveID
	}
	return s
}

// liveWidths converts the rendered box of every non-maximized top-level
// panel back to a percentage.
func (e *Engine) liveWidths() map[string]float64 {
	out := make(map[string]float64)
	cw := e.width()
	if !e.mounted || cw <= 0 {
		return out
	}
	for _, p := range e.model.TopLevel() {
		if p.Maximized {
			continue
		}
		if box, ok := e.scene.Box(PanelNodeID(p.ID)); ok {
			out[p.ID] = geometry.PixelsToPercent(box.Width, cw)
		}
	}
	return out
}

// RestoreState applies a saved arrangement, or the stored one when s is
// nil. It reports whether anything was applied. Restores are refused while
// a gesture is active; missing or malformed data is logged and ignored,
// and saved ids with no matching panel are skipped.
func (e *Engine) RestoreState(s *persist.State) bool {
	if e.resize != nil || e.drag != nil {
		e.log.Warn("restore refused during an active gesture")
		return false
	}
	if s == nil {
		loaded, err := e.adapter.Load()
		if errors.Is(err, persist.ErrNoState) {
			e.log.Debug("no saved layout", "key", e.adapter.Key())
			return false
		}
		if err != nil {
			e.log.Warn("saved layout not restored", "key", e.adapter.Key(), "error", err)
			return false
		}
		s = loaded
	}

	e.model.Locked = s.Locked
	e.model.AllowStacking = s.AllowStacking

	windows := slices.Clone(s.Windows)
	slices.SortStableFunc(windows, func(a, b persist.Window) int { return a.Order - b.Order })

	for _, w := range windows {
		p, ok := e.model.Panel(w.ID)
		if !ok {
			e.log.Debug("skipping saved panel", "panel", w.ID)
			continue
		}
		p.Title = w.Title
		p.Width = w.Width
		p.MinWidth = w.MinWidth
		p.ControlsEnabled = w.Controlbox
		p.Maximized = w.Maximized
		p.Flex = layout.FlexFixed
	}

	layout.Dissolve(e.model)

	var order, saved []string
	for _, w := range windows {
		if w.StackedUnder() == "" && e.model.Has(w.ID) && !slices.Contains(order, w.ID) {
			order = append(order, w.ID)
			saved = append(saved, w.ID)
		}
	}
	for _, id := range e.model.Order() {
		if !slices.Contains(order, id) {
			order = append(order, id)
		}
	}
	if err := e.model.Reorder(order); err != nil {
		e.log.Warn("restore reorder failed", "error", err)
	}

	for _, host := range saved {
		for _, mid := range savedMembers(s, windows, host) {
			if !e.model.Has(mid) {
				continue
			}
			if _, err := layout.Stack(e.model, mid, host); err != nil {
				e.log.Warn("restore stack failed", "panel", mid, "host", host, "error", err)
			}
		}
		if active := s.ActiveFor(host); active != "" {
			if err := layout.Activate(e.model, host, active); err != nil {
				e.log.Debug("saved active member not restored", "host", host, "active", active)
			}
		}
	}

	e.settle()
	e.sync()

	ids := make([]string, 0, e.model.Len())
	for _, p := range e.model.All() {
		ids = append(ids, p.ID)
	}
	e.emit(events.LayoutRestored, ids...)
	e.log.Debug("layout restored", "panels", len(ids), "groups", len(e.model.Groups()))
	return true
}

// savedMembers lists host's members: the stackedWindows entry when present,
// else every window saved as stacked under host, in saved order.
func savedMembers(s *persist.State, windows []persist.Window, host string) []string {
	if members, ok := s.StackedWindows[host]; ok {
		return members
	}
	var out []string
	for _, w := range windows {
		if w.StackedUnder() == host {
			out = append(out, w.ID)
		}
	}
	return out
}
