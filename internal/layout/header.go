// pattern: Functional Core

package layout

import (
	"github.com/mattn/go-runewidth"

	"dockrow/internal/geometry"
)

// Header control glyphs. Each occupies ControlWidth cells at the right end
// of a header, close outermost.
const (
	MaximizeGlyph = "[^]"
	RestoreGlyph  = "[v]"
	CloseGlyph    = "[x]"
	ControlWidth  = 3
	tabPadding    = 2
)

// TabZone is the clickable area of one tab.
type TabZone struct {
	Tab
	Rect geometry.Rect
}

// Header is the hit-test map of one slot's header row.
type Header struct {
	HostID   string
	Rect     geometry.Rect
	Title    geometry.Rect // drag handle; the whole area left of the controls
	Tabs     []TabZone
	Maximize geometry.Rect
	Close    geometry.Rect
}

// HeaderFor computes the header zones of a top-level slot. The controls
// belong to the visible panel of the slot; they are omitted when that
// panel has its controls disabled.
func HeaderFor(m *Model, slot Slot, height float64) Header {
	r := slot.Rect
	h := Header{
		HostID: slot.ID,
		Rect:   geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: height},
	}

	avail := r.Width
	if p, ok := m.Panel(activeOf(m, slot.ID)); ok && p.ControlsEnabled && r.Width >= 2*ControlWidth {
		h.Close = geometry.Rect{X: r.Right() - ControlWidth, Y: r.Y, Width: ControlWidth, Height: height}
		h.Maximize = geometry.Rect{X: h.Close.X - ControlWidth, Y: r.Y, Width: ControlWidth, Height: height}
		avail -= 2 * ControlWidth
	}
	h.Title = geometry.Rect{X: r.X, Y: r.Y, Width: avail, Height: height}

	x := r.X
	limit := r.X + avail
	for _, t := range Tabs(m, slot.ID) {
		if x >= limit {
			break
		}
		w := float64(TabWidth(t.Title))
		if x+w > limit {
			w = limit - x
		}
		h.Tabs = append(h.Tabs, TabZone{Tab: t, Rect: geometry.Rect{X: x, Y: r.Y, Width: w, Height: height}})
		x += w
	}
	return h
}

// TabWidth is the number of cells a tab label takes, padding included.
func TabWidth(title string) int {
	return runewidth.StringWidth(title) + tabPadding
}

// TabAt returns the tab under p, if any.
func (h Header) TabAt(p geometry.Point) (TabZone, bool) {
	for _, t := range h.Tabs {
		if t.Rect.Contains(p) {
			return t, true
		}
	}
	return TabZone{}, false
}

func activeOf(m *Model, host string) string {
	if g, ok := m.groups[host]; ok {
		return g.ActiveID
	}
	return host
}
