// pattern: Functional Core

package layout

import "dockrow/internal/geometry"

// Slot is the rendered box of one top-level panel and its stack members.
type Slot struct {
	ID   string
	Rect geometry.Rect
}

// Splitter is the boundary between two adjacent top-level panels.
type Splitter struct {
	Index   int
	LeftID  string
	RightID string
	X       float64
}

// Slots lays the top-level panels out left to right inside container.
// The last slot absorbs floating point drift so the row ends exactly at
// the container's right edge.
func Slots(m *Model, container geometry.Rect) []Slot {
	slots := make([]Slot, 0, len(m.order))
	x := container.X
	for i, id := range m.order {
		w := geometry.PercentToPixels(m.panels[id].Width, container.Width)
		if i == len(m.order)-1 {
			w = container.Right() - x
		}
		slots = append(slots, Slot{
			ID:   id,
			Rect: geometry.Rect{X: x, Y: container.Y, Width: w, Height: container.Height},
		})
		x += w
	}
	return slots
}

// Splitters returns one splitter per pair of adjacent top-level panels.
func Splitters(m *Model, container geometry.Rect) []Splitter {
	slots := Slots(m, container)
	if len(slots) < 2 {
		return nil
	}
	out := make([]Splitter, 0, len(slots)-1)
	for i := 0; i < len(slots)-1; i++ {
		out = append(out, Splitter{
			Index:   i,
			LeftID:  slots[i].ID,
			RightID: slots[i+1].ID,
			X:       slots[i].Rect.Right(),
		})
	}
	return out
}
