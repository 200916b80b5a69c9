// pattern: Imperative Shell

package engine

import (
	"dockrow/internal/geometry"
	"dockrow/internal/layout"
	"dockrow/internal/scene"
)

// slots returns the rendered slot of every top-level panel. A maximized
// slot covers the whole container.
func (e *Engine) slots() []layout.Slot {
	container := e.scene.Container()
	slots := layout.Slots(e.model, container)
	for i, s := range slots {
		if p, _ := e.model.Panel(s.ID); p.Maximized {
			slots[i].Rect = container
		}
	}
	return slots
}

// maximized returns the maximized top-level panel, if any.
func (e *Engine) maximized() (string, bool) {
	for _, p := range e.model.TopLevel() {
		if p.Maximized {
			return p.ID, true
		}
	}
	return "", false
}

// sync pushes the model into the scene. Every member of a slot gets the
// host's box; only the active one is visible and interactive.
func (e *Engine) sync() {
	if !e.mounted {
		return
	}
	for _, s := range e.slots() {
		ids := e.slotIDs(s.ID)
		for _, id := range ids {
			node := PanelNodeID(id)
			if !e.nodes[id] {
				e.scene.Create(node, scene.KindPanel)
				e.nodes[id] = true
			}
			visible := e.model.Visible(id)
			e.scene.SetBox(node, s.Rect)
			e.scene.SetZ(node, layout.ZOrder(e.model, id))
			e.scene.SetInteractive(node, visible)
			if visible {
				e.scene.SetOpacity(node, 1)
			} else {
				e.scene.SetOpacity(node, 0)
			}
		}
	}
	e.rebuildSplitters()
}

// rebuildSplitters recomputes splitter positions and matches the scene's
// splitter nodes to them. Splitters are hidden under a maximized slot.
func (e *Engine) rebuildSplitters() {
	container := e.scene.Container()
	e.splitters = layout.Splitters(e.model, container)

	for i := len(e.splitters); i < e.nSplit; i++ {
		e.scene.Remove(SplitterNodeID(i))
	}
	for i := e.nSplit; i < len(e.splitters); i++ {
		e.scene.Create(SplitterNodeID(i), scene.KindSplitter)
	}
	e.nSplit = len(e.splitters)

	_, covered := e.maximized()
	for i, s := range e.splitters {
		node := SplitterNodeID(i)
		e.scene.SetBox(node, e.splitterBox(s))
		e.scene.SetZ(node, ZSplitter)
		e.scene.SetInteractive(node, !covered)
		if covered {
			e.scene.SetOpacity(node, 0)
		} else {
			e.scene.SetOpacity(node, 1)
		}
	}
}

// splitterBox is the grab area of a splitter: the last column of the left
// slot, below the header row.
func (e *Engine) splitterBox(s layout.Splitter) geometry.Rect {
	container := e.scene.Container()
	w := e.opts.SplitterWidth
	return geometry.Rect{
		X:      s.X - w,
		Y:      container.Y + e.opts.HeaderHeight,
		Width:  w,
		Height: container.Height - e.opts.HeaderHeight,
	}
}
