// pattern: Imperative Shell

package engine

import (
	"math"

	"dockrow/internal/geometry"
	"dockrow/internal/layout"
	"dockrow/internal/scene"
)

// dragState is a panel drag in progress. The model is not touched until
// the drop, so the snapshot only has to be re-applied when the drag
// resolves to nothing.
type dragState struct {
	panelID       string
	start         geometry.Point
	offset        geometry.Point
	moved         bool
	allowStacking bool

	snapshot dragSnapshot

	preview     layout.DockPosition
	previewRect geometry.Rect
	target      string
}

type dragSnapshot struct {
	order  []string
	widths map[string]float64
	flex   map[string]layout.FlexMode
	box    geometry.Rect
}

// startDrag lifts a top-level panel by its header. It is refused when the
// container is locked or another gesture is active.
func (e *Engine) startDrag(id string, p geometry.Point) bool {
	if e.model.Locked {
		e.log.Info("drag refused, container locked", "panel", id)
		return false
	}
	if e.drag != nil || e.resize != nil || !e.model.IsTopLevel(id) {
		return false
	}
	box, ok := e.scene.Box(PanelNodeID(id))
	if !ok {
		return false
	}

	snap := dragSnapshot{
		order:  e.model.Order(),
		widths: make(map[string]float64),
		flex:   make(map[string]layout.FlexMode),
		box:    box,
	}
	for _, tp := range e.model.TopLevel() {
		snap.widths[tp.ID] = tp.Width
		snap.flex[tp.ID] = tp.Flex
	}

	e.drag = &dragState{
		panelID:       id,
		start:         p,
		offset:        box.Sub(p),
		allowStacking: e.model.AllowStacking,
		snapshot:      snap,
	}

	e.scene.Create(ProxyNodeID, scene.KindProxy)
	e.scene.SetBox(ProxyNodeID, e.proxyBox(p))
	e.scene.SetZ(ProxyNodeID, ZProxy)
	e.scene.SetOpacity(ProxyNodeID, 0.8)
	e.scene.SetInteractive(ProxyNodeID, false)

	e.scene.Create(PreviewNodeID, scene.KindPreview)
	e.scene.SetZ(PreviewNodeID, ZPreview)
	e.scene.SetOpacity(PreviewNodeID, 0)
	e.scene.SetInteractive(PreviewNodeID, false)

	e.log.Debug("drag started", "panel", id)
	return true
}

func (e *Engine) proxyBox(p geometry.Point) geometry.Rect {
	d := e.drag
	return geometry.Rect{
		X:      p.X - d.offset.X,
		Y:      p.Y - d.offset.Y,
		Width:  d.snapshot.box.Width,
		Height: e.opts.HeaderHeight,
	}
}

// moveDrag moves the proxy and recomputes the dock preview and stack
// target. Nothing is previewed until the pointer leaves the drag
// threshold, so a click on a header never re-docks.
func (e *Engine) moveDrag(p geometry.Point) {
	d := e.drag
	e.scene.SetBox(ProxyNodeID, e.proxyBox(p))

	if !d.moved {
		if math.Hypot(p.X-d.start.X, p.Y-d.start.Y) < e.opts.DragThreshold {
			return
		}
		d.moved = true
	}

	d.preview, d.previewRect = e.dockPreview(p)
	d.target = ""
	if d.allowStacking {
		d.target = e.stackTargetAt(p)
	}

	if d.target == "" && d.preview.Kind != layout.DockNone {
		e.scene.SetBox(PreviewNodeID, d.previewRect)
		e.scene.SetOpacity(PreviewNodeID, 0.5)
	} else {
		e.scene.SetOpacity(PreviewNodeID, 0)
	}
}

// dockPreview resolves the dock position under p: container edges first,
// then splitters not touching the dragged panel.
func (e *Engine) dockPreview(p geometry.Point) (layout.DockPosition, geometry.Rect) {
	d := e.drag
	container := e.scene.Container()
	w := d.snapshot.box.Width

	switch {
	case geometry.NearLeftEdge(p, container, e.opts.EdgeThreshold):
		return layout.DockPosition{Kind: layout.DockLeft},
			geometry.Rect{X: container.X, Y: container.Y, Width: w, Height: container.Height}
	case geometry.NearRightEdge(p, container, e.opts.EdgeThreshold):
		return layout.DockPosition{Kind: layout.DockRight},
			geometry.Rect{X: container.Right() - w, Y: container.Y, Width: w, Height: container.Height}
	}

	for _, s := range e.splitters {
		if s.LeftID == d.panelID || s.RightID == d.panelID {
			continue
		}
		if geometry.NearX(p.X, s.X, e.opts.SplitterProximity) {
			return layout.DockPosition{Kind: layout.DockBetween, LeftID: s.LeftID, RightID: s.RightID},
				geometry.Rect{X: s.X - w/4, Y: container.Y, Width: w / 2, Height: container.Height}
		}
	}
	return layout.DockPosition{}, geometry.Rect{}
}

// stackTargetAt returns the top-level panel whose header is under p,
// excluding the dragged panel.
func (e *Engine) stackTargetAt(p geometry.Point) string {
	for _, s := range e.slots() {
		if s.ID == e.drag.panelID {
			continue
		}
		h := layout.HeaderFor(e.model, s, e.opts.HeaderHeight)
		if h.Rect.Contains(p) {
			return s.ID
		}
	}
	return ""
}

// drop resolves the drag: stack onto the target, else restore the
// snapshot when nothing is previewed, else dock.
func (e *Engine) drop(p geometry.Point) {
	e.moveDrag(p)
	d := e.drag
	e.drag = nil
	e.scene.Remove(ProxyNodeID)
	e.scene.Remove(PreviewNodeID)

	var change layout.Change
	switch {
	case d.target != "" && d.allowStacking:
		c, err := layout.Stack(e.model, d.panelID, d.target)
		if err != nil {
			e.log.Warn("stack on drop failed", "panel", d.panelID, "target", d.target, "error", err)
			e.restoreSnapshot(d.snapshot)
			break
		}
		change = c
		e.settle()
		e.log.Debug("panel stacked", "panel", d.panelID, "host", d.target)

	case d.preview.Kind == layout.DockNone:
		e.restoreSnapshot(d.snapshot)
		e.log.Debug("drag cancelled", "panel", d.panelID)

	default:
		c, err := layout.Dock(e.model, d.panelID, d.preview)
		if err != nil {
			e.log.Warn("dock failed", "panel", d.panelID, "position", d.preview.Kind.String(), "error", err)
			e.restoreSnapshot(d.snapshot)
			break
		}
		change = c
		layout.EnforceMinimums(e.model, e.width())
		layout.SyncMembers(e.model)
		e.log.Debug("panel docked", "panel", d.panelID, "position", d.preview.Kind.String())
	}

	e.commit(change)
}

func (e *Engine) restoreSnapshot(s dragSnapshot) {
	if err := e.model.Reorder(s.order); err != nil {
		e.log.Warn("drag snapshot no longer matches the row", "error", err)
		return
	}
	for id, w := range s.widths {
		if p, ok := e.model.Panel(id); ok {
			p.Width = w
			p.Flex = s.flex[id]
		}
	}
	layout.SyncMembers(e.model)
}

// cancelGestures drops any drag or resize without resolving it.
func (e *Engine) cancelGestures() {
	if e.drag != nil {
		e.restoreSnapshot(e.drag.snapshot)
		e.drag = nil
		e.scene.Remove(ProxyNodeID)
		e.scene.Remove(PreviewNodeID)
	}
	if e.resize != nil {
		e.resize = nil
		e.rebuildSplitters()
	}
}

// Dragging returns the id of the panel being dragged.
func (e *Engine) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.panelID, true
}

// Preview returns the current dock preview and its box. Kind is DockNone
// when nothing would dock, or when a stack target takes precedence.
func (e *Engine) Preview() (layout.DockPosition, geometry.Rect) {
	if e.drag == nil || e.drag.target != "" {
		return layout.DockPosition{}, geometry.Rect{}
	}
	return e.drag.preview, e.drag.previewRect
}

// StackTarget returns the header the dragged panel would stack onto.
func (e *Engine) StackTarget() string {
	if e.drag == nil {
		return ""
	}
	return e.drag.target
}

// ProxyBox returns the drag proxy's box.
func (e *Engine) ProxyBox() (geometry.Rect, bool) {
	if e.drag == nil {
		return geometry.Rect{}, false
	}
	return e.scene.Box(ProxyNodeID)
}
