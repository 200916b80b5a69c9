// pattern: Imperative Shell

package engine

import (
	"dockrow/internal/events"
	"dockrow/internal/geometry"
	"dockrow/internal/layout"
)

// resizeState is a splitter drag in progress.
type resizeState struct {
	splitter layout.Splitter
	startX   float64
	leftPx   float64
	rightPx  float64
}

// startResize captures the panels either side of splitter i. It is
// refused while another gesture is active. Locked does not apply.
func (e *Engine) startResize(i int, x float64) bool {
	if e.resize != nil || e.drag != nil {
		return false
	}
	if i < 0 || i >= len(e.splitters) {
		return false
	}
	s := e.splitters[i]
	lp, lok := e.model.Panel(s.LeftID)
	rp, rok := e.model.Panel(s.RightID)
	if !lok || !rok {
		return false
	}
	cw := e.width()
	e.resize = &resizeState{
		splitter: s,
		startX:   x,
		leftPx:   geometry.PercentToPixels(lp.Width, cw),
		rightPx:  geometry.PercentToPixels(rp.Width, cw),
	}
	e.log.Debug("resize started", "left", s.LeftID, "right", s.RightID)
	return true
}

func (e *Engine) moveResize(x float64) {
	r := e.resize
	lp, lok := e.model.Panel(r.splitter.LeftID)
	rp, rok := e.model.Panel(r.splitter.RightID)
	if !lok || !rok {
		return
	}
	cw := e.width()
	left, right := layout.ResizePair(r.leftPx, r.rightPx, x-r.startX, lp.MinWidth, rp.MinWidth, cw)
	lp.Width = geometry.PixelsToPercent(left, cw)
	rp.Width = geometry.PixelsToPercent(right, cw)
	layout.SyncMembers(e.model)
	e.sync()
}

func (e *Engine) endResize() {
	s := e.resize.splitter
	e.resize = nil
	e.rebuildSplitters()
	e.Save()
	e.emit(events.PanelResized, s.LeftID, s.RightID)
	e.log.Debug("resize finished", "left", s.LeftID, "right", s.RightID)
}

// Resizing returns the splitter being dragged.
func (e *Engine) Resizing() (layout.Splitter, bool) {
	if e.resize == nil {
		return layout.Splitter{}, false
	}
	return e.resize.splitter, true
}
