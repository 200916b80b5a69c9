// pattern: Imperative Shell

package engine

import (
	"strconv"
	"strings"

	"dockrow/internal/geometry"
	"dockrow/internal/input"
	"dockrow/internal/layout"
)

// HitKind is what a pointer-down landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitSplitter
	HitClose
	HitMaximize
	HitTab
	HitHeader
	HitBody
)

// Hit describes the target of a point. PanelID is the visible panel of the
// slot, or the tab's panel for HitTab.
type Hit struct {
	Kind     HitKind
	HostID   string
	PanelID  string
	Splitter int
}

// HitTest resolves what lies under p. A maximized slot covers everything
// else, splitters included.
func (e *Engine) HitTest(p geometry.Point) Hit {
	if _, covered := e.maximized(); !covered {
		for i, s := range e.splitters {
			if e.splitterBox(s).Contains(p) {
				return Hit{Kind: HitSplitter, Splitter: i}
			}
		}
	}

	slots := e.slots()
	if id, ok := e.maximized(); ok {
		for _, s := range slots {
			if s.ID == id {
				slots = []layout.Slot{s}
				break
			}
		}
	}
	for _, s := range slots {
		if !s.Rect.Contains(p) {
			continue
		}
		hit := Hit{HostID: s.ID, PanelID: e.activeOf(s.ID)}
		h := layout.HeaderFor(e.model, s, e.opts.HeaderHeight)
		switch {
		case !h.Rect.Contains(p):
			hit.Kind = HitBody
		case h.Close.Contains(p):
			hit.Kind = HitClose
		case h.Maximize.Contains(p):
			hit.Kind = HitMaximize
		default:
			hit.Kind = HitHeader
			if tab, ok := h.TabAt(p); ok {
				hit.Kind = HitTab
				hit.PanelID = tab.PanelID
			}
		}
		return hit
	}
	return Hit{}
}

// PanelAt returns the visible panel under p.
func (e *Engine) PanelAt(p geometry.Point) (string, bool) {
	hit := e.HitTest(p)
	if hit.HostID == "" {
		return "", false
	}
	return hit.PanelID, true
}

// HandlePointer feeds one pointer event to the controllers and reports
// whether the layout or a gesture changed. Moves outside a gesture are
// ignored, and a release always resolves the gesture in progress.
func (e *Engine) HandlePointer(ev input.Event) bool {
	if !e.mounted {
		return false
	}
	switch ev.Kind {
	case input.Down:
		return e.pointerDown(ev)
	case input.Move:
		switch {
		case e.resize != nil:
			e.moveResize(ev.Point.X)
			return true
		case e.drag != nil:
			e.moveDrag(ev.Point)
			return true
		}
	case input.Up:
		switch {
		case e.resize != nil:
			e.endResize()
			return true
		case e.drag != nil:
			e.drop(ev.Point)
			return true
		}
	}
	return false
}

func (e *Engine) pointerDown(ev input.Event) bool {
	if e.drag != nil || e.resize != nil {
		return false
	}
	if i, ok := splitterTarget(ev.Target); ok {
		if _, covered := e.maximized(); covered {
			return false
		}
		return e.startResize(i, ev.Point.X)
	}

	hit := e.HitTest(ev.Point)
	switch hit.Kind {
	case HitSplitter:
		return e.startResize(hit.Splitter, ev.Point.X)
	case HitClose:
		return e.RequestClose(hit.PanelID)
	case HitMaximize:
		return e.ToggleMaximize(hit.PanelID) == nil
	case HitTab:
		changed := false
		if e.activeOf(hit.HostID) != hit.PanelID {
			changed = e.Activate(hit.HostID, hit.PanelID) == nil
		}
		return e.startDrag(hit.HostID, ev.Point) || changed
	case HitHeader:
		return e.startDrag(hit.HostID, ev.Point)
	}
	return false
}

// splitterTarget parses a splitter node id supplied by the host.
func splitterTarget(target string) (int, bool) {
	rest, ok := strings.CutPrefix(target, "splitter:")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (e *Engine) activeOf(host string) string {
	if g, ok := e.model.Group(host); ok {
		return g.ActiveID
	}
	return host
}
