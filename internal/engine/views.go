// pattern: Imperative Shell

package engine

import (
	"slices"

	"dockrow/internal/layout"
)

// Panels returns copies of every panel, each host followed by its members.
func (e *Engine) Panels() []layout.Panel {
	all := e.model.All()
	out := make([]layout.Panel, 0, len(all))
	for _, p := range all {
		out = append(out, *p)
	}
	return out
}

// Panel returns a copy of one panel.
func (e *Engine) Panel(id string) (layout.Panel, bool) {
	p, ok := e.model.Panel(id)
	if !ok {
		return layout.Panel{}, false
	}
	return *p, true
}

// Order returns the top-level panel ids from left to right.
func (e *Engine) Order() []string { return e.model.Order() }

// Group returns the stack group hosted by host.
func (e *Engine) Group(host string) (layout.StackGroup, bool) { return e.model.Group(host) }

// Groups returns every stack group in row order.
func (e *Engine) Groups() []layout.StackGroup { return e.model.Groups() }

// HostOf returns the top-level panel owning id's slot.
func (e *Engine) HostOf(id string) string { return e.model.HostOf(id) }

// Visible reports whether id is the shown member of its slot.
func (e *Engine) Visible(id string) bool { return e.model.Visible(id) }

// Splitters returns the current splitters.
func (e *Engine) Splitters() []layout.Splitter { return slices.Clone(e.splitters) }

// Tabs returns the tabs of host's stack group, nil for a plain header.
func (e *Engine) Tabs(host string) []layout.Tab { return layout.Tabs(e.model, host) }

// Slots returns the rendered slot of every top-level panel.
func (e *Engine) Slots() []layout.Slot { return e.slots() }

// Header returns the header zones of a top-level panel's slot.
func (e *Engine) Header(host string) (layout.Header, bool) {
	for _, s := range e.slots() {
		if s.ID == host {
			return layout.HeaderFor(e.model, s, e.opts.HeaderHeight), true
		}
	}
	return layout.Header{}, false
}

// Maximized returns the maximized top-level panel, if any.
func (e *Engine) Maximized() (string, bool) { return e.maximized() }

// HeaderHeight returns the configured header height.
func (e *Engine) HeaderHeight() float64 { return e.opts.HeaderHeight }

// Check verifies the layout invariants against the current container.
func (e *Engine) Check() error { return e.model.Check(e.width()) }
