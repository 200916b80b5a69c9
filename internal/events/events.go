// Package events contains the notifications a dock container emits and the
// bus that delivers them to the host.
package events

// Kind identifies an event.
type Kind string

const (
	PanelClosed    Kind = "panel-closed"
	PanelMaximized Kind = "panel-maximized"
	PanelRestored  Kind = "panel-restored"
	StackChanged   Kind = "stack-changed"
	OrderChanged   Kind = "order-changed"
	PanelResized   Kind = "panel-resized"
	LayoutRestored Kind = "layout-restored"
)

// Event is one notification. PanelIDs lists the affected panels.
type Event struct {
	Kind        Kind
	ContainerID string
	PanelIDs    []string
}

// BeforeClose is sent before a panel is removed through RequestClose.
// Allow starts false; a handler must set it to permit the removal.
type BeforeClose struct {
	ContainerID string
	PanelID     string
	Allow       bool
}

// Bus fans events out to subscribers in registration order.
type Bus struct {
	handlers    []func(Event)
	beforeClose func(*BeforeClose)
}

// Subscribe registers a handler for every event.
func (b *Bus) Subscribe(fn func(Event)) {
	b.handlers = append(b.handlers, fn)
}

// Emit delivers an event to every subscriber.
func (b *Bus) Emit(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}

// OnBeforeClose installs the handler consulted by RequestClose. Only one
// handler is kept; a later call replaces it.
func (b *Bus) OnBeforeClose(fn func(*BeforeClose)) {
	b.beforeClose = fn
}

// AllowClose asks the before-close handler whether a panel may go. With no
// handler installed the close is allowed.
func (b *Bus) AllowClose(containerID, panelID string) bool {
	if b.beforeClose == nil {
		return true
	}
	ev := &BeforeClose{ContainerID: containerID, PanelID: panelID}
	b.beforeClose(ev)
	return ev.Allow
}
