// pattern: Functional Core

// Package input defines the normalized pointer events the dock engine
// consumes. Mouse and touch deliver the same event shape.
package input

import "dockrow/internal/geometry"

// Kind is the phase of a pointer gesture.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Source is the device that produced an event.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Event is one pointer event. Target is the id of the scene node under the
// pointer when the host knows it, empty otherwise.
type Event struct {
	Kind   Kind
	Source Source
	Point  geometry.Point
	Target string
}

// At is a convenience constructor for mouse events.
func At(kind Kind, x, y float64) Event {
	return Event{Kind: kind, Source: Mouse, Point: geometry.Point{X: x, Y: y}}
}
