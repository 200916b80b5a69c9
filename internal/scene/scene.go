// pattern: Functional Core

// Package scene is the visual-tree capability the dock engine drives:
// nodes with a box, opacity, pointer interactivity and z-order inside a
// container whose size can change.
package scene

import (
	"cmp"
	"slices"

	"dockrow/internal/geometry"
)

// Kind classifies nodes so hosts can render them differently.
type Kind string

const (
	KindPanel    Kind = "panel"
	KindSplitter Kind = "splitter"
	KindProxy    Kind = "proxy"
	KindPreview  Kind = "preview"
)

// Scene is implemented by the host's visual tree.
type Scene interface {
	Create(id string, kind Kind)
	Remove(id string)
	SetBox(id string, r geometry.Rect)
	SetOpacity(id string, opacity float64)
	SetInteractive(id string, interactive bool)
	SetZ(id string, z int)
	Box(id string) (geometry.Rect, bool)
	Container() geometry.Rect
	// OnResize registers a listener for container size changes and returns
	// a function that removes it.
	OnResize(fn func(geometry.Rect)) func()
}

// Node is the state of one visual node.
type Node struct {
	ID          string
	Kind        Kind
	Box         geometry.Rect
	Opacity     float64
	Interactive bool
	Z           int
	seq         int
}

// Memory is a Scene kept entirely in memory. The terminal host renders
// from it and tests inspect it.
type Memory struct {
	container geometry.Rect
	nodes     map[string]*Node
	listeners map[int]func(geometry.Rect)
	nextSeq   int
	nextID    int
}

// NewMemory returns an empty scene with the given container box.
func NewMemory(container geometry.Rect) *Memory {
	return &Memory{
		container: container,
		nodes:     make(map[string]*Node),
		listeners: make(map[int]func(geometry.Rect)),
	}
}

// Create adds a node. Creating an existing id keeps the node as is.
func (s *Memory) Create(id string, kind Kind) {
	if _, ok := s.nodes[id]; ok {
		return
	}
	s.nextSeq++
	s.nodes[id] = &Node{ID: id, Kind: kind, Opacity: 1, Interactive: true, seq: s.nextSeq}
}

// Remove deletes a node. Unknown ids are ignored.
func (s *Memory) Remove(id string) {
	delete(s.nodes, id)
}

func (s *Memory) SetBox(id string, r geometry.Rect) {
	if n, ok := s.nodes[id]; ok {
		n.Box = r
	}
}

func (s *Memory) SetOpacity(id string, opacity float64) {
	if n, ok := s.nodes[id]; ok {
		n.Opacity = opacity
	}
}

func (s *Memory) SetInteractive(id string, interactive bool) {
	if n, ok := s.nodes[id]; ok {
		n.Interactive = interactive
	}
}

func (s *Memory) SetZ(id string, z int) {
	if n, ok := s.nodes[id]; ok {
		n.Z = z
	}
}

func (s *Memory) Box(id string) (geometry.Rect, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return geometry.Rect{}, false
	}
	return n.Box, true
}

func (s *Memory) Container() geometry.Rect { return s.container }

func (s *Memory) OnResize(fn func(geometry.Rect)) func() {
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// SetContainer changes the container box and notifies resize listeners.
func (s *Memory) SetContainer(r geometry.Rect) {
	if r == s.container {
		return
	}
	s.container = r
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s.listeners[id](r)
	}
}

// Node returns a copy of a node.
func (s *Memory) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns every node in paint order: lowest z first, creation order
// breaking ties.
func (s *Memory) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, *n)
	}
	slices.SortFunc(out, func(a, b Node) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// NodesByKind returns the nodes of one kind ordered left to right.
func (s *Memory) NodesByKind(kind Kind) []Node {
	var out []Node
	for _, n := range s.nodes {
		if n.Kind == kind {
			out = append(out, *n)
		}
	}
	slices.SortFunc(out, func(a, b Node) int {
		if c := cmp.Compare(a.Box.X, b.Box.X); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// HitTest returns the topmost interactive node containing p.
func (s *Memory) HitTest(p geometry.Point) (Node, bool) {
	nodes := s.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Interactive && n.Opacity > 0 && n.Box.Contains(p) {
			return n, true
		}
	}
	return Node{}, false
}

var _ Scene = (*Memory)(nil)
