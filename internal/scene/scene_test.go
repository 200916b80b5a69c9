package scene

import (
	"testing"

	"dockrow/internal/geometry"
)

func TestMemory_HitTestPrefersTopmostInteractive(t *testing.T) {
	s := NewMemory(geometry.Rect{Width: 100, Height: 20})
	s.Create("a", KindPanel)
	s.SetBox("a", geometry.Rect{Width: 50, Height: 20})
	s.SetZ("a", 10)
	s.Create("b", KindPanel)
	s.SetBox("b", geometry.Rect{Width: 50, Height: 20})
	s.SetZ("b", 11)

	n, ok := s.HitTest(geometry.Point{X: 5, Y: 5})
	if !ok || n.ID != "b" {
		t.Fatalf("HitTest() = %q, %v; want b", n.ID, ok)
	}

	s.SetInteractive("b", false)
	n, ok = s.HitTest(geometry.Point{X: 5, Y: 5})
	if !ok || n.ID != "a" {
		t.Errorf("HitTest() after disabling b = %q, %v; want a", n.ID, ok)
	}

	if _, ok := s.HitTest(geometry.Point{X: 80, Y: 5}); ok {
		t.Error("HitTest() outside every node should miss")
	}
}

func TestMemory_SetContainerNotifiesListeners(t *testing.T) {
	s := NewMemory(geometry.Rect{Width: 100, Height: 20})
	var got []geometry.Rect
	cancel := s.OnResize(func(r geometry.Rect) { got = append(got, r) })

	s.SetContainer(geometry.Rect{Width: 120, Height: 20})
	s.SetContainer(geometry.Rect{Width: 120, Height: 20}) // unchanged, no event
	cancel()
	s.SetContainer(geometry.Rect{Width: 80, Height: 20})

	if len(got) != 1 || got[0].Width != 120 {
		t.Errorf("listener calls = %v, want one call with width 120", got)
	}
	if s.Container().Width != 80 {
		t.Errorf("Container().Width = %v, want 80", s.Container().Width)
	}
}

func TestMemory_NodesByKindOrdersLeftToRight(t *testing.T) {
	s := NewMemory(geometry.Rect{Width: 100, Height: 20})
	for id, x := range map[string]float64{"s2": 60, "s1": 30} {
		s.Create(id, KindSplitter)
		s.SetBox(id, geometry.Rect{X: x, Width: 1, Height: 20})
	}
	s.Create("p", KindPanel)

	nodes := s.NodesByKind(KindSplitter)
	if len(nodes) != 2 || nodes[0].ID != "s1" || nodes[1].ID != "s2" {
		t.Errorf("NodesByKind(splitter) = %v, want s1 then s2", nodes)
	}

	s.Remove("s1")
	if _, ok := s.Node("s1"); ok {
		t.Error("s1 should be removed")
	}
}
