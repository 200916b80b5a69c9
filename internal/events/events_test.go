package events

import "testing"

func TestBus_EmitInOrder(t *testing.T) {
	var b Bus
	var got []string
	b.Subscribe(func(e Event) { got = append(got, "first:"+string(e.Kind)) })
	b.Subscribe(func(e Event) { got = append(got, "second:"+string(e.Kind)) })

	b.Emit(Event{Kind: PanelClosed, PanelIDs: []string{"a"}})

	if len(got) != 2 || got[0] != "first:panel-closed" || got[1] != "second:panel-closed" {
		t.Errorf("delivered = %v, want first then second", got)
	}
}

func TestBus_AllowClose(t *testing.T) {
	var b Bus
	if !b.AllowClose("main", "a") {
		t.Error("AllowClose() with no handler = false, want true")
	}

	b.OnBeforeClose(func(e *BeforeClose) {})
	if b.AllowClose("main", "a") {
		t.Error("AllowClose() with a handler that does not opt in = true, want false")
	}

	b.OnBeforeClose(func(e *BeforeClose) { e.Allow = e.PanelID == "a" })
	if !b.AllowClose("main", "a") {
		t.Error("AllowClose(a) = false, want true")
	}
	if b.AllowClose("main", "b") {
		t.Error("AllowClose(b) = true, want false")
	}
}
