package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"dockrow/internal/config"
)

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestView_EmptyBeforeSize(t *testing.T) {
	cfg := config.DefaultConfig()
	m, err := NewModel(Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	defer m.Close()
	if got := m.View(); got != "" {
		t.Errorf("View before WindowSizeMsg = %q, want empty", got)
	}
}

func TestView_RowOfPanels(t *testing.T) {
	m := newTestModel(t, nil, abc()...)
	lines := viewLines(m)

	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12 (container, status, help)", len(lines))
	}

	header := lines[0]
	for _, tt := range []struct {
		col   int
		title string
	}{{0, " A"}, {20, " B"}, {40, " C"}} {
		if got := header[tt.col : tt.col+2]; got != tt.title {
			t.Errorf("header at %d = %q, want %q", tt.col, got, tt.title)
		}
	}

	body := []rune(lines[1])
	if len(body) != 60 {
		t.Fatalf("body row is %d cells, want 60", len(body))
	}
	if !strings.HasPrefix(lines[1], "alpha") {
		t.Errorf("body = %q, want A's text first", lines[1])
	}
	if body[19] != '│' || body[39] != '│' {
		t.Errorf("body = %q, want boundaries at columns 19 and 39", lines[1])
	}
	if body[59] == '│' {
		t.Error("the last slot has no boundary column")
	}

	status := lines[10]
	if !strings.Contains(status, "main (1/2)") || !strings.Contains(status, "stacking on") {
		t.Errorf("status bar = %q", status)
	}
	if strings.Contains(status, "locked") {
		t.Errorf("status bar = %q, container is not locked", status)
	}
}

func TestView_ControlsAndMaximize(t *testing.T) {
	panels := abc()
	for i := range panels {
		panels[i].Controls = true
	}
	m := newTestModel(t, nil, panels...)

	header := viewLines(m)[0]
	if got := header[14:20]; got != "[^][x]" {
		t.Errorf("controls of A = %q, want [^][x]", got)
	}

	m = press(t, m, "m")
	lines := viewLines(m)
	if !strings.HasSuffix(lines[0], "[v][x]") || !strings.HasPrefix(lines[0], " A") {
		t.Errorf("maximized header = %q", lines[0])
	}
	if strings.ContainsRune(lines[1], '│') {
		t.Errorf("body = %q, a maximized slot hides the boundaries", lines[1])
	}
}

func TestView_MaximizeControlClick(t *testing.T) {
	panels := abc()
	panels[1].Controls = true
	m := newTestModel(t, nil, panels...)
	eng := mainEngine(t, m)

	m = mouse(t, m, tea.MouseActionPress, 35, 0) // B's [^]
	m = mouse(t, m, tea.MouseActionRelease, 35, 0)
	if id, ok := eng.Maximized(); !ok || id != "b" {
		t.Fatalf("Maximized = %q, %v; want b", id, ok)
	}

	m = mouse(t, m, tea.MouseActionPress, 58, 0) // [x] now at the far right
	_ = mouse(t, m, tea.MouseActionRelease, 58, 0)
	if _, ok := eng.Panel("b"); ok {
		t.Error("close control should remove b")
	}
}

func TestView_LockedStatus(t *testing.T) {
	m := newTestModel(t, nil, abc()...)
	m = press(t, m, "L")
	m = press(t, m, "S")
	status := viewLines(m)[10]
	if !strings.Contains(status, "locked") || !strings.Contains(status, "stacking off") {
		t.Errorf("status bar = %q", status)
	}
}

func TestView_SideContainer(t *testing.T) {
	m := newTestModel(t, nil, abc()...)
	m = press(t, m, "2")
	lines := viewLines(m)
	if !strings.HasPrefix(lines[0], " Solo") {
		t.Errorf("header = %q, want the side container", lines[0])
	}
	if !strings.HasPrefix(lines[1], "side panel") {
		t.Errorf("body = %q", lines[1])
	}
	if !strings.Contains(lines[10], "side (2/2)") {
		t.Errorf("status bar = %q", lines[10])
	}
}

func TestFitAndOverlay(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pad", fit("ab", 4), "ab  "},
		{"truncate", fit("abcdef", 3), "abc"},
		{"zero width", fit("abc", 0), ""},
		{"overlay middle", overlay("abcdef", "XY", 2), "abXYef"},
		{"overlay past end", overlay("ab", "X", 4), "ab  X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	rows := block("one\ntwo\nthree", 4, 2)
	if len(rows) != 2 || rows[0] != "one " || rows[1] != "two " {
		t.Errorf("block = %q", rows)
	}
}
