// pattern: Imperative Shell

package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dockrow/internal/engine"
	"dockrow/internal/layout"
)

// slotState is how one slot is decorated.
type slotState struct {
	focused        bool
	target         bool // a dragged panel would stack here
	splitter       bool // the last column is a splitter
	splitterActive bool
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderContainer(lay.Container),
		m.renderStatusBar(lay.StatusBar.Width),
		m.help.View(m.keys),
	)
}

// cell rounds a scene coordinate to a terminal column or row.
func cell(v float64) int {
	return int(math.Floor(v + 0.5))
}

func (m Model) renderContainer(r Region) string {
	eng, _ := m.engine()
	w, h := r.Width, r.Height
	rows := make([]string, h)

	slots := eng.Slots()
	maxID, maximized := eng.Maximized()
	if maximized {
		slots = slices.DeleteFunc(slots, func(s layout.Slot) bool { return s.ID != maxID })
	}
	headerRows := min(max(int(math.Ceil(eng.HeaderHeight())), 1), h)
	focus := m.focused()
	target := eng.StackTarget()
	resizing, isResizing := eng.Resizing()

	for i, s := range slots {
		x0 := min(max(cell(s.Rect.X)-r.X, 0), w)
		x1 := min(max(cell(s.Rect.Right())-r.X, 0), w)
		if x1 <= x0 {
			continue
		}
		split := !maximized && i < len(slots)-1
		block := m.renderSlot(eng, s, x1-x0, h, headerRows, slotState{
			focused:        s.ID == focus,
			target:         s.ID == target,
			splitter:       split,
			splitterActive: split && isResizing && resizing.Index == i,
		})
		for y := range rows {
			rows[y] += block[y]
		}
	}
	for y := range rows {
		rows[y] = fit(rows[y], w)
	}

	m.overlayPreview(eng, rows, w, headerRows)
	m.overlayProxy(eng, rows, w)
	return strings.Join(rows, "\n")
}

// renderSlot returns height lines of exactly width cells: the header rows
// followed by the visible panel's content.
func (m Model) renderSlot(eng *engine.Engine, s layout.Slot, width, height, headerRows int, st slotState) []string {
	lines := make([]string, 0, height)
	hdr, _ := eng.Header(s.ID)
	lines = append(lines, m.renderHeader(eng, hdr, width, st))
	blank := m.styles.HeaderStyle(st.focused).Render(strings.Repeat(" ", width))
	for len(lines) < headerRows {
		lines = append(lines, blank)
	}

	bodyW := width
	if st.splitter {
		bodyW--
	}
	bodyH := height - headerRows
	var text string
	if c, ok := m.content(eng.ID(), activeOf(eng, s.ID)); ok && bodyW > 0 && bodyH > 0 {
		text = c.View(bodyW, bodyH)
	}
	bar := m.styles.SplitterStyle(st.splitterActive).Render("│")
	for _, line := range block(text, bodyW, bodyH) {
		if st.splitter {
			line += bar
		}
		lines = append(lines, line)
	}
	return lines
}

// renderHeader draws tabs, or the title, followed by the controls. It
// mirrors the zones of layout.HeaderFor so clicks land where they are
// drawn.
func (m Model) renderHeader(eng *engine.Engine, hdr layout.Header, width int, st slotState) string {
	base := m.styles.HeaderStyle(st.focused)
	if st.target {
		base = m.styles.TargetStyle()
	}

	controls := ""
	if hdr.Close.Width > 0 {
		glyph := layout.MaximizeGlyph
		if p, ok := eng.Panel(hdr.HostID); ok && p.Maximized {
			glyph = layout.RestoreGlyph
		}
		controls = m.styles.ControlStyle().Render(glyph + layout.CloseGlyph)
	}
	titleW := max(width-ansi.StringWidth(controls), 0)

	var title string
	if len(hdr.Tabs) > 0 {
		var b strings.Builder
		for _, t := range hdr.Tabs {
			style := m.styles.TabStyle(t.Active)
			if st.target {
				style = base
			}
			b.WriteString(style.Render(" " + t.Title + " "))
		}
		title = b.String()
	} else {
		p, _ := eng.Panel(hdr.HostID)
		title = base.Render(" " + p.Title)
	}
	return fitStyled(title, titleW, base) + controls
}

func (m Model) overlayPreview(eng *engine.Engine, rows []string, width, headerRows int) {
	pos, _ := eng.Preview()
	col := -1
	switch pos.Kind {
	case layout.DockLeft:
		col = 0
	case layout.DockRight:
		col = width - 1
	case layout.DockBetween:
		for _, s := range eng.Splitters() {
			if s.LeftID == pos.LeftID {
				col = cell(s.X) - 1
			}
		}
	}
	if col < 0 || col >= width {
		return
	}
	bar := m.styles.PreviewStyle().Render("┃")
	for y := headerRows; y < len(rows); y++ {
		rows[y] = overlay(rows[y], bar, col)
	}
}

// overlayProxy draws the dragged panel as a single line at the proxy box.
func (m Model) overlayProxy(eng *engine.Engine, rows []string, width int) {
	box, ok := eng.ProxyBox()
	if !ok || len(rows) == 0 {
		return
	}
	id, _ := eng.Dragging()
	p, _ := eng.Panel(id)

	x := cell(box.X)
	y := min(max(cell(box.Y), 0), len(rows)-1)
	pw := max(cell(box.Right())-x, 1)
	label := m.styles.ProxyStyle().Render(fit(" ⇄ "+p.Title+" ", pw))
	if x < 0 {
		label = ansi.TruncateLeft(label, -x, "")
		x = 0
	}
	if x >= width {
		return
	}
	label = ansi.Truncate(label, width-x, "")
	rows[y] = overlay(rows[y], label, x)
}

func (m Model) renderStatusBar(width int) string {
	eng, _ := m.engine()
	ids := m.registry.IDs()

	parts := []string{fmt.Sprintf("%s (%d/%d)", m.current, slices.Index(ids, m.current)+1, len(ids))}
	if eng.Locked() {
		parts = append(parts, "locked")
	}
	if eng.AllowStacking() {
		parts = append(parts, "stacking on")
	} else {
		parts = append(parts, "stacking off")
	}
	if id, ok := eng.Dragging(); ok {
		d := "dragging " + id
		if t := eng.StackTarget(); t != "" {
			d += " → stack on " + t
		} else if pos, _ := eng.Preview(); pos.Kind != layout.DockNone {
			d += " → " + describeDock(pos)
		}
		parts = append(parts, d)
	}
	if s, ok := eng.Resizing(); ok {
		parts = append(parts, fmt.Sprintf("resizing %s|%s", s.LeftID, s.RightID))
	}
	if ev, ok := m.events.Last(); ok {
		parts = append(parts, fmt.Sprintf("last: %s %s", ev.Kind, strings.Join(ev.PanelIDs, ",")))
	}
	left := " " + strings.Join(parts, " │ ")

	right := ""
	if m.status != "" {
		style := m.styles.AccentStyle()
		if m.statusErr {
			style = m.styles.ErrorStyle()
		}
		right = style.Render(m.status) + " "
	}
	gap := max(width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return m.styles.StatusBarStyle().Render(fit(left+strings.Repeat(" ", gap)+right, width))
}

func describeDock(pos layout.DockPosition) string {
	if pos.Kind == layout.DockBetween {
		return fmt.Sprintf("between %s|%s", pos.LeftID, pos.RightID)
	}
	return pos.Kind.String() + " edge"
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	return fitStyled(s, w, lipgloss.NewStyle())
}

// fitStyled is fit with the padding rendered in pad.
func fitStyled(s string, w int, pad lipgloss.Style) string {
	if w <= 0 {
		return ""
	}
	n := ansi.StringWidth(s)
	if n > w {
		return ansi.Truncate(s, w, "")
	}
	if n < w {
		s += pad.Render(strings.Repeat(" ", w-n))
	}
	return s
}

// block lays text out as h lines of w cells.
func block(text string, w, h int) []string {
	if h <= 0 {
		return nil
	}
	var src []string
	if text != "" {
		src = strings.Split(text, "\n")
	}
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = fit(line, w)
	}
	return out
}

// overlay paints s over line starting at column x.
func overlay(line, s string, x int) string {
	if n := ansi.StringWidth(line); n < x {
		line += strings.Repeat(" ", x-n)
	}
	left := ansi.Truncate(line, x, "")
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(s), "")
	return left + s + right
}
