// pattern: Imperative Shell

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockrow/internal/geometry"
	"dockrow/internal/input"
	"dockrow/internal/logging"
	"dockrow/internal/persist"
)

// statusTimeout is how long a status message stays in the status bar.
const statusTimeout = 4 * time.Second

// logBatch caps how many queued log entries one message carries.
const logBatch = 100

// logEntriesMsg delivers log entries from the logging channel.
type logEntriesMsg struct {
	entries []logging.LogEntry
}

// storeChangedMsg reports a write to the store. An empty containerID
// means any container may have changed.
type storeChangedMsg struct {
	containerID string
}

// clearStatusMsg is sent after a timed delay to clear the status bar.
type clearStatusMsg struct {
	seq int
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeScenes()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case logEntriesMsg:
		for _, entry := range msg.entries {
			m.logRing.Push(entry)
		}
		return m, waitForLogEntries(m.entries)

	case storeChangedMsg:
		var cmd tea.Cmd
		if n := m.reloadChanged(msg.containerID); n > 0 {
			cmd = m.setStatus(fmt.Sprintf("reloaded %d layout(s) written elsewhere", n), false)
		}
		return m, tea.Batch(cmd, waitForStoreChange(m.changes))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

// layout computes the chrome regions for the current terminal size.
func (m Model) layout() Layout {
	return ComputeLayout(m.width, m.height, lipgloss.Height(m.help.View(m.keys)))
}

// resizeScenes hands the container region to every scene. Hidden
// containers follow too so switching never shows a stale layout.
func (m Model) resizeScenes() {
	r := m.layout().Container
	box := geometry.Rect{
		X:      float64(r.X),
		Y:      float64(r.Y),
		Width:  float64(r.Width),
		Height: float64(r.Height),
	}
	for _, sc := range m.scenes {
		sc.SetContainer(box)
	}
}

// cellCenter maps a terminal cell to the point the engine hit-tests.
func cellCenter(x, y int) geometry.Point {
	return geometry.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	eng, sc := m.engine()

	var kind input.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.layout().Container.Contains(msg.X, msg.Y) {
			return m, nil
		}
		kind = input.Down
	case tea.MouseActionMotion:
		kind = input.Move
	case tea.MouseActionRelease:
		kind = input.Up
	default:
		return m, nil
	}

	ev := input.Event{Kind: kind, Source: input.Mouse, Point: cellCenter(msg.X, msg.Y)}
	if node, ok := sc.HitTest(ev.Point); ok {
		ev.Target = node.ID
	}
	if kind == input.Down {
		if hit := eng.HitTest(ev.Point); hit.HostID != "" {
			m.focus[m.current] = hit.HostID
		}
	}
	eng.HandlePointer(ev)
	return m, nil
}

func (m Model) gestureActive() bool {
	eng, _ := m.engine()
	_, dragging := eng.Dragging()
	_, resizing := eng.Resizing()
	return dragging || resizing
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng, _ := m.engine()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScenes()
		return m, nil

	case key.Matches(msg, m.keys.Container):
		ids := m.registry.IDs()
		i := int(msg.String()[0] - '1')
		if i >= len(ids) {
			return m, m.setStatus(fmt.Sprintf("no container %s", msg.String()), true)
		}
		if m.gestureActive() {
			return m, m.setStatus("finish the current gesture first", true)
		}
		m.current = ids[i]
		return m, m.setStatus("container "+m.current, false)

	case key.Matches(msg, m.keys.Focus):
		order := eng.Order()
		if len(order) == 0 {
			return m, nil
		}
		cur := m.focused()
		next := order[0]
		for i, id := range order {
			if id == cur {
				next = order[(i+1)%len(order)]
				break
			}
		}
		m.focus[m.current] = next
		return m, nil

	case key.Matches(msg, m.keys.Maximize):
		host := m.focused()
		if host == "" {
			return m, nil
		}
		if err := eng.ToggleMaximize(activeOf(eng, host)); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Close):
		host := m.focused()
		if host == "" {
			return m, nil
		}
		id := activeOf(eng, host)
		if !eng.RequestClose(id) {
			return m, m.setStatus(fmt.Sprintf("close of %s refused", id), true)
		}
		return m, m.setStatus("closed "+id, false)

	case key.Matches(msg, m.keys.Unstack):
		host := m.focused()
		if host == "" {
			return m, nil
		}
		id := activeOf(eng, host)
		if id == host {
			return m, m.setStatus("select a stacked tab to unstack", true)
		}
		if err := eng.Unstack(id); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.focus[m.current] = id
		return m, m.setStatus("unstacked "+id, false)

	case key.Matches(msg, m.keys.Lock):
		eng.SetLocked(!eng.Locked())
		if eng.Locked() {
			return m, m.setStatus("layout locked", false)
		}
		return m, m.setStatus("layout unlocked", false)

	case key.Matches(msg, m.keys.Stacking):
		eng.SetAllowStacking(!eng.AllowStacking())
		if eng.AllowStacking() {
			return m, m.setStatus("stacking on", false)
		}
		return m, m.setStatus("stacking off", false)

	case key.Matches(msg, m.keys.Reload):
		if !eng.RestoreState(nil) {
			return m, m.setStatus("no saved layout applied", true)
		}
		return m, m.setStatus("layout reloaded", false)
	}
	return m, nil
}

// reloadChanged restores containers whose stored layout differs from what
// this process last wrote. It returns the number restored.
func (m Model) reloadChanged(containerID string) int {
	ids := []string{containerID}
	if containerID == "" {
		ids = m.registry.IDs()
	}
	n := 0
	for _, id := range ids {
		eng, ok := m.registry.Get(id)
		if !ok {
			continue
		}
		raw, found, err := m.store.Get(persist.Key(id))
		if err != nil {
			m.log.Warn("read changed layout failed", "container", id, "error", err)
			continue
		}
		if !found || raw == "" || raw == eng.Adapter().Written() {
			continue
		}
		state, err := persist.Parse(raw)
		if err != nil {
			m.log.Warn("changed layout ignored", "container", id, "error", err)
			continue
		}
		if eng.RestoreState(state) {
			m.log.Info("layout reloaded from store", "container", id)
			n++
		}
	}
	return n
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// waitForLogEntries blocks for the next log entry and hands over whatever
// else is already queued.
func waitForLogEntries(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		entries := []logging.LogEntry{entry}
		for len(entries) < logBatch {
			select {
			case e, ok := <-ch:
				if !ok {
					return logEntriesMsg{entries: entries}
				}
				entries = append(entries, e)
			default:
				return logEntriesMsg{entries: entries}
			}
		}
		return logEntriesMsg{entries: entries}
	}
}

func waitForStoreChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{containerID: id}
	}
}
