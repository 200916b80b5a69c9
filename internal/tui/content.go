// pattern: Functional Core

package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dockrow/internal/config"
	"dockrow/internal/events"
	"dockrow/internal/logging"
	"dockrow/internal/persist"
)

// ContentEnv is what a panel's content may read while it is loaded.
type ContentEnv struct {
	ContainerID string
	Logs        *logging.Ring
	Events      *EventLog
	State       func() persist.State
	Styles      *Styles
}

// Content renders the body of one panel.
type Content interface {
	OnLoad(env ContentEnv)
	OnUnload()
	View(width, height int) string
}

// Factory builds the content of a configured panel.
type Factory func(panel config.PanelConfig) Content

// ContentRegistry maps content kinds to factories.
type ContentRegistry struct {
	factories map[string]Factory
}

// NewContentRegistry returns a registry with the built-in kinds.
func NewContentRegistry() *ContentRegistry {
	r := &ContentRegistry{factories: make(map[string]Factory)}
	r.Register("logs", func(config.PanelConfig) Content { return &logContent{} })
	r.Register("events", func(config.PanelConfig) Content { return &eventContent{} })
	r.Register("state", func(config.PanelConfig) Content { return &stateContent{} })
	r.Register("text", func(p config.PanelConfig) Content { return &textContent{text: p.Text} })
	return r
}

// Register adds or replaces a kind.
func (r *ContentRegistry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// New builds the content for a panel. Unknown or empty kinds render the
// panel's static text.
func (r *ContentRegistry) New(panel config.PanelConfig) Content {
	if f, ok := r.factories[panel.Content]; ok {
		return f(panel)
	}
	return &textContent{text: panel.Text}
}

// EventLog keeps the most recent engine events of every container.
type EventLog struct {
	size    int
	entries []string
	last    events.Event
	seen    bool
	now     func() time.Time
}

func NewEventLog(size int) *EventLog {
	if size < 1 {
		size = 1
	}
	return &EventLog{size: size, now: time.Now}
}

// Record appends an event, dropping the oldest beyond capacity.
func (l *EventLog) Record(e events.Event) {
	line := fmt.Sprintf("%s %-8s %-16s %s",
		l.now().Format("15:04:05"), e.ContainerID, e.Kind, strings.Join(e.PanelIDs, ","))
	l.entries = append(l.entries, line)
	if over := len(l.entries) - l.size; over > 0 {
		l.entries = l.entries[over:]
	}
	l.last = e
	l.seen = true
}

// Last returns the most recent event.
func (l *EventLog) Last() (events.Event, bool) {
	return l.last, l.seen
}

// Tail returns up to n of the most recent lines, oldest first.
func (l *EventLog) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	start := max(len(l.entries)-n, 0)
	return l.entries[start:]
}

type logContent struct {
	env    ContentEnv
	loaded bool
}

func (c *logContent) OnLoad(env ContentEnv) { c.env, c.loaded = env, true }
func (c *logContent) OnUnload()             { c.loaded = false }

func (c *logContent) View(width, height int) string {
	if !c.loaded || c.env.Logs == nil {
		return ""
	}
	entries := c.env.Logs.Tail(height)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := ansi.Truncate(e.String(), width, "…")
		if c.env.Styles != nil {
			line = c.env.Styles.LevelStyle(e.Level).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

type eventContent struct {
	env    ContentEnv
	loaded bool
}

func (c *eventContent) OnLoad(env ContentEnv) { c.env, c.loaded = env, true }
func (c *eventContent) OnUnload()             { c.loaded = false }

func (c *eventContent) View(width, height int) string {
	if !c.loaded || c.env.Events == nil {
		return ""
	}
	lines := c.env.Events.Tail(height)
	if len(lines) == 0 {
		return "no events yet"
	}
	return strings.Join(lines, "\n")
}

// stateContent shows the container's current persisted form.
type stateContent struct {
	env    ContentEnv
	loaded bool
}

func (c *stateContent) OnLoad(env ContentEnv) { c.env, c.loaded = env, true }
func (c *stateContent) OnUnload()             { c.loaded = false }

func (c *stateContent) View(width, height int) string {
	if !c.loaded || c.env.State == nil {
		return ""
	}
	data, err := json.MarshalIndent(c.env.State(), "", " ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

type textContent struct {
	text string
}

func (c *textContent) OnLoad(ContentEnv) {}
func (c *textContent) OnUnload()        {}

func (c *textContent) View(width, height int) string {
	if width < 1 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Render(c.text)
}
