// pattern: Imperative Shell

// Package tui hosts dock containers in a terminal. Every configured
// container gets an engine and an in-memory scene sized to the terminal;
// the model renders the scene and feeds it mouse and keyboard input.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"dockrow/internal/config"
	"dockrow/internal/engine"
	"dockrow/internal/events"
	"dockrow/internal/geometry"
	"dockrow/internal/logging"
	"dockrow/internal/persist"
	"dockrow/internal/scene"
)

const (
	logHistory   = 500
	eventHistory = 200
)

// Options configures the host.
type Options struct {
	Config config.Config
	Store  persist.Store
	// StorePath is the database file of a SQLite store, watched for writes
	// by other processes. File stores are watched per key.
	StorePath string
	Watch     bool
	Logs      logging.LoggerProvider
	// Entries feeds the logs panels; usually Manager.Entries().
	Entries  <-chan logging.LogEntry
	Contents *ContentRegistry
	// Start is the container shown first; the first configured one when
	// empty.
	Start string
}

type Model struct {
	width  int
	height int
	styles *Styles
	keys   keyMap
	help   help.Model

	cfg      config.Config
	log      *logging.ScopedLogger
	store    persist.Store
	registry *engine.Registry
	scenes   map[string]*scene.Memory
	current  string
	focus    map[string]string // container -> focused top-level panel

	contentReg *ContentRegistry
	contents   map[string]map[string]Content // container -> panel -> content
	logRing    *logging.Ring
	events     *EventLog

	entries  <-chan logging.LogEntry
	changes  chan string
	watchers []*persist.Watcher

	status    string
	statusErr bool
	statusSeq int
}

// NewModel mounts every configured container. Containers are sized to a
// placeholder box until the first window size message arrives.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if len(cfg.Containers) == 0 {
		return Model{}, errors.New("no containers configured")
	}
	if opts.Store == nil {
		opts.Store = persist.NewMemory()
	}
	if opts.Contents == nil {
		opts.Contents = NewContentRegistry()
	}

	m := Model{
		styles:     NewStyles(cfg.Theme),
		keys:       defaultKeyMap(),
		help:       help.New(),
		cfg:        cfg,
		log:        logging.NopLogger(),
		store:      opts.Store,
		registry:   engine.NewRegistry(opts.Logs),
		scenes:     make(map[string]*scene.Memory),
		focus:      make(map[string]string),
		contentReg: opts.Contents,
		contents:   make(map[string]map[string]Content),
		logRing:    logging.NewRing(logHistory),
		events:     NewEventLog(eventHistory),
		entries:    opts.Entries,
		changes:    make(chan string, 16),
	}
	if opts.Logs != nil {
		m.log = opts.Logs.For("tui")
	}
	m.help.Styles.ShortKey = m.styles.AccentStyle()
	m.help.Styles.FullKey = m.styles.AccentStyle()
	m.help.Styles.ShortDesc = m.styles.HelpStyle()
	m.help.Styles.FullDesc = m.styles.HelpStyle()

	for _, ct := range cfg.Containers {
		if err := m.mountContainer(ct); err != nil {
			m.Close()
			return Model{}, err
		}
	}

	m.current = cfg.Containers[0].ID
	if opts.Start != "" {
		if _, ok := m.registry.Get(opts.Start); !ok {
			m.Close()
			return Model{}, fmt.Errorf("unknown container %q", opts.Start)
		}
		m.current = opts.Start
	}

	if opts.Watch {
		m.watchStore(opts.StorePath)
	}
	return m, nil
}

func (m *Model) mountContainer(ct config.ContainerConfig) error {
	sc := scene.NewMemory(geometry.Rect{Width: 80, Height: 20})
	contents := make(map[string]Content)
	history := m.events
	bus := &events.Bus{}
	bus.Subscribe(func(e events.Event) {
		history.Record(e)
		if e.Kind == events.PanelClosed {
			for _, id := range e.PanelIDs {
				if c, ok := contents[id]; ok {
					c.OnUnload()
					delete(contents, id)
				}
			}
		}
	})

	specs := make([]engine.PanelSpec, 0, len(ct.Panels))
	panels := make([]config.PanelConfig, 0, len(ct.Panels))
	for _, p := range ct.Panels {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		panels = append(panels, p)
		specs = append(specs, engine.PanelSpec{
			ID:              p.ID,
			Title:           p.Title,
			Width:           p.Width,
			MinWidth:        p.MinWidth,
			ControlsEnabled: p.Controls,
			StackedUnder:    p.StackedUnder,
		})
	}

	_, loadErr := persist.NewAdapter(m.store, ct.ID, nil).Load()
	fresh := errors.Is(loadErr, persist.ErrNoState)

	eng, err := m.registry.Mount(ct.ID, engine.Options{
		Scene:             sc,
		Store:             m.store,
		Bus:               bus,
		Panels:            specs,
		EdgeThreshold:     m.cfg.Dock.EdgeThreshold,
		SplitterProximity: m.cfg.Dock.SplitterProximity,
		HeaderHeight:      m.cfg.Dock.HeaderHeight,
	})
	if err != nil {
		return err
	}
	// Saved flags win over configured ones.
	if fresh {
		eng.SetLocked(m.cfg.Dock.Locked)
		eng.SetAllowStacking(m.cfg.StackingAllowed())
	}

	env := ContentEnv{
		ContainerID: ct.ID,
		Logs:        m.logRing,
		Events:      m.events,
		State:       eng.GetState,
		Styles:      m.styles,
	}
	for _, p := range panels {
		c := m.contentReg.New(p)
		c.OnLoad(env)
		contents[p.ID] = c
	}
	m.scenes[ct.ID] = sc
	m.contents[ct.ID] = contents
	if order := eng.Order(); len(order) > 0 {
		m.focus[ct.ID] = order[0]
	}
	m.log.Debug("container ready", "container", ct.ID, "panels", len(panels))
	return nil
}

// watchStore follows writes to the store made by other processes. Each
// notice carries the container id, or "" when any container may have
// changed.
func (m *Model) watchStore(sqlitePath string) {
	changes := m.changes
	notify := func(id string) {
		select {
		case changes <- id:
		default:
		}
	}
	switch s := m.store.(type) {
	case *persist.FileStore:
		for _, id := range m.registry.IDs() {
			w, err := persist.Watch(s.Path(persist.Key(id)), func(string) { notify(id) }, m.log)
			if err != nil {
				m.log.Warn("store watch failed", "container", id, "error", err)
				continue
			}
			m.watchers = append(m.watchers, w)
		}
	case *persist.SQLiteStore:
		if sqlitePath == "" {
			return
		}
		w, err := persist.Watch(sqlitePath, func(string) { notify("") }, m.log)
		if err != nil {
			m.log.Warn("store watch failed", "path", sqlitePath, "error", err)
			return
		}
		m.watchers = append(m.watchers, w)
	}
}

// Close stops the watchers and unmounts every container.
func (m Model) Close() {
	for _, w := range m.watchers {
		_ = w.Close()
	}
	for _, contents := range m.contents {
		for _, c := range contents {
			c.OnUnload()
		}
	}
	m.registry.Close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForLogEntries(m.entries),
		waitForStoreChange(m.changes),
	)
}

// engine returns the shown container and its scene.
func (m Model) engine() (*engine.Engine, *scene.Memory) {
	eng, _ := m.registry.Get(m.current)
	return eng, m.scenes[m.current]
}

// focused returns the focused top-level panel of the shown container,
// falling back to the first one when it left the row.
func (m Model) focused() string {
	eng, _ := m.engine()
	order := eng.Order()
	if len(order) == 0 {
		return ""
	}
	id := m.focus[m.current]
	for _, o := range order {
		if o == id {
			return id
		}
	}
	m.focus[m.current] = order[0]
	return order[0]
}

// activeOf returns the visible panel of a top-level slot.
func activeOf(eng *engine.Engine, host string) string {
	if g, ok := eng.Group(host); ok {
		return g.ActiveID
	}
	return host
}

func (m Model) content(containerID, panelID string) (Content, bool) {
	c, ok := m.contents[containerID][panelID]
	return c, ok
}
