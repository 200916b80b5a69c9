// pattern: Imperative Shell

// Package engine runs one dock container: it owns the layout model, drives
// the scene from it, turns pointer input into drags and resizes and saves
// the arrangement after every settled change.
//
// An Engine is not safe for concurrent use. The host calls it from a single
// event loop.
package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"dockrow/internal/events"
	"dockrow/internal/geometry"
	"dockrow/internal/layout"
	"dockrow/internal/logging"
	"dockrow/internal/persist"
	"dockrow/internal/scene"
)

var (
	ErrDuplicatePanel = layout.ErrDuplicatePanel
	ErrUnknownPanel   = layout.ErrUnknownPanel
)

// Defaults for Options fields left at zero.
const (
	DefaultEdgeThreshold     = 2
	DefaultSplitterProximity = 1
	DefaultHeaderHeight      = 1
	DefaultDragThreshold     = 1
	DefaultSplitterWidth     = 1
)

// Scene node ids for the engine's transient nodes.
const (
	ProxyNodeID   = "drag-proxy"
	PreviewNodeID = "dock-preview"
)

// Z bands for nodes that are not panels. Maximized groups sit between
// splitters and the drag overlay.
const (
	ZSplitter = 500
	ZPreview  = 5000
	ZProxy    = 5001
)

// PanelNodeID is the scene node id of a panel.
func PanelNodeID(id string) string { return "panel:" + id }

// SplitterNodeID is the scene node id of the splitter at index i.
func SplitterNodeID(i int) string { return fmt.Sprintf("splitter:%d", i) }

// PanelSpec declares a panel to add.
type PanelSpec struct {
	ID              string // generated when empty
	Title           string
	Width           string // "30%", "240px", "240" or empty
	MinWidth        float64
	ControlsEnabled bool
	StackedUnder    string // host id, applied once when the panel is attached
}

// Options configures an Engine.
type Options struct {
	ContainerID string
	Scene       scene.Scene
	Store       persist.Store // defaults to an in-memory store
	Bus         *events.Bus   // defaults to a private bus
	Logger      *logging.ScopedLogger
	Panels      []PanelSpec // initial children

	EdgeThreshold     float64
	SplitterProximity float64
	HeaderHeight      float64
	DragThreshold     float64
	SplitterWidth     float64
}

func (o *Options) applyDefaults() {
	if o.Store == nil {
		o.Store = persist.NewMemory()
	}
	if o.Bus == nil {
		o.Bus = &events.Bus{}
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger()
	}
	if o.EdgeThreshold <= 0 {
		o.EdgeThreshold = DefaultEdgeThreshold
	}
	if o.SplitterProximity <= 0 {
		o.SplitterProximity = DefaultSplitterProximity
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	if o.DragThreshold <= 0 {
		o.DragThreshold = DefaultDragThreshold
	}
	if o.SplitterWidth <= 0 {
		o.SplitterWidth = DefaultSplitterWidth
	}
}

// Engine is one dock container.
type Engine struct {
	id      string
	opts    Options
	scene   scene.Scene
	adapter *persist.Adapter
	bus     *events.Bus
	log     *logging.ScopedLogger

	model     *layout.Model
	pending   map[string]string // panel id -> host declared before mount
	splitters []layout.Splitter
	nodes     map[string]bool // panel nodes created in the scene
	nSplit    int             // splitter nodes created in the scene

	mounted      bool
	stopListener func()

	drag   *dragState
	resize *resizeState
}

// New creates an unmounted engine and adds Options.Panels.
func New(opts Options) (*Engine, error) {
	if opts.ContainerID == "" {
		return nil, fmt.Errorf("container id is required")
	}
	if opts.Scene == nil {
		return nil, fmt.Errorf("container %q: scene is required", opts.ContainerID)
	}
	opts.applyDefaults()

	e := &Engine{
		id:      opts.ContainerID,
		opts:    opts,
		scene:   opts.Scene,
		adapter: persist.NewAdapter(opts.Store, opts.ContainerID, opts.Logger),
		bus:     opts.Bus,
		log:     opts.Logger,
		model:   layout.New(),
		pending: make(map[string]string),
		nodes:   make(map[string]bool),
	}
	for _, spec := range opts.Panels {
		if _, err := e.AddPanel(spec); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ID returns the container id.
func (e *Engine) ID() string { return e.id }

// Events returns the bus the engine emits on.
func (e *Engine) Events() *events.Bus { return e.bus }

// Adapter returns the persistence adapter.
func (e *Engine) Adapter() *persist.Adapter { return e.adapter }

// Mounted reports whether Mount has run.
func (e *Engine) Mounted() bool { return e.mounted }

// AddPanel attaches a panel and returns its id. Before Mount the panel
// waits for the initial distribution; afterwards it joins the row at its
// declared width, or an equal share, and the row is rebalanced.
func (e *Engine) AddPanel(spec PanelSpec) (string, error) {
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}
	declared, err := geometry.ParseWidth(spec.Width)
	if err != nil {
		e.log.Warn("ignoring panel width", "panel", spec.ID, "width", spec.Width, "error", err)
		declared = geometry.Declared{}
	}
	p := layout.Panel{
		ID:              spec.ID,
		Title:           spec.Title,
		MinWidth:        spec.MinWidth,
		ControlsEnabled: spec.ControlsEnabled,
		Declared:        declared,
	}
	if err := e.model.Add(p); err != nil {
		return "", err
	}

	if !e.mounted {
		if spec.StackedUnder != "" {
			e.pending[spec.ID] = spec.StackedUnder
		}
		return spec.ID, nil
	}

	np, _ := e.model.Panel(spec.ID)
	n := float64(len(e.model.Order()))
	np.Width = 100 / n
	if declared.IsSet() {
		np.Width = declared.Percent(e.width())
	}
	change := layout.Change{OrderChanged: true}
	if spec.StackedUnder != "" {
		c, err := layout.Stack(e.model, spec.ID, spec.StackedUnder)
		if err != nil {
			e.log.Warn("ignoring stacked-under", "panel", spec.ID, "host", spec.StackedUnder, "error", err)
		} else {
			change = c
			change.OrderChanged = true
		}
	}
	e.settle()
	e.commit(change)
	return spec.ID, nil
}

// Mount distributes widths, applies declared stacking, rehydrates the
// saved arrangement and starts following container size changes.
func (e *Engine) Mount() {
	if e.mounted {
		return
	}
	e.mounted = true

	layout.Distribute(e.model, e.width())
	for _, id := range e.model.Order() {
		host, ok := e.pending[id]
		if !ok {
			continue
		}
		if _, err := layout.Stack(e.model, id, host); err != nil {
			e.log.Warn("ignoring stacked-under", "panel", id, "host", host, "error", err)
		}
	}
	// Members were taken out of the row; their slots are shared out again.
	if len(e.pending) > 0 {
		e.settle()
		clear(e.pending)
	}

	e.stopListener = e.scene.OnResize(e.containerResized)
	e.RestoreState(nil)
	e.sync()
	e.log.Debug("container mounted", "panels", e.model.Len())
}

// Unmount cancels any gesture in flight and removes every node the engine
// created. The model is kept so the container can be mounted again.
func (e *Engine) Unmount() {
	if !e.mounted {
		return
	}
	e.cancelGestures()
	if e.stopListener != nil {
		e.stopListener()
		e.stopListener = nil
	}
	for id := range e.nodes {
		e.scene.Remove(PanelNodeID(id))
	}
	clear(e.nodes)
	for i := 0; i < e.nSplit; i++ {
		e.scene.Remove(SplitterNodeID(i))
	}
	e.nSplit = 0
	e.splitters = nil
	e.mounted = false
	e.log.Debug("container unmounted")
}

// ClosePanel removes a panel unconditionally. A host with members hands
// its slot to the first member.
// Any drag or resize in progress is cancelled first.
func (e *Engine) ClosePanel(id string) error {
	if !e.model.Has(id) {
		return fmt.Errorf("close %q: %w", id, ErrUnknownPanel)
	}
	e.cancelGestures()
	change, err := layout.Remove(e.model, id)
	if err != nil {
		return err
	}
	if e.nodes[id] {
		e.scene.Remove(PanelNodeID(id))
		delete(e.nodes, id)
	}
	e.settle()
	e.sync()
	e.Save()
	e.emit(events.PanelClosed, id)
	if len(change.Stacked) > 0 {
		e.emit(events.StackChanged, dedupe(without(change.Stacked, id))...)
	}
	if change.OrderChanged {
		e.emit(events.OrderChanged, e.model.Order()...)
	}
	e.log.Debug("panel closed", "panel", id, "promoted", change.Promoted)
	return nil
}

// RequestClose asks the before-close handler and closes the panel only if
// it allows. It reports whether the panel was closed.
func (e *Engine) RequestClose(id string) bool {
	if !e.model.Has(id) {
		e.log.Warn("close requested for unknown panel", "panel", id)
		return false
	}
	if !e.bus.AllowClose(e.id, id) {
		e.log.Info("close vetoed", "panel", id)
		return false
	}
	return e.ClosePanel(id) == nil
}

// ToggleMaximize flips the maximized state of id's slot. Maximizing one
// slot restores any other maximized slot.
func (e *Engine) ToggleMaximize(id string) error {
	if !e.model.Has(id) {
		return fmt.Errorf("maximize %q: %w", id, ErrUnknownPanel)
	}
	host := e.model.HostOf(id)
	hp, _ := e.model.Panel(host)
	hp.Maximized = !hp.Maximized

	var restored []string
	if hp.Maximized {
		for _, p := range e.model.TopLevel() {
			if p.ID != host && p.Maximized {
				p.Maximized = false
				restored = append(restored, p.ID)
			}
		}
	}
	layout.SyncMembers(e.model)
	e.sync()
	e.Save()

	for _, r := range restored {
		e.emit(events.PanelRestored, e.slotIDs(r)...)
	}
	if hp.Maximized {
		e.emit(events.PanelMaximized, e.slotIDs(host)...)
	} else {
		e.emit(events.PanelRestored, e.slotIDs(host)...)
	}
	return nil
}

// Activate shows member in host's stack group. An empty member selects
// the host.
func (e *Engine) Activate(host, member string) error {
	if err := layout.Activate(e.model, host, member); err != nil {
		return err
	}
	e.sync()
	e.Save()
	return nil
}

// Stack moves panel into host's stack group.
func (e *Engine) Stack(panel, host string) error {
	e.cancelGestures()
	change, err := layout.Stack(e.model, panel, host)
	if err != nil {
		return err
	}
	e.settle()
	e.commit(change)
	return nil
}

// Unstack returns a member to the row right of its host.
func (e *Engine) Unstack(panel string) error {
	e.cancelGestures()
	change, err := layout.Unstack(e.model, panel)
	if err != nil {
		return err
	}
	e.settle()
	e.commit(change)
	return nil
}

// SetTitle renames a panel; its tab follows.
func (e *Engine) SetTitle(id, title string) error {
	if err := e.model.SetTitle(id, title); err != nil {
		return err
	}
	e.Save()
	return nil
}

// SetLocked toggles drag repositioning. A drag already in flight is not
// affected.
func (e *Engine) SetLocked(locked bool) {
	if e.model.Locked == locked {
		return
	}
	e.model.Locked = locked
	e.Save()
}

// SetAllowStacking toggles stack-on-drop for the next drag.
func (e *Engine) SetAllowStacking(allow bool) {
	if e.model.AllowStacking == allow {
		return
	}
	e.model.AllowStacking = allow
	e.Save()
}

// Locked reports whether dragging is disabled.
func (e *Engine) Locked() bool { return e.model.Locked }

// AllowStacking reports whether drops may stack panels.
func (e *Engine) AllowStacking() bool { return e.model.AllowStacking }

// Save writes the current arrangement. It is a no-op mid-gesture or before
// Mount, and never fails.
func (e *Engine) Save() {
	if !e.mounted || e.drag != nil || e.resize != nil {
		return
	}
	e.adapter.Save(e.GetState())
}

// commit finishes a structural change: scene sync, save and events.
func (e *Engine) commit(change layout.Change) {
	e.sync()
	e.Save()
	if len(change.Stacked) > 0 {
		e.emit(events.StackChanged, dedupe(change.Stacked)...)
	}
	if change.OrderChanged {
		e.emit(events.OrderChanged, e.model.Order()...)
	}
}

func (e *Engine) settle() {
	layout.Settle(e.model, e.width())
}

func (e *Engine) containerResized(geometry.Rect) {
	layout.EnforceMinimums(e.model, e.width())
	layout.SyncMembers(e.model)
	e.sync()
}

func (e *Engine) width() float64 {
	return e.scene.Container().Width
}

func (e *Engine) emit(kind events.Kind, ids ...string) {
	e.bus.Emit(events.Event{Kind: kind, ContainerID: e.id, PanelIDs: ids})
}

// slotIDs returns host followed by its members.
func (e *Engine) slotIDs(host string) []string {
	ids := []string{host}
	if g, ok := e.model.Group(host); ok {
		ids = append(ids, g.MemberIDs...)
	}
	return ids
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func without(ids []string, drop string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(s string) bool { return s == drop })
}
