// Package reconciler diffs the toast list into live lifecycle machines,
// position viewports and auto-dismiss timers.
//
// The Reconciler is the single subscriber of a store. It owns its timer
// registry and instance map; nothing else mutates them.
package reconciler

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/sileo/internal/filter"
	"github.com/aretw0/sileo/internal/lifecycle"
	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
)

// Reconciler keeps a surface in step with the toast list.
// It is not safe for concurrent use; drive it from its scheduler.
type Reconciler struct {
	surface   ports.Surface
	sched     ports.Scheduler
	dismisser ports.Dismisser
	filters   lifecycle.FilterSource

	position domain.Position
	offset   domain.Offset
	logger   *slog.Logger
	hooks    domain.Hooks

	viewports map[domain.Position]ports.Viewport
	instances map[string]*lifecycle.Machine
	positions map[string]domain.Position
	timers    map[string]ports.Timer

	hovering bool
	active   string
	latest   string
	current  []domain.Item
}

// New creates a reconciler drawing on surface. Expired toasts are handed to dismisser.
func New(surface ports.Surface, sched ports.Scheduler, dismisser ports.Dismisser, opts ...Option) *Reconciler {
	r := &Reconciler{
		surface:   surface,
		sched:     sched,
		dismisser: dismisser,
		position:  domain.DefaultPosition,
		logger:    logging.NewNop(),
		viewports: make(map[domain.Position]ports.Viewport),
		instances: make(map[string]*lifecycle.Machine),
		positions: make(map[string]domain.Position),
		timers:    make(map[string]ports.Timer),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.filters == nil {
		r.filters = filter.NewPool(surface)
	}
	return r
}

var _ ports.Listener = (*Reconciler)(nil)

// Sync reconciles the surface against items.
func (r *Reconciler) Sync(items []domain.Item) {
	r.current = items

	r.latest = ""
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Exiting {
			r.latest = items[i].ID
			break
		}
	}

	ids := make(map[string]bool, len(items))
	keys := make(map[string]bool, len(items))
	for _, it := range items {
		ids[it.ID] = true
		keys[domain.TimerKey(it)] = true
	}
	if r.active == "" || !ids[r.active] {
		r.active = r.latest
	}

	for key, t := range r.timers {
		if !keys[key] {
			t.Stop()
			delete(r.timers, key)
			r.timerEvent(key, domain.TimerDropped)
		}
	}

	// While an id is being replaced it may appear twice; the later entry
	// configures the machine.
	last := make(map[string]string, len(items))
	lastPos := make(map[string]domain.Position, len(items))
	byPosition := make(map[domain.Position][]domain.Item)
	for _, it := range items {
		pos := r.positionOf(it)
		last[it.ID] = it.InstanceID
		lastPos[it.ID] = pos
		byPosition[pos] = append(byPosition[pos], it)
	}

	// A toast that changes position is rebuilt in its new viewport.
	destroyed := 0
	for id, m := range r.instances {
		if ids[id] && r.positions[id] == lastPos[id] {
			continue
		}
		if ids[id] {
			r.logger.Debug("toast moved, rebuilding", "id", id, "from", r.positions[id], "to", lastPos[id])
		}
		m.Destroy()
		delete(r.instances, id)
		delete(r.positions, id)
		destroyed++
	}

	for pos, vp := range r.viewports {
		if len(byPosition[pos]) == 0 {
			vp.Remove()
			delete(r.viewports, pos)
		}
	}

	created := 0
	for _, pos := range domain.Positions {
		group := byPosition[pos]
		if len(group) == 0 {
			continue
		}
		vp := r.ensureViewport(pos)
		for _, it := range group {
			if last[it.ID] != it.InstanceID {
				continue
			}
			cfg := r.config(it)
			if m, ok := r.instances[it.ID]; ok {
				m.Update(cfg)
				continue
			}
			host := r.surface.NewHost(it.ID)
			vp.Append(host)
			r.instances[it.ID] = lifecycle.New(cfg, host, r.sched,
				lifecycle.WithLogger(r.logger),
				lifecycle.WithFilters(r.filters),
			)
			r.positions[it.ID] = pos
			created++
		}
	}
	for pos := range byPosition {
		if !pos.Valid() {
			r.logger.Warn("toasts at unknown position are not rendered", "position", pos, "count", len(byPosition[pos]))
		}
	}

	r.scheduleTimers(items)

	if r.hooks.OnSync != nil {
		r.hooks.OnSync(&domain.SyncEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSync},
			Items:     len(items),
			Instances: len(r.instances),
			Timers:    len(r.timers),
			Created:   created,
			Destroyed: destroyed,
		})
	}
}

// Instance returns the live machine of id.
func (r *Reconciler) Instance(id string) (*lifecycle.Machine, bool) {
	m, ok := r.instances[id]
	return m, ok
}

// State is a point-in-time view of the reconciler bookkeeping.
type State struct {
	Instances []string
	Timers    []string
	Active    string
	Latest    string
	Hovering  bool
}

// Snapshot returns the current bookkeeping, with ids and keys sorted.
func (r *Reconciler) Snapshot() State {
	s := State{
		Instances: make([]string, 0, len(r.instances)),
		Timers:    make([]string, 0, len(r.timers)),
		Active:    r.active,
		Latest:    r.latest,
		Hovering:  r.hovering,
	}
	for id := range r.instances {
		s.Instances = append(s.Instances, id)
	}
	for key := range r.timers {
		s.Timers = append(s.Timers, key)
	}
	slices.Sort(s.Instances)
	slices.Sort(s.Timers)
	return s
}

// Destroy cancels every timer, destroys every machine and removes every viewport.
func (r *Reconciler) Destroy() {
	r.clearTimers(domain.TimerDropped)
	for id, m := range r.instances {
		m.Destroy()
		delete(r.instances, id)
		delete(r.positions, id)
	}
	for pos, vp := range r.viewports {
		vp.Remove()
		delete(r.viewports, pos)
	}
	r.current = nil
}

func (r *Reconciler) positionOf(it domain.Item) domain.Position {
	if it.Position != "" {
		return it.Position
	}
	return r.position
}

func (r *Reconciler) ensureViewport(pos domain.Position) ports.Viewport {
	if vp, ok := r.viewports[pos]; ok {
		return vp
	}
	vp := r.surface.Viewport(domain.ViewportSpec{
		Position:   pos,
		LiveRegion: domain.LiveRegion,
		Offset:     r.offset.For(pos),
	})
	r.viewports[pos] = vp
	return vp
}

// config projects an item into a lifecycle configuration. Callbacks capture
// the id by value.
func (r *Reconciler) config(it domain.Item) lifecycle.Config {
	id := it.ID
	pos := r.positionOf(it)
	return lifecycle.Config{
		ID:                id,
		State:             it.State,
		Title:             it.Title,
		Description:       it.Description,
		Icon:              it.Icon,
		Styles:            it.Styles,
		Button:            it.Button,
		Fill:              it.Fill,
		Roundness:         it.Roundness,
		Align:             domain.PillAlign(pos),
		Edge:              domain.ExpandEdge(pos),
		Exiting:           it.Exiting,
		AutoExpandDelay:   it.AutoExpandDelay,
		AutoCollapseDelay: it.AutoCollapseDelay,
		CanExpand:         r.active == "" || r.active == id,
		RefreshKey:        it.InstanceID,
		Events: lifecycle.Events{
			OnMouseEnter: func() { r.mouseEnter(id) },
			OnMouseLeave: func() { r.mouseLeave(id) },
			OnDismiss:    func() { r.dismisser.Dismiss(id) },
		},
	}
}

// scheduleTimers arms one auto-dismiss timer per eligible item lacking one.
// Nothing is armed while hovering.
func (r *Reconciler) scheduleTimers(items []domain.Item) {
	if r.hovering {
		return
	}
	for _, it := range items {
		if it.Exiting || !it.Expires() {
			continue
		}
		key := domain.TimerKey(it)
		if _, ok := r.timers[key]; ok {
			continue
		}
		id := it.ID
		r.timers[key] = r.sched.AfterFunc(it.Lifetime, func() {
			delete(r.timers, key)
			r.timerEvent(key, domain.TimerFired)
			r.dismisser.Dismiss(id)
		})
		r.timerEvent(key, domain.TimerArmed)
	}
}

func (r *Reconciler) clearTimers(action domain.TimerAction) {
	for key, t := range r.timers {
		t.Stop()
		delete(r.timers, key)
		r.timerEvent(key, action)
	}
}

func (r *Reconciler) mouseEnter(id string) {
	r.active = id
	if r.hovering {
		return
	}
	r.hovering = true
	r.logger.Debug("hover started, pausing auto-dismiss", "id", id, "timers", len(r.timers))
	r.clearTimers(domain.TimerPaused)
	r.refreshCanExpand()
}

func (r *Reconciler) mouseLeave(id string) {
	r.active = r.latest
	if !r.hovering {
		return
	}
	r.hovering = false
	r.logger.Debug("hover ended, resuming auto-dismiss", "id", id)
	r.scheduleTimers(r.current)
	r.refreshCanExpand()
}

// refreshCanExpand pushes the current expansion policy into every machine.
// The last item holding an id wins, as in Sync.
func (r *Reconciler) refreshCanExpand() {
	for id, m := range r.instances {
		for i := len(r.current) - 1; i >= 0; i-- {
			if r.current[i].ID == id {
				m.Update(r.config(r.current[i]))
				break
			}
		}
	}
}

func (r *Reconciler) timerEvent(key string, action domain.TimerAction) {
	if r.hooks.OnTimer == nil {
		return
	}
	r.hooks.OnTimer(&domain.TimerEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTimer},
		Key:       key,
		Action:    action,
	})
}
