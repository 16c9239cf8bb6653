// Package lifecycle implements the per-toast visual state machine.
//
// A Machine owns exactly one host. It decides when the toast is ready,
// expanded or collapsed, swaps content with a collapse-first transition,
// keeps a short-lived previous header layer for cross-fades and turns
// vertical drags into dismiss requests. Every visual variable is recomputed
// into a domain.Frame and pushed to the host on each change.
//
// A Machine is not safe for concurrent use; drive it from its scheduler.
package lifecycle

import (
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
	"github.com/aretw0/sileo/pkg/scheduler"
)

// Machine is the lifecycle of one toast instance.
type Machine struct {
	id      string
	host    ports.Host
	sched   ports.Scheduler
	filters FilterSource
	logger  *slog.Logger

	align     domain.Align
	edge      domain.Edge
	roundness float64
	blur      float64
	filterID  string
	events    Events

	view    view
	pending *pendingSwap
	lastKey string

	ready     bool
	expanded  bool
	exiting   bool
	canExpand bool
	destroyed bool

	autoExpand   *time.Duration
	autoCollapse *time.Duration

	pillWidth      float64
	contentHeight  float64
	frozenExpanded float64

	header     domain.Header
	prevHeader *domain.Header
	hasBody    bool

	swap          *scheduler.Gate
	readyTimer    ports.Timer
	expandTimer   ports.Timer
	collapseTimer ports.Timer
	headerExit    ports.Timer
	headerFrame   ports.Timer
	contentFrame  ports.Timer

	stopHeaderObs  func()
	stopContentObs func()

	pointerStart *float64
	swipeOffset  float64

	frame domain.Frame
}

type pendingSwap struct {
	key  string
	view view
}

// New builds the machine for cfg, renders the collapsed toast and schedules
// readiness for the next frame.
func New(cfg Config, host ports.Host, sched ports.Scheduler, opts ...Option) *Machine {
	m := &Machine{
		id:     cfg.ID,
		host:   host,
		sched:  sched,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.roundness = domain.DefaultRoundness
	if cfg.Roundness != nil {
		m.roundness = math.Max(0, *cfg.Roundness)
	}
	m.blur = m.roundness * domain.BlurRatio
	if m.filters != nil {
		m.filterID = m.filters.ID(m.blur)
	}

	m.align = cfg.Align
	m.edge = cfg.Edge
	m.events = cfg.Events
	m.canExpand = cfg.CanExpand
	m.exiting = cfg.Exiting
	m.autoExpand = cfg.AutoExpandDelay
	m.autoCollapse = cfg.AutoCollapseDelay
	m.lastKey = cfg.RefreshKey
	m.frozenExpanded = domain.Height * domain.MinExpandRatio

	m.view = viewOf(cfg)
	m.header = m.headerOf(m.view)
	m.hasBody = m.hasDesc()

	m.render()
	m.observeHeader()
	m.measureHeader()
	if m.hasBody {
		m.observeContent()
		m.measureContent()
	}

	m.readyTimer = sched.NextFrame(func() {
		m.readyTimer = nil
		if m.destroyed {
			return
		}
		m.ready = true
		m.render()
		m.scheduleAuto()
	})
	return m
}

// ID returns the toast id.
func (m *Machine) ID() string { return m.id }

// Frame returns the last rendered frame.
func (m *Machine) Frame() domain.Frame { return m.frame }

// Ready reports whether the first frame has passed.
func (m *Machine) Ready() bool { return m.ready }

// Open reports whether the body is visible.
func (m *Machine) Open() bool { return m.open() }

// CanExpand reports whether the toast is currently allowed to expand.
func (m *Machine) CanExpand() bool { return m.allowExpand() }

// Destroyed reports whether Destroy was called.
func (m *Machine) Destroyed() bool { return m.destroyed }

// Phase returns the externally visible state.
func (m *Machine) Phase() Phase {
	switch {
	case m.exiting:
		return PhaseExiting
	case m.pending != nil:
		return PhasePendingSwap
	case m.open():
		return PhaseExpanded
	default:
		return PhaseCollapsed
	}
}

// Update pushes a new configuration into the machine.
func (m *Machine) Update(cfg Config) {
	if m.destroyed {
		return
	}

	wasExiting := m.exiting
	m.align = cfg.Align
	m.edge = cfg.Edge
	m.events = cfg.Events
	m.canExpand = cfg.CanExpand
	m.exiting = cfg.Exiting
	m.autoExpand = cfg.AutoExpandDelay
	m.autoCollapse = cfg.AutoCollapseDelay

	if m.exiting && !wasExiting {
		m.stopAuto()
		m.pointerStart = nil
		m.swipeOffset = 0
	}

	next := viewOf(cfg)
	key := cfg.RefreshKey

	if key == "" {
		m.swap.Cancel()
		m.swap = nil
		m.pending = nil
		m.lastKey = ""
		m.applyView(next)
		m.scheduleAuto()
		return
	}

	if key == m.lastKey {
		m.render()
		return
	}

	m.lastKey = key
	m.swap.Cancel()
	m.swap = nil

	if m.open() {
		m.logger.Debug("content changed while open, collapsing first", "id", m.id, "key", key)
		m.stopAuto()
		m.pending = &pendingSwap{key: key, view: next}
		m.setExpanded(false)
		m.swap = scheduler.FirstOf(m.sched, domain.SwapCollapse, m.applyPending)
		return
	}

	m.pending = nil
	m.applyView(next)
	m.scheduleAuto()
}

// CollapseDone reports that the host finished its collapse transition.
// A queued content swap is applied immediately instead of waiting for the
// fallback deadline.
func (m *Machine) CollapseDone() {
	if m.destroyed || m.open() {
		return
	}
	m.swap.Signal()
}

// PointerEnter handles the pointer entering the toast.
func (m *Machine) PointerEnter() {
	if m.destroyed {
		return
	}
	if m.events.OnMouseEnter != nil {
		m.events.OnMouseEnter()
	}
	if m.hasDesc() {
		m.setExpanded(true)
	}
}

// PointerLeave handles the pointer leaving the toast.
func (m *Machine) PointerLeave() {
	if m.destroyed {
		return
	}
	if m.events.OnMouseLeave != nil {
		m.events.OnMouseLeave()
	}
	m.setExpanded(false)
}

// PointerDown starts tracking a vertical drag at y.
// Drags that start on the button are not tracked.
func (m *Machine) PointerDown(y float64, onButton bool) {
	if m.destroyed || m.exiting || m.events.OnDismiss == nil || onButton {
		return
	}
	m.pointerStart = &y
}

// PointerMove updates the drag offset, clamped to SwipeMax.
func (m *Machine) PointerMove(y float64) {
	if m.pointerStart == nil {
		return
	}
	m.swipeOffset = clampSwipe(y - *m.pointerStart)
	m.render()
}

// PointerUp ends the drag. A travel beyond SwipeDismiss dismisses the toast.
func (m *Machine) PointerUp(y float64) {
	if m.pointerStart == nil {
		return
	}
	dy := y - *m.pointerStart
	m.pointerStart = nil
	m.swipeOffset = 0
	m.render()
	if math.Abs(dy) > domain.SwipeDismiss && m.events.OnDismiss != nil {
		m.logger.Debug("swipe dismiss", "id", m.id, "travel", dy)
		m.events.OnDismiss()
	}
}

// Click activates the button, if the toast has one.
func (m *Machine) Click() {
	if m.destroyed || m.view.button == nil || m.view.button.OnClick == nil {
		return
	}
	m.view.button.OnClick()
}

// Destroy cancels every timer and observer and removes the host.
// It is idempotent.
func (m *Machine) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.swap.Cancel()
	m.swap = nil
	m.pending = nil
	m.stopAuto()
	for _, t := range []*ports.Timer{&m.readyTimer, &m.headerExit, &m.headerFrame, &m.contentFrame} {
		stop(t)
	}
	if m.stopHeaderObs != nil {
		m.stopHeaderObs()
		m.stopHeaderObs = nil
	}
	if m.stopContentObs != nil {
		m.stopContentObs()
		m.stopContentObs = nil
	}
	m.host.Remove()
}

func (m *Machine) hasDesc() bool {
	return domain.Present(m.view.description) || m.view.button != nil
}

func (m *Machine) loading() bool {
	return m.view.state == domain.StateLoading
}

func (m *Machine) open() bool {
	return m.hasDesc() && m.expanded && !m.loading()
}

func (m *Machine) allowExpand() bool {
	return !m.loading() && m.canExpand
}

func (m *Machine) setExpanded(v bool) {
	if m.expanded == v {
		return
	}
	m.expanded = v
	m.render()
}

func (m *Machine) stopAuto() {
	stop(&m.expandTimer)
	stop(&m.collapseTimer)
}

// scheduleAuto arms the autopilot expand and collapse timers for the
// current content.
func (m *Machine) scheduleAuto() {
	m.stopAuto()
	if !m.hasDesc() {
		return
	}
	if m.exiting || !m.allowExpand() {
		m.setExpanded(false)
		return
	}
	if m.autoExpand == nil && m.autoCollapse == nil {
		return
	}

	var expand, collapse time.Duration
	if m.autoExpand != nil {
		expand = *m.autoExpand
	}
	if m.autoCollapse != nil {
		collapse = *m.autoCollapse
	}

	if expand > 0 {
		m.expandTimer = m.sched.AfterFunc(expand, func() {
			m.expandTimer = nil
			m.setExpanded(true)
		})
	} else {
		m.setExpanded(true)
	}
	if collapse > 0 {
		m.collapseTimer = m.sched.AfterFunc(collapse, func() {
			m.collapseTimer = nil
			m.setExpanded(false)
		})
	}
}

func (m *Machine) applyPending() {
	m.swap = nil
	if m.destroyed || m.pending == nil {
		return
	}
	p := m.pending
	m.pending = nil
	m.logger.Debug("applying queued content", "id", m.id, "key", p.key)
	m.applyView(p.view)
	m.scheduleAuto()
}

// applyView makes v the rendered content.
func (m *Machine) applyView(v view) {
	m.view = v
	m.updateHeader()

	had := m.hasBody
	m.hasBody = m.hasDesc()
	switch {
	case m.hasBody && !had:
		m.observeContent()
	case !m.hasBody && had:
		if m.stopContentObs != nil {
			m.stopContentObs()
			m.stopContentObs = nil
		}
		stop(&m.contentFrame)
		m.contentHeight = 0
	}

	m.render()
	if m.hasBody {
		m.measureContent()
	}
}

// updateHeader keeps the current layer when its identity is unchanged, and
// otherwise pushes it to the previous slot for HeaderExit.
func (m *Machine) updateHeader() {
	next := m.headerOf(m.view)
	if next.Key == m.header.Key {
		m.header = next
		return
	}

	prev := m.header
	m.prevHeader = &prev
	m.header = next

	stop(&m.headerExit)
	m.headerExit = m.sched.AfterFunc(domain.HeaderExit, func() {
		m.headerExit = nil
		m.prevHeader = nil
		m.render()
	})

	m.render()
	m.observeHeader()
	m.measureHeader()
}

func (m *Machine) headerOf(v view) domain.Header {
	return domain.Header{
		Key:    domain.HeaderKey(v.state, v.title),
		State:  v.state,
		Title:  v.title,
		Icon:   v.icon,
		Styles: v.styles,
	}
}

func (m *Machine) observeHeader() {
	if m.stopHeaderObs != nil {
		m.stopHeaderObs()
	}
	m.stopHeaderObs = m.host.Observe(domain.PartHeader, func() {
		if m.destroyed {
			return
		}
		stop(&m.headerFrame)
		m.headerFrame = m.sched.NextFrame(func() {
			m.headerFrame = nil
			m.measureHeader()
		})
	})
}

func (m *Machine) observeContent() {
	if m.stopContentObs != nil {
		m.stopContentObs()
	}
	m.stopContentObs = m.host.Observe(domain.PartContent, func() {
		if m.destroyed {
			return
		}
		stop(&m.contentFrame)
		m.contentFrame = m.sched.NextFrame(func() {
			m.contentFrame = nil
			m.measureContent()
		})
	})
}

func (m *Machine) measureHeader() {
	if m.destroyed {
		return
	}
	w, ok := m.host.Measure(domain.PartHeader)
	if !ok {
		return
	}
	w += domain.PillPadding
	if w > domain.PillPadding && w != m.pillWidth {
		m.pillWidth = w
		m.render()
	}
}

func (m *Machine) measureContent() {
	if m.destroyed || !m.hasBody {
		return
	}
	h, ok := m.host.Measure(domain.PartContent)
	if !ok || h == m.contentHeight {
		return
	}
	m.contentHeight = h
	m.render()
}

// render recomputes the frame from the current flags and sizes and pushes it to the host.
func (m *Machine) render() {
	if m.destroyed {
		return
	}
	open := m.open()
	hasDesc := m.hasDesc()

	minExpanded := domain.Height * domain.MinExpandRatio
	rawExpanded := minExpanded
	if hasDesc {
		rawExpanded = math.Max(minExpanded, domain.Height+m.contentHeight)
	}
	if open {
		m.frozenExpanded = rawExpanded
	}
	expanded := m.frozenExpanded
	if open {
		expanded = rawExpanded
	}

	svgHeight := domain.Height
	if hasDesc {
		svgHeight = math.Max(expanded, minExpanded)
	}

	pill := m.pillWidth
	if pill == 0 {
		pill = domain.Height
	}
	pill = math.Max(pill, domain.Height)
	pillHeight := domain.Height + m.blur*3

	var pillX float64
	switch m.align {
	case domain.AlignRight:
		pillX = domain.Width - pill
	case domain.AlignCenter:
		pillX = (domain.Width - pill) / 2
	}

	f := domain.Frame{
		ID:          m.id,
		State:       m.view.state,
		Align:       m.align,
		Edge:        m.edge,
		Ready:       m.ready,
		Expanded:    open,
		Exiting:     m.exiting,
		Height:      domain.Height,
		PillWidth:   pill,
		PillX:       pillX,
		PillHeight:  pillHeight,
		ScaleY:      domain.Height / pillHeight,
		SVGHeight:   svgHeight,
		BodyHeight:  math.Max(0, expanded-domain.Height),
		HeaderScale: 1,
		Fill:        m.view.fill,
		DarkFill:    m.view.darkFill,
		Roundness:   m.roundness,
		FilterID:    m.filterID,
		SwipeOffset: m.swipeOffset,
		Header:      m.header,
	}
	if open {
		f.Height = expanded
		f.ScaleY = 1
		f.BodyOpacity = 1
		f.ContentOpacity = 1
		f.HeaderScale = 0.9
		f.HeaderOffsetY = -3
		if m.edge == domain.EdgeBottom {
			f.HeaderOffsetY = 3
		}
	}
	if m.prevHeader != nil {
		prev := *m.prevHeader
		f.PrevHeader = &prev
	}
	if m.hasBody {
		f.Body = &domain.Body{
			Description: m.view.description,
			Button:      m.view.button,
			Styles:      m.view.styles,
		}
	}

	m.frame = f
	m.host.Render(f)
}

func clampSwipe(dy float64) float64 {
	return math.Copysign(math.Min(math.Abs(dy), domain.SwipeMax), dy)
}

func stop(t *ports.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
