// Package memory provides a recording Surface for tests, replays and
// headless runs. It keeps every rendered frame and lets the caller drive
// measurements and size-change notifications by hand.
package memory

import (
	"slices"
	"sync"

	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
)

// Surface implements ports.Surface in memory.
// Safe for concurrent use.
type Surface struct {
	mu        sync.Mutex
	viewports []*Viewport
	hosts     []*Host
	filters   []domain.Filter

	headerWidth   *float64
	contentHeight *float64
}

// Option configures a Surface.
type Option func(*Surface)

// WithHeaderWidth makes every new host report w as its header width.
func WithHeaderWidth(w float64) Option {
	return func(s *Surface) { s.headerWidth = &w }
}

// WithContentHeight makes every new host report h as its content height.
func WithContentHeight(h float64) Option {
	return func(s *Surface) { s.contentHeight = &h }
}

// NewSurface creates an empty surface. Hosts cannot be measured unless a
// size option is given or SetSize is called.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Surface = (*Surface)(nil)

// Viewport creates and records a viewport.
func (s *Surface) Viewport(spec domain.ViewportSpec) ports.Viewport {
	v := &Viewport{surface: s, spec: spec}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewports = append(s.viewports, v)
	return v
}

// NewHost creates and records a host.
func (s *Surface) NewHost(id string) ports.Host {
	h := &Host{
		id:        id,
		sizes:     make(map[domain.Part]float64),
		observers: make(map[domain.Part]map[int]func()),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerWidth != nil {
		h.sizes[domain.PartHeader] = *s.headerWidth
	}
	if s.contentHeight != nil {
		h.sizes[domain.PartContent] = *s.contentHeight
	}
	s.hosts = append(s.hosts, h)
	return h
}

// DefineFilter records a filter definition.
func (s *Surface) DefineFilter(f domain.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, f)
}

// Filters returns every filter defined so far, in definition order.
func (s *Surface) Filters() []domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.filters)
}

// Viewports returns the viewports that have not been removed.
func (s *Surface) Viewports() []*Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Viewport
	for _, v := range s.viewports {
		if !v.removed {
			out = append(out, v)
		}
	}
	return out
}

// ViewportAt returns the live viewport of pos, or nil.
func (s *Surface) ViewportAt(pos domain.Position) *Viewport {
	for _, v := range s.Viewports() {
		if v.Spec().Position == pos {
			return v
		}
	}
	return nil
}

// Host returns the most recent live host created for id, or nil.
func (s *Surface) Host(id string) *Host {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.hosts) - 1; i >= 0; i-- {
		h := s.hosts[i]
		if h.id == id && !h.Removed() {
			return h
		}
	}
	return nil
}

// Hosts returns every live host.
func (s *Surface) Hosts() []*Host {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Host
	for _, h := range s.hosts {
		if !h.Removed() {
			out = append(out, h)
		}
	}
	return out
}

// Created returns the number of hosts ever created.
func (s *Surface) Created() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hosts)
}

// Viewport is a recorded position container.
type Viewport struct {
	surface *Surface
	spec    domain.ViewportSpec
	hosts   []*Host
	removed bool
}

var _ ports.Viewport = (*Viewport)(nil)

// Append adds h to the viewport.
func (v *Viewport) Append(h ports.Host) {
	v.surface.mu.Lock()
	defer v.surface.mu.Unlock()
	if mh, ok := h.(*Host); ok {
		v.hosts = append(v.hosts, mh)
	}
}

// Remove detaches the viewport.
func (v *Viewport) Remove() {
	v.surface.mu.Lock()
	defer v.surface.mu.Unlock()
	v.removed = true
}

// Spec returns the viewport definition.
func (v *Viewport) Spec() domain.ViewportSpec { return v.spec }

// Removed reports whether Remove was called.
func (v *Viewport) Removed() bool {
	v.surface.mu.Lock()
	defer v.surface.mu.Unlock()
	return v.removed
}

// IDs returns the ids of the live hosts in append order.
func (v *Viewport) IDs() []string {
	v.surface.mu.Lock()
	hosts := slices.Clone(v.hosts)
	v.surface.mu.Unlock()
	var ids []string
	for _, h := range hosts {
		if !h.Removed() {
			ids = append(ids, h.id)
		}
	}
	return ids
}

// Host records the frames rendered for one toast.
type Host struct {
	mu        sync.Mutex
	id        string
	frames    []domain.Frame
	sizes     map[domain.Part]float64
	observers map[domain.Part]map[int]func()
	nextObs   int
	removed   bool
}

var _ ports.Host = (*Host)(nil)

// ID returns the toast id the host was created for.
func (h *Host) ID() string { return h.id }

// Render records f.
func (h *Host) Render(f domain.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, f)
}

// Measure returns the size set for part.
func (h *Host) Measure(part domain.Part) (float64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.sizes[part]
	return v, ok
}

// Observe registers a size-change callback for part.
func (h *Host) Observe(part domain.Part, fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.observers[part] == nil {
		h.observers[part] = make(map[int]func())
	}
	id := h.nextObs
	h.nextObs++
	h.observers[part][id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.observers[part], id)
	}
}

// Remove detaches the host.
func (h *Host) Remove() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removed = true
}

// SetSize changes the measured size of part and notifies its observers.
func (h *Host) SetSize(part domain.Part, v float64) {
	h.mu.Lock()
	h.sizes[part] = v
	var fns []func()
	for _, fn := range h.observers[part] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Observers returns the number of registered observers of part.
func (h *Host) Observers(part domain.Part) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers[part])
}

// Frames returns every frame rendered so far.
func (h *Host) Frames() []domain.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.frames)
}

// Last returns the most recent frame.
func (h *Host) Last() (domain.Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return domain.Frame{}, false
	}
	return h.frames[len(h.frames)-1], true
}

// Removed reports whether Remove was called.
func (h *Host) Removed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removed
}
