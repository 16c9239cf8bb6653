// Package terminal draws toasts as lipgloss boxes on an ANSI terminal.
//
// Layout works in the engine's pixel units: one cell is CellWidth pixels
// wide and CellHeight pixels tall. Hosts report their measurements in the
// same units, so the lifecycle machine sizes terminal pills exactly like
// any other surface.
package terminal

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
)

// Cell size in pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Surface implements ports.Surface on a terminal.
// Safe for concurrent use.
type Surface struct {
	mu        sync.Mutex
	out       *termenv.Output
	renderer  *lipgloss.Renderer
	width     int
	height    int
	dark      bool
	viewports []*viewport
	filters   map[string]domain.Filter
}

// Option configures a Surface.
type Option func(*Surface)

// WithSize sets the screen size in cells.
func WithSize(width, height int) Option {
	return func(s *Surface) {
		if width > 0 {
			s.width = width
		}
		if height > 0 {
			s.height = height
		}
	}
}

// WithColorProfile forces a color profile. termenv.Ascii disables styling.
func WithColorProfile(p termenv.Profile) Option {
	return func(s *Surface) {
		s.renderer.SetColorProfile(p)
	}
}

// WithDarkFill selects between the light and dark fill of each toast.
func WithDarkFill(dark bool) Option {
	return func(s *Surface) { s.dark = dark }
}

// New creates a surface writing to w. The default size is 80x24 cells with
// dark fills.
func New(w io.Writer, opts ...Option) *Surface {
	s := &Surface{
		out:      termenv.NewOutput(w),
		renderer: lipgloss.NewRenderer(w),
		width:    80,
		height:   24,
		dark:     true,
		filters:  make(map[string]domain.Filter),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Surface = (*Surface)(nil)

// Resize changes the screen size in cells.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

// Viewport adds a position container.
func (s *Surface) Viewport(spec domain.ViewportSpec) ports.Viewport {
	v := &viewport{surface: s, spec: spec}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewports = append(s.viewports, v)
	return v
}

// NewHost creates a toast box.
func (s *Surface) NewHost(id string) ports.Host {
	return &host{
		surface:   s,
		id:        id,
		observers: make(map[domain.Part]map[int]func()),
	}
}

// DefineFilter records the filter. Terminals cannot blur; the definition is
// kept so hosts can tell which filters exist.
func (s *Surface) DefineFilter(f domain.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[f.ID] = f
}

// View composes every visible toast onto a blank screen.
func (s *Surface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen := blank(s.width, s.height)
	for _, pos := range domain.Positions {
		for _, v := range s.viewports {
			if v.spec.Position != pos {
				continue
			}
			screen = s.drawViewport(screen, v)
		}
	}
	return screen
}

// Flush clears the terminal and writes the current view.
func (s *Surface) Flush() error {
	view := s.View()
	s.out.ClearScreen()
	_, err := io.WriteString(s.out, view)
	return err
}

func (s *Surface) drawViewport(screen string, v *viewport) string {
	top := v.spec.Position.Top()
	align := domain.PillAlign(v.spec.Position)

	row := cells(v.spec.Offset[domain.SideTop], CellHeight)
	if !top {
		row = s.height - cells(v.spec.Offset[domain.SideBottom], CellHeight)
	}

	for _, h := range v.hosts {
		box := h.box
		if box == "" {
			continue
		}
		bw := lipgloss.Width(box)
		bh := lipgloss.Height(box)

		var col int
		switch align {
		case domain.AlignRight:
			col = s.width - bw - cells(v.spec.Offset[domain.SideRight], CellWidth)
		case domain.AlignCenter:
			col = (s.width - bw) / 2
		default:
			col = cells(v.spec.Offset[domain.SideLeft], CellWidth)
		}

		if top {
			screen = placeOverlay(col, row, box, screen)
			row += bh
		} else {
			row -= bh
			screen = placeOverlay(col, row, box, screen)
		}
	}
	return screen
}

// viewport holds the hosts of one position in append order.
type viewport struct {
	surface *Surface
	spec    domain.ViewportSpec
	hosts   []*host
}

func (v *viewport) Append(h ports.Host) {
	th, ok := h.(*host)
	if !ok {
		return
	}
	v.surface.mu.Lock()
	defer v.surface.mu.Unlock()
	th.viewport = v
	v.hosts = append(v.hosts, th)
}

func (v *viewport) Remove() {
	v.surface.mu.Lock()
	defer v.surface.mu.Unlock()
	v.surface.viewports = slices.DeleteFunc(v.surface.viewports, func(o *viewport) bool { return o == v })
}

// host is one toast box.
type host struct {
	surface   *Surface
	viewport  *viewport
	id        string
	frame     domain.Frame
	rendered  bool
	box       string
	header    float64
	content   float64
	observers map[domain.Part]map[int]func()
	nextObs   int
}

func (h *host) Render(f domain.Frame) {
	s := h.surface
	s.mu.Lock()
	d := s.drawer()
	header, content := d.measure(f)
	box := d.box(f)

	var changed []domain.Part
	if h.rendered && header != h.header {
		changed = append(changed, domain.PartHeader)
	}
	if h.rendered && content != h.content {
		changed = append(changed, domain.PartContent)
	}
	h.frame, h.box, h.header, h.content, h.rendered = f, box, header, content, true

	var notify []func()
	for _, part := range changed {
		for _, fn := range h.observers[part] {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
}

func (h *host) Measure(part domain.Part) (float64, bool) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if !h.rendered {
		return 0, false
	}
	switch part {
	case domain.PartHeader:
		return h.header, true
	case domain.PartContent:
		return h.content, h.frame.Body != nil
	default:
		return 0, false
	}
}

func (h *host) Observe(part domain.Part, fn func()) func() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if h.observers[part] == nil {
		h.observers[part] = make(map[int]func())
	}
	id := h.nextObs
	h.nextObs++
	h.observers[part][id] = fn
	return func() {
		h.surface.mu.Lock()
		defer h.surface.mu.Unlock()
		delete(h.observers[part], id)
	}
}

func (h *host) Remove() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if h.viewport != nil {
		h.viewport.hosts = slices.DeleteFunc(h.viewport.hosts, func(o *host) bool { return o == h })
		h.viewport = nil
	}
	h.box = ""
}

// cells converts a CSS pixel length into whole cells. Anything that is not
// a pixel or bare number counts as zero.
func cells(length string, unit float64) int {
	v := strings.TrimSuffix(strings.TrimSpace(length), "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return int(n / unit)
}
