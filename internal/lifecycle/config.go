package lifecycle

import (
	"log/slog"
	"time"

	"github.com/aretw0/sileo/pkg/domain"
)

// Events are the per-instance callbacks bound by the reconciler.
// Each one may be nil.
type Events struct {
	OnMouseEnter func()
	OnMouseLeave func()
	OnDismiss    func()
}

// Config is the projection of one toast item the reconciler pushes into a
// machine on every sync. A machine never mutates it.
type Config struct {
	ID string

	State       domain.State
	Title       string
	Description domain.Content
	Icon        domain.Content
	Styles      domain.Styles
	Button      *domain.Button
	Fill        string
	DarkFill    string
	Roundness   *float64

	Align domain.Align
	Edge  domain.Edge

	Exiting           bool
	AutoExpandDelay   *time.Duration
	AutoCollapseDelay *time.Duration

	// CanExpand is the reconciler's single-active-toast policy for this toast.
	CanExpand bool

	// RefreshKey identifies the content. Empty means "no identity": the
	// content is applied immediately.
	RefreshKey string

	Events Events
}

// view is the content currently rendered, or queued for rendering.
type view struct {
	title       string
	description domain.Content
	state       domain.State
	icon        domain.Content
	styles      domain.Styles
	button      *domain.Button
	fill        string
	darkFill    string
}

func viewOf(cfg Config) view {
	state := cfg.State.OrDefault()
	v := view{
		title:       cfg.Title,
		description: cfg.Description,
		state:       state,
		icon:        cfg.Icon,
		styles:      cfg.Styles,
		button:      cfg.Button,
		fill:        cfg.Fill,
		darkFill:    cfg.DarkFill,
	}
	if v.title == "" {
		v.title = string(state)
	}
	if v.fill == "" {
		v.fill = domain.DefaultFill
	}
	if v.darkFill == "" {
		v.darkFill = domain.DefaultDarkFill
	}
	return v
}

// FilterSource hands out shared filter ids by blur radius.
type FilterSource interface {
	ID(blur float64) string
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFilters sets the filter pool used to resolve the shape filter.
func WithFilters(f FilterSource) Option {
	return func(m *Machine) {
		m.filters = f
	}
}
