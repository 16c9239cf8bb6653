package domain

import "time"

// Styles carries class hooks for the parts of a toast.
// An empty field means "not set".
type Styles struct {
	Title       string `json:"title,omitempty" mapstructure:"title" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" mapstructure:"description" yaml:"description,omitempty"`
	Badge       string `json:"badge,omitempty" mapstructure:"badge" yaml:"badge,omitempty"`
	Button      string `json:"button,omitempty" mapstructure:"button" yaml:"button,omitempty"`
}

// Merge returns s with every field set in over replacing the base value.
func (s Styles) Merge(over Styles) Styles {
	if over.Title != "" {
		s.Title = over.Title
	}
	if over.Description != "" {
		s.Description = over.Description
	}
	if over.Badge != "" {
		s.Badge = over.Badge
	}
	if over.Button != "" {
		s.Button = over.Button
	}
	return s
}

// Button is the optional action shown inside an expanded toast.
type Button struct {
	Title   string
	OnClick func()
}

// Autopilot controls the automatic expand-then-collapse behaviour.
// A nil *Autopilot means "use the default delays".
type Autopilot struct {
	Disabled bool
	Expand   *time.Duration
	Collapse *time.Duration
}

// AutopilotOff disables automatic expansion.
func AutopilotOff() *Autopilot {
	return &Autopilot{Disabled: true}
}

// AutopilotAfter sets custom expand and collapse delays.
func AutopilotAfter(expand, collapse time.Duration) *Autopilot {
	return &Autopilot{Expand: &expand, Collapse: &collapse}
}

// Never is the resolved duration of a toast that only goes away when dismissed.
const Never time.Duration = 0

// Expires returns a duration option of d.
func Expires(d time.Duration) *time.Duration {
	return &d
}

// NeverExpires returns a duration option for a toast that never auto-dismisses.
func NeverExpires() *time.Duration {
	d := Never
	return &d
}

// Options is what a caller supplies to create or update a toast.
// Zero values mean "not set" and fall back to the notifier defaults.
type Options struct {
	ID          string
	Title       string
	Description Content
	Position    Position
	// Duration is nil for the default lifetime; a non-positive value never expires.
	Duration  *time.Duration
	Icon      Content
	Styles    Styles
	Fill      string
	Roundness *float64
	Autopilot *Autopilot
	Button    *Button
	State     State
}

// Merge lays the set fields of opts over the defaults template.
// Styles merge one level deep; every other field is replaced wholesale.
func Merge(defaults, opts Options) Options {
	out := defaults
	if opts.ID != "" {
		out.ID = opts.ID
	}
	if opts.Title != "" {
		out.Title = opts.Title
	}
	if opts.Description != nil {
		out.Description = opts.Description
	}
	if opts.Position != "" {
		out.Position = opts.Position
	}
	if opts.Duration != nil {
		out.Duration = opts.Duration
	}
	if opts.Icon != nil {
		out.Icon = opts.Icon
	}
	out.Styles = defaults.Styles.Merge(opts.Styles)
	if opts.Fill != "" {
		out.Fill = opts.Fill
	}
	if opts.Roundness != nil {
		out.Roundness = opts.Roundness
	}
	if opts.Autopilot != nil {
		out.Autopilot = opts.Autopilot
	}
	if opts.Button != nil {
		out.Button = opts.Button
	}
	if opts.State != "" {
		out.State = opts.State
	}
	return out
}

// ResolvedDuration returns the explicit duration or DefaultDuration.
func (o Options) ResolvedDuration() time.Duration {
	if o.Duration == nil {
		return DefaultDuration
	}
	return *o.Duration
}
