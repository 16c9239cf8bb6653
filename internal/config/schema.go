package config

import (
	"fmt"
	"time"

	"github.com/aretw0/sileo/pkg/domain"
)

// fileSchema mirrors the configuration document. Loosely typed fields are
// normalised after decoding.
type fileSchema struct {
	Position  string      `json:"position" mapstructure:"position"`
	Offset    any         `json:"offset" mapstructure:"offset"`
	Collision string      `json:"collision" mapstructure:"collision"`
	LogLevel  string      `json:"log_level" mapstructure:"log_level"`
	Defaults  ToastSchema `json:"defaults" mapstructure:"defaults"`
}

// ToastSchema is the document form of toast options, shared by the
// configuration defaults and scenario steps.
type ToastSchema struct {
	ID          string         `json:"id" mapstructure:"id"`
	State       string         `json:"state" mapstructure:"state"`
	Title       string         `json:"title" mapstructure:"title"`
	Description string         `json:"description" mapstructure:"description"`
	Position    string         `json:"position" mapstructure:"position"`
	Fill        string         `json:"fill" mapstructure:"fill"`
	Roundness   *float64       `json:"roundness" mapstructure:"roundness"`
	Duration    *time.Duration `json:"duration" mapstructure:"duration"`
	// Autopilot is a bool or an {expand, collapse} object.
	Autopilot any           `json:"autopilot" mapstructure:"autopilot"`
	Button    string        `json:"button" mapstructure:"button"`
	Styles    domain.Styles `json:"styles" mapstructure:"styles"`
}

type autopilotSchema struct {
	Expand   *time.Duration `json:"expand" mapstructure:"expand"`
	Collapse *time.Duration `json:"collapse" mapstructure:"collapse"`
}

// Options converts the schema into toast options. A button title yields a
// button without a click handler.
func (s ToastSchema) Options() (domain.Options, error) {
	o := domain.Options{
		ID:        s.ID,
		Title:     s.Title,
		Fill:      s.Fill,
		Roundness: s.Roundness,
		Duration:  s.Duration,
		Styles:    s.Styles,
	}
	if s.Description != "" {
		o.Description = domain.Text(s.Description)
	}
	if s.Button != "" {
		o.Button = &domain.Button{Title: s.Button}
	}
	if s.State != "" {
		o.State = domain.State(s.State)
		if !o.State.Valid() {
			return domain.Options{}, fmt.Errorf("%w: state %q", domain.ErrInvalidConfig, s.State)
		}
	}
	if s.Position != "" {
		p, err := domain.ParsePosition(s.Position)
		if err != nil {
			return domain.Options{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		o.Position = p
	}

	switch a := s.Autopilot.(type) {
	case nil:
	case bool:
		if !a {
			o.Autopilot = domain.AutopilotOff()
		}
	case map[string]any:
		var ap autopilotSchema
		if err := Decode(a, &ap); err != nil {
			return domain.Options{}, fmt.Errorf("%w: autopilot: %v", domain.ErrInvalidConfig, err)
		}
		o.Autopilot = &domain.Autopilot{Expand: ap.Expand, Collapse: ap.Collapse}
	default:
		return domain.Options{}, fmt.Errorf("%w: autopilot of type %T", domain.ErrInvalidConfig, s.Autopilot)
	}
	return o, nil
}
