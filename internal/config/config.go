// Package config loads notifier settings from a YAML or JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sileo"
	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/internal/store"
	"github.com/aretw0/sileo/pkg/domain"
)

// Config is the typed notifier configuration.
type Config struct {
	Position  domain.Position
	Offset    domain.Offset
	Collision store.CollisionPolicy
	LogLevel  slog.Level
	Defaults  domain.Options
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Position: domain.DefaultPosition, LogLevel: slog.LevelInfo}
}

// Load reads and validates the configuration file at path.
// Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidConfig, filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidConfig, filepath.Base(path), err)
		}
	}
	return FromMap(raw)
}

// FromMap builds a configuration from an already parsed document.
func FromMap(raw map[string]any) (*Config, error) {
	var doc fileSchema
	if err := Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	cfg := Default()
	var err error
	if doc.Position != "" {
		if cfg.Position, err = domain.ParsePosition(doc.Position); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
	}
	if cfg.Offset, err = parseOffset(doc.Offset); err != nil {
		return nil, err
	}
	if cfg.Collision, err = store.ParseCollisionPolicy(doc.Collision); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logging.ParseLevel(doc.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if cfg.Defaults, err = doc.Defaults.Options(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the semantic constraints decoding cannot express.
func (c *Config) Validate() error {
	var errs []error
	if !c.Position.Valid() {
		errs = append(errs, fmt.Errorf("%w: position %q", domain.ErrInvalidConfig, c.Position))
	}
	if r := c.Defaults.Roundness; r != nil && (*r < 0 || math.IsNaN(*r)) {
		errs = append(errs, fmt.Errorf("%w: roundness must not be negative", domain.ErrInvalidConfig))
	}
	if a := c.Defaults.Autopilot; a != nil {
		if (a.Expand != nil && *a.Expand < 0) || (a.Collapse != nil && *a.Collapse < 0) {
			errs = append(errs, fmt.Errorf("%w: autopilot delays must not be negative", domain.ErrInvalidDuration))
		}
	}
	return errors.Join(errs...)
}

// InitOptions converts the configuration into notifier setup.
func (c *Config) InitOptions() sileo.InitOptions {
	return sileo.InitOptions{Position: c.Position, Offset: c.Offset, Defaults: c.Defaults}
}

// NotifierOptions returns the construction options the configuration implies.
func (c *Config) NotifierOptions() []sileo.Option {
	return []sileo.Option{sileo.WithCollisionPolicy(c.Collision)}
}

// Decode maps a generic document onto out. Durations accept Go duration
// strings, "never", or a number of milliseconds. Unknown keys are rejected.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  durationHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var durationType = reflect.TypeOf(time.Duration(0))

func durationHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	return ParseDuration(data)
}

// ParseDuration converts a duration value from a document.
func ParseDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		s := strings.TrimSpace(strings.ToLower(d))
		if s == "never" {
			return domain.Never, nil
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, d)
		}
		return parsed, nil
	case int:
		return time.Duration(d) * time.Millisecond, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case float64:
		return time.Duration(d * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("%w: value of type %T", domain.ErrInvalidDuration, v)
	}
}

func parseOffset(v any) (domain.Offset, error) {
	sides, ok := v.(map[string]any)
	if !ok {
		length, err := domain.OffsetLength(v)
		if err != nil {
			return domain.Offset{}, err
		}
		if length == "" {
			return domain.Offset{}, nil
		}
		return domain.UniformOffset(length), nil
	}

	var o domain.Offset
	for side, raw := range sides {
		length, err := domain.OffsetLength(raw)
		if err != nil {
			return domain.Offset{}, fmt.Errorf("offset %s: %w", side, err)
		}
		switch domain.Side(side) {
		case domain.SideTop:
			o.Top = length
		case domain.SideRight:
			o.Right = length
		case domain.SideBottom:
			o.Bottom = length
		case domain.SideLeft:
			o.Left = length
		default:
			return domain.Offset{}, fmt.Errorf("%w: unknown offset side %q", domain.ErrInvalidConfig, side)
		}
	}
	return o, nil
}
