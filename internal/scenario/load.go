package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/sileo/internal/config"
	"github.com/aretw0/sileo/pkg/domain"
)

type fileSchema struct {
	Name  string           `mapstructure:"name"`
	Steps []map[string]any `mapstructure:"steps"`
}

type targetSchema struct {
	ID string   `mapstructure:"id"`
	DY *float64 `mapstructure:"dy"`
}

// LoadFile reads a YAML scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML scenario.
func Load(r io.Reader) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse scenario: %v", domain.ErrInvalidConfig, err)
	}

	var doc fileSchema
	if err := config.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	s := &Scenario{Name: doc.Name, Steps: make([]Step, 0, len(doc.Steps))}
	for i, entry := range doc.Steps {
		st, err := parseStep(entry)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.Steps = append(s.Steps, st)
	}
	return s, nil
}

func parseStep(entry map[string]any) (Step, error) {
	if len(entry) != 1 {
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Step{}, fmt.Errorf("%w: a step has exactly one operation, got [%s]", domain.ErrInvalidConfig, strings.Join(keys, ", "))
	}

	for key, value := range entry {
		kind := Kind(key)
		switch kind {
		case KindCreate, KindUpdate:
			var ts config.ToastSchema
			if err := config.Decode(value, &ts); err != nil {
				return Step{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, kind, err)
			}
			opts, err := ts.Options()
			if err != nil {
				return Step{}, fmt.Errorf("%s: %w", kind, err)
			}
			if kind == KindUpdate && opts.ID == "" {
				return Step{}, fmt.Errorf("%w: update needs an id", domain.ErrInvalidConfig)
			}
			return Step{Kind: kind, ID: opts.ID, Options: opts}, nil

		case KindDismiss, KindHover, KindLeave, KindClick, KindSwipe:
			target, err := parseTarget(value)
			if err != nil {
				return Step{}, fmt.Errorf("%s: %w", kind, err)
			}
			st := Step{Kind: kind, ID: target.ID}
			if kind == KindSwipe {
				st.DY = DefaultSwipe
				if target.DY != nil {
					st.DY = *target.DY
				}
			}
			return st, nil

		case KindClear:
			name, _ := value.(string)
			if value != nil && name == "" {
				return Step{}, fmt.Errorf("%w: clear takes a position or \"all\"", domain.ErrInvalidConfig)
			}
			if name == "" || name == "all" {
				return Step{Kind: KindClear}, nil
			}
			pos, err := domain.ParsePosition(name)
			if err != nil {
				return Step{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
			}
			return Step{Kind: KindClear, Position: pos}, nil

		case KindWait:
			d, err := config.ParseDuration(value)
			if err != nil {
				return Step{}, fmt.Errorf("wait: %w", err)
			}
			return Step{Kind: KindWait, Wait: d}, nil

		default:
			return Step{}, fmt.Errorf("%w: %q", domain.ErrUnknownStep, key)
		}
	}
	return Step{}, nil
}

// parseTarget accepts a bare id or an {id, dy} mapping.
func parseTarget(value any) (targetSchema, error) {
	if id, ok := value.(string); ok {
		return targetSchema{ID: id}, nil
	}
	var t targetSchema
	if err := config.Decode(value, &t); err != nil {
		return t, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if t.ID == "" {
		return t, fmt.Errorf("%w: missing id", domain.ErrInvalidConfig)
	}
	return t, nil
}
