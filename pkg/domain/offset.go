package domain

import (
	"fmt"
	"strconv"
)

// Side is one edge of the screen.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Offset is the distance of the viewports from the screen edges.
// Values are CSS lengths; an empty value leaves the surface default.
type Offset struct {
	Top    string `json:"top,omitempty" mapstructure:"top" yaml:"top,omitempty"`
	Right  string `json:"right,omitempty" mapstructure:"right" yaml:"right,omitempty"`
	Bottom string `json:"bottom,omitempty" mapstructure:"bottom" yaml:"bottom,omitempty"`
	Left   string `json:"left,omitempty" mapstructure:"left" yaml:"left,omitempty"`
}

// UniformOffset applies the same length to every side.
func UniformOffset(v string) Offset {
	return Offset{Top: v, Right: v, Bottom: v, Left: v}
}

// Pixels formats a number as a pixel length.
func Pixels(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "px"
}

// OffsetLength normalises a number or string into a CSS length.
func OffsetLength(v any) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", nil
	case string:
		return n, nil
	case int:
		return Pixels(float64(n)), nil
	case int64:
		return Pixels(float64(n)), nil
	case float64:
		return Pixels(n), nil
	default:
		return "", fmt.Errorf("%w: offset of type %T", ErrInvalidConfig, v)
	}
}

// IsZero reports whether no side is set.
func (o Offset) IsZero() bool {
	return o == Offset{}
}

// For returns the sides that apply to a viewport anchored at p.
// It returns nil when none of them is set.
func (o Offset) For(p Position) map[Side]string {
	out := make(map[Side]string)
	if p.Top() {
		if o.Top != "" {
			out[SideTop] = o.Top
		}
	} else if o.Bottom != "" {
		out[SideBottom] = o.Bottom
	}
	switch PillAlign(p) {
	case AlignLeft:
		if o.Left != "" {
			out[SideLeft] = o.Left
		}
	case AlignRight:
		if o.Right != "" {
			out[SideRight] = o.Right
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ViewportSpec describes the rendering surface for one position.
type ViewportSpec struct {
	Position   Position
	LiveRegion string
	Offset     map[Side]string
}
