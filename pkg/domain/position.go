package domain

import (
	"fmt"
	"strings"
)

// Position is a screen anchor for a group of toasts.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// DefaultPosition is used when neither the toast nor the notifier names one.
const DefaultPosition = TopRight

// Positions lists every position in canonical rendering order.
var Positions = []Position{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}

// Valid reports whether p is one of the six canonical positions.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePosition converts a name into a Position.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.TrimSpace(strings.ToLower(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return p, nil
}

// Top reports whether the position is anchored to the top of the screen.
func (p Position) Top() bool {
	return strings.HasPrefix(string(p), "top")
}

// Align is the horizontal alignment of the pill inside a toast.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Edge is the side a toast grows toward when it expands.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// PillAlign derives the pill alignment from a screen position.
func PillAlign(p Position) Align {
	switch {
	case strings.Contains(string(p), "right"):
		return AlignRight
	case strings.Contains(string(p), "center"):
		return AlignCenter
	default:
		return AlignLeft
	}
}

// ExpandEdge returns the edge facing the screen center.
func ExpandEdge(p Position) Edge {
	if p.Top() {
		return EdgeBottom
	}
	return EdgeTop
}
