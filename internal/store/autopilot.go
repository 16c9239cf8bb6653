package store

import (
	"time"

	"github.com/aretw0/sileo/pkg/domain"
)

// Delays are the resolved autopilot timings of one toast. Nil means no timer.
type Delays struct {
	Expand   *time.Duration
	Collapse *time.Duration
}

// ResolveAutopilot derives the auto expand and collapse delays.
//
// A disabled autopilot or a toast that never expires gets no delays. Otherwise
// the custom delays, or the defaults, are clamped to [0, lifetime].
func ResolveAutopilot(opts domain.Options, lifetime time.Duration) Delays {
	if lifetime <= 0 || (opts.Autopilot != nil && opts.Autopilot.Disabled) {
		return Delays{}
	}

	expand := domain.AutoExpandDelay
	collapse := domain.AutoCollapseDelay
	if a := opts.Autopilot; a != nil {
		if a.Expand != nil {
			expand = *a.Expand
		}
		if a.Collapse != nil {
			collapse = *a.Collapse
		}
	}

	expand = clamp(expand, lifetime)
	collapse = clamp(collapse, lifetime)
	return Delays{Expand: &expand, Collapse: &collapse}
}

func clamp(v, limit time.Duration) time.Duration {
	return min(limit, max(0, v))
}
