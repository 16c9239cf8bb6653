package reconciler

import (
	"log/slog"

	"github.com/aretw0/sileo/internal/lifecycle"
	"github.com/aretw0/sileo/pkg/domain"
)

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPosition sets the position used for items that carry none.
func WithPosition(p domain.Position) Option {
	return func(r *Reconciler) {
		if p != "" {
			r.position = p
		}
	}
}

// WithOffset sets the viewport distance from the screen edges.
func WithOffset(o domain.Offset) Option {
	return func(r *Reconciler) { r.offset = o }
}

// WithLogger sets the logger shared with every lifecycle machine.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHooks registers sync and timer observers.
func WithHooks(h domain.Hooks) Option {
	return func(r *Reconciler) { r.hooks = h }
}

// WithFilters replaces the default filter pool built on the surface.
func WithFilters(f lifecycle.FilterSource) Option {
	return func(r *Reconciler) { r.filters = f }
}
