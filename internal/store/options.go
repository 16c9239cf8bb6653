package store

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/sileo/pkg/domain"
)

// CollisionPolicy decides what Create does when a live toast already has the requested id.
type CollisionPolicy int

const (
	// CollisionReplaceAll drops every toast and keeps only the new one.
	CollisionReplaceAll CollisionPolicy = iota
	// CollisionReplaceInPlace swaps the colliding toast and leaves the others alone.
	CollisionReplaceInPlace
)

// String returns the policy name used in configuration.
func (p CollisionPolicy) String() string {
	switch p {
	case CollisionReplaceInPlace:
		return "replace-in-place"
	default:
		return "replace-all"
	}
}

// ParseCollisionPolicy maps a configuration name to a policy.
// The empty name selects CollisionReplaceAll.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch name {
	case "", "replace-all":
		return CollisionReplaceAll, nil
	case "replace-in-place":
		return CollisionReplaceInPlace, nil
	default:
		return CollisionReplaceAll, fmt.Errorf("%w: collision policy %q", domain.ErrInvalidConfig, name)
	}
}

// Option configures a Store.
type Option func(*Store)

// WithPosition sets the fallback position for toasts that name none.
func WithPosition(p domain.Position) Option {
	return func(s *Store) {
		if p != "" {
			s.position = p
		}
	}
}

// WithDefaults sets the options template merged under every create and update.
func WithDefaults(o domain.Options) Option {
	return func(s *Store) {
		s.defaults = o
	}
}

// WithInstanceIDs replaces the instance id generator.
func WithInstanceIDs(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newInstanceID = gen
		}
	}
}

// WithCollisionPolicy selects the id collision behaviour of Create.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(s *Store) {
		s.hooks = h
	}
}
