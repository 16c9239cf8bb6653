package sileo

import (
	"context"
	"fmt"

	"github.com/aretw0/sileo/pkg/domain"
)

// PromiseOptions maps the outcome of a task onto toast options.
// A nil mapping leaves the toast with only its new state.
type PromiseOptions[T any] struct {
	// Loading is shown while the task runs. It never expires.
	Loading domain.Options
	Success func(T) domain.Options
	Error   func(error) domain.Options
	// Action, when set, replaces Success and shows the action state.
	Action   func(T) domain.Options
	Position domain.Position
}

// Static returns a mapping that ignores its input.
func Static[V any](o domain.Options) func(V) domain.Options {
	return func(V) domain.Options { return o }
}

// Promise shows a loading toast, runs task and updates the toast with the
// outcome. The task's value and error are returned unchanged.
//
// A mapping that panics is recovered: the toast shows the error state with
// its default title and the panic is logged.
func Promise[T any](ctx context.Context, n *Notifier, task func(context.Context) (T, error), opts PromiseOptions[T]) (T, error) {
	loading := opts.Loading
	loading.State = domain.StateLoading
	loading.Duration = domain.NeverExpires()
	if opts.Position != "" {
		loading.Position = opts.Position
	}
	id := n.create(loading)

	v, err := task(ctx)

	var next domain.Options
	switch {
	case err != nil:
		next = n.mapOutcome(id, domain.StateError, func() domain.Options {
			if opts.Error == nil {
				return domain.Options{}
			}
			return opts.Error(err)
		})
	case opts.Action != nil:
		next = n.mapOutcome(id, domain.StateAction, func() domain.Options { return opts.Action(v) })
	default:
		next = n.mapOutcome(id, domain.StateSuccess, func() domain.Options {
			if opts.Success == nil {
				return domain.Options{}
			}
			return opts.Success(v)
		})
	}
	n.Update(id, next)
	return v, err
}

func (n *Notifier) mapOutcome(id string, state domain.State, mapping func() domain.Options) (out domain.Options) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("promise mapping failed", "id", id, "state", state,
				"err", fmt.Errorf("%w: %v", domain.ErrMapperPanic, r))
			out = domain.Options{ID: id, State: domain.StateError}
		}
	}()
	out = mapping()
	out.ID = id
	out.State = state
	return out
}
