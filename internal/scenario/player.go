package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/pkg/domain"
)

// Target receives the operations of a scenario. *sileo.Notifier implements it.
type Target interface {
	Show(opts domain.Options) string
	Update(id string, opts domain.Options)
	Dismiss(id string)
	Clear(pos domain.Position)
	Hover(id string)
	Leave(id string)
	Swipe(id string, dy float64)
	Click(id string)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Player replays scenarios against a target.
type Player struct {
	target  Target
	sleep   Sleeper
	logger  *slog.Logger
	onClick func(id string)
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithSleeper replaces the wall-clock wait, typically with a virtual clock.
func WithSleeper(s Sleeper) PlayerOption {
	return func(p *Player) {
		p.sleep = s
	}
}

// WithLogger sets the logger for step tracing.
func WithLogger(l *slog.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = l
	}
}

// WithClickHandler is called when the button of a created toast is pressed.
// Buttons that already carry a handler keep it.
func WithClickHandler(fn func(id string)) PlayerOption {
	return func(p *Player) {
		p.onClick = fn
	}
}

// NewPlayer creates a player driving target.
func NewPlayer(target Target, opts ...PlayerOption) *Player {
	p := &Player{
		target: target,
		sleep:  Sleep,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sleep waits on the wall clock.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play runs every step in order. It stops at the first failed wait or when
// ctx is cancelled.
func (p *Player) Play(ctx context.Context, s *Scenario) error {
	p.logger.Info("playing scenario", "name", s.Name, "steps", len(s.Steps), "duration", s.Duration())
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.logger.Debug("scenario step", "index", i+1, "kind", st.Kind, "id", st.ID)

		switch st.Kind {
		case KindCreate:
			p.target.Show(p.withButton(st.ID, st.Options))
		case KindUpdate:
			p.target.Update(st.ID, p.withButton(st.ID, st.Options))
		case KindDismiss:
			p.target.Dismiss(st.ID)
		case KindClear:
			p.target.Clear(st.Position)
		case KindHover:
			p.target.Hover(st.ID)
		case KindLeave:
			p.target.Leave(st.ID)
		case KindSwipe:
			p.target.Swipe(st.ID, st.DY)
		case KindClick:
			p.target.Click(st.ID)
		case KindWait:
			if err := p.sleep(ctx, st.Wait); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		default:
			return fmt.Errorf("step %d: %w: %q", i+1, domain.ErrUnknownStep, st.Kind)
		}
	}
	return nil
}

func (p *Player) withButton(id string, opts domain.Options) domain.Options {
	if opts.Button == nil || opts.Button.OnClick != nil || p.onClick == nil {
		return opts
	}
	if id == "" {
		id = domain.DefaultID
	}
	b := *opts.Button
	b.OnClick = func() { p.onClick(id) }
	opts.Button = &b
	return opts
}
