package scheduler

import (
	"log/slog"
	"time"

	"github.com/aretw0/sileo/internal/logging"
)

// DefaultFrameInterval approximates one display refresh at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Option configures a Loop or a Manual scheduler.
type Option func(*config)

type config struct {
	frame  time.Duration
	logger *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		frame:  DefaultFrameInterval,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFrameInterval sets the delay used by NextFrame.
func WithFrameInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.frame = d
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
