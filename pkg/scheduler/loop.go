package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/sileo/pkg/ports"
)

// Loop is the production Scheduler: a single goroutine executes posted tasks
// in FIFO order and every timer callback is posted onto it, so engine code
// never runs concurrently with itself.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	done chan struct{}

	cancel context.CancelFunc
	frame  time.Duration
	logger *slog.Logger
}

// NewLoop creates a loop. Call Start before posting work.
func NewLoop(opts ...Option) *Loop {
	cfg := newConfig(opts)
	return &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		frame:  cfg.frame,
		logger: cfg.logger,
	}
}

var _ ports.Scheduler = (*Loop)(nil)

// Start launches the loop goroutine. It stops when ctx is cancelled or Close is called.
func (l *Loop) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	go l.run(ctx)
}

// Close stops the loop and waits for the running task to finish.
// Tasks still queued are discarded.
func (l *Loop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.queue = nil
	l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
	return nil
}

// Post queues fn for execution on the loop goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug("loop closed, dropping task")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call posts fn and blocks until it has run. It must not be called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}
}

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) ports.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	return t
}

// NextFrame runs fn on the loop after one frame interval.
func (l *Loop) NextFrame(fn func()) ports.Timer {
	return l.AfterFunc(l.frame, fn)
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			if len(l.queue) == 0 || l.closed {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()

			l.exec(fn)
		}
	}
}

// exec runs one task, keeping the loop alive if it panics.
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", "panic", r)
		}
	}()
	fn()
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// loopTimer guards against a callback that was already posted when Stop ran.
type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

// Stop cancels the timer. It returns false if the callback already ran or was stopped.
func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
