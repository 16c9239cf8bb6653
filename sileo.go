package sileo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/sileo/internal/lifecycle"
	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/internal/reconciler"
	"github.com/aretw0/sileo/internal/store"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
	"github.com/aretw0/sileo/pkg/scheduler"
)

// Notifier is the entry point of the library: one notifier drives one surface.
// Every method is safe to call from any goroutine; mutations run on the
// notifier's scheduler.
type Notifier struct {
	surface ports.Surface
	sched   ports.Scheduler
	loop    *scheduler.Loop
	logger  *slog.Logger
	hooks   domain.Hooks
	policy  CollisionPolicy
	ids     func() string

	mu       sync.Mutex
	store    *store.Store
	rec      *reconciler.Reconciler
	defaults domain.Options
	closed   bool
}

// Option defines a functional option for configuring the Notifier.
type Option func(*Notifier)

// WithScheduler runs the notifier on s instead of a private event loop.
func WithScheduler(s ports.Scheduler) Option {
	return func(n *Notifier) {
		n.sched = s
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(n *Notifier) {
		n.hooks = hooks
	}
}

// CollisionPolicy decides what creating a toast with a live id does.
type CollisionPolicy = store.CollisionPolicy

const (
	// CollisionReplaceAll replaces the whole list with the new toast.
	CollisionReplaceAll = store.CollisionReplaceAll
	// CollisionReplaceInPlace swaps only the colliding toast.
	CollisionReplaceInPlace = store.CollisionReplaceInPlace
)

// WithCollisionPolicy selects the collision policy. The default is CollisionReplaceAll.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(n *Notifier) {
		n.policy = p
	}
}

// WithInstanceIDs replaces the instance id generator.
func WithInstanceIDs(gen func() string) Option {
	return func(n *Notifier) {
		n.ids = gen
	}
}

// InitOptions is the one-time setup of a notifier.
type InitOptions struct {
	// Position is the fallback for toasts that name none.
	Position domain.Position
	// Offset is the viewport distance from the screen edges.
	Offset domain.Offset
	// Defaults is laid under the options of every toast.
	Defaults domain.Options
}

// New creates a notifier drawing on surface. Without WithScheduler it starts
// its own event loop, stopped by Close.
func New(surface ports.Surface, opts ...Option) *Notifier {
	n := &Notifier{surface: surface}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = logging.NewNop()
	}
	if n.sched == nil {
		n.loop = scheduler.NewLoop(scheduler.WithLogger(n.logger))
		n.loop.Start(context.Background())
		n.sched = n.loop
	}
	return n
}

// Init sets the notifier up. Only the first call has an effect; it reports
// whether this call did the setup.
func (n *Notifier) Init(o InitOptions) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.store != nil {
		return false
	}

	pos := o.Position
	if pos == "" {
		pos = domain.DefaultPosition
	}
	storeOpts := []store.Option{
		store.WithPosition(pos),
		store.WithDefaults(o.Defaults),
		store.WithCollisionPolicy(n.policy),
		store.WithLogger(n.logger),
		store.WithHooks(n.hooks),
	}
	if n.ids != nil {
		storeOpts = append(storeOpts, store.WithInstanceIDs(n.ids))
	}

	n.store = store.New(n.sched, storeOpts...)
	n.rec = reconciler.New(n.surface, n.sched, n.store,
		reconciler.WithPosition(pos),
		reconciler.WithOffset(o.Offset),
		reconciler.WithLogger(n.logger),
		reconciler.WithHooks(n.hooks),
	)
	n.store.Subscribe(n.rec)
	n.defaults = o.Defaults
	n.logger.Debug("notifier initialised", "position", pos, "policy", n.policy)
	return true
}

// engine returns the store and reconciler, initialising with defaults on first use.
func (n *Notifier) engine() (*store.Store, *reconciler.Reconciler, domain.Options) {
	n.Init(InitOptions{})
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.store, n.rec, n.defaults
}

// Show creates a toast, defaulting to the success state, and returns its id.
func (n *Notifier) Show(opts domain.Options) string {
	if opts.State == "" {
		opts.State = domain.StateSuccess
	}
	return n.create(opts)
}

// Success creates a success toast.
func (n *Notifier) Success(opts domain.Options) string {
	opts.State = domain.StateSuccess
	return n.create(opts)
}

// Error creates an error toast.
func (n *Notifier) Error(opts domain.Options) string {
	opts.State = domain.StateError
	return n.create(opts)
}

// Warning creates a warning toast.
func (n *Notifier) Warning(opts domain.Options) string {
	opts.State = domain.StateWarning
	return n.create(opts)
}

// Info creates an info toast.
func (n *Notifier) Info(opts domain.Options) string {
	opts.State = domain.StateInfo
	return n.create(opts)
}

// Action creates an action toast.
func (n *Notifier) Action(opts domain.Options) string {
	opts.State = domain.StateAction
	return n.create(opts)
}

func (n *Notifier) create(opts domain.Options) string {
	st, _, defaults := n.engine()
	id := domain.Merge(defaults, opts).ID
	if id == "" {
		id = domain.DefaultID
	}
	n.post(func() { st.Create(opts) })
	return id
}

// Update replaces the content of the toast with the given id. Unknown ids are ignored.
func (n *Notifier) Update(id string, opts domain.Options) {
	st, _, _ := n.engine()
	n.post(func() { st.Update(id, opts) })
}

// Dismiss starts the exit of the toast with the given id.
func (n *Notifier) Dismiss(id string) {
	st, _, _ := n.engine()
	n.post(func() { st.Dismiss(id) })
}

// Clear removes every toast, or only those at pos when pos is set.
func (n *Notifier) Clear(pos domain.Position) {
	st, _, _ := n.engine()
	n.post(func() { st.Clear(pos) })
}

// Hover forwards a pointer entering the toast.
func (n *Notifier) Hover(id string) {
	n.withMachine(id, (*lifecycle.Machine).PointerEnter)
}

// Leave forwards a pointer leaving the toast.
func (n *Notifier) Leave(id string) {
	n.withMachine(id, (*lifecycle.Machine).PointerLeave)
}

// Swipe forwards a complete vertical drag of dy pixels.
func (n *Notifier) Swipe(id string, dy float64) {
	n.withMachine(id, func(m *lifecycle.Machine) {
		m.PointerDown(0, false)
		m.PointerMove(dy)
		m.PointerUp(dy)
	})
}

// Click forwards a click on the toast button.
func (n *Notifier) Click(id string) {
	n.withMachine(id, (*lifecycle.Machine).Click)
}

// CollapseDone forwards the end of a collapse animation.
func (n *Notifier) CollapseDone(id string) {
	n.withMachine(id, (*lifecycle.Machine).CollapseDone)
}

func (n *Notifier) withMachine(id string, fn func(*lifecycle.Machine)) {
	_, rec, _ := n.engine()
	n.post(func() {
		if m, ok := rec.Instance(id); ok {
			fn(m)
		}
	})
}

// Items returns the current toast list. It must not be called from a
// callback running on the notifier's scheduler.
func (n *Notifier) Items() []domain.Item {
	st, _, _ := n.engine()
	var out []domain.Item
	n.call(func() { out = st.Items() })
	return out
}

// Stats is a point-in-time view of the live instances and timers.
type Stats struct {
	Instances []string
	Timers    []string
	Active    string
	Hovering  bool
}

// Stats returns the reconciler bookkeeping. The same restriction as Items applies.
func (n *Notifier) Stats() Stats {
	_, rec, _ := n.engine()
	var s Stats
	n.call(func() {
		snap := rec.Snapshot()
		s = Stats{Instances: snap.Instances, Timers: snap.Timers, Active: snap.Active, Hovering: snap.Hovering}
	})
	return s
}

// Close tears the surface down and stops the private event loop, if any.
// Later calls are no-ops, and mutations after Close are dropped.
func (n *Notifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	st, rec := n.store, n.rec
	n.mu.Unlock()

	if rec != nil {
		n.call(func() {
			rec.Destroy()
			st.Close()
		})
	}

	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	if n.loop != nil {
		return n.loop.Close()
	}
	return nil
}

func (n *Notifier) post(fn func()) {
	n.mu.Lock()
	closed := n.closed
	n.mu.Unlock()
	if closed {
		n.logger.Warn("notifier closed, dropping mutation")
		return
	}
	n.sched.Post(fn)
}

// call runs fn on the scheduler and waits for it when the scheduler supports it.
func (n *Notifier) call(fn func()) {
	type caller interface {
		Call(ctx context.Context, fn func()) error
	}
	if c, ok := n.sched.(caller); ok {
		if err := c.Call(context.Background(), fn); err != nil {
			n.logger.Warn("scheduler call failed", "err", err)
		}
		return
	}
	n.sched.Post(fn)
}
