// Package store holds the ordered list of toast records and its mutators.
//
// The list is never mutated in place: every change builds a new slice,
// swaps it in and synchronously notifies the single registered listener.
package store

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/ports"
)

// Store is the toast list of one notification surface.
// It is not safe for concurrent use; drive it from its scheduler.
type Store struct {
	items    []domain.Item
	listener ports.Listener

	position domain.Position
	defaults domain.Options
	policy   CollisionPolicy

	sched    ports.Scheduler
	removals map[string]ports.Timer

	newInstanceID func() string
	logger        *slog.Logger
	hooks         domain.Hooks
}

// Result is returned by Create.
type Result struct {
	ID       string
	Duration time.Duration
}

// New creates an empty store whose exit timers run on sched.
func New(sched ports.Scheduler, opts ...Option) *Store {
	s := &Store{
		position:      domain.DefaultPosition,
		sched:         sched,
		removals:      make(map[string]ports.Timer),
		newInstanceID: uuid.NewString,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Dismisser = (*Store)(nil)

// Subscribe registers the listener notified after every change, replacing any previous one.
func (s *Store) Subscribe(l ports.Listener) {
	s.listener = l
}

// Position returns the fallback position.
func (s *Store) Position() domain.Position {
	return s.position
}

// Items returns a copy of the current list.
func (s *Store) Items() []domain.Item {
	return slices.Clone(s.items)
}

// Len returns the number of items, exiting ones included.
func (s *Store) Len() int {
	return len(s.items)
}

// Create adds a toast, or replaces the live toast holding the same id
// according to the collision policy.
func (s *Store) Create(opts domain.Options) Result {
	merged := domain.Merge(s.defaults, opts)
	id := merged.ID
	if id == "" {
		id = domain.DefaultID
	}

	prev, live := s.findLive(id)
	var fallback domain.Position
	if live {
		fallback = prev.Position
	}
	item := s.build(merged, id, fallback)

	switch {
	case live && s.policy == CollisionReplaceAll:
		dropped := len(s.items)
		s.logger.Debug("id collision, replacing all toasts", "id", id, "dropped", dropped)
		s.replace([]domain.Item{item})
		s.emit(s.hooks.OnCreate, domain.EventCreate, item, dropped)
	case live:
		next := make([]domain.Item, 0, len(s.items))
		for _, t := range s.items {
			switch {
			case t.ID != id:
				next = append(next, t)
			case !t.Exiting:
				next = append(next, item)
			}
		}
		s.replace(next)
		s.emit(s.hooks.OnCreate, domain.EventCreate, item, 1)
	default:
		next := make([]domain.Item, 0, len(s.items)+1)
		for _, t := range s.items {
			if t.ID != id {
				next = append(next, t)
			}
		}
		s.replace(append(next, item))
		s.emit(s.hooks.OnCreate, domain.EventCreate, item, 0)
	}

	return Result{ID: id, Duration: merged.ResolvedDuration()}
}

// Update replaces the toast with the given id. Unknown ids are ignored.
// The toast keeps its resolved position unless opts names a new one.
func (s *Store) Update(id string, opts domain.Options) {
	idx := slices.IndexFunc(s.items, func(t domain.Item) bool { return t.ID == id })
	if idx < 0 {
		s.logger.Debug("update of unknown toast ignored", "id", id)
		return
	}

	item := s.build(domain.Merge(s.defaults, opts), id, s.items[idx].Position)

	next := make([]domain.Item, 0, len(s.items))
	for i, t := range s.items {
		switch {
		case i == idx:
			next = append(next, item)
		case t.ID != id:
			next = append(next, t)
		}
	}
	s.replace(next)
	s.emit(s.hooks.OnUpdate, domain.EventUpdate, item, 0)
}

// Dismiss flags the toast as exiting and removes it once the exit animation is over.
// Unknown and already exiting toasts are ignored.
// The removal only drops exiting entries, so a toast created under the same id
// during the exit survives it.
func (s *Store) Dismiss(id string) {
	idx := slices.IndexFunc(s.items, func(t domain.Item) bool { return t.ID == id })
	if idx < 0 || s.items[idx].Exiting {
		return
	}

	next := make([]domain.Item, len(s.items))
	for i, t := range s.items {
		if t.ID == id {
			t.Exiting = true
		}
		next[i] = t
	}
	dismissed := next[idx]
	s.replace(next)
	s.emit(s.hooks.OnDismiss, domain.EventDismiss, dismissed, 0)

	if prev, ok := s.removals[id]; ok {
		prev.Stop()
	}
	s.removals[id] = s.sched.AfterFunc(domain.ExitDuration, func() {
		delete(s.removals, id)
		s.removeExiting(id)
	})
}

// removeExiting drops the exiting entries of id. A fresh toast created under
// the same id while the exit ran is kept.
func (s *Store) removeExiting(id string) {
	var removed []domain.Item
	next := make([]domain.Item, 0, len(s.items))
	for _, t := range s.items {
		if t.ID == id && t.Exiting {
			removed = append(removed, t)
			continue
		}
		next = append(next, t)
	}
	if len(removed) == 0 {
		return
	}
	s.replace(next)
	for _, t := range removed {
		s.emit(s.hooks.OnRemove, domain.EventRemove, t, 0)
	}
}

// Clear removes every toast, or only those at pos when pos is set.
func (s *Store) Clear(pos domain.Position) {
	if pos == "" {
		s.replace([]domain.Item{})
		return
	}
	next := make([]domain.Item, 0, len(s.items))
	for _, t := range s.items {
		if t.Position != pos {
			next = append(next, t)
		}
	}
	s.replace(next)
}

// Close cancels pending exit removals.
func (s *Store) Close() {
	for id, t := range s.removals {
		t.Stop()
		delete(s.removals, id)
	}
}

// replace is the single list-replacement primitive.
func (s *Store) replace(next []domain.Item) {
	s.items = next
	if s.listener != nil {
		s.listener.Sync(next)
	}
}

func (s *Store) findLive(id string) (domain.Item, bool) {
	for _, t := range s.items {
		if t.ID == id && !t.Exiting {
			return t, true
		}
	}
	return domain.Item{}, false
}

func (s *Store) build(merged domain.Options, id string, fallback domain.Position) domain.Item {
	lifetime := merged.ResolvedDuration()
	delays := ResolveAutopilot(merged, lifetime)

	item := domain.Item{
		Options:           merged,
		InstanceID:        s.newInstanceID(),
		Lifetime:          lifetime,
		AutoExpandDelay:   delays.Expand,
		AutoCollapseDelay: delays.Collapse,
	}
	item.ID = id
	switch {
	case merged.Position != "":
	case fallback != "":
		item.Position = fallback
	default:
		item.Position = s.position
	}
	return item
}

func (s *Store) emit(hook func(*domain.ToastEvent), typ domain.EventType, it domain.Item, replaced int) {
	if hook == nil {
		return
	}
	hook(&domain.ToastEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: typ},
		ID:         it.ID,
		InstanceID: it.InstanceID,
		State:      it.State.OrDefault(),
		Position:   it.Position,
		Replaced:   replaced,
	})
}
