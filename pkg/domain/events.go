package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventCreate  EventType = "toast_create"
	EventUpdate  EventType = "toast_update"
	EventDismiss EventType = "toast_dismiss"
	EventRemove  EventType = "toast_remove"
	EventSync    EventType = "sync"
	EventTimer   EventType = "timer"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ToastEvent reports a store mutation affecting one toast.
type ToastEvent struct {
	EventBase
	ID         string   `json:"id"`
	InstanceID string   `json:"instance_id"`
	State      State    `json:"state"`
	Position   Position `json:"position"`
	// Replaced is the number of toasts dropped by a replace-all collision.
	Replaced int `json:"replaced,omitempty"`
}

// SyncEvent reports one reconciliation pass.
type SyncEvent struct {
	EventBase
	Items     int `json:"items"`
	Instances int `json:"instances"`
	Timers    int `json:"timers"`
	Created   int `json:"created"`
	Destroyed int `json:"destroyed"`
}

// TimerAction describes what happened to an auto-dismiss timer.
type TimerAction string

const (
	TimerArmed   TimerAction = "armed"
	TimerFired   TimerAction = "fired"
	TimerDropped TimerAction = "dropped"
	TimerPaused  TimerAction = "paused"
)

// TimerEvent reports an auto-dismiss timer transition.
type TimerEvent struct {
	EventBase
	Key    string      `json:"key"`
	Action TimerAction `json:"action"`
}

// Hooks defines callbacks for engine observability. Every field is optional.
type Hooks struct {
	OnCreate  func(*ToastEvent)
	OnUpdate  func(*ToastEvent)
	OnDismiss func(*ToastEvent)
	OnRemove  func(*ToastEvent)
	OnSync    func(*SyncEvent)
	OnTimer   func(*TimerEvent)
}

// Combine returns hooks that call every non-nil hook of each input in order.
func Combine(all ...Hooks) Hooks {
	var out Hooks
	for _, h := range all {
		out.OnCreate = chainToast(out.OnCreate, h.OnCreate)
		out.OnUpdate = chainToast(out.OnUpdate, h.OnUpdate)
		out.OnDismiss = chainToast(out.OnDismiss, h.OnDismiss)
		out.OnRemove = chainToast(out.OnRemove, h.OnRemove)
		out.OnSync = chainSync(out.OnSync, h.OnSync)
		out.OnTimer = chainTimer(out.OnTimer, h.OnTimer)
	}
	return out
}

func chainToast(a, b func(*ToastEvent)) func(*ToastEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *ToastEvent) { a(e); b(e) }
}

func chainSync(a, b func(*SyncEvent)) func(*SyncEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *SyncEvent) { a(e); b(e) }
}

func chainTimer(a, b func(*TimerEvent)) func(*TimerEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *TimerEvent) { a(e); b(e) }
}
