package domain

import "time"

// Item is one toast record held by the store.
//
// At most one non-exiting Item per ID exists in a list; during a replace an
// ID may briefly have one exiting and one fresh Item.
type Item struct {
	Options

	// InstanceID is regenerated on every create or update and never reused.
	InstanceID string
	Exiting    bool

	// Lifetime is the resolved duration; non-positive means never expires.
	Lifetime time.Duration

	// AutoExpandDelay and AutoCollapseDelay are nil when autopilot does not apply.
	AutoExpandDelay   *time.Duration
	AutoCollapseDelay *time.Duration
}

// TimerKey is the composite key of the auto-dismiss timer for an item.
func TimerKey(it Item) string {
	return it.ID + ":" + it.InstanceID
}

// Expires reports whether the item is subject to auto-dismiss.
func (it Item) Expires() bool {
	return it.Lifetime > 0
}
