package ports

import "github.com/aretw0/sileo/pkg/domain"

// Listener receives every new snapshot of the toast list.
// The store holds exactly one listener; the reconciler is the only implementation.
type Listener interface {
	// Sync is called synchronously after each list replacement.
	// The slice must be treated as read-only.
	Sync(items []domain.Item)
}

// Dismisser starts the exit of a toast by id.
type Dismisser interface {
	Dismiss(id string)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(items []domain.Item)

// Sync calls f(items).
func (f ListenerFunc) Sync(items []domain.Item) {
	f(items)
}
