package ports

import "time"

// Timer is a cancellable one-shot callback.
type Timer interface {
	// Stop prevents the callback from running.
	// It returns false if the callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks on a single logical thread.
// No two callbacks of one Scheduler ever run concurrently.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// NextFrame runs fn on the next render tick.
	NextFrame(fn func()) Timer

	// Post runs fn as soon as possible, after any callback currently running.
	Post(fn func())
}
