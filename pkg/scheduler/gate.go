package scheduler

import (
	"time"

	"github.com/aretw0/sileo/pkg/ports"
)

// Gate runs a continuation on the first of two sources: an external Signal
// or a deadline. Whichever comes first fires it; the other is disarmed.
//
// A Gate is not safe for concurrent use; drive it from its scheduler.
type Gate struct {
	timer ports.Timer
	fn    func()
	armed bool
}

// FirstOf arms a gate that calls fn on Signal or after deadline, whichever is first.
func FirstOf(s ports.Scheduler, deadline time.Duration, fn func()) *Gate {
	g := &Gate{fn: fn, armed: true}
	g.timer = s.AfterFunc(deadline, func() {
		g.fire()
	})
	return g
}

// Signal fires the continuation if the gate is still armed.
// It reports whether this call fired it.
func (g *Gate) Signal() bool {
	if g == nil || !g.armed {
		return false
	}
	g.timer.Stop()
	return g.fire()
}

// Cancel disarms both sources without running the continuation.
func (g *Gate) Cancel() {
	if g == nil || !g.armed {
		return
	}
	g.armed = false
	g.timer.Stop()
}

// Armed reports whether neither source has fired yet.
func (g *Gate) Armed() bool {
	return g != nil && g.armed
}

func (g *Gate) fire() bool {
	if !g.armed {
		return false
	}
	g.armed = false
	g.fn()
	return true
}
