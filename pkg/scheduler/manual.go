package scheduler

import (
	"container/heap"
	"sync"
	"time"

	"github.com/aretw0/sileo/pkg/ports"
)

// Manual is a virtual-time Scheduler. Time only moves when Advance is called,
// which makes every timer in the engine deterministic under test and replay.
//
// Post runs the task inline unless another task is running, in which case it
// is queued and drained before the running call returns.
type Manual struct {
	mu      sync.Mutex
	start   time.Time
	elapsed time.Duration
	seq     uint64
	timers  timerHeap
	queue   []func()
	running bool
	frame   time.Duration
}

// NewManual creates a virtual-time scheduler starting at the zero instant.
func NewManual(opts ...Option) *Manual {
	cfg := newConfig(opts)
	return &Manual{
		start: time.Unix(0, 0).UTC(),
		frame: cfg.frame,
	}
}

var _ ports.Scheduler = (*Manual)(nil)

// manualTimer is one pending callback.
type manualTimer struct {
	m     *Manual
	when  time.Duration
	seq   uint64
	fn    func()
	done  bool
	index int
}

// Stop cancels the timer. It returns false if it already ran or was stopped.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	if t.index >= 0 {
		heap.Remove(&t.m.timers, t.index)
	}
	return true
}

// AfterFunc schedules fn to run once the virtual clock has moved by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, when: m.elapsed + d, seq: m.seq, fn: fn}
	heap.Push(&m.timers, t)
	return t
}

// NextFrame schedules fn one frame interval from now.
func (m *Manual) NextFrame(fn func()) ports.Timer {
	return m.AfterFunc(m.frame, fn)
}

// Post runs fn now, or right after the task currently running.
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	if m.running {
		m.queue = append(m.queue, fn)
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()
	m.drain(fn)
}

// drain runs fn followed by everything queued meanwhile.
func (m *Manual) drain(fn func()) {
	for fn != nil {
		fn()
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.running = false
			m.mu.Unlock()
			return
		}
		fn = m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
	}
}

// Advance moves the virtual clock forward by d, running every timer that
// falls due in deadline order. Timers scheduled by those callbacks run too
// when their deadline is within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.elapsed + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].when > target {
			m.elapsed = target
			m.mu.Unlock()
			return
		}
		t := heap.Pop(&m.timers).(*manualTimer)
		t.done = true
		m.elapsed = t.when
		m.mu.Unlock()

		m.Post(t.fn)
	}
}

// AdvanceFrames moves the clock by n frame intervals.
func (m *Manual) AdvanceFrames(n int) {
	m.Advance(time.Duration(n) * m.frame)
}

// Flush runs every timer already due without moving the clock.
func (m *Manual) Flush() {
	m.Advance(0)
}

// Now returns the current virtual instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start.Add(m.elapsed)
}

// Elapsed returns how far the virtual clock has moved.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Pending returns the number of timers that have not run or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// timerHeap orders timers by deadline, then by scheduling order.
type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when != h[j].when {
		return h[i].when < h[j].when
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
