/*
Package scheduler provides the single-threaded execution model of the engine.

All engine state is owned by one logical thread. Loop implements it with a
goroutine that drains a FIFO queue; Manual implements it with a virtual clock
for tests and headless replay. Both satisfy ports.Scheduler.

Suspension points are one-shot timers (AfterFunc), render ticks (NextFrame)
and posted tasks (Post). A stopped timer never runs, even if its deadline
already passed and the callback was queued.
*/
package scheduler
