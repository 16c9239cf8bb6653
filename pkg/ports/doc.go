/*
Package ports defines the driven ports (interfaces) for the sileo engine.

These interfaces decouple the store, the lifecycle machines and the
reconciler from timers and from the rendering backend, allowing the engine to
run against a browser bridge, a terminal or a recording fake.

# Key Interfaces

  - Scheduler: one-shot timers, render-tick deferral and serialised posting.
  - Listener: the single subscriber to store snapshots.
  - Surface, Viewport, Host: the rendering surface consumed by the engine.
*/
package ports
