/*
Package domain contains the core types of the sileo toast engine.

It defines the toast records held by the store, the options callers supply,
the visual frame computed for every live toast and the hooks used for
observability. This package is kept pure and free of I/O, timers and
rendering.

# Key Entities

  - Options: what a caller asks for (title, description, duration, autopilot...).
  - Item: a resolved toast record with its instance id and exiting flag.
  - Content: plain Text or an opaque Prebuilt value.
  - Frame: the visual variables of one toast, pushed to a rendering surface.
  - Hooks: optional callbacks fired by the store and the reconciler.
*/
package domain
