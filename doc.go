/*
Package sileo is a toast notification engine: a store of toast records, a
per-toast lifecycle state machine and a reconciler that keeps any rendering
surface in step with the list.

# Concept

The engine owns the behaviour of toasts (replacement by id, auto-dismiss,
autopilot expand and collapse, hover pausing, swipe dismissal, content swaps
that collapse first) while a Surface owns the pixels. The terminal and
in-memory surfaces ship with the module; any other backend implements
ports.Surface.

All engine code runs on a single scheduler. The default is a private event
loop, so a Notifier can be used from any goroutine; tests and replays use
scheduler.Manual for virtual time.

# Usage

	surface := terminal.New(os.Stdout)
	n := sileo.New(surface)
	defer n.Close()

	n.Init(sileo.InitOptions{Position: domain.BottomRight})

	n.Success(domain.Options{Title: "Saved"})

	_, err := sileo.Promise(ctx, n, upload, sileo.PromiseOptions[string]{
		Loading: domain.Options{Title: "Uploading"},
		Success: func(url string) domain.Options {
			return domain.Options{Title: "Uploaded", Description: domain.Text(url)}
		},
		Error: sileo.Static[error](domain.Options{Title: "Upload failed"}),
	})

# Collision policy

Creating a toast whose id is already live replaces every toast on the
surface by default (CollisionReplaceAll). Pass
WithCollisionPolicy(CollisionReplaceInPlace) to swap only the colliding
toast.
*/
package sileo
