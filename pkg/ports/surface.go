package ports

import "github.com/aretw0/sileo/pkg/domain"

// Surface is the rendering backend the reconciler draws on.
type Surface interface {
	// Viewport creates the container for one screen position.
	Viewport(spec domain.ViewportSpec) Viewport

	// NewHost creates the visual host element of one toast.
	NewHost(id string) Host

	// DefineFilter installs a shared blur filter. It is called once per filter id.
	DefineFilter(f domain.Filter)
}

// Viewport is the container holding the toasts of one position.
type Viewport interface {
	// Append adds a host after the existing ones.
	Append(h Host)

	// Remove detaches the viewport from the screen.
	Remove()
}

// Host is the visual element of one toast.
type Host interface {
	// Render applies a freshly computed frame.
	Render(f domain.Frame)

	// Measure reports the current size of a part: width for the header,
	// height for the content. ok is false when the part cannot be measured yet.
	Measure(part domain.Part) (size float64, ok bool)

	// Observe registers fn to be called whenever the part changes size.
	// A host is free to never call fn.
	Observe(part domain.Part, fn func()) (cancel func())

	// Remove detaches the host from its viewport.
	Remove()
}
