package testutils

import (
	"fmt"
	"testing"

	"github.com/aretw0/sileo"
	"github.com/aretw0/sileo/pkg/adapters/memory"
	"github.com/aretw0/sileo/pkg/scheduler"
)

// SequentialIDs returns a deterministic instance id generator: inst-1, inst-2, ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("inst-%d", n)
	}
}

// NewNotifier creates a notifier on a recording surface, driven by a manual
// clock and sequential instance ids. It is closed when the test ends.
func NewNotifier(t *testing.T, opts ...sileo.Option) (*sileo.Notifier, *memory.Surface, *scheduler.Manual) {
	t.Helper()

	clock := scheduler.NewManual()
	surface := memory.NewSurface()
	opts = append([]sileo.Option{sileo.WithScheduler(clock), sileo.WithInstanceIDs(SequentialIDs())}, opts...)
	n := sileo.New(surface, opts...)
	t.Cleanup(func() { _ = n.Close() })

	return n, surface, clock
}
