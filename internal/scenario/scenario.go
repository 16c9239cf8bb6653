// Package scenario describes timelines of toast operations and replays them
// against a notifier.
//
// A scenario is either built in Go:
//
//	s := scenario.New("deploy").
//		Create(domain.Options{ID: "deploy", State: domain.StateLoading, Title: "Deploying"}).
//		Wait(2 * time.Second).
//		Update("deploy", domain.Options{State: domain.StateSuccess, Title: "Live"}).
//		Build()
//
// or loaded from YAML, where every step is a single-key mapping:
//
//	name: deploy
//	steps:
//	  - create: {id: deploy, state: loading, title: Deploying}
//	  - wait: 2s
//	  - update: {id: deploy, state: success, title: Live}
//	  - swipe: {id: deploy, dy: 40}
package scenario

import (
	"time"

	"github.com/aretw0/sileo/pkg/domain"
)

// Kind names a scenario operation.
type Kind string

const (
	KindCreate  Kind = "create"
	KindUpdate  Kind = "update"
	KindDismiss Kind = "dismiss"
	KindClear   Kind = "clear"
	KindHover   Kind = "hover"
	KindLeave   Kind = "leave"
	KindSwipe   Kind = "swipe"
	KindClick   Kind = "click"
	KindWait    Kind = "wait"
)

// DefaultSwipe is the drag distance of a swipe step that names none.
const DefaultSwipe = 40.0

// Step is one operation of a scenario. Only the fields its Kind uses are set.
type Step struct {
	Kind     Kind
	ID       string
	Options  domain.Options
	Position domain.Position
	DY       float64
	Wait     time.Duration
}

// Scenario is a named, ordered list of steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Duration is the sum of the wait steps.
func (s *Scenario) Duration() time.Duration {
	var total time.Duration
	for _, st := range s.Steps {
		if st.Kind == KindWait {
			total += st.Wait
		}
	}
	return total
}

// Builder assembles a scenario step by step.
type Builder struct {
	scenario Scenario
}

// New starts a scenario called name.
func New(name string) *Builder {
	return &Builder{scenario: Scenario{Name: name}}
}

func (b *Builder) add(st Step) *Builder {
	b.scenario.Steps = append(b.scenario.Steps, st)
	return b
}

// Create shows a toast.
func (b *Builder) Create(opts domain.Options) *Builder {
	return b.add(Step{Kind: KindCreate, ID: opts.ID, Options: opts})
}

// Update replaces the content of a toast.
func (b *Builder) Update(id string, opts domain.Options) *Builder {
	return b.add(Step{Kind: KindUpdate, ID: id, Options: opts})
}

// Dismiss starts the exit of a toast.
func (b *Builder) Dismiss(id string) *Builder {
	return b.add(Step{Kind: KindDismiss, ID: id})
}

// Clear removes the toasts at pos, or every toast when pos is empty.
func (b *Builder) Clear(pos domain.Position) *Builder {
	return b.add(Step{Kind: KindClear, Position: pos})
}

// Hover moves the pointer onto a toast.
func (b *Builder) Hover(id string) *Builder {
	return b.add(Step{Kind: KindHover, ID: id})
}

// Leave moves the pointer off a toast.
func (b *Builder) Leave(id string) *Builder {
	return b.add(Step{Kind: KindLeave, ID: id})
}

// Swipe drags a toast vertically by dy pixels.
func (b *Builder) Swipe(id string, dy float64) *Builder {
	return b.add(Step{Kind: KindSwipe, ID: id, DY: dy})
}

// Click presses the button of a toast.
func (b *Builder) Click(id string) *Builder {
	return b.add(Step{Kind: KindClick, ID: id})
}

// Wait pauses the timeline.
func (b *Builder) Wait(d time.Duration) *Builder {
	return b.add(Step{Kind: KindWait, Wait: d})
}

// Build returns the assembled scenario.
func (b *Builder) Build() *Scenario {
	s := b.scenario
	s.Steps = append([]Step(nil), b.scenario.Steps...)
	return &s
}
