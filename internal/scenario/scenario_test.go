package scenario_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sileo/internal/scenario"
	"github.com/aretw0/sileo/internal/testutils"
	"github.com/aretw0/sileo/pkg/domain"
)

const deployYAML = `
name: deploy
steps:
  - create: {id: deploy, state: loading, title: Deploying, duration: never}
  - wait: 1s
  - update: {id: deploy, state: action, title: Live, button: Open, description: v2 is out}
  - hover: deploy
  - click: deploy
  - leave: deploy
  - swipe: {id: deploy, dy: -35}
  - create: {id: other, position: bottom-left}
  - clear: bottom-left
  - wait: 600
  - dismiss: deploy
  - clear: all
`

func TestLoad(t *testing.T) {
	s, err := scenario.Load(strings.NewReader(deployYAML))
	require.NoError(t, err)

	assert.Equal(t, "deploy", s.Name)
	require.Len(t, s.Steps, 12)

	assert.Equal(t, scenario.KindCreate, s.Steps[0].Kind)
	assert.Equal(t, domain.StateLoading, s.Steps[0].Options.State)
	assert.Equal(t, domain.Never, *s.Steps[0].Options.Duration)

	update := s.Steps[2]
	assert.Equal(t, "deploy", update.ID)
	require.NotNil(t, update.Options.Button)
	assert.Equal(t, "Open", update.Options.Button.Title)

	assert.Equal(t, -35.0, s.Steps[6].DY)
	assert.Equal(t, domain.BottomLeft, s.Steps[8].Position)
	assert.Equal(t, 600*time.Millisecond, s.Steps[9].Wait)
	assert.Empty(t, s.Steps[11].Position)
	assert.Equal(t, 1600*time.Millisecond, s.Duration())
}

func TestLoad_SwipeDefaultDistance(t *testing.T) {
	s, err := scenario.Load(strings.NewReader("steps:\n  - swipe: a\n"))
	require.NoError(t, err)
	assert.Equal(t, scenario.DefaultSwipe, s.Steps[0].DY)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want error
	}{
		"unknown step":    {"steps:\n  - explode: a\n", domain.ErrUnknownStep},
		"two operations":  {"steps:\n  - {hover: a, leave: a}\n", domain.ErrInvalidConfig},
		"update needs id": {"steps:\n  - update: {title: x}\n", domain.ErrInvalidConfig},
		"bad state":       {"steps:\n  - create: {state: shiny}\n", domain.ErrInvalidConfig},
		"bad wait":        {"steps:\n  - wait: later\n", domain.ErrInvalidDuration},
		"bad clear":       {"steps:\n  - clear: middle\n", domain.ErrInvalidConfig},
		"target no id":    {"steps:\n  - swipe: {dy: 3}\n", domain.ErrInvalidConfig},
		"unknown field":   {"steps:\n  - create: {colour: red}\n", domain.ErrInvalidConfig},
		"unknown top key": {"title: nope\n", domain.ErrInvalidConfig},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilder(t *testing.T) {
	b := scenario.New("built").
		Create(domain.Options{ID: "a"}).
		Wait(time.Second).
		Swipe("a", 40)
	s := b.Build()
	b.Click("a")

	assert.Equal(t, "built", s.Name)
	assert.Len(t, s.Steps, 3, "Build returns a snapshot")
	assert.Equal(t, time.Second, s.Duration())
}

func TestPlay_DrivesNotifier(t *testing.T) {
	n, surface, clock := testutils.NewNotifier(t)

	s, err := scenario.Load(strings.NewReader(deployYAML))
	require.NoError(t, err)

	var clicked []string
	var slept time.Duration
	p := scenario.NewPlayer(n,
		scenario.WithSleeper(func(_ context.Context, d time.Duration) error {
			slept += d
			clock.Advance(d)
			return nil
		}),
		scenario.WithClickHandler(func(id string) { clicked = append(clicked, id) }),
	)

	require.NoError(t, p.Play(context.Background(), s))

	assert.Equal(t, 1600*time.Millisecond, slept)
	assert.Equal(t, []string{"deploy"}, clicked)
	assert.Empty(t, n.Items())
	assert.Nil(t, surface.Host("deploy"))
}

func TestPlay_SwipeDismisses(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)

	s := scenario.New("swipe").
		Create(domain.Options{ID: "a", Duration: domain.NeverExpires()}).
		Swipe("a", scenario.DefaultSwipe).
		Build()

	require.NoError(t, scenario.NewPlayer(n).Play(context.Background(), s))

	items := n.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Exiting)
}

func TestPlay_Cancelled(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := scenario.NewPlayer(n).Play(ctx, scenario.New("x").Wait(time.Hour).Build())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlay_UnknownKind(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)

	s := &scenario.Scenario{Steps: []scenario.Step{{Kind: "teleport"}}}
	assert.ErrorIs(t, scenario.NewPlayer(n).Play(context.Background(), s), domain.ErrUnknownStep)
}

func TestSleep(t *testing.T) {
	require.NoError(t, scenario.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, scenario.Sleep(ctx, time.Hour), context.Canceled)
}
