package sileo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/sileo"
	"github.com/aretw0/sileo/internal/testutils"
	"github.com/aretw0/sileo/pkg/adapters/memory"
	"github.com/aretw0/sileo/pkg/domain"
)

func TestShow_DefaultsToSuccess(t *testing.T) {
	n, surface, _ := testutils.NewNotifier(t)

	id := n.Show(domain.Options{Title: "Hello"})

	assert.Equal(t, domain.DefaultID, id)
	items := n.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.StateSuccess, items[0].State)
	assert.Equal(t, domain.DefaultPosition, items[0].Position, "auto-initialised with defaults")
	assert.NotNil(t, surface.Host(id))
}

func TestStateHelpers(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t, sileo.WithCollisionPolicy(sileo.CollisionReplaceInPlace))

	cases := map[string]struct {
		fn    func(domain.Options) string
		state domain.State
	}{
		"success": {n.Success, domain.StateSuccess},
		"error":   {n.Error, domain.StateError},
		"warning": {n.Warning, domain.StateWarning},
		"info":    {n.Info, domain.StateInfo},
		"action":  {n.Action, domain.StateAction},
	}
	for name, tc := range cases {
		id := tc.fn(domain.Options{ID: name, State: domain.StateLoading})
		assert.Equal(t, name, id)
	}

	for _, it := range n.Items() {
		assert.Equal(t, cases[it.ID].state, it.State, it.ID)
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	n, surface, _ := testutils.NewNotifier(t)

	assert.True(t, n.Init(sileo.InitOptions{
		Position: domain.BottomLeft,
		Offset:   domain.UniformOffset("12px"),
		Defaults: domain.Options{Fill: "#000000"},
	}))
	assert.False(t, n.Init(sileo.InitOptions{Position: domain.TopCenter}))

	n.Show(domain.Options{Title: "Hi"})

	it := n.Items()[0]
	assert.Equal(t, domain.BottomLeft, it.Position)
	assert.Equal(t, "#000000", it.Fill)

	vp := surface.ViewportAt(domain.BottomLeft)
	require.NotNil(t, vp)
	assert.Equal(t, map[domain.Side]string{domain.SideBottom: "12px", domain.SideLeft: "12px"}, vp.Spec().Offset)
}

func TestCreate_IDFromDefaults(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)
	n.Init(sileo.InitOptions{Defaults: domain.Options{ID: "app"}})

	assert.Equal(t, "app", n.Info(domain.Options{Title: "x"}))
}

func TestDismissAndClear(t *testing.T) {
	n, _, clock := testutils.NewNotifier(t, sileo.WithCollisionPolicy(sileo.CollisionReplaceInPlace))
	n.Show(domain.Options{ID: "a", Position: domain.TopLeft})
	n.Show(domain.Options{ID: "b", Position: domain.BottomRight})
	n.Show(domain.Options{ID: "c", Position: domain.BottomRight})

	n.Dismiss("a")
	clock.Advance(domain.ExitDuration)
	assert.Len(t, n.Items(), 2)

	n.Clear(domain.BottomRight)
	assert.Empty(t, n.Items())
}

func TestUpdate(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)
	n.Show(domain.Options{ID: "a", Title: "Before"})

	n.Update("a", domain.Options{Title: "After", State: domain.StateInfo})

	it := n.Items()[0]
	assert.Equal(t, "After", it.Title)
	assert.Equal(t, domain.StateInfo, it.State)
}

func TestHover_PausesDismissal(t *testing.T) {
	n, _, clock := testutils.NewNotifier(t)
	n.Show(domain.Options{ID: "a", Duration: domain.Expires(time.Second)})

	n.Hover("a")
	stats := n.Stats()
	assert.True(t, stats.Hovering)
	assert.Empty(t, stats.Timers)

	clock.Advance(time.Minute)
	assert.False(t, n.Items()[0].Exiting)

	n.Leave("a")
	clock.Advance(time.Second)
	assert.True(t, n.Items()[0].Exiting)
}

func TestSwipe(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)
	n.Show(domain.Options{ID: "a"})

	n.Swipe("a", 10)
	assert.False(t, n.Items()[0].Exiting, "short drags snap back")

	n.Swipe("a", -40)
	assert.True(t, n.Items()[0].Exiting)
}

func TestClick(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)
	clicked := 0
	n.Action(domain.Options{ID: "a", Button: &domain.Button{Title: "Undo", OnClick: func() { clicked++ }}})

	n.Click("a")
	n.Click("missing")

	assert.Equal(t, 1, clicked)
}

func TestCollapseDone_AppliesQueuedContent(t *testing.T) {
	n, surface, _ := testutils.NewNotifier(t)
	n.Show(domain.Options{ID: "a", Title: "One", Description: domain.Text("x"), Autopilot: domain.AutopilotOff()})
	n.Hover("a")

	n.Update("a", domain.Options{Title: "Two", Description: domain.Text("y")})
	frame, _ := surface.Host("a").Last()
	assert.Equal(t, "One", frame.Header.Title, "still collapsing")

	n.CollapseDone("a")
	frame, _ = surface.Host("a").Last()
	assert.Equal(t, "Two", frame.Header.Title)
}

func TestPromise_Success(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)

	var during domain.Item
	v, err := sileo.Promise(context.Background(), n, func(context.Context) (int, error) {
		during = n.Items()[0]
		return 42, nil
	}, sileo.PromiseOptions[int]{
		Loading: domain.Options{Title: "Working"},
		Success: func(v int) domain.Options { return domain.Options{Title: fmt.Sprintf("Got %d", v)} },
	})

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, domain.StateLoading, during.State)
	assert.False(t, during.Expires(), "loading toasts never expire")

	it := n.Items()[0]
	assert.Equal(t, domain.StateSuccess, it.State)
	assert.Equal(t, "Got 42", it.Title)
	assert.True(t, it.Expires())
}

func TestPromise_Action(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)

	_, err := sileo.Promise(context.Background(), n, func(context.Context) (string, error) {
		return "v1", nil
	}, sileo.PromiseOptions[string]{
		Success:  sileo.Static[string](domain.Options{Title: "ignored"}),
		Action:   func(v string) domain.Options { return domain.Options{Title: "Release " + v} },
		Position: domain.TopCenter,
	})

	require.NoError(t, err)
	it := n.Items()[0]
	assert.Equal(t, domain.StateAction, it.State)
	assert.Equal(t, "Release v1", it.Title)
	assert.Equal(t, domain.TopCenter, it.Position)
}

func TestPromise_ErrorIsReturned(t *testing.T) {
	n, _, _ := testutils.NewNotifier(t)
	boom := errors.New("boom")

	_, err := sileo.Promise(context.Background(), n, func(context.Context) (int, error) {
		return 0, boom
	}, sileo.PromiseOptions[int]{})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.StateError, n.Items()[0].State)
}

func TestPromise_PanickingMapping(t *testing.T) {
	n, surface, _ := testutils.NewNotifier(t)

	v, err := sileo.Promise(context.Background(), n, func(context.Context) (int, error) {
		return 7, nil
	}, sileo.PromiseOptions[int]{
		Success: func(int) domain.Options { panic("mapping bug") },
	})

	require.NoError(t, err)
	assert.Equal(t, 7, v)
	it := n.Items()[0]
	assert.Equal(t, domain.StateError, it.State)

	frame, _ := surface.Host(it.ID).Last()
	assert.Equal(t, "error", frame.Header.Title, "default title of the error state")
}

func TestClose_DropsLaterMutations(t *testing.T) {
	n, surface, _ := testutils.NewNotifier(t)
	n.Show(domain.Options{ID: "a"})
	host := surface.Host("a")

	require.NoError(t, n.Close())
	require.NoError(t, n.Close())
	n.Show(domain.Options{ID: "b"})

	assert.True(t, host.Removed())
	assert.Nil(t, surface.Host("b"))
}

func TestNotifier_EventLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := sileo.New(memory.NewSurface())
	n.Show(domain.Options{Title: "Hello"})

	items := n.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Hello", items[0].Title)

	require.NoError(t, n.Close())
}
