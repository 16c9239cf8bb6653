package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/sileo/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := scheduler.NewLoop()
	l.Start(context.Background())
	defer l.Close()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	require.NoError(t, l.Call(context.Background(), func() {}))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_TimerFiresOnLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := scheduler.NewLoop()
	l.Start(context.Background())
	defer l.Close()

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoop_StoppedTimerNeverRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := scheduler.NewLoop()
	l.Start(context.Background())
	defer l.Close()

	var mu sync.Mutex
	fired := false
	timer := l.AfterFunc(20*time.Millisecond, func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	require.NoError(t, l.Call(context.Background(), func() {
		assert.True(t, timer.Stop())
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, l.Call(context.Background(), func() {}))

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestLoop_SurvivesPanickingTask(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := scheduler.NewLoop()
	l.Start(context.Background())
	defer l.Close()

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Call(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_PostAfterCloseIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := scheduler.NewLoop()
	l.Start(context.Background())
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "close is idempotent")

	ran := false
	l.Post(func() { ran = true })
	assert.False(t, ran)
}
