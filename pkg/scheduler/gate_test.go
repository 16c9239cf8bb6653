package scheduler_test

import (
	"testing"
	"time"

	"github.com/aretw0/sileo/pkg/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestFirstOf_SignalWins(t *testing.T) {
	s := scheduler.NewManual()
	calls := 0
	g := scheduler.FirstOf(s, 200*time.Millisecond, func() { calls++ })

	assert.True(t, g.Armed())
	assert.True(t, g.Signal())
	assert.False(t, g.Signal(), "continuation fires once")

	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.False(t, g.Armed())
}

func TestFirstOf_DeadlineWins(t *testing.T) {
	s := scheduler.NewManual()
	calls := 0
	g := scheduler.FirstOf(s, 200*time.Millisecond, func() { calls++ })

	s.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, calls)

	assert.False(t, g.Signal(), "late signal is ignored")
	assert.Equal(t, 1, calls)
}

func TestFirstOf_Cancel(t *testing.T) {
	s := scheduler.NewManual()
	calls := 0
	g := scheduler.FirstOf(s, 200*time.Millisecond, func() { calls++ })

	g.Cancel()
	assert.False(t, g.Signal())
	s.Advance(time.Second)
	assert.Zero(t, calls)
	assert.Zero(t, s.Pending())
}

func TestGate_NilIsInert(t *testing.T) {
	var g *scheduler.Gate
	assert.False(t, g.Armed())
	assert.False(t, g.Signal())
	g.Cancel()
}
