package feed

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiyamandal-dev/bizbrief/internal/loop"
)

// waitPosted waits for mock timer callbacks, which run on their own goroutine
func waitPosted(t *testing.T, sched *loop.Manual, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return sched.Posted() >= n }, time.Second, time.Millisecond)
}

func TestDebouncerLastTriggerWins(t *testing.T) {
	clk := clock.NewMock()
	sched := &loop.Manual{}
	d := NewDebouncer(clk, sched, 300*time.Millisecond)

	var got []string
	d.Trigger(func() { got = append(got, "r") })
	clk.Add(200 * time.Millisecond)
	d.Trigger(func() { got = append(got, "rb") })
	clk.Add(200 * time.Millisecond)
	sched.Flush()
	assert.Empty(t, got)
	assert.True(t, d.Pending())

	d.Trigger(func() { got = append(got, "rbi") })
	clk.Add(300 * time.Millisecond)
	waitPosted(t, sched, 1)
	sched.Flush()

	assert.Equal(t, []string{"rbi"}, got)
	assert.False(t, d.Pending())
}

func TestDebouncerCancelAfterTimerFired(t *testing.T) {
	clk := clock.NewMock()
	sched := &loop.Manual{}
	d := NewDebouncer(clk, sched, 300*time.Millisecond)

	fired := false
	d.Trigger(func() { fired = true })
	clk.Add(300 * time.Millisecond)
	waitPosted(t, sched, 1)

	// the callback is already queued on the loop
	d.Cancel()
	sched.Flush()

	assert.False(t, fired)
	assert.False(t, d.Pending())
}
