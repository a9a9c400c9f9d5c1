package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerScheduler_RunsAfterDelay(t *testing.T) {
	done := make(chan struct{})

	TimerScheduler{}.AfterFunc(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never ran")
	}
}

func TestTimerScheduler_UsesDispatch(t *testing.T) {
	dispatched := make(chan func(), 1)
	s := TimerScheduler{Dispatch: func(f func()) { dispatched <- f }}

	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	var f func()
	select {
	case f = <-dispatched:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never dispatched")
	}

	require.NotNil(t, f)
	assert.False(t, ran)
	f()
	assert.True(t, ran)
}
