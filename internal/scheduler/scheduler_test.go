package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsImmediatelyAndRepeats(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	s.Every("count", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_SameNameReplacesJob(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var oldRuns, newRuns atomic.Int32
	s.Every("purge", 5*time.Millisecond, func(ctx context.Context) error {
		oldRuns.Add(1)
		return errors.New("logged, not fatal")
	})

	assert.Eventually(t, func() bool { return oldRuns.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Every("purge", 5*time.Millisecond, func(ctx context.Context) error {
		newRuns.Add(1)
		return nil
	})

	time.Sleep(20 * time.Millisecond)
	stopped := oldRuns.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, stopped, oldRuns.Load())
	assert.GreaterOrEqual(t, newRuns.Load(), int32(2))
}

func TestScheduler_StopCancelsRunningTask(t *testing.T) {
	s := NewScheduler()

	started := make(chan struct{})
	s.Every("block", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
