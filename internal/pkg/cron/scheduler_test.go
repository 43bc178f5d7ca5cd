package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce_ExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestStartStop_RunsJobOnStart(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		close(done)
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestOnMonthly_OffWindowIsNoOp(t *testing.T) {
	now := time.Now().UTC()

	var ran atomic.Bool
	fn := OnMonthly(now.Day(), (now.Hour()+2)%24, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NoError(t, fn(context.Background()))
	assert.False(t, ran.Load())
}

func TestOnMonthly_InWindowRuns(t *testing.T) {
	now := time.Now().UTC()

	var ran atomic.Bool
	fn := OnMonthly(now.Day(), now.Hour(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NoError(t, fn(context.Background()))
	assert.True(t, ran.Load())
}
