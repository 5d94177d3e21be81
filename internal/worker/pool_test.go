package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/CraftCalc_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool_RunsEveryJobBeforeStopReturns(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(4, 2)
	pool.Start(context.Background())

	for i := 0; i < 50; i++ {
		pool.Enqueue(&testJob{executed: &executed})
	}
	pool.Stop()

	assert.Equal(t, int32(50), atomic.LoadInt32(&executed))
	checker.Check(0)
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, 0)
	pool.Start(context.Background())

	pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") }))
	pool.Enqueue(&testJob{executed: &executed})
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_CancelledContextSkipsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var executed int32
	pool := NewPool(2, 10)
	pool.Start(ctx)
	for i := 0; i < 5; i++ {
		pool.Enqueue(&testJob{executed: &executed})
	}
	pool.Stop()

	assert.Zero(t, atomic.LoadInt32(&executed))
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(0, 0)
	pool.Start(context.Background())
	pool.Stop()
	assert.NotPanics(t, pool.Stop)
}
