package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/osse101/CraftCalc_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool creates a new worker pool. A non-positive worker count uses
// GOMAXPROCS.
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
	}
}

// Start starts the workers. Jobs receive ctx; once it is cancelled the
// remaining queued jobs are discarded without running.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for job := range p.jobQueue {
		if ctx.Err() != nil {
			continue
		}
		if err := job.Process(ctx); err != nil {
			logger.FromContext(ctx).Debug(LogMsgWorkerJobFailed, "error", err)
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// It must not be called after Stop.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop closes the queue and waits for queued jobs to finish
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.jobQueue) })
	p.wg.Wait()
}
