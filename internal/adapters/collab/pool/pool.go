// Package pool bounds the number of concurrent calls made to a collaborator
// service. Calls beyond the worker count wait in a bounded queue; once the
// queue is full, Do fails fast with ErrPoolBusy.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/okian/introscore/pkg/logger"
	"github.com/okian/introscore/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultName      = "collaborator"
	defaultQueueSize = 64
)

// Job is one collaborator call.
type Job func(ctx context.Context) error

type task struct {
	ctx  context.Context //nolint:containedctx // carried to the worker that runs the job
	job  Job
	done chan error
}

// Pool runs jobs on a fixed set of workers.
type Pool struct {
	name      string
	workers   int
	queueSize int

	jobs chan task
	wg   sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool

	logger logger.Logger
}

// New creates a pool. Workers start with Start.
func New(opts ...Option) *Pool {
	p := &Pool{
		name:      defaultName,
		workers:   runtime.NumCPU(),
		queueSize: defaultQueueSize,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan task, p.queueSize)
	metrics.UpdatePoolQueueDepth(p.name, 0)
	return p
}

// Name returns the pool name.
func (p *Pool) Name() string { return p.name }

// Start launches the workers. Calling it more than once is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	p.logger.Info(ctx, "collaborator pool started",
		logger.String("pool", p.name),
		logger.Int("workers", p.workers),
		logger.Int("queue_size", p.queueSize),
	)
}

func (p *Pool) run() {
	defer p.wg.Done()
	for t := range p.jobs {
		metrics.UpdatePoolQueueDepth(p.name, len(p.jobs))
		if err := t.ctx.Err(); err != nil {
			t.done <- err
			continue
		}
		t.done <- t.job(t.ctx)
	}
}

// Do runs job on a pool worker and waits for its result. It returns
// ErrPoolBusy without running the job when the queue is full, and ctx.Err()
// if ctx ends first.
func (p *Pool) Do(ctx context.Context, job Job) error {
	t := task{ctx: ctx, job: job, done: make(chan error, 1)}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		metrics.UpdatePoolQueueDepth(p.name, len(p.jobs))
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		metrics.RecordPoolRejected(p.name)
		return fmt.Errorf("%s: %w", p.name, ErrPoolBusy)
	}

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of jobs waiting for a worker.
func (p *Pool) Len() int {
	return len(p.jobs)
}

// Shutdown stops accepting jobs, lets the workers drain the queue and waits
// for them to exit or for ctx to end.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	started := p.started
	p.mu.Unlock()

	if !started {
		for t := range p.jobs {
			t.done <- ErrStopped
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "pool shutdown timed out", logger.String("pool", p.name))
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
