// Package worker provides the concurrency primitives shared by batch claim
// resolution: a bounded goroutine pool and a per-provider rate limiter.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	Err() error
}

// Pool runs batches of jobs on a fixed number of workers
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers (minimum 1)
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Process executes every job and returns the results in completion order;
// jobs that need ordering carry their own index. The results channel holds
// the whole batch, so workers never block on delivery and feeding keeps
// pace with execution regardless of batch size. Cancelling ctx stops
// feeding; jobs already running observe the cancellation through the ctx
// passed to Execute, and jobs never fed produce no result.
func (p *Pool) Process(ctx context.Context, jobs []Job) []Result {
	if len(jobs) == 0 {
		return nil
	}

	queue := make(chan Job)
	results := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- job.Execute(ctx)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case queue <- job:
			}
		}
	}()

	wg.Wait()
	close(results)

	collected := make([]Result, 0, len(jobs))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}
