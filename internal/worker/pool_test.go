package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) Err() error {
	return r.err
}

type stubJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &stubResult{err: errors.New("job error")}
	}
	return &stubResult{}
}

func stubJobs(count int, executed *int32) []Job {
	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = &stubJob{executed: executed}
	}
	return jobs
}

func TestNewPool_WorkerFloor(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	var executed int32
	count := 10

	results := NewPool(2).Process(context.Background(), stubJobs(count, &executed))
	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executions, got %d", count, executed)
	}
}

// Batches far larger than the worker count must complete: feeding runs
// alongside the workers and the results channel holds the whole batch.
func TestPool_LargeBatchCompletes(t *testing.T) {
	for _, workers := range []int{1, 4} {
		var executed int32
		count := 50

		done := make(chan []Result, 1)
		go func() {
			done <- NewPool(workers).Process(context.Background(), stubJobs(count, &executed))
		}()

		select {
		case results := <-done:
			if len(results) != count {
				t.Errorf("workers=%d: expected %d results, got %d", workers, count, len(results))
			}
			if atomic.LoadInt32(&executed) != int32(count) {
				t.Errorf("workers=%d: expected %d executions, got %d", workers, count, executed)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("workers=%d: Process stalled on a %d-job batch", workers, count)
		}
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	workers := 4
	var current, maxSeen int32
	var mu sync.Mutex

	jobs := make([]Job, 30)
	for i := range jobs {
		jobs[i] = &trackingJob{
			start: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxSeen {
					maxSeen = curr
				}
				mu.Unlock()
			},
			end: func() { atomic.AddInt32(&current, -1) },
		}
	}

	NewPool(workers).Process(context.Background(), jobs)

	mu.Lock()
	defer mu.Unlock()
	if maxSeen > int32(workers) {
		t.Errorf("concurrency %d exceeded %d workers", maxSeen, workers)
	}
}

type trackingJob struct {
	start func()
	end   func()
}

func (j *trackingJob) Execute(ctx context.Context) Result {
	j.start()
	time.Sleep(5 * time.Millisecond)
	j.end()
	return &stubResult{}
}

func TestPool_ErrorsSurfaceInResults(t *testing.T) {
	jobs := []Job{&stubJob{shouldErr: true}, &stubJob{}}

	results := NewPool(2).Process(context.Background(), jobs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

type signalJob struct {
	started chan struct{}
}

func (j *signalJob) Execute(ctx context.Context) Result {
	close(j.started)
	<-ctx.Done()
	return &stubResult{err: ctx.Err()}
}

func TestPool_CancelStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	jobs := make([]Job, 10)
	jobs[0] = &signalJob{started: started}
	for i := 1; i < len(jobs); i++ {
		jobs[i] = &stubJob{}
	}

	done := make(chan []Result, 1)
	go func() { done <- NewPool(1).Process(ctx, jobs) }()

	<-started
	cancel()

	select {
	case results := <-done:
		if len(results) >= len(jobs) {
			t.Errorf("expected a partial batch after cancellation, got all %d results", len(results))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Process did not return after cancellation")
	}
}

func TestPool_EmptyBatch(t *testing.T) {
	if results := NewPool(3).Process(context.Background(), nil); results != nil {
		t.Errorf("expected nil results for an empty batch, got %d", len(results))
	}
}
