// Package scheduler runs download tasks through a bounded worker pool.
package scheduler

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/domain"
)

// DefaultWorkers is deliberately small to stay under Drive's rate limits.
const DefaultWorkers = 3

// ExecuteFunc runs one task to completion and reports its outcome. It
// must not panic; failures are outcomes, not errors.
type ExecuteFunc func(ctx context.Context, task domain.DownloadTask) domain.Outcome

// Pool executes tasks with a fixed concurrency limit.
type Pool struct {
	workers int
	logger  *zap.Logger
}

// New creates a pool of the given width. Non-positive widths fall back
// to DefaultWorkers.
func New(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{workers: workers, logger: logger}
}

// Workers returns the pool's concurrency limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every task with at most p.workers in flight and returns
// the outcomes in completion order. It blocks until all tasks have
// resolved: once submitted, a task always runs to completion, even when
// ctx is cancelled mid-flight.
func (p *Pool) Run(ctx context.Context, tasks []domain.DownloadTask, exec ExecuteFunc) []domain.Outcome {
	if len(tasks) == 0 {
		return nil
	}

	jobs := make(chan domain.DownloadTask)
	results := make(chan domain.Outcome, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for task := range jobs {
				p.logger.Debug("executing task",
					zap.Int("worker", workerID),
					zap.String("file_id", task.FileID))
				results <- exec(ctx, task)
			}
		}(i)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wg.Wait()
	close(results)

	outcomes := make([]domain.Outcome, 0, len(tasks))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	return outcomes
}
