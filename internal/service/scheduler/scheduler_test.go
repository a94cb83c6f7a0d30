package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/domain"
)

func makeTasks(n int) []domain.DownloadTask {
	tasks := make([]domain.DownloadTask, n)
	for i := range tasks {
		tasks[i] = domain.DownloadTask{
			FileID:     fmt.Sprintf("FILE%03d", i),
			OutputPath: fmt.Sprintf("photos/file%03d.jpg", i),
		}
	}
	return tasks
}

func TestRun_BoundedConcurrency(t *testing.T) {
	const workers = 3
	pool := New(workers, zap.NewNop())

	var inFlight, highWater atomic.Int32
	exec := func(ctx context.Context, task domain.DownloadTask) domain.Outcome {
		n := inFlight.Add(1)
		for {
			hw := highWater.Load()
			if n <= hw || highWater.CompareAndSwap(hw, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return domain.OutcomeSuccess
	}

	outcomes := pool.Run(context.Background(), makeTasks(24), exec)

	if len(outcomes) != 24 {
		t.Fatalf("got %d outcomes, want 24", len(outcomes))
	}
	if hw := highWater.Load(); hw > workers {
		t.Errorf("high-water in-flight = %d, want <= %d", hw, workers)
	}
	if left := inFlight.Load(); left != 0 {
		t.Errorf("in-flight after Run = %d, want 0 (barrier violated)", left)
	}
}

func TestRun_CollectsEveryOutcome(t *testing.T) {
	pool := New(4, zap.NewNop())

	// Assign outcomes by task index parity; only the multiset matters.
	var idx atomic.Int32
	exec := func(ctx context.Context, task domain.DownloadTask) domain.Outcome {
		switch idx.Add(1) % 3 {
		case 0:
			return domain.OutcomeSuccess
		case 1:
			return domain.OutcomeSkipped
		default:
			return domain.OutcomeError
		}
	}

	outcomes := pool.Run(context.Background(), makeTasks(30), exec)
	sum := domain.Fold(outcomes)
	if sum.Total() != 30 {
		t.Fatalf("Total() = %d, want 30", sum.Total())
	}
	if sum.Downloaded != 10 || sum.Skipped != 10 || sum.Errors != 10 {
		t.Errorf("summary = %+v, want 10/10/10", sum)
	}
}

func TestRun_EmptyTaskList(t *testing.T) {
	pool := New(3, zap.NewNop())
	exec := func(ctx context.Context, task domain.DownloadTask) domain.Outcome {
		t.Error("exec called for empty task list")
		return domain.OutcomeError
	}
	if outcomes := pool.Run(context.Background(), nil, exec); outcomes != nil {
		t.Errorf("Run(nil) = %v, want nil", outcomes)
	}
}

func TestRun_MoreWorkersThanTasks(t *testing.T) {
	pool := New(10, zap.NewNop())
	exec := func(ctx context.Context, task domain.DownloadTask) domain.Outcome {
		return domain.OutcomeSkipped
	}
	outcomes := pool.Run(context.Background(), makeTasks(2), exec)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
}

func TestNew_DefaultWidth(t *testing.T) {
	if got := New(0, zap.NewNop()).Workers(); got != DefaultWorkers {
		t.Errorf("Workers() = %d, want %d", got, DefaultWorkers)
	}
	if got := New(-1, zap.NewNop()).Workers(); got != DefaultWorkers {
		t.Errorf("Workers() = %d, want %d", got, DefaultWorkers)
	}
}
