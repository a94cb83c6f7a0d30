// Package fetcher executes single download tasks with the retry and
// backoff protocol Drive's rate limits demand.
package fetcher

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/port"
	"github.com/rkedia/drivepull/internal/reporter"
	"github.com/rkedia/drivepull/internal/util/backoff"
)

// DefaultMaxRetries is the per-task attempt budget.
const DefaultMaxRetries = 3

// Config tunes one fetcher.
type Config struct {
	MaxRetries int
	Backoff    backoff.Policy
}

// Fetcher runs the idempotent retrieval protocol for download tasks.
// It is stateless across tasks and safe for concurrent use.
type Fetcher struct {
	transport port.Transport
	fs        port.FileSystem
	rep       *reporter.Reporter
	logger    *zap.Logger
	cfg       Config
}

// New creates a Fetcher. A zero MaxRetries falls back to DefaultMaxRetries.
func New(transport port.Transport, fs port.FileSystem, rep *reporter.Reporter, logger *zap.Logger, cfg Config) *Fetcher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &Fetcher{
		transport: transport,
		fs:        fs,
		rep:       rep,
		logger:    logger,
		cfg:       cfg,
	}
}

// Fetch downloads one task and returns its outcome. An existing
// destination short-circuits to Skipped, which is what makes re-runs
// idempotent. Fetch never returns before the task has fully resolved.
func (f *Fetcher) Fetch(ctx context.Context, task domain.DownloadTask) domain.Outcome {
	name := filepath.Base(task.OutputPath)

	if f.fs.FileExists(task.OutputPath) {
		return domain.OutcomeSkipped
	}

	// Spread concurrent first attempts so workers don't hit Drive at once.
	sleep(ctx, f.cfg.Backoff.StartDelay())

	for attempt := 0; attempt < f.cfg.MaxRetries; attempt++ {
		res, err := f.transport.Fetch(ctx, task.FileID, task.OutputPath)
		if err != nil {
			// Process-level faults are not transient; fail fast.
			f.rep.FetchError(name, err)
			f.logger.Error("fetch invocation failed",
				zap.String("file_id", task.FileID),
				zap.String("path", task.OutputPath),
				zap.Error(err))
			return domain.OutcomeError
		}

		if res.TimedOut {
			if attempt < f.cfg.MaxRetries-1 {
				f.rep.TimeoutRetry(name)
				sleep(ctx, f.cfg.Backoff.TimeoutWait())
				continue
			}
			f.rep.Timeout(name)
			return domain.OutcomeError
		}

		if res.ExitCode == 0 && f.fs.FileExists(task.OutputPath) {
			size, sizeErr := f.fs.FileSize(task.OutputPath)
			if sizeErr == nil && size > 0 {
				f.rep.Success(name)
				f.logger.Debug("downloaded",
					zap.String("file_id", task.FileID),
					zap.Int64("size", size),
					zap.Duration("took", res.Duration))
				return domain.OutcomeSuccess
			}
			// Drive sometimes serves a zero-byte body instead of an
			// error; treat it as transient.
			f.fs.DeleteFile(task.OutputPath)
		}

		if domain.IsRateLimited(res.Diagnostic) {
			wait := f.cfg.Backoff.RateLimitWait(attempt)
			f.rep.RateLimited(wait)
			sleep(ctx, wait)
			continue
		}

		if attempt < f.cfg.MaxRetries-1 {
			sleep(ctx, f.cfg.Backoff.RetryWait())
			continue
		}
		f.rep.Failed(name, f.cfg.MaxRetries)
		return domain.OutcomeError
	}

	// Only reachable when the final attempt was rate-limited.
	f.rep.Failed(name, f.cfg.MaxRetries)
	return domain.OutcomeError
}

// sleep waits for d, returning early only if ctx is cancelled. It never
// holds any lock.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
