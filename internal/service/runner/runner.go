// Package runner drives a whole download run: transport setup, batch
// discovery, per-batch scheduling, and summary reporting.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/adapter/csvfile"
	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/port"
	"github.com/rkedia/drivepull/internal/reporter"
	"github.com/rkedia/drivepull/internal/service/builder"
	"github.com/rkedia/drivepull/internal/service/fetcher"
	"github.com/rkedia/drivepull/internal/service/scheduler"
	"github.com/rkedia/drivepull/internal/util/backoff"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".drivepull.lock"

// Config contains runner configuration
type Config struct {
	InputDir    string
	BatchSuffix string
	Workers     int
	MaxRetries  int
	AutoInstall bool
	Backoff     backoff.Policy
}

// Runner processes every batch sequentially; tasks within a batch run
// concurrently through the scheduler.
type Runner struct {
	cfg       Config
	transport port.Transport
	fs        port.FileSystem
	manifest  port.Manifest // optional; nil disables history
	rep       *reporter.Reporter
	logger    *zap.Logger
}

// New creates a Runner. manifest may be nil.
func New(cfg Config, transport port.Transport, fs port.FileSystem, manifest port.Manifest, rep *reporter.Reporter, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		transport: transport,
		fs:        fs,
		manifest:  manifest,
		rep:       rep,
		logger:    logger,
	}
}

// Run executes the whole pipeline and returns the grand-total summary.
// Per-task failures never abort the run; they only count as errors.
func (r *Runner) Run(ctx context.Context) (domain.Summary, error) {
	if err := r.ensureTransport(ctx); err != nil {
		return domain.Summary{}, err
	}

	lock := flock.New(filepath.Join(r.fs.OutputDir(), lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to acquire output lock: %w", err)
	}
	if !locked {
		return domain.Summary{}, domain.ErrRunInProgress
	}
	defer lock.Unlock()

	paths, err := csvfile.Discover(r.cfg.InputDir, r.cfg.BatchSuffix)
	if err != nil {
		return domain.Summary{}, err
	}
	r.rep.Printf("Found %d photo-links batch files", len(paths))

	var runID string
	if r.manifest != nil {
		runID, err = r.manifest.BeginRun()
		if err != nil {
			// History is best-effort; the run itself must not depend on it.
			r.logger.Warn("failed to begin manifest run", zap.Error(err))
			runID = ""
		}
	}

	b := builder.New(r.fs, r.logger)
	pool := scheduler.New(r.cfg.Workers, r.logger)
	fetch := fetcher.New(r.transport, r.fs, r.rep, r.logger, fetcher.Config{
		MaxRetries: r.cfg.MaxRetries,
		Backoff:    r.cfg.Backoff,
	})

	var total domain.Summary
	for _, path := range paths {
		sum, err := r.processBatch(ctx, path, b, pool, fetch, runID)
		if err != nil {
			r.logger.Error("batch failed",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		total.Merge(sum)
	}

	r.rep.Printf("")
	r.rep.Printf("%s", strings.Repeat("=", 60))
	r.rep.Printf("TOTAL SUMMARY:")
	r.rep.Printf("  Total Downloaded: %d", total.Downloaded)
	r.rep.Printf("  Total Skipped (existing): %d", total.Skipped)
	r.rep.Printf("  Total Errors: %d", total.Errors)
	r.rep.Printf("%s", strings.Repeat("=", 60))

	if r.manifest != nil && runID != "" {
		if err := r.manifest.FinishRun(runID, total); err != nil {
			r.logger.Warn("failed to finish manifest run", zap.Error(err))
		}
	}

	return total, nil
}

// processBatch runs one batch file end to end.
func (r *Runner) processBatch(ctx context.Context, path string, b *builder.Builder, pool *scheduler.Pool, fetch *fetcher.Fetcher, runID string) (domain.Summary, error) {
	label := csvfile.Label(path, r.cfg.BatchSuffix)

	r.rep.Printf("")
	r.rep.Printf("Processing: %s", filepath.Base(path))
	r.rep.Printf("District: %s", label)

	rows, err := csvfile.ReadRows(path)
	if err != nil {
		return domain.Summary{}, err
	}

	tasks := b.Build(label, rows)
	r.rep.Printf("  Downloading %d photos with %d parallel workers...", len(tasks), pool.Workers())

	exec := func(ctx context.Context, task domain.DownloadTask) domain.Outcome {
		outcome := fetch.Fetch(ctx, task)
		r.recordOutcome(runID, task, outcome)
		return outcome
	}
	outcomes := pool.Run(ctx, tasks, exec)
	sum := domain.Fold(outcomes)

	r.rep.Printf("")
	r.rep.Printf("Summary for %s:", label)
	r.rep.Printf("  Downloaded: %d", sum.Downloaded)
	r.rep.Printf("  Skipped (existing): %d", sum.Skipped)
	r.rep.Printf("  Errors: %d", sum.Errors)

	r.logger.Info("batch complete",
		zap.String("batch", label),
		zap.Int("downloaded", sum.Downloaded),
		zap.Int("skipped", sum.Skipped),
		zap.Int("errors", sum.Errors))

	return sum, nil
}

// recordOutcome appends one manifest row; failures only log.
func (r *Runner) recordOutcome(runID string, task domain.DownloadTask, outcome domain.Outcome) {
	if r.manifest == nil || runID == "" {
		return
	}

	var size int64
	if outcome != domain.OutcomeError {
		if n, err := r.fs.FileSize(task.OutputPath); err == nil {
			size = n
		}
	}

	err := r.manifest.RecordOutcome(runID, port.OutcomeRecord{
		Batch:   task.Batch,
		FileID:  task.FileID,
		Path:    task.OutputPath,
		Outcome: outcome,
		Size:    size,
	})
	if err != nil {
		r.logger.Warn("failed to record outcome",
			zap.String("file_id", task.FileID),
			zap.Error(err))
	}
}

// ensureTransport verifies the download tool, attempting an install once
// when allowed. A tool still missing afterwards is a fatal setup error.
func (r *Runner) ensureTransport(ctx context.Context) error {
	err := r.transport.Verify(ctx)
	if err == nil {
		return nil
	}

	inst, ok := r.transport.(port.Installer)
	if !ok || !r.cfg.AutoInstall {
		return err
	}
	if !errors.Is(err, domain.ErrTransportMissing) {
		return err
	}

	r.logger.Warn("download tool missing, attempting install", zap.Error(err))
	if ierr := inst.Install(ctx); ierr != nil {
		return fmt.Errorf("%w (install failed: %v)", err, ierr)
	}
	return r.transport.Verify(ctx)
}
