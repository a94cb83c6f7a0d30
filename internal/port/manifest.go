package port

import (
	"github.com/rkedia/drivepull/internal/domain"
)

// OutcomeRecord is one manifest row describing a finished task.
type OutcomeRecord struct {
	Batch   string
	FileID  string
	Path    string
	Outcome domain.Outcome
	Size    int64
}

// Manifest is an append-only audit record of download runs. It is purely
// historical: idempotency always comes from the files on disk, never from
// manifest state. Implementations must be safe for concurrent use.
type Manifest interface {
	// BeginRun opens a new run and returns its ID.
	BeginRun() (string, error)

	// RecordOutcome appends one task outcome to the run.
	RecordOutcome(runID string, rec OutcomeRecord) error

	// FinishRun stores the run's final totals.
	FinishRun(runID string, totals domain.Summary) error

	Close() error
}
