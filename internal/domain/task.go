package domain

// Photo role codes, in the order the builder processes them per row.
const (
	RoleBuilding = "PSB"
	RolePremises = "PSP"
)

// DownloadTask is one file to fetch from Google Drive. Tasks are immutable
// once built and consumed exactly once by the fetcher.
type DownloadTask struct {
	// FileID is the Drive file identifier extracted from the share link.
	FileID string

	// OutputPath is the destination path for the downloaded image.
	OutputPath string

	// Batch is the label of the batch file the task came from.
	Batch string

	// Role is the photo role code (RoleBuilding or RolePremises).
	Role string
}

// Outcome is the tri-state result of executing one download task.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkipped
	OutcomeError
)

// String returns the manifest/log representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}
