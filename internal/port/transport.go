package port

import (
	"context"
	"time"
)

// FetchResult captures one invocation of the external download tool.
type FetchResult struct {
	ExitCode   int           // Tool exit code (0 means the tool reported success)
	Diagnostic string        // Combined stdout/stderr, used for failure classification
	TimedOut   bool          // The invocation hit its deadline
	Duration   time.Duration // Wall-clock time of the invocation
}

// Transport fetches a remote file by Drive file ID into a local path.
// A non-nil error means the invocation itself could not run (missing
// binary, process fault); tool-level failures are reported through the
// FetchResult instead.
type Transport interface {
	Fetch(ctx context.Context, fileID, destPath string) (*FetchResult, error)

	// Verify checks that the external tool is available.
	Verify(ctx context.Context) error
}

// Installer is implemented by transports that can install their external
// tool when Verify fails.
type Installer interface {
	Install(ctx context.Context) error
}
