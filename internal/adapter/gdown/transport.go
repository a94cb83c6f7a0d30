// Package gdown implements port.Transport by spawning the gdown CLI,
// which handles Google Drive's confirmation pages and cookies for us.
package gdown

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/drive"
	"github.com/rkedia/drivepull/internal/port"
)

// DefaultTimeout bounds a single gdown invocation.
const DefaultTimeout = 90 * time.Second

// Transport invokes gdown once per fetch attempt.
type Transport struct {
	binPath string
	pipPath string
	timeout time.Duration
}

// Ensure Transport implements the transport ports
var (
	_ port.Transport = (*Transport)(nil)
	_ port.Installer = (*Transport)(nil)
)

// New creates a transport that runs binPath with the given per-attempt
// timeout. Zero values fall back to "gdown" and DefaultTimeout.
func New(binPath string, timeout time.Duration) *Transport {
	if binPath == "" {
		binPath = "gdown"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Transport{
		binPath: binPath,
		pipPath: "python3",
		timeout: timeout,
	}
}

// Fetch downloads one Drive file into destPath. Tool failures come back
// in the result; only process-level faults return an error.
func (t *Transport) Fetch(ctx context.Context, fileID, destPath string) (*port.FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, t.binPath, drive.DownloadURL(fileID), "-O", destPath, "--quiet")
	output, err := cmd.CombinedOutput()

	res := &port.FetchResult{
		Diagnostic: string(output),
		Duration:   time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		return res, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Could not run the tool at all.
		return nil, fmt.Errorf("run %s: %w", t.binPath, err)
	}

	return res, nil
}

// Verify checks that gdown is runnable.
func (t *Transport) Verify(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.binPath, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrTransportMissing, t.binPath, err)
	}
	return nil
}

// Install installs gdown through pip, mirroring the manual setup step.
func (t *Transport) Install(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.pipPath, "-m", "pip", "install", "gdown")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pip install gdown failed: %v: %s", err, output)
	}
	return nil
}
