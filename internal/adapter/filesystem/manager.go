// Package filesystem implements port.FileSystem on the local disk.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkedia/drivepull/internal/port"
)

// Manager handles local filesystem operations for one output directory.
// Distinct paths are safe to operate on concurrently; the naming scheme
// guarantees no two tasks in a batch share a destination.
type Manager struct {
	outputDir string
}

// Ensure Manager implements port.FileSystem
var _ port.FileSystem = (*Manager)(nil)

// NewManager creates a manager rooted at outputDir, creating the
// directory if needed.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// OutputDir returns the root output directory.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// OutputPath returns the destination path for an output filename.
func (m *Manager) OutputPath(name string) string {
	return filepath.Join(m.outputDir, name)
}

// FileExists checks if a file exists.
func (m *Manager) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileSize returns the size of a file in bytes.
func (m *Manager) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// DeleteFile removes a file.
func (m *Manager) DeleteFile(path string) error {
	return os.Remove(path)
}
