package port

// FileSystem defines the filesystem operations the download pipeline
// needs. All methods must be safe to call concurrently for disjoint paths.
type FileSystem interface {
	// OutputDir returns the root output directory.
	OutputDir() string

	// OutputPath returns the destination path for an output filename.
	OutputPath(name string) string

	// FileExists checks if a file exists.
	FileExists(path string) bool

	// FileSize returns the size of a file in bytes.
	FileSize(path string) (int64, error)

	// DeleteFile removes a file.
	DeleteFile(path string) error
}
