package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManager(t *testing.T) {
	root := filepath.Join(t.TempDir(), "photos")
	m, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	if m.OutputDir() != root {
		t.Errorf("OutputDir() = %q, want %q", m.OutputDir(), root)
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}

	path := m.OutputPath("a-b-PS001-Main-PSB-ABC123.jpg")
	if filepath.Dir(path) != root {
		t.Errorf("OutputPath() = %q, want under %q", path, root)
	}

	if m.FileExists(path) {
		t.Error("FileExists() = true before write")
	}
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if !m.FileExists(path) {
		t.Error("FileExists() = false after write")
	}

	size, err := m.FileSize(path)
	if err != nil {
		t.Fatalf("FileSize() error = %v", err)
	}
	if size != int64(len("jpeg bytes")) {
		t.Errorf("FileSize() = %d, want %d", size, len("jpeg bytes"))
	}

	if err := m.DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if m.FileExists(path) {
		t.Error("FileExists() = true after delete")
	}
}

func TestManager_FileExistsIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	sub := filepath.Join(root, "subdir")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if m.FileExists(sub) {
		t.Error("FileExists() = true for a directory")
	}
}
