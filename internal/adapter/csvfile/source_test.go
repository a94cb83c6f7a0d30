package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rkedia/drivepull/internal/domain"
)

const batchSuffix = "-photo-links.csv"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2-Madhubani-photo-links.csv"), "h\n")
	writeFile(t, filepath.Join(dir, "1-Paschim Champaran-photo-links.csv"), "h\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignore me")

	got, err := Discover(dir, batchSuffix)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "1-Paschim Champaran-photo-links.csv"),
		filepath.Join(dir, "2-Madhubani-photo-links.csv"),
	}
	if len(got) != len(want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Discover()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLabel(t *testing.T) {
	path := filepath.Join("some", "dir", "1-Paschim Champaran-photo-links.csv")
	if got := Label(path, batchSuffix); got != "1-Paschim Champaran" {
		t.Errorf("Label() = %q, want %q", got, "1-Paschim Champaran")
	}
}

func TestReadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x-photo-links.csv")
	writeFile(t, path,
		"AC No. & AC Name,Polling Station No.,Photo of Polling Station Building (PSB)\n"+
			"\"4-Bagaha [1-Paschim Champaran]\",7,https://drive.google.com/open?id=ABC123\n"+
			"\"5-Ramnagar [1-Paschim Champaran]\",12\n")

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if got := rows[0].Get("AC No. & AC Name"); got != "4-Bagaha [1-Paschim Champaran]" {
		t.Errorf("Get(AC name) = %q", got)
	}
	if got := rows[0].Get("Polling Station No."); got != "7" {
		t.Errorf("Get(station no) = %q", got)
	}

	// Short row: missing trailing field reads as empty.
	if got := rows[1].Get("Photo of Polling Station Building (PSB)"); got != "" {
		t.Errorf("short row Get(photo) = %q, want empty", got)
	}
	// Absent column reads as empty, never an error.
	if got := rows[1].Get("No Such Column"); got != "" {
		t.Errorf("Get(absent column) = %q, want empty", got)
	}
}

func TestReadRows_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty-photo-links.csv")
	writeFile(t, path, "")

	if _, err := ReadRows(path); !errors.Is(err, domain.ErrNoHeader) {
		t.Errorf("ReadRows() error = %v, want ErrNoHeader", err)
	}
}
