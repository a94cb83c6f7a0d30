// Package csvfile reads photo-links batch files: CSV files whose rows
// carry polling station fields and Drive share links, discovered by a
// fixed filename suffix.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/port"
)

// Row is a header-keyed CSV record. Missing fields read as empty strings.
type Row struct {
	fields map[string]string
}

// Ensure Row implements port.Record
var _ port.Record = Row{}

// Get returns the value of a field, or "" when the column is absent.
func (r Row) Get(field string) string {
	return r.fields[field]
}

// Discover returns the batch files under dir whose names end in suffix,
// sorted by name so runs are deterministic.
func Discover(dir, suffix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Label derives the batch label from a batch file path by stripping the
// directory and the suffix.
func Label(path, suffix string) string {
	return strings.TrimSuffix(filepath.Base(path), suffix)
}

// ReadRows reads every data row of a batch file. Rows shorter than the
// header are padded with empty fields; extra cells are dropped.
func ReadRows(path string) ([]port.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are data problems, not parse errors

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows []port.Record
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row of %s: %w", path, err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[name] = record[i]
			}
		}
		rows = append(rows, Row{fields: fields})
	}
	return rows, nil
}
