// Package builder turns batch rows into download tasks using the fixed
// naming scheme:
//
//	{district}-{constituency}-PS{num}-{type}-{role}-{fileID}.jpg
package builder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/drive"
	"github.com/rkedia/drivepull/internal/port"
)

// Row fields of a photo-links batch file.
const (
	fieldACName      = "AC No. & AC Name"
	fieldStationNo   = "Polling Station No."
	fieldStationType = "Polling Station Type"
)

// photoColumns are processed in this order for every row, so the task
// list is deterministic for a given batch.
var photoColumns = []struct {
	Column string
	Role   string
}{
	{"Photo of Polling Station Building (PSB)", domain.RoleBuilding},
	{"Photo of Polling Station Premises with PS Building (PSP)", domain.RolePremises},
}

// Builder emits download tasks for batch rows.
type Builder struct {
	fs     port.FileSystem
	logger *zap.Logger
}

// New creates a Builder writing destinations under fs's output directory.
func New(fs port.FileSystem, logger *zap.Logger) *Builder {
	return &Builder{fs: fs, logger: logger}
}

// Build returns the ordered task list implied by the rows of one batch.
// Rows with an empty photo field or an unextractable link contribute no
// task for that field.
func (b *Builder) Build(batchLabel string, rows []port.Record) []domain.DownloadTask {
	district := drive.Sanitize(batchLabel)

	var tasks []domain.DownloadTask
	for _, row := range rows {
		constituency := constituencyOf(row.Get(fieldACName))
		stationNo := zeroPad(strings.TrimSpace(row.Get(fieldStationNo)), 3)
		stationType := drive.Sanitize(strings.TrimSpace(row.Get(fieldStationType)))

		for _, pc := range photoColumns {
			link := row.Get(pc.Column)
			if strings.TrimSpace(link) == "" {
				continue
			}
			fileID, ok := drive.ExtractFileID(link)
			if !ok {
				b.logger.Debug("no file ID in photo link",
					zap.String("batch", batchLabel),
					zap.String("station", stationNo),
					zap.String("role", pc.Role))
				continue
			}

			name := fmt.Sprintf("%s-%s-PS%s-%s-%s-%s.jpg",
				district, constituency, stationNo, stationType, pc.Role, fileID)
			tasks = append(tasks, domain.DownloadTask{
				FileID:     fileID,
				OutputPath: b.fs.OutputPath(name),
				Batch:      batchLabel,
				Role:       pc.Role,
			})
		}
	}
	return tasks
}

// constituencyOf extracts the constituency from a composite AC name like
// "4-Bagaha [1-Paschim Champaran]".
func constituencyOf(acName string) string {
	head, _, _ := strings.Cut(acName, "[")
	head = strings.TrimSpace(head)
	if head == "" {
		return "Unknown"
	}
	return drive.Sanitize(head)
}

// zeroPad left-pads s with zeros to at least width characters.
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
