// Package drive parses Google Drive share links and builds safe filenames
// from their components.
package drive

import (
	"regexp"
	"strings"
)

// Drive share links come in two shapes:
//
//	https://drive.google.com/open?id=FILE_ID
//	https://drive.google.com/file/d/FILE_ID/view
//
// The query-parameter form is tried first.
var (
	queryIDPattern = regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`)
	pathIDPattern  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
)

var (
	unsafeChars    = regexp.MustCompile(`[^\w\-.]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// ExtractFileID returns the Drive file ID embedded in a share link.
// The second return value is false when no ID can be found.
func ExtractFileID(link string) (string, bool) {
	if strings.TrimSpace(link) == "" {
		return "", false
	}
	if m := queryIDPattern.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	if m := pathIDPattern.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	return "", false
}

// DownloadURL returns the direct-download URL for a Drive file ID.
func DownloadURL(fileID string) string {
	return "https://drive.google.com/uc?id=" + fileID
}

// Sanitize maps text into a filesystem-safe token: anything outside
// [A-Za-z0-9_.-] becomes an underscore, and runs of underscores collapse
// into one. Idempotent.
func Sanitize(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	return underscoreRuns.ReplaceAllString(name, "_")
}
