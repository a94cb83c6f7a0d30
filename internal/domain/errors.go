package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrTransportMissing = errors.New("download tool is not installed")
	ErrRunInProgress    = errors.New("another run holds the output directory lock")
	ErrNoHeader         = errors.New("batch file has no header row")
)

// rateLimitTerms are the substrings in the download tool's diagnostic
// output that indicate Drive is throttling us.
var rateLimitTerms = []string{"quota", "limit", "too many"}

// IsRateLimited reports whether a transport diagnostic indicates a Drive
// rate limit. Rate-limited attempts back off exponentially instead of
// using the short generic retry delay.
func IsRateLimited(diagnostic string) bool {
	d := strings.ToLower(diagnostic)
	for _, term := range rateLimitTerms {
		if strings.Contains(d, term) {
			return true
		}
	}
	return false
}
