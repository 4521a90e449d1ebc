package jumpfile

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// Ext is the file extension for jump files
	Ext = ".jump"

	// FormatPrefix marks metadata lines that carry no event data
	FormatPrefix = "#format:"

	// TrailerLine is the schema line appended to aggregated content
	TrailerLine = "#format: trackfile camera frameIDStartFrame tag"
)

// sessionRe matches <session>_<suffix>_DATACO-<id>.<ext> filenames.
// The suffix token carries no underscores, so the split point before
// the DATACO marker is unambiguous.
var sessionRe = regexp.MustCompile(`^(.*)_[^_]+_DATACO-\d+\.[^.]+$`)

// sessionTimeLayout parses YYMMDD + HHMMSS token pairs
const sessionTimeLayout = "060102150405"

// SessionName extracts the session portion from a jump file path.
// Returns false if the filename does not follow the naming convention.
func SessionName(path string) (string, bool) {
	m := sessionRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SessionTime derives a timestamp from a session name. It scans
// underscore-delimited tokens for a 6-digit date (YYMMDD) immediately
// followed by a token whose first 6 characters are a time (HHMMSS).
// Only the first such pair is considered; invalid calendar dates
// (e.g. April 31) are rejected.
func SessionTime(session string) (time.Time, bool) {
	parts := strings.Split(session, "_")
	for i, part := range parts {
		if len(part) != 6 || !allDigits(part) {
			continue
		}
		if i+1 >= len(parts) || len(parts[i+1]) < 6 || !allDigits(parts[i+1][:6]) {
			continue
		}
		t, err := time.Parse(sessionTimeLayout, part+parts[i+1][:6])
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Tag extracts the classification tag from an event line. Lines are
// whitespace-separated `trackfile camera frameID tag...` records; lines
// with fewer than 4 fields carry no tag. Everything from the fourth
// field on is the tag, so multi-word tags are preserved.
func Tag(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", false
	}
	return strings.Join(fields[3:], " "), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
