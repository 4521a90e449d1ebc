// Package persist writes aggregated content to text artifacts.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes lines to path as UTF-8 text joined by newlines, creating
// missing parent directories and overwriting any existing file. The
// trailer convention is the caller's concern: content coming out of an
// aggregation run already ends with the schema line.
func Save(lines []string, path string) error {
	if path == "" {
		return fmt.Errorf("no output path provided")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
