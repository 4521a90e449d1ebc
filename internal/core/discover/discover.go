package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"jumpstat/pkg/jumpfile"
)

// Locator finds jump files for a dataset under a base directory.
type Locator struct {
	log *zap.Logger
}

// New creates a locator
func New(log *zap.Logger) *Locator {
	return &Locator{log: log}
}

// Find walks baseDir recursively and returns every file named
// *DATACO-<datasetID>.jump, grouped by project (the file's immediate
// parent directory name). A missing base directory or zero matches is
// a normal no-data outcome, not an error.
func (l *Locator) Find(datasetID, baseDir string) ([]string, map[string][]string) {
	suffix := "DATACO-" + datasetID + jumpfile.Ext

	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		l.log.Warn("base directory not found", zap.String("base_dir", baseDir))
		return nil, map[string][]string{}
	}

	var files []string
	projects := make(map[string][]string)

	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree, keep walking the rest
			l.log.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !matchesDataset(d.Name(), suffix) {
			return nil
		}
		files = append(files, path)
		project := filepath.Base(filepath.Dir(path))
		projects[project] = append(projects[project], path)
		return nil
	})
	if err != nil {
		l.log.Warn("walk failed", zap.String("base_dir", baseDir), zap.Error(err))
	}

	l.log.Debug("discovery finished",
		zap.String("dataset", datasetID),
		zap.Int("files", len(files)),
		zap.Int("projects", len(projects)))

	return files, projects
}

func matchesDataset(name, suffix string) bool {
	return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
}

// SortBySessionTime orders file paths ascending by the timestamp
// derived from each file's session name. Files whose name does not
// parse, or whose session carries no date, sort first.
func SortBySessionTime(files []string) []string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti := sessionTimeKey(sorted[i])
		tj := sessionTimeKey(sorted[j])
		if ti.Equal(tj) {
			return sorted[i] < sorted[j]
		}
		return ti.Before(tj)
	})
	return sorted
}

func sessionTimeKey(path string) time.Time {
	if session, ok := jumpfile.SessionName(path); ok {
		if ts, ok := jumpfile.SessionTime(session); ok {
			return ts
		}
	}
	return time.Time{}
}
