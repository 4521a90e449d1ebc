package aggregate

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"jumpstat/internal/core/discover"
)

// MergedPrefix starts every synthetic merged dataset id
const MergedPrefix = "MERGED"

// ErrNeedTwo reports a compare/merge call with fewer than two
// datasets that actually have files.
var ErrNeedTwo = errors.New("need at least two valid datasets")

// Merge combines two or more datasets into a new one. Inputs may
// share physical files (one file can match several DATACO numbers),
// so content and tag counts are not summed: Merge unions the file
// paths and re-runs aggregation over the union, guaranteeing every
// file is counted exactly once.
func (a *Aggregator) Merge(datasets ...*Dataset) (*Dataset, error) {
	if len(datasets) < 2 {
		return nil, ErrNeedTwo
	}

	ids := make([]string, len(datasets))
	for i, ds := range datasets {
		ids[i] = ds.ID
	}
	merged := NewDataset(MergedPrefix + "_" + strings.Join(ids, "_"))

	a.log.Info("merging datasets", zap.Strings("datasets", ids))

	paths := make(map[string]struct{})
	projects := make(map[string]map[string]struct{})
	for _, ds := range datasets {
		for _, f := range ds.Files {
			paths[f] = struct{}{}
		}
		for name := range ds.SessionNames {
			merged.SessionNames[name] = struct{}{}
		}
		// Later inputs win on session-name collision; a session's
		// date is a property of the session, not the dataset.
		for name, t := range ds.SessionDates {
			merged.SessionDates[name] = t
		}
		for proj, files := range ds.Projects {
			if projects[proj] == nil {
				projects[proj] = make(map[string]struct{})
			}
			for _, f := range files {
				projects[proj][f] = struct{}{}
			}
		}
	}

	merged.Files = discover.SortBySessionTime(setToSlice(paths))
	for proj, set := range projects {
		merged.Projects[proj] = setToSlice(set)
		sort.Strings(merged.Projects[proj])
	}

	merged.Content, merged.TagCounts, merged.EventCount = a.collect(merged.Files)

	failed := make(map[string]struct{})
	for _, ds := range datasets {
		merged.ProcessedCount += ds.ProcessedCount
		for _, f := range ds.FailedFiles {
			failed[f] = struct{}{}
		}
	}
	merged.FailedFiles = setToSlice(failed)
	sort.Strings(merged.FailedFiles)

	merged.updateDates()
	return merged, nil
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
