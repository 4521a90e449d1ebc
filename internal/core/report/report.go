// Package report renders dataset summaries as text from a mustache
// template, overridable the same way the config dir overrides the
// report template file.
package report

import (
	"fmt"
	"sort"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"

	"jumpstat/internal/core/aggregate"
)

// tagRow feeds the {{#tags}} section, most frequent first.
type tagRow struct {
	Name  string
	Count string
}

// Render produces a text report for a dataset from template.
func Render(template string, ds *aggregate.Dataset) (string, error) {
	stats := ds.Stats()

	tags := make([]map[string]string, 0, len(stats.TagCounts))
	for _, row := range sortedTags(stats.TagCounts) {
		tags = append(tags, map[string]string{
			"name":  row.Name,
			"count": row.Count,
		})
	}

	data := map[string]interface{}{
		"dataset":         stats.DatasetID,
		"total_files":     humanize.Comma(int64(stats.TotalFiles)),
		"processed_files": humanize.Comma(int64(stats.ProcessedFiles)),
		"failed_files":    humanize.Comma(int64(stats.FailedFiles)),
		"project_count":   len(ds.Projects),
		"session_count":   humanize.Comma(int64(stats.SessionCount)),
		"event_count":     humanize.Comma(int64(stats.EventCount)),
		"unique_tags":     humanize.Comma(int64(stats.UniqueTags)),
		"has_dates":       stats.MinDate != nil,
		"tags":            tags,
	}
	if stats.MinDate != nil {
		data["min_date"] = stats.MinDate.Format("2006-01-02 15:04:05")
		data["max_date"] = stats.MaxDate.Format("2006-01-02 15:04:05")
		data["newest_age"] = humanize.Time(*stats.MaxDate)
	}

	out, err := mustache.Render(template, data)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

// sortedTags orders tags by descending count, then name.
func sortedTags(counts map[string]int) []tagRow {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([]tagRow, len(names))
	for i, name := range names {
		rows[i] = tagRow{Name: name, Count: humanize.Comma(int64(counts[name]))}
	}
	return rows
}
