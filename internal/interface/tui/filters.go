package tui

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// sessionFilters represents parsed filters from a session query
type sessionFilters struct {
	Query     string    // free-text match against the session name
	Project   string    // filter by project folder
	After     time.Time // only sessions recorded after this date
	Before    time.Time // only sessions recorded before this date
	HasAfter  bool
	HasBefore bool
}

// parseSessionQuery extracts filters from a query string
// Supports:
//   - project:<folder> - filter by project folder
//   - after:yesterday, before:2024-11-01 - date ranges
//
// Everything else is matched against the session name.
func parseSessionQuery(query string) sessionFilters {
	filters := sessionFilters{}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	var queryParts []string
	for _, token := range strings.Fields(query) {
		if strings.HasPrefix(token, "project:") {
			filters.Project = strings.TrimPrefix(token, "project:")
			continue
		}

		if strings.HasPrefix(token, "after:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "after:")); parsed != nil {
				filters.After = *parsed
				filters.HasAfter = true
			}
			continue
		}

		if strings.HasPrefix(token, "before:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "before:")); parsed != nil {
				filters.Before = *parsed
				filters.HasBefore = true
			}
			continue
		}

		queryParts = append(queryParts, token)
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}

// parseDate attempts natural language parsing first, then standard formats
func parseDate(w *when.Parser, dateStr string) *time.Time {
	result, err := w.Parse(dateStr, time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
