package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"jumpstat/internal/core/aggregate"
	"jumpstat/pkg/jumpfile"
)

// sessionRow is one session of the dataset with its derived date and
// the project folders its files came from.
type sessionRow struct {
	name     string
	date     time.Time // zero = no derivable date
	projects []string
}

func buildSessionRows(ds *aggregate.Dataset) []sessionRow {
	// Map each session to the projects that hold its files
	bySession := make(map[string]map[string]struct{})
	for project, files := range ds.Projects {
		for _, f := range files {
			session, ok := jumpfile.SessionName(f)
			if !ok {
				continue
			}
			if bySession[session] == nil {
				bySession[session] = make(map[string]struct{})
			}
			bySession[session][project] = struct{}{}
		}
	}

	rows := make([]sessionRow, 0, len(ds.SessionDates))
	for name, date := range ds.SessionDates {
		row := sessionRow{name: name, date: date}
		for project := range bySession[name] {
			row.projects = append(row.projects, project)
		}
		sort.Strings(row.projects)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].date.Equal(rows[j].date) {
			return rows[i].date.Before(rows[j].date)
		}
		return rows[i].name < rows[j].name
	})
	return rows
}

func (r sessionRow) matches(f sessionFilters) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(r.name), strings.ToLower(f.Query)) {
		return false
	}
	if f.Project != "" {
		found := false
		for _, p := range r.projects {
			if strings.Contains(strings.ToLower(p), strings.ToLower(f.Project)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.HasAfter && (r.date.IsZero() || r.date.Before(f.After)) {
		return false
	}
	if f.HasBefore && (r.date.IsZero() || r.date.After(f.Before)) {
		return false
	}
	return true
}

func filterSessions(rows []sessionRow, query string) []sessionRow {
	f := parseSessionQuery(query)
	var out []sessionRow
	for _, r := range rows {
		if r.matches(f) {
			out = append(out, r)
		}
	}
	return out
}

// renderSessions draws the filtered session rows with a cursor,
// windowed so the cursor stays visible.
func renderSessions(rows []sessionRow, cursor, height int) string {
	if len(rows) == 0 {
		return itemStyle.Render("(no sessions match)")
	}
	if height < 1 {
		height = 1
	}

	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		r := rows[i]
		age := "no date"
		if !r.date.IsZero() {
			age = humanize.Time(r.date)
		}
		line := fmt.Sprintf("%s  %s", r.name, summaryStyle.Render("("+age+")"))
		if len(r.projects) > 0 {
			line += summaryStyle.Render("  " + strings.Join(r.projects, ", "))
		}

		if i == cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
