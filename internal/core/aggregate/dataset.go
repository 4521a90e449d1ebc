package aggregate

import (
	"sort"
	"time"
)

// contentSampleLimit caps how many content lines a Snapshot carries.
const contentSampleLimit = 1000

// Dataset holds everything derived from one DATACO number's jump
// files (or from a merge of several). It is populated by a single
// Aggregator run and read-only afterwards.
type Dataset struct {
	ID           string
	Files        []string            // sorted ascending by session timestamp
	Projects     map[string][]string // project folder -> file paths
	Content      []string            // event lines, trailer last
	TagCounts    map[string]int
	EventCount   int
	SessionNames map[string]struct{}
	SessionDates map[string]time.Time // zero value = session has no derivable date
	MinDate      time.Time
	MaxDate      time.Time

	ProcessedCount int
	FailedFiles    []string
}

// NewDataset creates an empty dataset for the given id
func NewDataset(id string) *Dataset {
	return &Dataset{
		ID:           id,
		Projects:     make(map[string][]string),
		TagCounts:    make(map[string]int),
		SessionNames: make(map[string]struct{}),
		SessionDates: make(map[string]time.Time),
	}
}

// updateDates recomputes MinDate/MaxDate over the sessions that
// produced a valid timestamp.
func (d *Dataset) updateDates() {
	d.MinDate, d.MaxDate = time.Time{}, time.Time{}
	for _, t := range d.SessionDates {
		if t.IsZero() {
			continue
		}
		if d.MinDate.IsZero() || t.Before(d.MinDate) {
			d.MinDate = t
		}
		if d.MaxDate.IsZero() || t.After(d.MaxDate) {
			d.MaxDate = t
		}
	}
}

// TagKeys returns the dataset's tag vocabulary as a set.
func (d *Dataset) TagKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(d.TagCounts))
	for tag := range d.TagCounts {
		keys[tag] = struct{}{}
	}
	return keys
}

// Stats summarizes a dataset for display and serialization.
type Stats struct {
	DatasetID      string         `json:"dataco_number"`
	TotalFiles     int            `json:"total_files"`
	ProcessedFiles int            `json:"processed_files"`
	FailedFiles    int            `json:"failed_files"`
	SessionCount   int            `json:"session_count"`
	EventCount     int            `json:"event_count"`
	UniqueTags     int            `json:"unique_tags"`
	MinDate        *time.Time     `json:"min_date"`
	MaxDate        *time.Time     `json:"max_date"`
	TagCounts      map[string]int `json:"tag_counts"`
	Sessions       []string       `json:"sessions"`
}

// Snapshot is the full serializable view of a dataset, with the
// content capped to a sample.
type Snapshot struct {
	Stats
	SessionDates     map[string]*time.Time `json:"session_dates"`
	ContentSample    []string              `json:"content_sample"`
	ContentTruncated bool                  `json:"content_truncated"`
}

// Stats builds the summary view
func (d *Dataset) Stats() Stats {
	sessions := make([]string, 0, len(d.SessionNames))
	for name := range d.SessionNames {
		sessions = append(sessions, name)
	}
	sort.Strings(sessions)

	return Stats{
		DatasetID:      d.ID,
		TotalFiles:     len(d.Files),
		ProcessedFiles: d.ProcessedCount,
		FailedFiles:    len(d.FailedFiles),
		SessionCount:   len(d.SessionNames),
		EventCount:     d.EventCount,
		UniqueTags:     len(d.TagCounts),
		MinDate:        timePtr(d.MinDate),
		MaxDate:        timePtr(d.MaxDate),
		TagCounts:      d.TagCounts,
		Sessions:       sessions,
	}
}

// Snapshot builds the full serializable view
func (d *Dataset) Snapshot() Snapshot {
	dates := make(map[string]*time.Time, len(d.SessionDates))
	for name, t := range d.SessionDates {
		dates[name] = timePtr(t)
	}

	sample := d.Content
	truncated := false
	if len(sample) > contentSampleLimit {
		sample = sample[:contentSampleLimit]
		truncated = true
	}

	return Snapshot{
		Stats:            d.Stats(),
		SessionDates:     dates,
		ContentSample:    sample,
		ContentTruncated: truncated,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
