package aggregate

import (
	"errors"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jumpstat/internal/core/discover"
	"jumpstat/pkg/jumpfile"
)

// Aggregator folds per-file parse results into datasets. File parsing
// runs on a bounded worker pool; the fold itself is single-threaded.
type Aggregator struct {
	log     *zap.Logger
	workers int
}

// New creates an aggregator. workers <= 0 selects the default pool size.
func New(log *zap.Logger, workers int) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Aggregator{log: log, workers: workers}
}

// DefaultWorkers bounds the pool so directories with thousands of
// files cannot exhaust descriptors.
func DefaultWorkers() int {
	return min(32, 2*runtime.GOMAXPROCS(0))
}

// fileResult is what one worker produces for one file.
type fileResult struct {
	path string
	res  *jumpfile.Result
	err  error
}

// process fans the file list out over the worker pool and returns a
// channel carrying each file's result in completion order. The channel
// closes once every task has finished; tasks are never cancelled.
func (a *Aggregator) process(files []string) <-chan fileResult {
	out := make(chan fileResult)

	var g errgroup.Group
	g.SetLimit(min(a.workers, len(files)))

	go func() {
		for _, path := range files {
			g.Go(func() error {
				res, err := jumpfile.Process(path)
				out <- fileResult{path: path, res: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(out)
	}()

	return out
}

// Run processes ds.Files and folds every result into ds. Individual
// file failures are recorded, never raised; Run always leaves ds in a
// complete (possibly partially empty) state.
func (a *Aggregator) Run(ds *Dataset) {
	if len(ds.Files) == 0 {
		ds.updateDates()
		return
	}

	for r := range a.process(ds.Files) {
		if r.err != nil {
			if errors.Is(r.err, jumpfile.ErrNameMismatch) {
				// Out of scope by name, not broken
				a.log.Debug("skipping non-conforming file", zap.String("path", r.path))
				continue
			}
			a.log.Debug("file failed", zap.String("path", r.path), zap.Error(r.err))
			ds.FailedFiles = append(ds.FailedFiles, filepath.Base(r.path))
			continue
		}

		ds.Content = append(ds.Content, r.res.Lines...)
		for tag, n := range r.res.TagCounts {
			ds.TagCounts[tag] += n
		}
		ds.EventCount += len(r.res.Lines)
		ds.SessionNames[r.res.Session] = struct{}{}
		if _, seen := ds.SessionDates[r.res.Session]; !seen {
			t, _ := jumpfile.SessionTime(r.res.Session)
			ds.SessionDates[r.res.Session] = t
		}
		ds.ProcessedCount++
	}

	if ds.ProcessedCount > 0 {
		ds.Content = append(ds.Content, jumpfile.TrailerLine)
	}
	ds.updateDates()

	a.log.Info("aggregation finished",
		zap.String("dataset", ds.ID),
		zap.Int("processed", ds.ProcessedCount),
		zap.Int("failed", len(ds.FailedFiles)),
		zap.Int("events", ds.EventCount))
}

// collect re-processes a file set for content and tag statistics only.
// Used by Merge, where session bookkeeping is already unioned and
// per-file failures are diagnostic.
func (a *Aggregator) collect(files []string) (content []string, tags map[string]int, events int) {
	tags = make(map[string]int)
	if len(files) == 0 {
		return nil, tags, 0
	}

	processed := 0
	for r := range a.process(files) {
		if r.err != nil {
			continue
		}
		processed++
		content = append(content, r.res.Lines...)
		for tag, n := range r.res.TagCounts {
			tags[tag] += n
		}
		events += len(r.res.Lines)
	}

	// A file of only metadata lines still counts as processed, so the
	// trailer is keyed on processed files, not on content.
	if processed > 0 {
		content = append(content, jumpfile.TrailerLine)
	}
	return content, tags, events
}

// Loader ties discovery and aggregation together for one base directory.
type Loader struct {
	log     *zap.Logger
	loc     *discover.Locator
	agg     *Aggregator
	baseDir string
}

// NewLoader creates a loader rooted at baseDir
func NewLoader(log *zap.Logger, baseDir string, workers int) *Loader {
	return &Loader{
		log:     log,
		loc:     discover.New(log),
		agg:     New(log, workers),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory the loader scans
func (l *Loader) BaseDir() string {
	return l.baseDir
}

// Aggregator exposes the loader's aggregator for merge runs
func (l *Loader) Aggregator() *Aggregator {
	return l.agg
}

// Load discovers and aggregates one dataset. A dataset with no files
// is a valid, empty result.
func (l *Loader) Load(datasetID string) *Dataset {
	ds := NewDataset(datasetID)

	files, projects := l.loc.Find(datasetID, l.baseDir)
	ds.Files = discover.SortBySessionTime(files)
	ds.Projects = projects
	if len(ds.Files) == 0 {
		return ds
	}

	l.agg.Run(ds)
	return ds
}
