package aggregate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"jumpstat/pkg/jumpfile"
)

func writeJump(t *testing.T, base, project, name, content string) string {
	t.Helper()
	path := filepath.Join(base, project, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	base := t.TempDir()
	writeJump(t, base, "P1", "S1_x_DATACO-111.jump", "tf cam 10 dog\n#format: x\n")

	loader := NewLoader(zap.NewNop(), base, 4)
	ds := loader.Load("111")

	if len(ds.Files) != 1 {
		t.Fatalf("Files = %v, want 1 file", ds.Files)
	}
	if ds.ProcessedCount != 1 {
		t.Errorf("ProcessedCount = %d, want 1", ds.ProcessedCount)
	}
	if ds.EventCount != 1 {
		t.Errorf("EventCount = %d, want 1", ds.EventCount)
	}
	if ds.TagCounts["dog"] != 1 || len(ds.TagCounts) != 1 {
		t.Errorf("TagCounts = %v, want {dog:1}", ds.TagCounts)
	}
	if len(ds.Content) == 0 || ds.Content[len(ds.Content)-1] != jumpfile.TrailerLine {
		t.Errorf("Content must end with the trailer line, got %v", ds.Content)
	}
	if _, ok := ds.SessionNames["S1"]; !ok {
		t.Errorf("SessionNames = %v, want S1", ds.SessionNames)
	}
	if len(ds.Projects["P1"]) != 1 {
		t.Errorf("Projects = %v, want file under P1", ds.Projects)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	loader := NewLoader(zap.NewNop(), t.TempDir(), 0)
	ds := loader.Load("404")

	if len(ds.Files) != 0 || ds.ProcessedCount != 0 || ds.EventCount != 0 {
		t.Errorf("expected an empty dataset, got %+v", ds)
	}
	if len(ds.Content) != 0 {
		t.Errorf("empty dataset must carry no content (and no trailer), got %v", ds.Content)
	}
	if !ds.MinDate.IsZero() || !ds.MaxDate.IsZero() {
		t.Error("empty dataset must have no date range")
	}
}

func TestRun_PartialFailure(t *testing.T) {
	base := t.TempDir()
	good := writeJump(t, base, "P1", "S1_250108_095047_x_DATACO-5.jump", "tf cam 10 dog\n")
	// A conforming name that cannot be read as a file
	unreadable := filepath.Join(base, "P1", "S2_x_DATACO-5.jump")
	if err := os.MkdirAll(unreadable, 0755); err != nil {
		t.Fatal(err)
	}
	badName := writeJump(t, base, "P1", "oddly-named.jump", "tf cam 12 bird\n")

	ds := NewDataset("5")
	ds.Files = []string{good, unreadable, badName}
	New(zap.NewNop(), 2).Run(ds)

	if ds.ProcessedCount != 1 {
		t.Errorf("ProcessedCount = %d, want 1", ds.ProcessedCount)
	}
	// The unreadable file is a failure; the non-conforming name is
	// silently out of scope.
	if len(ds.FailedFiles) != 1 || ds.FailedFiles[0] != "S2_x_DATACO-5.jump" {
		t.Errorf("FailedFiles = %v, want [S2_x_DATACO-5.jump]", ds.FailedFiles)
	}
	if ds.TagCounts["dog"] != 1 || len(ds.TagCounts) != 1 {
		t.Errorf("TagCounts = %v", ds.TagCounts)
	}
}

func TestRun_SessionDatesFirstSeenWins(t *testing.T) {
	base := t.TempDir()
	// Two files from the same session name
	f1 := writeJump(t, base, "P1", "S1_250108_095047_a_DATACO-9.jump", "tf cam 1 dog\n")
	f2 := writeJump(t, base, "P1", "S1_250108_095047_b_DATACO-9.jump", "tf cam 2 cat\n")

	ds := NewDataset("9")
	ds.Files = []string{f1, f2}
	New(zap.NewNop(), 1).Run(ds)

	if len(ds.SessionNames) != 1 {
		t.Fatalf("SessionNames = %v, want a single session", ds.SessionNames)
	}
	if got := ds.SessionDates["S1_250108_095047"]; got.IsZero() {
		t.Error("expected a derived session date")
	}
	if ds.MinDate.IsZero() || !ds.MinDate.Equal(ds.MaxDate) {
		t.Errorf("MinDate/MaxDate = %v/%v, want equal non-zero", ds.MinDate, ds.MaxDate)
	}
}

func TestMerge_DisjointSumsTagCounts(t *testing.T) {
	base := t.TempDir()
	writeJump(t, base, "P1", "S1_x_DATACO-100.jump", "tf cam 1 dog\ntf cam 2 dog\n")
	writeJump(t, base, "P2", "S2_x_DATACO-200.jump", "tf cam 3 dog\ntf cam 4 cat\n")

	loader := NewLoader(zap.NewNop(), base, 4)
	a := loader.Load("100")
	b := loader.Load("200")

	merged, err := loader.Aggregator().Merge(a, b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if merged.ID != "MERGED_100_200" {
		t.Errorf("ID = %s, want MERGED_100_200", merged.ID)
	}
	if len(merged.Files) != 2 {
		t.Errorf("Files = %v, want union of 2", merged.Files)
	}
	// Disjoint inputs: counts are the field-wise sum
	if merged.TagCounts["dog"] != 3 || merged.TagCounts["cat"] != 1 {
		t.Errorf("TagCounts = %v, want {dog:3 cat:1}", merged.TagCounts)
	}
	if merged.EventCount != 4 {
		t.Errorf("EventCount = %d, want 4", merged.EventCount)
	}
	if merged.ProcessedCount != 2 {
		t.Errorf("ProcessedCount = %d, want sum of inputs", merged.ProcessedCount)
	}
}

func TestMerge_OverlapDoesNotDoubleCount(t *testing.T) {
	base := t.TempDir()
	// The same physical file matches both dataset ids via its tags;
	// simulate by giving both datasets the same file list.
	shared := writeJump(t, base, "P1", "S1_x_DATACO-300.jump", "tf cam 1 dog\ntf cam 2 cat\n")

	a := NewDataset("300")
	a.Files = []string{shared}
	b := NewDataset("301")
	b.Files = []string{shared}

	agg := New(zap.NewNop(), 2)
	agg.Run(a)
	agg.Run(b)

	merged, err := agg.Merge(a, b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if len(merged.Files) != 1 {
		t.Fatalf("Files = %v, want the shared file once", merged.Files)
	}
	if merged.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2 (no double counting)", merged.EventCount)
	}
	if merged.TagCounts["dog"] != 1 || merged.TagCounts["cat"] != 1 {
		t.Errorf("TagCounts = %v, want {dog:1 cat:1}", merged.TagCounts)
	}
}

func TestMerge_NeedsTwo(t *testing.T) {
	agg := New(zap.NewNop(), 1)
	if _, err := agg.Merge(NewDataset("1")); err != ErrNeedTwo {
		t.Errorf("Merge with one input: err = %v, want ErrNeedTwo", err)
	}
	if _, err := agg.Merge(); err != ErrNeedTwo {
		t.Errorf("Merge with no inputs: err = %v, want ErrNeedTwo", err)
	}
}

func TestMerge_MetadataOnlyFilesKeepTrailer(t *testing.T) {
	base := t.TempDir()
	// Files of nothing but #format: lines are still processed files
	writeJump(t, base, "P1", "S1_x_DATACO-100.jump", "#format: x\n")
	writeJump(t, base, "P2", "S2_x_DATACO-200.jump", "#format: y\n\n")

	loader := NewLoader(zap.NewNop(), base, 2)
	a := loader.Load("100")
	if a.ProcessedCount != 1 || len(a.Content) != 1 || a.Content[0] != jumpfile.TrailerLine {
		t.Fatalf("load: ProcessedCount = %d, Content = %v, want processed with trailer only",
			a.ProcessedCount, a.Content)
	}

	merged, err := loader.Aggregator().Merge(a, loader.Load("200"))
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if len(merged.Content) != 1 || merged.Content[0] != jumpfile.TrailerLine {
		t.Errorf("merged content = %v, want exactly the trailer line", merged.Content)
	}
	if merged.EventCount != 0 {
		t.Errorf("EventCount = %d, want 0", merged.EventCount)
	}
}

func TestMerge_TrailerAppearsOnce(t *testing.T) {
	base := t.TempDir()
	writeJump(t, base, "P1", "S1_x_DATACO-100.jump", "tf cam 1 dog\n")
	writeJump(t, base, "P2", "S2_x_DATACO-200.jump", "tf cam 2 cat\n")

	loader := NewLoader(zap.NewNop(), base, 4)
	merged, err := loader.Aggregator().Merge(loader.Load("100"), loader.Load("200"))
	if err != nil {
		t.Fatal(err)
	}

	trailers := 0
	for _, line := range merged.Content {
		if strings.HasPrefix(line, jumpfile.FormatPrefix) {
			trailers++
		}
	}
	if trailers != 1 || merged.Content[len(merged.Content)-1] != jumpfile.TrailerLine {
		t.Errorf("trailer must appear exactly once, last: %v", merged.Content)
	}
}

func TestCompare(t *testing.T) {
	a := NewDataset("1")
	a.TagCounts = map[string]int{"a": 1, "b": 2}
	b := NewDataset("2")
	b.TagCounts = map[string]int{"b": 5, "c": 1}

	cmp, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(cmp.CommonTags) != 1 || cmp.CommonTags[0] != "b" {
		t.Errorf("CommonTags = %v, want [b]", cmp.CommonTags)
	}
	if got := cmp.UniqueTags["1"]; len(got) != 1 || got[0] != "a" {
		t.Errorf("UniqueTags[1] = %v, want [a]", got)
	}
	if got := cmp.UniqueTags["2"]; len(got) != 1 || got[0] != "c" {
		t.Errorf("UniqueTags[2] = %v, want [c]", got)
	}
}

func TestCompare_ThreeWay(t *testing.T) {
	a := NewDataset("1")
	a.TagCounts = map[string]int{"x": 1, "y": 1}
	b := NewDataset("2")
	b.TagCounts = map[string]int{"x": 1, "z": 1}
	c := NewDataset("3")
	c.TagCounts = map[string]int{"x": 1, "y": 1, "w": 1}

	cmp, err := Compare(a, b, c)
	if err != nil {
		t.Fatal(err)
	}

	if len(cmp.CommonTags) != 1 || cmp.CommonTags[0] != "x" {
		t.Errorf("CommonTags = %v, want [x]", cmp.CommonTags)
	}
	// y appears in a and c, so it is unique to neither
	if len(cmp.UniqueTags["1"]) != 0 {
		t.Errorf("UniqueTags[1] = %v, want empty", cmp.UniqueTags["1"])
	}
	if got := cmp.UniqueTags["3"]; len(got) != 1 || got[0] != "w" {
		t.Errorf("UniqueTags[3] = %v, want [w]", got)
	}
}

func TestCompare_NeedsTwo(t *testing.T) {
	if _, err := Compare(NewDataset("1")); err != ErrNeedTwo {
		t.Errorf("Compare with one input: err = %v, want ErrNeedTwo", err)
	}
}

func TestSnapshot_ContentSample(t *testing.T) {
	ds := NewDataset("1")
	for i := 0; i < contentSampleLimit+10; i++ {
		ds.Content = append(ds.Content, "tf cam 1 dog")
	}

	snap := ds.Snapshot()
	if !snap.ContentTruncated || len(snap.ContentSample) != contentSampleLimit {
		t.Errorf("sample len = %d, truncated = %v", len(snap.ContentSample), snap.ContentTruncated)
	}

	ds2 := NewDataset("2")
	ds2.Content = []string{"tf cam 1 dog"}
	snap2 := ds2.Snapshot()
	if snap2.ContentTruncated || len(snap2.ContentSample) != 1 {
		t.Errorf("small dataset must not be truncated")
	}
}
