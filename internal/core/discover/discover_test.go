package discover

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("tf cam 10 dog\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFind(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "P1", "S1_x_DATACO-111.jump"))
	touch(t, filepath.Join(base, "P1", "nested", "deep", "S2_x_DATACO-111.jump"))
	touch(t, filepath.Join(base, "P2", "S3_x_DATACO-111.jump"))
	touch(t, filepath.Join(base, "P2", "S4_x_DATACO-222.jump"))   // other dataset
	touch(t, filepath.Join(base, "P2", "S5_x_DATACO-111.notes"))  // wrong extension
	touch(t, filepath.Join(base, "P2", "S6_x_DATACO-1111.jump"))  // id is not a suffix match

	loc := New(zap.NewNop())
	files, projects := loc.Find("111", base)

	if len(files) != 3 {
		t.Fatalf("Find() returned %d files, want 3: %v", len(files), files)
	}

	// Grouping is by immediate parent directory
	if len(projects["P1"]) != 1 || len(projects["P2"]) != 1 || len(projects["deep"]) != 1 {
		t.Errorf("unexpected project groups: %v", projects)
	}
}

func TestFind_MissingBaseDir(t *testing.T) {
	loc := New(zap.NewNop())
	files, projects := loc.Find("111", filepath.Join(t.TempDir(), "nope"))
	if len(files) != 0 || len(projects) != 0 {
		t.Errorf("expected empty result, got %v / %v", files, projects)
	}
}

func TestFind_NoMatches(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "P1", "S1_x_DATACO-999.jump"))

	loc := New(zap.NewNop())
	files, _ := loc.Find("111", base)
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestSortBySessionTime(t *testing.T) {
	files := []string{
		"/b/P1/New_250601_120000_x_DATACO-1.jump",
		"/b/P1/Old_240101_080000_x_DATACO-1.jump",
		"/b/P1/unparseable.jump",
		"/b/P1/NoDate_v2_x_DATACO-1.jump",
		"/b/P1/Mid_250108_095047_x_DATACO-1.jump",
	}

	sorted := SortBySessionTime(files)

	want := []string{
		"/b/P1/NoDate_v2_x_DATACO-1.jump", // dateless sorts first
		"/b/P1/unparseable.jump",          // no session name at all sorts first too
		"/b/P1/Old_240101_080000_x_DATACO-1.jump",
		"/b/P1/Mid_250108_095047_x_DATACO-1.jump",
		"/b/P1/New_250601_120000_x_DATACO-1.jump",
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("sorted[%d] = %s, want %s (full: %v)", i, sorted[i], want[i], sorted)
		}
	}

	// Input slice must not be reordered
	if files[0] != "/b/P1/New_250601_120000_x_DATACO-1.jump" {
		t.Error("SortBySessionTime mutated its input")
	}
}
