package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"jumpstat/internal/core/aggregate"
)

func TestLoadValid_SkipsEmptyWithoutStdout(t *testing.T) {
	logger = zap.NewNop()

	base := t.TempDir()
	path := filepath.Join(base, "P1", "S1_x_DATACO-1.jump")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("tf cam 10 dog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Anything printed here would corrupt --json output on a pipe
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	datasets := loadValid(aggregate.NewLoader(logger, base, 2), []string{"1", "404"})

	_ = w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)

	if len(out) != 0 {
		t.Errorf("loadValid wrote to stdout: %q", out)
	}
	if len(datasets) != 1 || datasets[0].ID != "1" {
		t.Errorf("datasets = %v, want only DATACO-1", datasets)
	}
}
