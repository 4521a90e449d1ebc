package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"jumpstat/internal/core/db"
)

var (
	historySince string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past aggregation runs",
	Long: `List recorded load and merge runs, newest first.

The --since filter accepts natural language and common date formats.

Examples:
  jumpstat history
  jumpstat history --since "last week"
  jumpstat history --since 2025-01-01 --limit 10`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only runs after this date (natural language ok)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to display")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var since time.Time
	if historySince != "" {
		parsed, err := parseSince(historySince)
		if err != nil {
			return err
		}
		since = parsed
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open scan history: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	scans, err := database.ListScans(since)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}
	if len(scans) > historyLimit {
		scans = scans[:historyLimit]
	}

	if len(scans) == 0 {
		fmt.Println("No recorded runs. Run 'jumpstat load <dataco>' first.")
		return nil
	}

	for i, s := range scans {
		fmt.Printf("[%d] %s %s (%s)\n", i+1, s.Action, s.DatasetID, humanize.Time(s.CreatedAt))
		fmt.Printf("    Files: %d (%d processed, %d failed)  Events: %d  Tags: %d\n",
			s.TotalFiles, s.ProcessedFiles, s.FailedFiles, s.EventCount, s.UniqueTags)
		fmt.Printf("    Base: %s\n", s.BaseDir)
		fmt.Println()
	}
	return nil
}

// parseSince accepts natural language ("last week") and standard
// date formats.
func parseSince(s string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if result, err := w.Parse(s, time.Now()); err == nil && result != nil {
		return result.Time, nil
	}

	for _, format := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date %q", s)
}
