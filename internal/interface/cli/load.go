package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jumpstat/internal/core/aggregate"
)

var loadJSON bool

var loadCmd = &cobra.Command{
	Use:   "load <dataco>",
	Short: "Load and summarize one DATACO dataset",
	Long: `Scan the base directory for a DATACO number's jump files and
print the aggregated statistics.

Examples:
  jumpstat load 12345
  jumpstat load 12345 --json
  jumpstat load 12345 --base-dir /data/voice_tagging`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Emit the full result as JSON")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ds := newLoader().Load(args[0])
	recordScan(ds, "load")

	if loadJSON {
		return printJSON(ds.Snapshot())
	}

	if len(ds.Files) == 0 {
		fmt.Printf("No files found for DATACO-%s under %s\n", ds.ID, baseDir)
		return nil
	}

	printStats(ds)
	return nil
}

func printStats(ds *aggregate.Dataset) {
	stats := ds.Stats()

	fmt.Printf("DATACO-%s\n", stats.DatasetID)
	fmt.Println("==========" + strings.Repeat("=", len(stats.DatasetID)))
	fmt.Printf("Total Files:     %s\n", humanize.Comma(int64(stats.TotalFiles)))
	fmt.Printf("Processed:       %s\n", humanize.Comma(int64(stats.ProcessedFiles)))
	if stats.FailedFiles > 0 {
		fmt.Printf("Failed:          %s\n", humanize.Comma(int64(stats.FailedFiles)))
	}
	fmt.Printf("Projects:        %d\n", len(ds.Projects))
	fmt.Printf("Sessions:        %s\n", humanize.Comma(int64(stats.SessionCount)))
	fmt.Printf("Events:          %s\n", humanize.Comma(int64(stats.EventCount)))
	fmt.Printf("Unique Tags:     %s\n", humanize.Comma(int64(stats.UniqueTags)))
	if stats.MinDate != nil {
		fmt.Printf("Date Range:      %s to %s\n",
			stats.MinDate.Format("Jan 2, 2006 15:04"),
			stats.MaxDate.Format("Jan 2, 2006 15:04"))
	}

	if len(stats.TagCounts) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Top Tags:")
	for i, tag := range tagsByCount(stats.TagCounts) {
		if i >= 15 {
			fmt.Printf("  ... and %d more\n", len(stats.TagCounts)-i)
			break
		}
		fmt.Printf("  %-30s %s\n", tag, humanize.Comma(int64(stats.TagCounts[tag])))
	}
}

// tagsByCount orders tags by descending count, then name
func tagsByCount(counts map[string]int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}
