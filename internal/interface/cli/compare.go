package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jumpstat/internal/core/aggregate"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <dataco> <dataco> [dataco...]",
	Short: "Compare tag sets across DATACO datasets",
	Long: `Load two or more DATACO datasets and compute the tags they share
and the tags unique to each.

Examples:
  jumpstat compare 111 222
  jumpstat compare 111 222 333 --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Emit the result as JSON")
}

// loadValid loads each dataset and keeps those that found files.
// Skips go to the log, never stdout, so --json output stays parseable.
func loadValid(loader *aggregate.Loader, ids []string) []*aggregate.Dataset {
	var datasets []*aggregate.Dataset
	for _, id := range ids {
		ds := loader.Load(id)
		if len(ds.Files) == 0 {
			logger.Warn("skipping dataset with no files", zap.String("dataco", id))
			continue
		}
		datasets = append(datasets, ds)
	}
	return datasets
}

func runCompare(cmd *cobra.Command, args []string) error {
	datasets := loadValid(newLoader(), args)

	cmp, err := aggregate.Compare(datasets...)
	if errors.Is(err, aggregate.ErrNeedTwo) {
		if compareJSON {
			return printJSON(errorResult{Error: "need at least two valid DATACO datasets to compare"})
		}
		return fmt.Errorf("need at least two valid DATACO datasets to compare")
	}
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	if compareJSON {
		return printJSON(cmp)
	}

	fmt.Printf("Comparing: %s\n\n", strings.Join(cmp.Datasets, ", "))
	fmt.Printf("Common tags (%d): %s\n", len(cmp.CommonTags), joinOrNone(cmp.CommonTags))
	for _, id := range cmp.Datasets {
		unique := cmp.UniqueTags[id]
		fmt.Printf("Unique to %s (%d): %s\n", id, len(unique), joinOrNone(unique))
	}

	fmt.Println()
	for _, stats := range cmp.Stats {
		fmt.Printf("DATACO-%s: %d files, %d events, %d unique tags\n",
			stats.DatasetID, stats.TotalFiles, stats.EventCount, stats.UniqueTags)
	}
	return nil
}

func joinOrNone(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}
