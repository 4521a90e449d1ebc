package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jumpstat/internal/core/aggregate"
	"jumpstat/internal/core/persist"
)

var (
	mergeJSON   bool
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <dataco> <dataco> [dataco...]",
	Short: "Merge DATACO datasets into one",
	Long: `Load two or more DATACO datasets and merge them. Files shared
between datasets are processed once, so overlapping inputs cannot
double-count events.

Examples:
  jumpstat merge 111 222
  jumpstat merge 111 222 --output merged/DATACO-111-222.jump`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().BoolVar(&mergeJSON, "json", false, "Emit the result as JSON")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write merged content to this path")
}

func runMerge(cmd *cobra.Command, args []string) error {
	loader := newLoader()
	datasets := loadValid(loader, args)

	merged, err := loader.Aggregator().Merge(datasets...)
	if errors.Is(err, aggregate.ErrNeedTwo) {
		if mergeJSON {
			return printJSON(errorResult{Error: "need at least two valid DATACO datasets to merge"})
		}
		return fmt.Errorf("need at least two valid DATACO datasets to merge")
	}
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	recordScan(merged, "merge")

	if mergeOutput != "" {
		if err := persist.Save(merged.Content, mergeOutput); err != nil {
			return fmt.Errorf("failed to save merged content: %w", err)
		}
		if !mergeJSON {
			fmt.Printf("Saved merged content to: %s\n\n", mergeOutput)
		}
	}

	if mergeJSON {
		return printJSON(merged.Snapshot())
	}

	printStats(merged)
	return nil
}
