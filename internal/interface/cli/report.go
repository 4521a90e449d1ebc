package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"jumpstat/internal/core/report"
)

var reportCopy bool

var reportCmd = &cobra.Command{
	Use:   "report <dataco>",
	Short: "Render a text report for a DATACO dataset",
	Long: `Load a dataset and render its statistics through the report
template. Place a custom template at ~/.config/jumpstat/report_template.txt
to override the layout.

Examples:
  jumpstat report 12345
  jumpstat report 12345 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportCopy, "copy", false, "Also copy the report to the clipboard")
}

func runReport(cmd *cobra.Command, args []string) error {
	ds := newLoader().Load(args[0])
	if len(ds.Files) == 0 {
		fmt.Printf("No files found for DATACO-%s under %s\n", ds.ID, baseDir)
		return nil
	}

	out, err := report.Render(cfg.ReportTemplate, ds)
	if err != nil {
		return err
	}

	fmt.Println(out)

	if reportCopy {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to copy report: %w", err)
		}
		fmt.Println("(copied to clipboard)")
	}
	return nil
}
