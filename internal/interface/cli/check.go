package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jumpstat/internal/core/discover"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <dataco>",
	Short: "Check whether jump files exist for a DATACO number",
	Long: `Report how many jump files the base directory holds for a DATACO
number, without parsing any of them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the result as JSON")
}

type checkResult struct {
	DatasetID    string `json:"dataco_number"`
	Exists       bool   `json:"exists"`
	TotalFiles   int    `json:"total_files"`
	ProjectCount int    `json:"project_count"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, projects := discover.New(logger).Find(args[0], baseDir)

	result := checkResult{
		DatasetID:    args[0],
		Exists:       len(files) > 0,
		TotalFiles:   len(files),
		ProjectCount: len(projects),
	}

	if checkJSON {
		return printJSON(result)
	}

	if !result.Exists {
		fmt.Printf("No files found for DATACO-%s under %s\n", result.DatasetID, baseDir)
		return nil
	}
	fmt.Printf("DATACO-%s: %d file(s) across %d project(s)\n",
		result.DatasetID, result.TotalFiles, result.ProjectCount)
	return nil
}
