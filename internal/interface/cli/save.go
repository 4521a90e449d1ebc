package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jumpstat/internal/core/persist"
)

var (
	saveJSON   bool
	saveOutput string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save content from stdin to a jump file",
	Long: `Read content lines from stdin and write them to a file,
creating missing directories.

Examples:
  jumpstat merge 111 222 --json | jq -r '.content_sample[]' | jumpstat save -o out.jump`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().BoolVar(&saveJSON, "json", false, "Emit the result as JSON")
	saveCmd.Flags().StringVarP(&saveOutput, "output", "o", "", "Output file path (required)")
	_ = saveCmd.MarkFlagRequired("output")
}

type saveResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runSave(cmd *cobra.Command, args []string) error {
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	if err := persist.Save(lines, saveOutput); err != nil {
		if saveJSON {
			return printJSON(saveResult{Success: false, Error: err.Error()})
		}
		return err
	}

	if saveJSON {
		return printJSON(saveResult{Success: true, FilePath: saveOutput})
	}
	fmt.Printf("Saved %d line(s) to: %s\n", len(lines), saveOutput)
	return nil
}
