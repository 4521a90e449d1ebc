package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jumpstat/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <dataco>",
	Short: "Browse a dataset's tags interactively",
	Long: `Open an interactive browser over a dataset's tag counts and
sessions.

Keys:
  tab      switch between tags and sessions
  /        filter (sessions support project:, after:, before: tokens)
  enter/c  copy the selected entry to the clipboard
  q        quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ds := newLoader().Load(args[0])
	if len(ds.Files) == 0 {
		fmt.Printf("No files found for DATACO-%s under %s\n", ds.ID, baseDir)
		return nil
	}

	model := tui.NewModel(ds)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
