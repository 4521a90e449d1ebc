package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jumpstat/cmd/jumpstat/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing dataset operations",
	Long: `Start an MCP (Model Context Protocol) server over stdio that
exposes the load, compare, merge, and save operations as tools.

Configure in an MCP client config:
  {
    "mcpServers": {
      "jumpstat": {
        "command": "jumpstat",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(logger, baseDir, workers); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
