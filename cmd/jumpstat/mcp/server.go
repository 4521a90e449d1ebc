package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"jumpstat/internal/core/aggregate"
	"jumpstat/internal/core/persist"
)

// LoadDatasetArgs defines arguments for the load_dataset tool
type LoadDatasetArgs struct {
	Dataco  string `json:"dataco"`
	BaseDir string `json:"base_dir,omitempty"`
}

// CompareDatasetsArgs defines arguments for the compare_datasets tool
type CompareDatasetsArgs struct {
	Datacos string `json:"datacos"`
	BaseDir string `json:"base_dir,omitempty"`
}

// MergeDatasetsArgs defines arguments for the merge_datasets tool
type MergeDatasetsArgs struct {
	Datacos string `json:"datacos"`
	BaseDir string `json:"base_dir,omitempty"`
	Output  string `json:"output,omitempty"`
}

// SaveContentArgs defines arguments for the save_content tool
type SaveContentArgs struct {
	Content string `json:"content"`
	Path    string `json:"path"`
}

// StartServer starts the MCP server on stdio. baseDir is the default
// scan root; tools may override it per call.
func StartServer(logger *zap.Logger, baseDir string, workers int) error {
	s := server.NewMCPServer(
		"jumpstat",
		"1.0.0",
	)

	loaderFor := func(dir string) *aggregate.Loader {
		if dir == "" {
			dir = baseDir
		}
		return aggregate.NewLoader(logger, dir, workers)
	}

	loadTool := mcp.NewTool("load_dataset",
		mcp.WithDescription("Load one DATACO dataset's jump files and return its aggregated statistics, tag counts, and a content sample."),
		mcp.WithString("dataco",
			mcp.Required(),
			mcp.Description("DATACO number to load")),
		mcp.WithString("base_dir",
			mcp.Description("Override the base directory to scan")),
	)
	s.AddTool(loadTool, makeLoadHandler(loaderFor))

	compareTool := mcp.NewTool("compare_datasets",
		mcp.WithDescription("Compare two or more DATACO datasets: tags common to all of them and tags unique to each."),
		mcp.WithString("datacos",
			mcp.Required(),
			mcp.Description("Comma-separated DATACO numbers (at least two)")),
		mcp.WithString("base_dir",
			mcp.Description("Override the base directory to scan")),
	)
	s.AddTool(compareTool, makeCompareHandler(loaderFor))

	mergeTool := mcp.NewTool("merge_datasets",
		mcp.WithDescription("Merge two or more DATACO datasets into one, processing shared files exactly once. Optionally persist the merged content."),
		mcp.WithString("datacos",
			mcp.Required(),
			mcp.Description("Comma-separated DATACO numbers (at least two)")),
		mcp.WithString("base_dir",
			mcp.Description("Override the base directory to scan")),
		mcp.WithString("output",
			mcp.Description("If set, write the merged content to this path")),
	)
	s.AddTool(mergeTool, makeMergeHandler(loaderFor))

	saveTool := mcp.NewTool("save_content",
		mcp.WithDescription("Write text content to a UTF-8 file, creating missing directories."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Content to write, newline-separated")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Destination file path")),
	)
	s.AddTool(saveTool, makeSaveHandler())

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, v interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, v)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func splitDatacos(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func loadValid(loader *aggregate.Loader, ids []string) []*aggregate.Dataset {
	var datasets []*aggregate.Dataset
	for _, id := range ids {
		ds := loader.Load(id)
		if len(ds.Files) > 0 {
			datasets = append(datasets, ds)
		}
	}
	return datasets
}

type loaderFactory func(baseDir string) *aggregate.Loader

func makeLoadHandler(loaderFor loaderFactory) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args LoadDatasetArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Dataco == "" {
			return mcp.NewToolResultError("dataco is required"), nil
		}

		ds := loaderFor(args.BaseDir).Load(args.Dataco)
		return jsonResult(ds.Snapshot())
	}
}

func makeCompareHandler(loaderFor loaderFactory) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CompareDatasetsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		loader := loaderFor(args.BaseDir)
		datasets := loadValid(loader, splitDatacos(args.Datacos))

		cmp, err := aggregate.Compare(datasets...)
		if err != nil {
			return mcp.NewToolResultError("need at least two valid DATACO datasets to compare"), nil
		}
		return jsonResult(cmp)
	}
}

func makeMergeHandler(loaderFor loaderFactory) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args MergeDatasetsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		loader := loaderFor(args.BaseDir)
		datasets := loadValid(loader, splitDatacos(args.Datacos))

		merged, err := loader.Aggregator().Merge(datasets...)
		if err != nil {
			return mcp.NewToolResultError("need at least two valid DATACO datasets to merge"), nil
		}

		if args.Output != "" {
			if err := persist.Save(merged.Content, args.Output); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to save merged content: %v", err)), nil
			}
		}
		return jsonResult(merged.Snapshot())
	}
}

func makeSaveHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SaveContentArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		if err := persist.Save(strings.Split(args.Content, "\n"), args.Path); err != nil {
			return jsonResult(map[string]interface{}{"success": false, "error": err.Error()})
		}
		return jsonResult(map[string]interface{}{"success": true, "file_path": args.Path})
	}
}
