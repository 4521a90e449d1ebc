package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jumpstat/internal/core/aggregate"
	"jumpstat/internal/core/config"
	"jumpstat/internal/core/db"
)

var (
	baseDir     string
	dbPath      string
	workers     int
	verbose     bool
	versionInfo string

	cfg    *config.Config
	logger *zap.Logger
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumpstat",
	Short: "DATACO jump file statistics",
	Long: `jumpstat - aggregate, compare, and merge DATACO jump file datasets

Scans a voice-tagging directory tree for the jump files of a DATACO
number, parses them in parallel, and derives tag and session statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseDir == "" {
			baseDir = cfg.BaseDir
		}
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		if workers == 0 {
			workers = cfg.MaxWorkers
		}

		// Results go to stdout; logs stay on stderr
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"stderr"}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "Base directory for DATACO files (default from config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Scan history database path (default from config)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Worker pool size (0 = auto)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLoader() *aggregate.Loader {
	return aggregate.NewLoader(logger, baseDir, workers)
}

// recordScan logs the run in the history store. History is best
// effort; a broken store never fails the command.
func recordScan(ds *aggregate.Dataset, action string) {
	database, err := db.New(dbPath)
	if err != nil {
		logger.Warn("failed to open scan history", zap.Error(err))
		return
	}
	defer func() {
		_ = database.Close()
	}()

	if err := database.RecordScan(ds, action, baseDir); err != nil {
		logger.Warn("failed to record scan", zap.Error(err))
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// errorResult is the structured error payload for --json mode
type errorResult struct {
	Error string `json:"error"`
}
