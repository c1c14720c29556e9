package cmd

import (
	"fmt"
	"os"

	"srcdigest/pkg/digest"
	"srcdigest/pkg/logging"
	"srcdigest/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	includePatterns []string
	excludePatterns []string
	maxSizeKB       int
	outputFile      string
	ignoreFileName  string
	maxWorkers      int
	debugMode       bool
)

// rootLogger is injected by Execute before command dispatch.
var rootLogger = zap.NewNop()

// RootCmd is the base command; without subcommands it runs the digest itself.
var RootCmd = &cobra.Command{
	Use:   "srcdigest [path]",
	Short: "srcdigest produces a single text digest of a source tree",
	Long: `srcdigest walks a directory tree and writes one text artifact containing
a directory listing plus the concatenated contents of selected files,
suitable as context for language models or archival review.

Selection layers per-directory ignore files, built-in default exclusions,
user include/exclude globs and a content size threshold.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := rootLogger
		if debugMode {
			if err := logging.Setup(true, "srcdigest", version.Get().Version); err != nil {
				return fmt.Errorf("failed to configure debug logging: %w", err)
			}
			logger = zap.L()
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		cfg := digest.Config{
			Root:           root,
			Include:        includePatterns,
			Exclude:        excludePatterns,
			MaxSizeKB:      maxSizeKB,
			Output:         outputFile,
			IgnoreFileName: ignoreFileName,
			MaxWorkers:     maxWorkers,
		}

		text, err := digest.Run(cfg, logger)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
			logger.Error("Failed to write digest file", zap.String("file", outputFile), zap.Error(err))
			return fmt.Errorf("failed to write digest file %s: %w", outputFile, err)
		}

		logger.Info("Digest written",
			zap.String("outputFile", outputFile),
			zap.Int("sizeBytes", len(text)))
		return nil
	},
}

func init() {
	RootCmd.Flags().StringArrayVarP(&includePatterns, "include", "i", nil, "Glob patterns for files to include; if used, only matching files are included")
	RootCmd.Flags().StringArrayVarP(&excludePatterns, "exclude", "e", nil, "Additional glob patterns for files or directories to exclude")
	RootCmd.Flags().IntVar(&maxSizeKB, "max-size", digest.DefaultMaxSizeKB, "Maximum file size in KB for content inclusion")
	RootCmd.Flags().StringVarP(&outputFile, "output", "o", digest.DefaultOutputFile, "Output file name")
	RootCmd.Flags().StringVar(&ignoreFileName, "ignore-file", digest.DefaultIgnoreFileName, "Per-directory ignore file name")
	RootCmd.Flags().IntVar(&maxWorkers, "workers", 0, "Number of concurrent content readers (0 = number of CPUs)")
	RootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(logger *zap.Logger) error {
	if logger != nil {
		rootLogger = logger
	}
	return RootCmd.Execute()
}
