package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults applied when the corresponding Config fields are zero.
const (
	DefaultMaxSizeKB      = 100
	DefaultOutputFile     = "digest.txt"
	DefaultIgnoreFileName = ".digestignore"
)

// Config holds the options for one digest run.
type Config struct {
	Root           string   // The directory to process
	Include        []string // Glob patterns; when non-empty, only matching files are included
	Exclude        []string // Additional glob patterns for files or directories to exclude
	MaxSizeKB      int      // Maximum size (in KB) of files whose content is embedded
	Output         string   // Destination path for the digest, excluded from traversal
	IgnoreFileName string   // Per-directory ignore file name
	MaxWorkers     int      // Number of concurrent content readers; 0 means NumCPU
}

// withDefaults returns a copy of the config with zero values filled in.
func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.MaxSizeKB <= 0 {
		c.MaxSizeKB = DefaultMaxSizeKB
	}
	if c.Output == "" {
		c.Output = DefaultOutputFile
	}
	if c.IgnoreFileName == "" {
		c.IgnoreFileName = DefaultIgnoreFileName
	}
	return c
}

// resolveRoot resolves and validates the root directory.
func resolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotDirectory, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return absRoot, nil
}

// outputRelPath returns the output file's path relative to root when it lives
// inside the tree being walked, so a digest never ingests an earlier run.
func outputRelPath(root, output string) string {
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(root, absOutput)
	if err != nil {
		return ""
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}
