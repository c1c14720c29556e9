// Package digest turns a directory tree into a single text artifact: a
// rendered tree listing plus the concatenated contents of selected files.
// Selection layers per-directory ignore files, built-in default exclusions,
// user include/exclude globs and a content size threshold with a fixed
// precedence; the result is deterministic for an unmodified tree.
package digest

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Run executes one digest pass over cfg.Root and returns the digest text.
// Only configuration problems (missing root, malformed user glob) are
// errors; every per-entry failure is recovered by downgrading that entry.
func Run(cfg Config, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	cfg = cfg.withDefaults()

	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return "", err
	}
	logger.Info("Starting digest", zap.String("root", root))

	rs, err := NewRuleSet(cfg.Include, cfg.Exclude, outputRelPath(root, cfg.Output))
	if err != nil {
		return "", fmt.Errorf("failed to compile patterns: %w", err)
	}

	entries := NewWalker(root, cfg.IgnoreFileName, logger).Walk(rs)
	logger.Info("Discovered files", zap.Int("fileCount", len(entries)))

	applyContentLimits(entries, int64(cfg.MaxSizeKB)*1024, logger)
	contents := loadContents(root, entries, cfg.MaxWorkers, logger)

	text := assemble(filepath.Base(root), entries, contents)

	logger.Info("Digest assembled",
		zap.Int("treeFiles", len(entries)),
		zap.Int("contentFiles", len(contents)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
