package digest

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// readResult is one worker's outcome for a single entry.
type readResult struct {
	index   int
	content string
	binary  bool
	err     error
}

// applyContentLimits downgrades entries whose content is elided without
// opening the file: excluded extensions and files over the size threshold.
// The size was captured by stat during the walk, so no large read ever
// starts for content that will not be embedded.
func applyContentLimits(entries []DigestEntry, maxBytes int64, logger *zap.Logger) {
	for i := range entries {
		if entries[i].Verdict != VerdictPathAndContent {
			continue
		}

		if hasContentExcludedExtension(entries[i].Path) {
			logger.Debug("Skipping content for excluded extension", zap.String("path", entries[i].Path))
			entries[i].Verdict = VerdictPathOnly
			continue
		}

		if entries[i].Size > maxBytes {
			logger.Debug("Skipping content for large file",
				zap.String("path", entries[i].Path),
				zap.Int64("sizeBytes", entries[i].Size),
				zap.Int64("maxBytes", maxBytes))
			entries[i].Verdict = VerdictPathOnly
		}
	}
}

// loadContents reads the content of every remaining VerdictPathAndContent
// entry with a bounded worker pool. Binary-looking files and mid-read
// failures are downgraded to path-only; the returned map is keyed by entry
// path so output order stays the walker's order regardless of worker
// completion order.
func loadContents(root string, entries []DigestEntry, maxWorkers int, logger *zap.Logger) map[string]string {
	var wanted []int
	for i := range entries {
		if entries[i].Verdict == VerdictPathAndContent {
			wanted = append(wanted, i)
		}
	}

	contents := make(map[string]string, len(wanted))
	if len(wanted) == 0 {
		return contents
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(wanted) {
		maxWorkers = len(wanted)
	}

	jobs := make(chan int, len(wanted))
	results := make(chan readResult, len(wanted))
	var wg sync.WaitGroup

	logger.Debug("Initializing content readers", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- readEntry(root, entries[idx].Path, idx)
			}
		}()
	}

	for _, idx := range wanted {
		jobs <- idx
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		entry := &entries[res.index]
		switch {
		case res.err != nil:
			// Size and permission checks passed earlier; the read itself
			// failed. Keep the path, record the marker.
			logger.Warn("Failed to read file content",
				zap.String("path", entry.Path),
				zap.Error(res.err))
			entry.Verdict = VerdictPathOnly
			entry.Marker = readFailureMarker(res.err)
		case res.binary:
			logger.Debug("Skipping binary-looking content", zap.String("path", entry.Path))
			entry.Verdict = VerdictPathOnly
		default:
			contents[entry.Path] = res.content
		}
	}

	return contents
}

// readEntry reads one file and applies the binary sniff to its prefix.
func readEntry(root, rel string, index int) readResult {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return readResult{index: index, err: err}
	}
	if looksBinary(data) {
		return readResult{index: index, binary: true}
	}
	return readResult{index: index, content: strings.TrimSpace(string(data))}
}
