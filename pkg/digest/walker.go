package digest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DigestEntry is one accepted file produced by the walk. Directories shape
// the tree but never produce entries themselves.
type DigestEntry struct {
	Path    string  // canonical slash-separated path relative to the root
	Verdict Verdict // VerdictPathOnly or VerdictPathAndContent
	Size    int64   // byte length from stat; 0 when stat failed
	Marker  string  // non-empty when the entry's content could not be accessed
}

// Walker performs a deterministic depth-first traversal of the root,
// consulting a RuleSet at every node and layering ignore files as it
// descends.
type Walker struct {
	root       string
	ignoreName string
	logger     *zap.Logger
}

// NewWalker creates a walker over an absolute root directory.
func NewWalker(root, ignoreName string, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ignoreName == "" {
		ignoreName = DefaultIgnoreFileName
	}
	return &Walker{root: root, ignoreName: ignoreName, logger: logger}
}

// Walk traverses the tree and returns entries for every accepted file,
// children in sorted-by-name order, depth-first. Per-entry failures are
// recovered; the returned slice is identical across runs on an unmodified
// tree.
func (w *Walker) Walk(rs *RuleSet) []DigestEntry {
	var entries []DigestEntry
	w.walkDir(w.root, "", rs, &entries)
	return entries
}

// walkDir visits one directory. The extended rule set is a local value, so
// rules from this directory's ignore file vanish when the subtree is done.
func (w *Walker) walkDir(dir, rel string, rs *RuleSet, out *[]DigestEntry) {
	if rules := loadIgnoreRules(filepath.Join(dir, w.ignoreName), rel, w.logger); len(rules) > 0 {
		rs = rs.Extend(rules)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Failed to read directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	// os.ReadDir returns entries sorted by name, which fixes sibling order
	// independently of the filesystem's listing order.
	for _, de := range dirEntries {
		// The ignore file drives selection; it is not itself part of the digest.
		if de.Name() == w.ignoreName {
			continue
		}

		childRel := joinRel(rel, de.Name())
		childAbs := filepath.Join(dir, de.Name())

		switch {
		case de.IsDir():
			if rs.Resolve(childRel, true) == VerdictSkip {
				w.logger.Debug("Pruning directory", zap.String("path", childRel))
				continue
			}
			w.walkDir(childAbs, childRel, rs, out)

		case de.Type()&fs.ModeSymlink != 0:
			w.walkSymlink(childAbs, childRel, rs, out)

		default:
			w.walkFile(de, childRel, rs, out)
		}
	}
}

// walkFile emits the entry for one regular file.
func (w *Walker) walkFile(de fs.DirEntry, rel string, rs *RuleSet, out *[]DigestEntry) {
	verdict := rs.Resolve(rel, false)
	if verdict == VerdictSkip {
		return
	}

	info, err := de.Info()
	if err != nil {
		// Raced deletion or permission loss between listing and stat: keep
		// the path, drop the content.
		w.logger.Warn("Failed to stat file", zap.String("path", rel), zap.Error(err))
		*out = append(*out, DigestEntry{
			Path:    rel,
			Verdict: VerdictPathOnly,
			Marker:  readFailureMarker(err),
		})
		return
	}

	*out = append(*out, DigestEntry{Path: rel, Verdict: verdict, Size: info.Size()})
}

// walkSymlink handles one symbolic link. Links to files are read through;
// links to directories are never followed, which prevents traversal loops
// and escapes outside the root.
func (w *Walker) walkSymlink(abs, rel string, rs *RuleSet, out *[]DigestEntry) {
	verdict := rs.Resolve(rel, false)
	if verdict == VerdictSkip {
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		w.logger.Warn("Broken symlink", zap.String("path", rel), zap.Error(err))
		*out = append(*out, DigestEntry{
			Path:    rel,
			Verdict: VerdictPathOnly,
			Marker:  readFailureMarker(err),
		})
		return
	}

	if info.IsDir() {
		w.logger.Debug("Not following directory symlink", zap.String("path", rel))
		return
	}

	*out = append(*out, DigestEntry{Path: rel, Verdict: verdict, Size: info.Size()})
}

// joinRel joins a parent-relative path with a child name using the
// canonical separator.
func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// readFailureMarker formats the marker recorded on entries whose content
// could not be accessed.
func readFailureMarker(err error) string {
	return fmt.Sprintf("[Could not read file: %v]", err)
}
