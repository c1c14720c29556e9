package digest

import (
	"fmt"
	"strings"
)

// Verdict is the traversal/inclusion decision computed for a single path.
type Verdict uint8

const (
	// VerdictTraverse lets the walker descend into a directory.
	VerdictTraverse Verdict = iota
	// VerdictSkip drops the path entirely; for a directory it prunes the
	// whole subtree, so nothing beneath it is ever visited.
	VerdictSkip
	// VerdictPathOnly records the file in the tree without its content.
	VerdictPathOnly
	// VerdictPathAndContent records the file and embeds its content,
	// subject to the independent size and binary checks.
	VerdictPathAndContent
)

// String returns a short verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictTraverse:
		return "traverse"
	case VerdictSkip:
		return "skip"
	case VerdictPathOnly:
		return "path-only"
	case VerdictPathAndContent:
		return "path-and-content"
	default:
		return "unknown"
	}
}

// ignoreRule is one rule parsed from an ignore file, scoped to the subtree
// rooted at the ignore file's directory.
type ignoreRule struct {
	pat    *Pattern
	negate bool   // "!" re-include rule
	anchor string // slash-relative directory of the defining ignore file; "" at root
	depth  int    // component count of anchor; deeper anchors win
}

// RuleSet resolves a final verdict for a relative path by layering user
// include patterns, user exclude patterns, ignore-file rules and the
// built-in defaults, in that precedence order.
//
// RuleSets are immutable: the walker extends them functionally per
// directory, so rules from a nested ignore file never leak to sibling
// subtrees or back to the parent.
type RuleSet struct {
	includes  []*Pattern
	excludes  []*Pattern
	ignores   []ignoreRule // shallower anchors first, file line order preserved
	outputRel string       // digest output path to self-exclude; "" when outside root
}

// NewRuleSet compiles the user-supplied include and exclude patterns.
// A malformed pattern is a configuration error reported before traversal.
func NewRuleSet(include, exclude []string, outputRel string) (*RuleSet, error) {
	rs := &RuleSet{outputRel: outputRel}

	for _, src := range include {
		p, err := CompilePattern(src)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", src, err)
		}
		rs.includes = append(rs.includes, p)
	}

	for _, src := range exclude {
		p, err := CompilePattern(src)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", src, err)
		}
		rs.excludes = append(rs.excludes, p)
	}

	return rs, nil
}

// Extend returns a new RuleSet with the given ignore-file rules appended.
// The receiver is left untouched.
func (rs *RuleSet) Extend(rules []ignoreRule) *RuleSet {
	if len(rules) == 0 {
		return rs
	}

	next := *rs
	next.ignores = make([]ignoreRule, 0, len(rs.ignores)+len(rules))
	next.ignores = append(next.ignores, rs.ignores...)
	next.ignores = append(next.ignores, rules...)
	return &next
}

// Resolve computes the verdict for one slash-separated path relative to the
// walk root. Precedence, highest first: user includes (exclusivity for
// files), user excludes, nearest-anchor ignore-file rule, built-in defaults.
func (rs *RuleSet) Resolve(relPath string, isDir bool) Verdict {
	if relPath == "" || relPath == "." {
		return VerdictTraverse
	}

	if !isDir && rs.outputRel != "" && relPath == rs.outputRel {
		return VerdictSkip
	}

	// User excludes win over everything, including a deeper ignore file's
	// negation. This is a deliberate, documented choice.
	for _, p := range rs.excludes {
		if p.Matches(relPath, isDir) {
			return VerdictSkip
		}
	}

	// When includes are supplied, a file matching none of them is excluded
	// outright; a file matching one bypasses ignore rules and defaults.
	// Directories are not subject to include exclusivity, otherwise no
	// descendant could ever match.
	if len(rs.includes) > 0 && !isDir {
		for _, p := range rs.includes {
			if p.Matches(relPath, false) {
				return VerdictPathAndContent
			}
		}
		return VerdictSkip
	}

	if verdict, matched := rs.resolveIgnores(relPath, isDir); matched {
		return verdict
	}

	base := pathBase(relPath)
	if isDir {
		if defaultIgnoredDirs[base] {
			return VerdictSkip
		}
		return VerdictTraverse
	}
	if defaultIgnoredFiles[base] {
		return VerdictSkip
	}
	return VerdictPathAndContent
}

// resolveIgnores evaluates the ignore-file tier. The rule from the deepest
// anchor wins; within one anchor, the last matching line wins. Rules are
// stored shallowest anchor first and in line order, so a forward scan that
// overrides on depth >= current depth implements both orderings.
func (rs *RuleSet) resolveIgnores(relPath string, isDir bool) (Verdict, bool) {
	matched := false
	excluded := false
	bestDepth := -1

	for i := range rs.ignores {
		r := &rs.ignores[i]

		candidate, ok := trimAnchor(relPath, r.anchor)
		if !ok {
			continue
		}
		if !r.pat.Matches(candidate, isDir) {
			continue
		}
		if r.depth < bestDepth {
			continue
		}

		bestDepth = r.depth
		matched = true
		excluded = !r.negate
	}

	if !matched {
		return VerdictTraverse, false
	}
	if excluded {
		return VerdictSkip, true
	}
	if isDir {
		return VerdictTraverse, true
	}
	return VerdictPathAndContent, true
}

// trimAnchor rewrites relPath to be relative to an ignore rule's anchor
// directory. Rules never apply to their own anchor directory or to paths
// outside it.
func trimAnchor(relPath, anchor string) (string, bool) {
	if anchor == "" {
		return relPath, true
	}

	prefix := anchor + "/"
	if !strings.HasPrefix(relPath, prefix) {
		return "", false
	}
	return relPath[len(prefix):], true
}

// pathBase returns the final path component of a slash-separated path.
func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// anchorDepth counts the components of a slash-separated anchor directory.
func anchorDepth(anchor string) int {
	if anchor == "" {
		return 0
	}
	return strings.Count(anchor, "/") + 1
}
