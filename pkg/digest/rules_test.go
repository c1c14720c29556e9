package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustParseRules(t *testing.T, anchor, lines string) []ignoreRule {
	t.Helper()
	rules, err := parseIgnoreRules(strings.NewReader(lines), anchor, "test", zap.NewNop())
	require.NoError(t, err)
	return rules
}

func TestRuleSetDefaults(t *testing.T) {
	rs, err := NewRuleSet(nil, nil, "")
	require.NoError(t, err)

	assert.Equal(t, VerdictSkip, rs.Resolve("node_modules", true))
	assert.Equal(t, VerdictSkip, rs.Resolve("src/__pycache__", true))
	assert.Equal(t, VerdictSkip, rs.Resolve("yarn.lock", false))
	assert.Equal(t, VerdictSkip, rs.Resolve("deep/.DS_Store", false))
	assert.Equal(t, VerdictTraverse, rs.Resolve("src", true))
	assert.Equal(t, VerdictPathAndContent, rs.Resolve("src/main.go", false))
}

func TestRuleSetUserExclude(t *testing.T) {
	rs, err := NewRuleSet(nil, []string{"*.log", "secrets/"}, "")
	require.NoError(t, err)

	assert.Equal(t, VerdictSkip, rs.Resolve("app.log", false))
	assert.Equal(t, VerdictSkip, rs.Resolve("deep/app.log", false))
	assert.Equal(t, VerdictSkip, rs.Resolve("secrets", true))
	assert.Equal(t, VerdictPathAndContent, rs.Resolve("app.go", false))
}

func TestRuleSetIncludeExclusivity(t *testing.T) {
	rs, err := NewRuleSet([]string{"*.x"}, []string{"src/skip.x"}, "")
	require.NoError(t, err)

	// Directories are traversed so descendants can still match an include.
	assert.Equal(t, VerdictTraverse, rs.Resolve("src", true))

	assert.Equal(t, VerdictPathAndContent, rs.Resolve("src/a.x", false))
	// A file matching no include pattern never appears at all.
	assert.Equal(t, VerdictSkip, rs.Resolve("readme.md", false))
	// An explicit exclude wins over an include match.
	assert.Equal(t, VerdictSkip, rs.Resolve("src/skip.x", false))
}

func TestRuleSetIncludeOverridesDefaultsAndIgnoreFiles(t *testing.T) {
	rs, err := NewRuleSet([]string{"*.x"}, nil, "")
	require.NoError(t, err)
	rs = rs.Extend(mustParseRules(t, "", "*.x\n"))

	// Include tier outranks the ignore-file exclude for the same file.
	assert.Equal(t, VerdictPathAndContent, rs.Resolve("a.x", false))
}

func TestRuleSetIgnoreFileTier(t *testing.T) {
	base, err := NewRuleSet(nil, nil, "")
	require.NoError(t, err)

	t.Run("exclude and negate within one file", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "", "*.tmp\n!keep.tmp\n"))
		assert.Equal(t, VerdictSkip, rs.Resolve("a.tmp", false))
		assert.Equal(t, VerdictPathAndContent, rs.Resolve("keep.tmp", false))
	})

	t.Run("later line overrides earlier", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "", "!a.tmp\n*.tmp\n"))
		assert.Equal(t, VerdictSkip, rs.Resolve("a.tmp", false))
	})

	t.Run("deeper anchor overrides shallower", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "", "*.log\n"))
		rs = rs.Extend(mustParseRules(t, "sub", "!keep.log\n"))

		assert.Equal(t, VerdictSkip, rs.Resolve("root.log", false))
		assert.Equal(t, VerdictSkip, rs.Resolve("sub/other.log", false))
		assert.Equal(t, VerdictPathAndContent, rs.Resolve("sub/keep.log", false))
	})

	t.Run("anchored rules do not reach siblings", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "a", "*.log\n"))
		assert.Equal(t, VerdictSkip, rs.Resolve("a/x.log", false))
		assert.Equal(t, VerdictPathAndContent, rs.Resolve("b/x.log", false))
	})

	t.Run("negation re-includes over defaults", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "", "!yarn.lock\n"))
		assert.Equal(t, VerdictPathAndContent, rs.Resolve("yarn.lock", false))
	})

	t.Run("directory rule prunes", func(t *testing.T) {
		rs := base.Extend(mustParseRules(t, "", "generated/\n"))
		assert.Equal(t, VerdictSkip, rs.Resolve("generated", true))
	})
}

func TestRuleSetUserExcludeBeatsDeeperNegation(t *testing.T) {
	rs, err := NewRuleSet(nil, []string{"*.log"}, "")
	require.NoError(t, err)
	rs = rs.Extend(mustParseRules(t, "sub", "!keep.log\n"))

	assert.Equal(t, VerdictSkip, rs.Resolve("sub/keep.log", false))
}

func TestRuleSetExtendDoesNotMutateParent(t *testing.T) {
	parent, err := NewRuleSet(nil, nil, "")
	require.NoError(t, err)

	child := parent.Extend(mustParseRules(t, "sub", "*.log\n"))
	grandchild := child.Extend(mustParseRules(t, "sub/deep", "!keep.log\n"))

	assert.Equal(t, VerdictPathAndContent, parent.Resolve("sub/x.log", false))
	assert.Equal(t, VerdictSkip, child.Resolve("sub/x.log", false))
	assert.Equal(t, VerdictSkip, child.Resolve("sub/deep/keep.log", false))
	assert.Equal(t, VerdictPathAndContent, grandchild.Resolve("sub/deep/keep.log", false))

	// Sibling extension derived from the same parent sees none of this.
	sibling := parent.Extend(mustParseRules(t, "other", "*.txt\n"))
	assert.Equal(t, VerdictPathAndContent, sibling.Resolve("sub/x.log", false))
}

func TestRuleSetOutputSelfExclusion(t *testing.T) {
	rs, err := NewRuleSet(nil, nil, "digest.txt")
	require.NoError(t, err)

	assert.Equal(t, VerdictSkip, rs.Resolve("digest.txt", false))
	assert.Equal(t, VerdictPathAndContent, rs.Resolve("sub/digest.txt", false))
}

func TestRuleSetMalformedUserPattern(t *testing.T) {
	_, err := NewRuleSet([]string{"[oops"}, nil, "")
	require.ErrorIs(t, err, ErrInvalidPattern)

	_, err = NewRuleSet(nil, []string{"[oops"}, "")
	require.ErrorIs(t, err, ErrInvalidPattern)
}
