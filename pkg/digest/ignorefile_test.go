package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseIgnoreRules(t *testing.T) {
	input := `
# comment line
*.tmp

!keep.tmp
build/
\#literal
\!literal

`
	rules, err := parseIgnoreRules(strings.NewReader(input), "", "test", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rules, 5)

	assert.Equal(t, "*.tmp", rules[0].pat.String())
	assert.False(t, rules[0].negate)

	assert.Equal(t, "keep.tmp", rules[1].pat.String())
	assert.True(t, rules[1].negate)

	assert.Equal(t, "build/", rules[2].pat.String())
	assert.True(t, rules[2].pat.dirOnly)

	// Escaped leading tokens become literal pattern characters.
	assert.Equal(t, "#literal", rules[3].pat.String())
	assert.False(t, rules[3].negate)
	assert.Equal(t, "!literal", rules[4].pat.String())
	assert.False(t, rules[4].negate)
}

func TestParseIgnoreRulesAnchoring(t *testing.T) {
	rules, err := parseIgnoreRules(strings.NewReader("*.log\n"), "a/b", "test", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rules, 1)

	assert.Equal(t, "a/b", rules[0].anchor)
	assert.Equal(t, 2, rules[0].depth)
}

func TestParseIgnoreRulesSkipsMalformedLines(t *testing.T) {
	rules, err := parseIgnoreRules(strings.NewReader("[oops\n*.tmp\n"), "", "test", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "*.tmp", rules[0].pat.String())
}

func TestTrimTrailingSpaces(t *testing.T) {
	assert.Equal(t, "abc", trimTrailingSpaces("abc   "))
	assert.Equal(t, "abc ", trimTrailingSpaces(`abc\ `))
	assert.Equal(t, "", trimTrailingSpaces("   "))
	assert.Equal(t, "a\tb", trimTrailingSpaces("a\tb\t"))
}
