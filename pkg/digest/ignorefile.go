package digest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// parseIgnoreRules parses ignore-file lines into rules anchored at the given
// directory. Syntax: one pattern per line, "#" starts a comment, blank lines
// are skipped, a leading "!" negates (re-includes), a trailing "/" restricts
// to directories, and "\#" / "\!" escape the leading tokens. A line whose
// pattern fails to compile is skipped with a warning rather than aborting
// the run; only user-supplied CLI globs are configuration errors.
func parseIgnoreRules(r io.Reader, anchor, source string, logger *zap.Logger) ([]ignoreRule, error) {
	s := bufio.NewScanner(r)
	depth := anchorDepth(anchor)
	var rules []ignoreRule
	lineNo := 0

	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")
		line = trimTrailingSpaces(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}

		negate := false
		if strings.HasPrefix(line, "!") {
			negate = true
			line = line[1:]
		} else if strings.HasPrefix(line, `\!`) {
			line = line[1:]
		}

		if line == "" {
			continue
		}

		pat, err := CompilePattern(line)
		if err != nil {
			logger.Warn("Skipping malformed ignore pattern",
				zap.String("file", source),
				zap.Int("lineNo", lineNo),
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}

		rules = append(rules, ignoreRule{
			pat:    pat,
			negate: negate,
			anchor: anchor,
			depth:  depth,
		})
	}

	if err := s.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// loadIgnoreRules reads and parses one directory's ignore file. A missing
// file is not an error; an unreadable one is recovered with a warning.
func loadIgnoreRules(path, anchor string, logger *zap.Logger) []ignoreRule {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to open ignore file", zap.String("file", path), zap.Error(err))
		}
		return nil
	}
	defer func() { _ = f.Close() }()

	rules, err := parseIgnoreRules(f, anchor, path, logger)
	if err != nil {
		logger.Warn("Failed to read ignore file", zap.String("file", path), zap.Error(err))
		return nil
	}

	if len(rules) > 0 {
		logger.Debug("Loaded ignore file",
			zap.String("file", path),
			zap.Int("ruleCount", len(rules)))
	}
	return rules
}

// trimTrailingSpaces removes trailing spaces unless the last one is escaped.
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			s = s[:len(s)-2] + s[len(s)-1:]
			break
		}
		s = s[:len(s)-1]
	}
	return s
}
