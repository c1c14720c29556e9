package digest

import (
	"fmt"
	"regexp"
	"strings"
)

// patternKind distinguishes the two anchor conventions of glob patterns.
type patternKind uint8

const (
	// kindBasename patterns contain no separator and match the final path
	// component at any depth.
	kindBasename patternKind = iota
	// kindPath patterns contain a separator (or a leading "/") and match the
	// full path relative to the pattern's anchor directory.
	kindPath
)

// Pattern is one compiled glob pattern. Matching is case-sensitive and total:
// all syntax errors are rejected at compile time.
type Pattern struct {
	source  string
	re      *regexp.Regexp
	kind    patternKind
	dirOnly bool
}

// CompilePattern compiles a shell-glob pattern: "*" matches within one path
// component, "**" crosses separators, "?" matches one character, "[...]"
// classes are supported and a trailing "/" restricts the match to directories
// (and everything beneath them).
func CompilePattern(src string) (*Pattern, error) {
	body := strings.TrimSpace(src)
	if body == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}

	p := &Pattern{source: src}

	if strings.HasSuffix(body, "/") {
		p.dirOnly = true
		body = strings.TrimSuffix(body, "/")
	}

	anchored := strings.HasPrefix(body, "/")
	body = strings.TrimPrefix(body, "/")
	if body == "" {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, src)
	}

	p.kind = kindBasename
	if anchored || strings.Contains(body, "/") {
		p.kind = kindPath
	}

	regexBody, err := globToRegex(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, src, err)
	}

	prefix := `^(?:.*/)?`
	if p.kind == kindPath {
		prefix = `^`
	}

	// Non-directory patterns still match descendants of a matching directory,
	// mirroring how ignore tooling treats a name that happens to be a directory.
	suffix := `(?:/.*)?$`
	if p.dirOnly {
		suffix = `/(?:.*)?$`
	}

	re, err := regexp.Compile(prefix + regexBody + suffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, src, err)
	}
	p.re = re

	return p, nil
}

// Matches reports whether the compiled pattern matches a slash-separated
// path relative to the pattern's anchor directory.
func (p *Pattern) Matches(relPath string, isDir bool) bool {
	if relPath == "" {
		return false
	}

	candidate := relPath
	if p.dirOnly && isDir {
		candidate += "/"
	}
	return p.re.MatchString(candidate)
}

// String returns the original pattern source.
func (p *Pattern) String() string {
	return p.source
}

// globToRegex converts a glob pattern body to a regular expression body.
func globToRegex(pat string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		c := pat[i]

		if c == '*' && i+1 < len(pat) && pat[i+1] == '*' {
			if i+2 < len(pat) && pat[i+2] == '/' && (i == 0 || pat[i-1] == '/') {
				// "**/" at a component boundary matches zero or more directories.
				b.WriteString(`(?:.*/)?`)
				i += 2
				continue
			}
			b.WriteString(`.*`)
			i++
			continue
		}

		switch c {
		case '*':
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		case '[':
			next, err := appendCharClass(pat, i, &b)
			if err != nil {
				return "", err
			}
			i = next
		default:
			b.WriteString(escapeRegexByte(c))
		}
	}

	return b.String(), nil
}

// appendCharClass translates a glob character class ("[...]", with "[!...]"
// negation) into a regex class and returns the index of the closing bracket.
func appendCharClass(pat string, start int, b *strings.Builder) (int, error) {
	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, fmt.Errorf("unterminated character class at offset %d", start)
	}

	b.WriteByte('[')

	idx := start + 1
	if idx < end && pat[idx] == '!' {
		b.WriteByte('^')
		idx++
	} else if idx < end && pat[idx] == '^' {
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		// Leading ']' is a literal member of the class.
		b.WriteString(`\]`)
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}
		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end, nil
}

// findCharClassEnd locates the closing bracket of a character class.
func findCharClassEnd(pat string, start int) int {
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}
	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}
	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}
	return -1
}

// escapeRegexByte escapes one byte for use in a regexp source.
func escapeRegexByte(c byte) string {
	switch c {
	case '.', '+', '(', ')', '|', '^', '$', '{', '}', ']', '\\':
		return `\` + string(c)
	default:
		return string(c)
	}
}
