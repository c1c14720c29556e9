package digest

import "testing"

func TestPatternBasename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"*.tmp", "a.tmp", false, true},
		{"*.tmp", "src/deep/a.tmp", false, true},
		{"*.tmp", "a.tmpx", false, false},
		{"*.tmp", "tmp", false, false},
		{"main.x", "src/main.x", false, true},
		{"main.x", "src/main.xy", false, false},
		{"?.txt", "a.txt", false, true},
		{"?.txt", "ab.txt", false, false},
		{"[ab].txt", "a.txt", false, true},
		{"[ab].txt", "b.txt", false, true},
		{"[ab].txt", "c.txt", false, false},
		{"[!ab].txt", "c.txt", false, true},
		{"[!ab].txt", "a.txt", false, false},
		// Case-sensitive matching.
		{"README", "readme", false, false},
		{"README", "README", false, true},
		// A name that is a directory also covers its descendants.
		{"vendor", "vendor/lib/a.go", false, true},
	}

	for _, tc := range cases {
		p, err := CompilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("CompilePattern(%q): %v", tc.pattern, err)
		}
		if got := p.Matches(tc.path, tc.isDir); got != tc.want {
			t.Errorf("Matches(%q, %q, isDir=%v) = %v, want %v", tc.pattern, tc.path, tc.isDir, got, tc.want)
		}
	}
}

func TestPatternAnchoredPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"src/skip.x", "src/skip.x", false, true},
		{"src/skip.x", "deep/src/skip.x", false, false},
		{"/config.yaml", "config.yaml", false, true},
		{"/config.yaml", "sub/config.yaml", false, false},
		{"src/*.go", "src/a.go", false, true},
		{"src/*.go", "src/deep/a.go", false, false},
		{"src/**", "src/a.go", false, true},
		{"src/**", "src/deep/a.go", false, true},
		{"src/**", "src", true, false},
		{"a/**/b", "a/b", false, true},
		{"a/**/b", "a/x/b", false, true},
		{"a/**/b", "a/x/y/b", false, true},
		{"a/**/b", "a/xb", false, false},
		{"**/logs", "logs", false, true},
		{"**/logs", "deep/logs", false, true},
	}

	for _, tc := range cases {
		p, err := CompilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("CompilePattern(%q): %v", tc.pattern, err)
		}
		if got := p.Matches(tc.path, tc.isDir); got != tc.want {
			t.Errorf("Matches(%q, %q, isDir=%v) = %v, want %v", tc.pattern, tc.path, tc.isDir, got, tc.want)
		}
	}
}

func TestPatternDirOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"node_modules/", "node_modules", true, true},
		{"node_modules/", "node_modules", false, false},
		{"node_modules/", "a/node_modules", true, true},
		{"node_modules/", "node_modules/pkg/index.x", false, true},
		{"build/", "build.log", false, false},
		{"src/out/", "src/out", true, true},
		{"src/out/", "src/out", false, false},
	}

	for _, tc := range cases {
		p, err := CompilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("CompilePattern(%q): %v", tc.pattern, err)
		}
		if got := p.Matches(tc.path, tc.isDir); got != tc.want {
			t.Errorf("Matches(%q, %q, isDir=%v) = %v, want %v", tc.pattern, tc.path, tc.isDir, got, tc.want)
		}
	}
}

func TestPatternMalformed(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"", "   ", "/", "[abc", "src/[0-9"} {
		if _, err := CompilePattern(pattern); err == nil {
			t.Errorf("CompilePattern(%q) must fail", pattern)
		}
	}
}

func TestPatternEmptyPathNeverMatches(t *testing.T) {
	t.Parallel()

	p, err := CompilePattern("**")
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	if p.Matches("", false) || p.Matches("", true) {
		t.Fatal("empty path must never match")
	}
}
