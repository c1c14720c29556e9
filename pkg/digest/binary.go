package digest

import (
	"bytes"
	"path/filepath"
	"strings"
)

// binarySniffLen is how much of a file's prefix the binary heuristic looks at.
const binarySniffLen = 512

// looksBinary reports whether a content prefix looks like binary data:
// a null byte, or more than 30% non-printable characters.
func looksBinary(prefix []byte) bool {
	if len(prefix) > binarySniffLen {
		prefix = prefix[:binarySniffLen]
	}
	if len(prefix) == 0 {
		return false // Empty files are considered text
	}

	if bytes.IndexByte(prefix, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range prefix {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(prefix)) > 0.3
}

// isPrintable checks if a byte represents a printable ASCII character.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}

// hasContentExcludedExtension checks if the file has a known binary or asset
// extension whose content is never embedded.
func hasContentExcludedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return contentExcludedExtensions[ext]
}
