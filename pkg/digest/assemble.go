package digest

import (
	"fmt"
	"strings"
)

// sectionRuler delimits per-file content sections in the digest.
var sectionRuler = strings.Repeat("=", 60)

// assemble produces the final digest text: the tree section followed by one
// delimited content section per entry with embedded content, in walk order.
// Entries downgraded by a read failure still get a section holding their
// failure marker.
func assemble(rootName string, entries []DigestEntry, contents map[string]string) string {
	paths := make([]string, 0, len(entries))
	for i := range entries {
		paths = append(paths, entries[i].Path)
	}

	var b strings.Builder
	b.WriteString("Directory structure:\n")
	b.WriteString(renderTree(rootName, paths))
	b.WriteString("\n\n\nFiles Content:\n\n")

	for i := range entries {
		// A read-failed entry lost its content but keeps its section: the
		// marker renders where the content would have been.
		var body string
		switch {
		case entries[i].Verdict == VerdictPathAndContent:
			body = contents[entries[i].Path]
		case entries[i].Marker != "":
			body = entries[i].Marker
		default:
			continue
		}

		b.WriteString(sectionRuler)
		b.WriteByte('\n')
		fmt.Fprintf(&b, "FILE: %s\n", entries[i].Path)
		b.WriteString(sectionRuler)
		b.WriteByte('\n')
		b.WriteString(body)
		b.WriteString("\n\n\n")
	}

	return b.String()
}
