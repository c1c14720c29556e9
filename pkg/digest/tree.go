package digest

import (
	"fmt"
	"sort"
	"strings"
)

// treeNode is one name in the rendered hierarchy; files are leaves.
type treeNode struct {
	children map[string]*treeNode
}

// renderTree renders the accepted file paths as a box-drawing tree rooted at
// the root directory's base name. Directories appear because their files do:
// a pruned subtree contributes nothing, a path-only file still shapes the
// structure.
func renderTree(rootName string, paths []string) string {
	root := &treeNode{children: map[string]*treeNode{}}

	for _, p := range paths {
		node := root
		for _, part := range strings.Split(p, "/") {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "└── %s/\n", rootName)
	renderSubtree(root, "    ", &b)
	return b.String()
}

// renderSubtree writes one node's children in sorted order with connectors.
func renderSubtree(node *treeNode, prefix string, b *strings.Builder) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, name)

		child := node.children[name]
		if len(child.children) > 0 {
			renderSubtree(child, prefix+extension, b)
		}
	}
}
