package output

import (
	"fmt"
	"io"

	"github.com/jodygarnett/geoserver/internal/resource"
)

// TreeNode is one node of a rendered tree listing.
type TreeNode struct {
	Name     string
	Type     resource.Type
	Children []TreeNode
}

// PrintTree renders a tree with Unicode box-drawing characters.
func (f *Formatter) PrintTree(root *TreeNode, dirCount, fileCount int) {
	if f.JSON {
		f.PrintJSON(treeToJSON(root))
		return
	}

	fmt.Fprintln(f.Writer, f.FormatEntryName(root.Name, root.Type))
	printTreeChildren(f.Writer, f, root.Children, "")
	fmt.Fprintf(f.Writer, "\n%d directories, %d files\n", dirCount, fileCount)
}

func printTreeChildren(w io.Writer, f *Formatter, children []TreeNode, prefix string) {
	for i, child := range children {
		connector, childPrefix := "├── ", "│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", "    "
		}

		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, f.FormatEntryName(child.Name, child.Type))

		if child.Type == resource.Directory && len(child.Children) > 0 {
			printTreeChildren(w, f, child.Children, prefix+childPrefix)
		}
	}
}

func treeToJSON(node *TreeNode) interface{} {
	result := map[string]interface{}{
		"name": node.Name,
		"type": node.Type.String(),
	}
	if len(node.Children) > 0 {
		children := make([]interface{}, len(node.Children))
		for i := range node.Children {
			children[i] = treeToJSON(&node.Children[i])
		}
		result["children"] = children
	}
	return result
}
