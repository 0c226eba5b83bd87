package cmd

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jodygarnett/geoserver/internal/output"
	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleTree(args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	depth := fs.IntP("level", "L", 0, "Descend at most this many levels (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	root := r.Store.Get(r.ResolvePath(path))
	if root.Type() == resource.Undefined {
		return fmt.Errorf("tree: '/%s': No such file or directory", root.Path())
	}

	var dirs, files int
	node := buildTree(root, *depth, &dirs, &files)
	if root.Type() == resource.Directory {
		dirs-- // the root is not counted in the summary line
	}
	node.Name = "/" + root.Path()
	if root.Path() == "" {
		node.Name = "/"
	}

	r.Formatter.PrintTree(&node, dirs, files)
	return nil
}

func buildTree(res resource.Resource, depth int, dirs, files *int) output.TreeNode {
	node := output.TreeNode{Name: res.Name(), Type: res.Type()}
	if res.Type() != resource.Directory {
		*files++
		return node
	}

	*dirs++
	if depth == 1 {
		return node
	}
	for _, child := range res.List() {
		node.Children = append(node.Children, buildTree(child, depth-1, dirs, files))
	}
	return node
}
