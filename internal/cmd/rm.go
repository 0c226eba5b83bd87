package cmd

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleRm(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	recursive := fs.BoolP("recursive", "r", false, "Remove directories and their contents")
	force := fs.BoolP("force", "f", false, "Ignore nonexistent paths")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("rm: missing operand")
	}

	for _, arg := range fs.Args() {
		path := r.ResolvePath(arg)
		res := r.Store.Get(path)

		switch res.Type() {
		case resource.Undefined:
			if *force {
				continue
			}
			return fmt.Errorf("rm: cannot remove '/%s': No such file or directory", path)
		case resource.Directory:
			if !*recursive {
				return fmt.Errorf("rm: cannot remove '/%s': Is a directory", path)
			}
		}

		if !r.Store.Remove(path) {
			return fmt.Errorf("rm: cannot remove '/%s': Operation failed", path)
		}
	}
	return nil
}
