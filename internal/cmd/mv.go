package cmd

import (
	"fmt"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleMv(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("mv: expected source and destination")
	}

	srcPath := r.ResolvePath(args[0])
	dstPath := r.ResolvePath(args[1])

	src := r.Store.Get(srcPath)
	if src.Type() == resource.Undefined {
		return fmt.Errorf("mv: cannot stat '/%s': No such file or directory", srcPath)
	}

	// mv file dir/ moves the file inside the directory.
	if dst := r.Store.Get(dstPath); dst.Type() == resource.Directory {
		dstPath = resource.Join(dstPath, src.Name())
	}

	if err := r.Store.Move(srcPath, dstPath); err != nil {
		return fmt.Errorf("mv: cannot move '/%s' to '/%s': %w", srcPath, dstPath, err)
	}
	return nil
}
