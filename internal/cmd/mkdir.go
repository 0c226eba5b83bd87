package cmd

import (
	"fmt"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleMkdir(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("mkdir: missing operand")
	}

	for _, arg := range args {
		path, err := r.ResolveNewPath(arg)
		if err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		res := r.Store.Get(path)
		if res.Type() != resource.Undefined {
			return fmt.Errorf("mkdir: cannot create directory '/%s': File exists", res.Path())
		}
		if _, err := res.Dir(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) handleRmdir(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("rmdir: missing operand")
	}

	for _, arg := range args {
		res := r.Store.Get(r.ResolvePath(arg))
		if res.Type() != resource.Directory {
			return fmt.Errorf("rmdir: failed to remove '/%s': Not a directory", res.Path())
		}
		if len(res.List()) > 0 {
			return fmt.Errorf("rmdir: failed to remove '/%s': Directory not empty", res.Path())
		}
		if !r.Store.Remove(res.Path()) {
			return fmt.Errorf("rmdir: failed to remove '/%s'", res.Path())
		}
	}
	return nil
}
