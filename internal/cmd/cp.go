package cmd

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleCp(args []string) error {
	fs := flag.NewFlagSet("cp", flag.ContinueOnError)
	recursive := fs.BoolP("recursive", "r", false, "Copy directories recursively")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("cp: expected source and destination")
	}

	src := r.Store.Get(r.ResolvePath(fs.Arg(0)))
	dstPath := r.ResolvePath(fs.Arg(1))

	// cp file dir/ puts the file inside the directory.
	if dst := r.Store.Get(dstPath); dst.Type() == resource.Directory {
		dstPath = resource.Join(dstPath, src.Name())
	}

	switch src.Type() {
	case resource.Undefined:
		return fmt.Errorf("cp: cannot stat '/%s': No such file or directory", src.Path())
	case resource.Directory:
		if !*recursive {
			return fmt.Errorf("cp: -r not specified; omitting directory '/%s'", src.Path())
		}
		return r.copyTree(src, dstPath)
	default:
		return r.copyFile(src, dstPath)
	}
}

func (r *Router) copyFile(src resource.Resource, dstPath string) error {
	in, err := src.In()
	if err != nil {
		return fmt.Errorf("cp: cannot read '/%s': %w", src.Path(), err)
	}
	defer in.Close()

	out, err := r.Store.Get(dstPath).Out()
	if err != nil {
		return fmt.Errorf("cp: cannot write '/%s': %w", dstPath, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("cp: cannot write '/%s': %w", dstPath, err)
	}
	return out.Close()
}

func (r *Router) copyTree(src resource.Resource, dstPath string) error {
	if _, err := r.Store.Get(dstPath).Dir(); err != nil {
		return fmt.Errorf("cp: cannot create directory '/%s': %w", dstPath, err)
	}
	for _, child := range src.List() {
		childDst := resource.Join(dstPath, child.Name())
		if child.Type() == resource.Directory {
			if err := r.copyTree(child, childDst); err != nil {
				return err
			}
		} else if err := r.copyFile(child, childDst); err != nil {
			return err
		}
	}
	return nil
}
