package cmd

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleLs(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	long := fs.BoolP("long", "l", false, "Long listing format")
	all := fs.BoolP("all", "a", false, "Show hidden entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	res := r.Store.Get(r.ResolvePath(path))

	switch res.Type() {
	case resource.Undefined:
		return fmt.Errorf("ls: cannot access '/%s': No such file or directory", res.Path())
	case resource.File:
		r.Formatter.PrintLs([]resource.Resource{res}, *long, *all)
	default:
		r.Formatter.PrintLs(res.List(), *long, *all)
	}
	return nil
}
