package cmd

import (
	"fmt"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleCd(args []string) error {
	var target string
	switch {
	case len(args) == 0:
		target = ""
	case args[0] == "-":
		target = r.State.PrevDir
	default:
		target = r.ResolvePath(args[0])
	}

	res := r.Store.Get(target)
	switch res.Type() {
	case resource.Directory:
		r.State.PrevDir = r.State.Cwd
		r.State.Cwd = res.Path()
		return nil
	case resource.File:
		return fmt.Errorf("cd: /%s: Not a directory", res.Path())
	default:
		return fmt.Errorf("cd: /%s: No such file or directory", res.Path())
	}
}

func (r *Router) handlePwd(args []string) error {
	r.Formatter.Println("/" + r.State.Cwd)
	return nil
}
