package cmd

import (
	"fmt"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleStat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("stat: missing operand")
	}

	for _, arg := range args {
		res := r.Store.Get(r.ResolvePath(arg))
		if res.Type() == resource.Undefined {
			return fmt.Errorf("stat: cannot stat '/%s': No such file or directory", res.Path())
		}
		r.Formatter.PrintStat(res)
	}
	return nil
}
