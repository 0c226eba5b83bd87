package cmd

import "fmt"

func (r *Router) handleTouch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("touch: missing file operand")
	}

	for _, arg := range args {
		path, err := r.ResolveNewPath(arg)
		if err != nil {
			return fmt.Errorf("touch: %w", err)
		}
		res := r.Store.Get(path)
		if _, err := res.File(); err != nil {
			return fmt.Errorf("touch: cannot touch '/%s': %w", res.Path(), err)
		}
	}
	return nil
}
