package cmd

import (
	"fmt"
	"io"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleCat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("cat: missing file operand")
	}

	for _, arg := range args {
		res := r.Store.Get(r.ResolvePath(arg))
		switch res.Type() {
		case resource.Directory:
			return fmt.Errorf("cat: /%s: Is a directory", res.Path())
		case resource.Undefined:
			return fmt.Errorf("cat: /%s: No such file or directory", res.Path())
		}
		in, err := res.In()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(in)
		in.Close()
		if err != nil {
			return fmt.Errorf("cat: /%s: %w", res.Path(), err)
		}
		r.Formatter.Printf("%s", content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			r.Formatter.Println()
		}
	}
	return nil
}
