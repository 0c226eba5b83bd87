package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleEcho(args []string) error {
	// Without a redirect, just print.
	r.Formatter.Println(strings.Join(args, " "))
	return nil
}

func (r *Router) handleEchoRedirect(args []string, redirect *Redirect) error {
	content := strings.Join(args, " ") + "\n"
	path, err := r.ResolveNewPath(redirect.Path)
	if err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	res := r.Store.Get(path)

	if redirect.Append {
		// The write stream truncates, so append reads the current
		// content first.
		if res.Type() == resource.File {
			in, err := res.In()
			if err != nil {
				return err
			}
			existing, err := io.ReadAll(in)
			in.Close()
			if err != nil {
				return fmt.Errorf("echo: /%s: %w", res.Path(), err)
			}
			content = string(existing) + content
		}
	}

	w, err := res.Out()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		w.Close()
		return fmt.Errorf("echo: /%s: %w", res.Path(), err)
	}
	return w.Close()
}
