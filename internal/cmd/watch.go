package cmd

import (
	"fmt"
	"sort"

	"github.com/jodygarnett/geoserver/internal/output"
	"github.com/jodygarnett/geoserver/internal/resource"
)

// printListener prints each notification delivered to a watched path.
type printListener struct {
	path      string
	formatter *output.Formatter
}

func (l *printListener) Changed(n resource.Notification) {
	l.formatter.PrintNotification(l.path, n.Delta())
}

func (r *Router) handleWatch(args []string) error {
	if r.Watcher == nil {
		return fmt.Errorf("watch: not supported by this backend")
	}
	if len(args) != 1 {
		return fmt.Errorf("watch: expected a single path")
	}

	path := r.ResolvePath(args[0])
	if _, ok := r.State.watches[path]; ok {
		return fmt.Errorf("watch: already watching '/%s'", path)
	}

	listener := &printListener{path: path, formatter: r.Formatter}
	r.Watcher.AddListener(path, listener)
	r.State.watches[path] = listener
	r.Formatter.Printf("watching /%s\n", path)
	return nil
}

func (r *Router) handleUnwatch(args []string) error {
	if r.Watcher == nil {
		return fmt.Errorf("unwatch: not supported by this backend")
	}
	if len(args) != 1 {
		return fmt.Errorf("unwatch: expected a single path")
	}

	path := r.ResolvePath(args[0])
	listener, ok := r.State.watches[path]
	if !ok {
		return fmt.Errorf("unwatch: not watching '/%s'", path)
	}

	r.Watcher.RemoveListener(path, listener)
	delete(r.State.watches, path)
	return nil
}

func (r *Router) handleWatches(args []string) error {
	paths := make([]string, 0, len(r.State.watches))
	for path := range r.State.watches {
		paths = append(paths, "/"+path)
	}
	sort.Strings(paths)

	if r.Formatter.JSON {
		return r.Formatter.PrintJSON(paths)
	}
	for _, p := range paths {
		r.Formatter.Println(p)
	}
	return nil
}
