package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jodygarnett/geoserver/internal/config"
	"github.com/jodygarnett/geoserver/internal/output"
	"github.com/jodygarnett/geoserver/internal/resource"
)

// State holds the current session state.
type State struct {
	Cwd     string // store path; "" is the root
	PrevDir string

	// watches tracks the listeners registered by the watch command, keyed
	// by watched path.
	watches map[string]*printListener
}

// Router dispatches commands to the appropriate handler.
type Router struct {
	Store     resource.Store
	Watcher   *resource.FileWatcher // nil when the backend has no watcher
	Config    *config.Config
	Formatter *output.Formatter
	State     *State
	handlers  map[string]Handler
}

// Handler is a function that handles a command.
type Handler func(args []string) error

// NewRouter creates a command router with all registered handlers. watcher
// may be nil for backends without change notification.
func NewRouter(store resource.Store, watcher *resource.FileWatcher, cfg *config.Config, formatter *output.Formatter) *Router {
	r := &Router{
		Store:     store,
		Watcher:   watcher,
		Config:    cfg,
		Formatter: formatter,
		State: &State{
			watches: make(map[string]*printListener),
		},
		handlers: make(map[string]Handler),
	}
	r.registerHandlers()
	return r
}

func (r *Router) registerHandlers() {
	r.handlers["ls"] = r.handleLs
	r.handlers["pwd"] = r.handlePwd
	r.handlers["cd"] = r.handleCd
	r.handlers["mkdir"] = r.handleMkdir
	r.handlers["rmdir"] = r.handleRmdir
	r.handlers["touch"] = r.handleTouch
	r.handlers["cat"] = r.handleCat
	r.handlers["echo"] = r.handleEcho
	r.handlers["rm"] = r.handleRm
	r.handlers["cp"] = r.handleCp
	r.handlers["mv"] = r.handleMv
	r.handlers["stat"] = r.handleStat
	r.handlers["find"] = r.handleFind
	r.handlers["tree"] = r.handleTree
	r.handlers["watch"] = r.handleWatch
	r.handlers["unwatch"] = r.handleUnwatch
	r.handlers["watches"] = r.handleWatches
	r.handlers["help"] = r.handleHelp
	r.handlers["clear"] = r.handleClear
}

// Execute runs a parsed command line.
func (r *Router) Execute(line string) error {
	tokens, redirect, err := Tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	if name == "echo" && redirect != nil {
		return r.handleEchoRedirect(args, redirect)
	}
	if redirect != nil {
		return fmt.Errorf("redirect not supported for command: %s", name)
	}

	handler, ok := r.handlers[name]
	if !ok {
		return fmt.Errorf("%s: command not found (try 'help')", name)
	}
	return handler(args)
}

// IsBuiltin returns true if the command is a registered command.
func (r *Router) IsBuiltin(name string) bool {
	_, ok := r.handlers[strings.ToLower(name)]
	return ok
}

// CommandNames returns all registered command names, sorted.
func (r *Router) CommandNames() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveNewPath resolves a path argument for a write operation, rejecting
// names that are not portable across backends.
func (r *Router) ResolveNewPath(path string) (string, error) {
	return resource.Valid(r.ResolvePath(path))
}

// ResolvePath resolves a path argument against the current working
// directory into a store path.
func (r *Router) ResolvePath(path string) string {
	if path == "" {
		return r.State.Cwd
	}
	if strings.HasPrefix(path, "/") {
		return resource.Clean(path)
	}
	return resource.Join(r.State.Cwd, path)
}
