package cli

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/jodygarnett/geoserver/internal/cmd"
	"github.com/jodygarnett/geoserver/internal/resource"
)

// NewCompleter creates a tab completer for the REPL.
func NewCompleter(router *cmd.Router) *Completer {
	return &Completer{router: router}
}

// Completer provides tab completion for the REPL.
type Completer struct {
	router *cmd.Router
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	parts := strings.Fields(lineStr)

	// Complete command name
	if len(parts) == 0 || (len(parts) == 1 && !strings.HasSuffix(lineStr, " ")) {
		prefix := ""
		if len(parts) == 1 {
			prefix = parts[0]
		}
		return c.completeCommand(prefix), len(prefix)
	}

	// Complete path argument
	partial := ""
	if !strings.HasSuffix(lineStr, " ") {
		partial = parts[len(parts)-1]
	}

	// Skip flag-like args
	if strings.HasPrefix(partial, "-") {
		return nil, 0
	}

	return c.completePath(partial), len(partial)
}

func (c *Completer) completeCommand(prefix string) [][]rune {
	var result [][]rune
	for _, name := range c.router.CommandNames() {
		if strings.HasPrefix(name, strings.ToLower(prefix)) {
			result = append(result, []rune(name[len(prefix):]+" "))
		}
	}
	return result
}

func (c *Completer) completePath(partial string) [][]rune {
	// Determine the directory to list and the prefix to match
	dirArg := ""
	prefix := partial
	if lastSlash := strings.LastIndex(partial, "/"); lastSlash >= 0 {
		dirArg = partial[:lastSlash+1]
		prefix = partial[lastSlash+1:]
	}

	dir := c.router.Store.Get(c.router.ResolvePath(dirArg))
	if dir.Type() != resource.Directory {
		return nil
	}

	var candidates [][]rune
	for _, child := range dir.List() {
		if strings.HasPrefix(child.Name(), prefix) {
			suffix := child.Name()[len(prefix):]
			if child.Type() == resource.Directory {
				suffix += "/"
			} else {
				suffix += " "
			}
			candidates = append(candidates, []rune(suffix))
		}
	}
	return candidates
}

// Ensure Completer satisfies the readline.AutoCompleter interface.
var _ readline.AutoCompleter = (*Completer)(nil)
