package cmd

import (
	"fmt"

	"github.com/jodygarnett/geoserver/internal/resource"
)

func (r *Router) handleFind(args []string) error {
	// find uses POSIX-style -name and -type flags (single dash, not pflag-compatible)
	// Parse manually.
	path := "."
	namePattern := ""
	typeFilter := ""

	i := 0
	for i < len(args) {
		switch args[i] {
		case "-name":
			i++
			if i >= len(args) {
				return fmt.Errorf("find: -name requires an argument")
			}
			namePattern = args[i]
		case "-type":
			i++
			if i >= len(args) {
				return fmt.Errorf("find: -type requires an argument")
			}
			typeFilter = args[i]
		default:
			if args[i][0] != '-' && path == "." {
				path = args[i]
			} else {
				return fmt.Errorf("find: unknown option: %s", args[i])
			}
		}
		i++
	}

	root := r.Store.Get(r.ResolvePath(path))
	if root.Type() == resource.Undefined {
		return fmt.Errorf("find: '/%s': No such file or directory", root.Path())
	}

	var matches []string
	findWalk(root, namePattern, typeFilter, &matches)

	if r.Formatter.JSON {
		return r.Formatter.PrintJSON(matches)
	}
	for _, m := range matches {
		r.Formatter.Println(m)
	}
	return nil
}

func findWalk(res resource.Resource, namePattern, typeFilter string, matches *[]string) {
	if matchesFind(res, namePattern, typeFilter) {
		*matches = append(*matches, "/"+res.Path())
	}
	if res.Type() == resource.Directory {
		for _, child := range res.List() {
			findWalk(child, namePattern, typeFilter, matches)
		}
	}
}

func matchesFind(res resource.Resource, namePattern, typeFilter string) bool {
	switch typeFilter {
	case "f":
		if res.Type() != resource.File {
			return false
		}
	case "d":
		if res.Type() != resource.Directory {
			return false
		}
	}
	if namePattern != "" && !globMatch(namePattern, res.Name()) {
		return false
	}
	return true
}

// globMatch performs simple glob matching (supports *, ?).
func globMatch(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	px, nx := 0, 0
	starPx, starNx := -1, -1
	for nx < len(name) {
		if px < len(pattern) && (pattern[px] == '?' || pattern[px] == name[nx]) {
			px++
			nx++
		} else if px < len(pattern) && pattern[px] == '*' {
			starPx = px
			starNx = nx
			px++
		} else if starPx >= 0 {
			px = starPx + 1
			starNx++
			nx = starNx
		} else {
			return false
		}
	}
	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}
