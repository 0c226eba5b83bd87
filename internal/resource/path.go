package resource

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Store paths are relative, slash-separated and carry no leading or trailing
// slash. The empty string addresses the store root.

// Clean converts a path to its normalized store-relative form.
// It resolves ".", "..", backslashes, repeated slashes and any leading or
// trailing slash. ".." segments never escape the store root.
func Clean(p string) string {
	if p == "" {
		return ""
	}
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	// Clamp attempts to climb above the root.
	for cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, ".."), "/")
	}
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// Parent returns the path of the enclosing directory. The root is its own
// parent.
func Parent(p string) string {
	p = Clean(p)
	if p == "" {
		return ""
	}
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// Base returns the final path segment, or "" for the store root.
func Base(p string) string {
	p = Clean(p)
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// Valid normalizes p and checks every segment for characters that are not
// portable across backing stores. Write operations validate their target
// path before creating anything.
func Valid(p string) (string, error) {
	p = Clean(p)
	for _, segment := range strings.Split(p, "/") {
		if strings.ContainsAny(segment, `?%*:|"<>`) {
			return "", fmt.Errorf("invalid name '%s'", segment)
		}
	}
	return p, nil
}

// Split returns the parent path and the final segment.
func Split(p string) (string, string) {
	return Parent(p), Base(p)
}

// Join joins path segments into a normalized store path.
func Join(parts ...string) string {
	return Clean(strings.Join(parts, "/"))
}

// Resolve maps a store path to a platform file location under base.
func Resolve(base, p string) string {
	p = Clean(p)
	if p == "" {
		return filepath.Clean(base)
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

// Convert maps a platform file location under base back to a store path.
// The second return is false when file does not live under base.
func Convert(base, file string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(file))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return Clean(rel), true
}
