package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/jodygarnett/geoserver/internal/resource"
)

// Formatter handles text/JSON/colored output.
type Formatter struct {
	Writer    io.Writer
	ErrWriter io.Writer
	JSON      bool
	Color     bool
}

// NewFormatter creates a new output formatter.
func NewFormatter(jsonMode, colorMode bool) *Formatter {
	return &Formatter{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		JSON:      jsonMode,
		Color:     colorMode,
	}
}

// Printf prints formatted text to stdout.
func (f *Formatter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(f.Writer, format, args...)
}

// Println prints a line to stdout.
func (f *Formatter) Println(args ...interface{}) {
	fmt.Fprintln(f.Writer, args...)
}

// Errorf prints a formatted error message to stderr.
func (f *Formatter) Errorf(format string, args ...interface{}) {
	if f.Color {
		color.New(color.FgRed).Fprintf(f.ErrWriter, format, args...)
	} else {
		fmt.Fprintf(f.ErrWriter, format, args...)
	}
}

// PrintJSON outputs a value as JSON.
func (f *Formatter) PrintJSON(v interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatEntryName formats an entry name based on its resource type.
func (f *Formatter) FormatEntryName(name string, t resource.Type) string {
	if f.Color && t == resource.Directory {
		return color.New(color.FgBlue, color.Bold).Sprint(name)
	}
	return name
}

// FormatTime formats a modification time for display.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan _2 15:04")
}

// --- ls output ---

// PrintLs prints a directory listing. Entries arrive sorted by name.
func (f *Formatter) PrintLs(entries []resource.Resource, long, showAll bool) {
	if f.JSON {
		var result []map[string]interface{}
		for _, e := range entries {
			if !showAll && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			result = append(result, map[string]interface{}{
				"name":  e.Name(),
				"type":  e.Type().String(),
				"mtime": e.LastModified().Unix(),
			})
		}
		f.PrintJSON(result)
		return
	}

	for _, e := range entries {
		if !showAll && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := f.FormatEntryName(e.Name(), e.Type())
		if long {
			marker := "-"
			if e.Type() == resource.Directory {
				marker = "d"
			}
			fmt.Fprintf(f.Writer, "%s %s %s\n", marker, FormatTime(e.LastModified()), name)
		} else {
			fmt.Fprintln(f.Writer, name)
		}
	}
}

// --- stat output ---

// PrintStat prints resource metadata.
func (f *Formatter) PrintStat(res resource.Resource) {
	if f.JSON {
		f.PrintJSON(map[string]interface{}{
			"path":  res.Path(),
			"name":  res.Name(),
			"type":  res.Type().String(),
			"mtime": res.LastModified().Unix(),
		})
		return
	}
	fmt.Fprintf(f.Writer, "  Path: /%s\n", res.Path())
	fmt.Fprintf(f.Writer, "  Type: %s\n", res.Type())
	fmt.Fprintf(f.Writer, " MTime: %s\n", FormatTime(res.LastModified()))
}

// --- notification output ---

// PrintNotification prints a change notification delivered to a watch.
func (f *Formatter) PrintNotification(watched string, delta []string) {
	label := "changed"
	if f.Color {
		label = color.New(color.FgYellow, color.Bold).Sprint(label)
	}
	fmt.Fprintf(f.Writer, "%s /%s: %s\n", label, watched, strings.Join(delta, ", "))
}
