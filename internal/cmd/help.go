package cmd

import (
	"fmt"
)

var commandHelp = map[string]string{
	"ls":      "ls [path] [-l] [-a]       List directory contents",
	"pwd":     "pwd                       Print working directory",
	"cd":      "cd [path]                 Change directory (cd - for previous)",
	"mkdir":   "mkdir path                Create directory (parents included)",
	"rmdir":   "rmdir path                Remove empty directory",
	"touch":   "touch path                Create an empty file",
	"cat":     "cat path                  Display file contents",
	"echo":    "echo \"text\" > path        Write to file (> or >> for append)",
	"rm":      "rm [-r] [-f] path         Remove file or directory",
	"cp":      "cp [-r] src dst           Copy file or directory",
	"mv":      "mv src dst                Move/rename file or directory",
	"stat":    "stat path                 Display resource metadata",
	"find":    "find [path] [-name pat] [-type f|d]  Find resources",
	"tree":    "tree [path] [-L depth]    Display directory tree",
	"watch":   "watch path                Watch a path for changes",
	"unwatch": "unwatch path              Stop watching a path",
	"watches": "watches                   List watched paths",
	"help":    "help [command]            Show this help",
	"clear":   "clear                     Clear the terminal",
	"exit":    "exit / quit               Exit the REPL",
}

func (r *Router) handleHelp(args []string) error {
	if len(args) > 0 {
		cmd := args[0]
		if help, ok := commandHelp[cmd]; ok {
			fmt.Fprintln(r.Formatter.Writer, help)
		} else {
			fmt.Fprintf(r.Formatter.Writer, "No help available for '%s'\n", cmd)
		}
		return nil
	}

	fmt.Fprintln(r.Formatter.Writer, "resfs - path-addressed resource store shell")
	fmt.Fprintln(r.Formatter.Writer, "")
	fmt.Fprintln(r.Formatter.Writer, "Resource commands:")
	for _, cmd := range []string{"ls", "pwd", "cd", "mkdir", "rmdir", "touch", "cat", "echo",
		"rm", "cp", "mv", "stat", "find", "tree"} {
		fmt.Fprintf(r.Formatter.Writer, "  %s\n", commandHelp[cmd])
	}
	fmt.Fprintln(r.Formatter.Writer, "")
	fmt.Fprintln(r.Formatter.Writer, "Watch commands (file backend only):")
	for _, cmd := range []string{"watch", "unwatch", "watches"} {
		fmt.Fprintf(r.Formatter.Writer, "  %s\n", commandHelp[cmd])
	}
	fmt.Fprintln(r.Formatter.Writer, "")
	fmt.Fprintln(r.Formatter.Writer, "Other:")
	for _, cmd := range []string{"help", "clear", "exit"} {
		fmt.Fprintf(r.Formatter.Writer, "  %s\n", commandHelp[cmd])
	}
	return nil
}
