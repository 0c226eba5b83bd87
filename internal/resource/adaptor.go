package resource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// AsResource adapts a single pre-existing file as a Resource.
//
// This is a shim for call sites that hold a plain file location rather than
// a store path. It adapts exactly one non-directory item: tree navigation
// (Parent, Get, Dir) is unsupported, List is empty and Lock provides no real
// mutual exclusion. Unlike store resources, Out writes the file directly
// with no temp-and-rename step.
func AsResource(file string) (Resource, error) {
	if file == "" {
		return nil, fmt.Errorf("resource adaptor: file required")
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("resource adaptor: file required: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resource adaptor: file required (not a directory)")
	}
	return &fileAdaptor{file: file}, nil
}

type fileAdaptor struct {
	file string
}

func (a *fileAdaptor) Path() string {
	return filepath.ToSlash(a.file)
}

func (a *fileAdaptor) Name() string {
	return filepath.Base(a.file)
}

func (a *fileAdaptor) Type() Type {
	if _, err := os.Stat(a.file); err != nil {
		return Undefined
	}
	return File
}

func (a *fileAdaptor) In() (io.ReadCloser, error) {
	f, err := os.Open(a.file)
	if err != nil {
		return nil, fmt.Errorf("resource adaptor: %w", err)
	}
	return f, nil
}

func (a *fileAdaptor) Out() (io.WriteCloser, error) {
	f, err := os.OpenFile(a.file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("resource adaptor: %w", err)
	}
	return f, nil
}

func (a *fileAdaptor) File() (string, error) {
	return a.file, nil
}

func (a *fileAdaptor) Dir() (string, error) {
	return "", fmt.Errorf("resource adaptor cannot be used as a directory")
}

func (a *fileAdaptor) Parent() (Resource, error) {
	return nil, fmt.Errorf("resource adaptor does not support parent()")
}

func (a *fileAdaptor) Get(string) (Resource, error) {
	return nil, fmt.Errorf("resource adaptor does not support children")
}

func (a *fileAdaptor) List() []Resource {
	return nil
}

func (a *fileAdaptor) LastModified() time.Time {
	info, err := os.Stat(a.file)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (a *fileAdaptor) Lock() Lock {
	return nopLock{}
}

func (a *fileAdaptor) String() string {
	return "ResourceAdaptor(" + a.file + ")"
}
