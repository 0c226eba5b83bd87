package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Out opens file for writing through a temporary sibling. Bytes are written
// to "<name>.tmp" and the temporary file is renamed over file when the
// returned writer is closed, so a concurrent reader never observes a partial
// target and an interrupted write leaves the original untouched.
func Out(file string) (*TempWriter, error) {
	temp := file + ".tmp"
	if _, err := os.Stat(temp); err == nil {
		if err := os.Remove(temp); err != nil {
			return nil, fmt.Errorf("out: cannot clear stale temp file '%s': %w", temp, err)
		}
	}
	f, err := os.Create(temp)
	if err != nil {
		return nil, fmt.Errorf("out: %w", err)
	}
	return &TempWriter{file: f, temp: temp, target: file}, nil
}

// TempWriter stages writes in a temporary file and renames it into place on
// Close.
type TempWriter struct {
	file   *os.File
	temp   string
	target string
}

func (w *TempWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

// Close flushes the temporary file and renames it over the target. The
// target is only replaced when Close returns nil.
func (w *TempWriter) Close() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("out: %w", err)
	}
	if err := Move(w.temp, w.target); err != nil {
		return fmt.Errorf("out: %w", err)
	}
	return nil
}

// Abort discards the staged bytes without touching the target.
func (w *TempWriter) Abort() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	return os.Remove(w.temp)
}

// Move renames source to dest. Moving a file onto itself succeeds without
// touching the filesystem. On platforms where rename cannot replace an
// existing destination the destination is deleted first.
func Move(source, dest string) error {
	if source == "" {
		return fmt.Errorf("mv: source required")
	}
	if dest == "" {
		return fmt.Errorf("mv: destination required")
	}
	srcInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("mv: cannot stat '%s': No such file or directory", source)
	}

	if destInfo, err := os.Stat(dest); err == nil {
		if os.SameFile(srcInfo, destInfo) {
			return nil // same canonical location
		}
		if runtime.GOOS == "windows" {
			// Windows cannot rename over an existing file.
			if err := os.Remove(dest); err != nil {
				return fmt.Errorf("mv: cannot replace existing '%s': %w", dest, err)
			}
		}
	}

	if err := os.Rename(source, dest); err != nil {
		return fmt.Errorf("mv: cannot move '%s' to '%s': %w", source, dest, err)
	}
	return nil
}

// Delete removes a file or directory tree. Directories are emptied first,
// recursing into subdirectories. Deleting an already-absent item trivially
// succeeds. Items that cannot be deleted are logged as warnings and skipped;
// the return reports whether everything was removed.
func Delete(file string) bool {
	info, err := os.Lstat(file)
	if err != nil {
		return true // already gone
	}
	if info.IsDir() {
		if !emptyDirectory(file) {
			return false
		}
	}
	if err := os.Remove(file); err != nil {
		logger.Warn("could not delete", zap.String("file", file), zap.Error(err))
		return false
	}
	return true
}

// emptyDirectory deletes the contents of directory (but not the directory
// itself), reporting whether everything was removed.
func emptyDirectory(directory string) bool {
	entries, err := os.ReadDir(directory)
	if err != nil {
		logger.Warn("could not list", zap.String("directory", directory), zap.Error(err))
		return false
	}
	allClean := true
	for _, entry := range entries {
		child := filepath.Join(directory, entry.Name())
		if entry.IsDir() {
			allClean = Delete(child) && allClean
		} else if err := os.Remove(child); err != nil {
			logger.Warn("could not delete", zap.String("file", child), zap.Error(err))
			allClean = false
		}
	}
	return allClean
}
