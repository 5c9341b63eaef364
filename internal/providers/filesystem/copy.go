package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// CopyFile copies a regular file, preserving mode and modification time.
// Copying a file onto itself fails with ErrSameFile.
func (l *Local) CopyFile(ctx context.Context, source, destination string) error {
	if err := copyFile(source, destination); err != nil {
		return fmt.Errorf("copy file %s: %w", source, err)
	}
	return nil
}

// dirMode is a destination directory and the permissions it gets once filled
type dirMode struct {
	path string
	mode fs.FileMode
}

// CopyDirectory copies a directory tree. The destination must not exist.
// Directories are created owner-writable and receive the source permissions
// after their contents are copied, deepest first.
func (l *Local) CopyDirectory(ctx context.Context, source, destination string) error {
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("copy directory %s: %w", source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy directory %s: %w", source, ErrNotADirectory)
	}
	if _, err := os.Lstat(destination); err == nil {
		return fmt.Errorf("copy directory %s: %w: %s", source, fs.ErrExist, destination)
	}
	if err := os.MkdirAll(destination, 0o700); err != nil {
		return fmt.Errorf("copy directory %s: %w", source, err)
	}

	var (
		mu   sync.Mutex
		dirs = []dirMode{{path: destination, mode: info.Mode().Perm()}}
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, source, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(destination, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0o700); err != nil {
				return err
			}
			mu.Lock()
			dirs = append(dirs, dirMode{path: target, mode: info.Mode().Perm()})
			mu.Unlock()
			return nil
		case d.Type()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			// Walk callbacks run concurrently; the parent may not be created yet
			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return err
			}
			return copyFile(path, target)
		default:
			// Devices, sockets and pipes are skipped
			return nil
		}
	})

	// Permissions are applied even after a failed walk so leftovers match the source
	if permErr := applyDirModes(dirs); err == nil {
		err = permErr
	}
	if err != nil {
		return fmt.Errorf("copy directory %s: %w", source, err)
	}
	return nil
}

func applyDirModes(dirs []dirMode) error {
	sep := string(filepath.Separator)
	slices.SortFunc(dirs, func(a, b dirMode) int {
		return strings.Count(b.path, sep) - strings.Count(a.path, sep)
	})

	var first error
	for _, dir := range dirs {
		if err := os.Chmod(dir.path, dir.mode); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func copyFile(source, destination string) error {
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", source)
	}
	// Opening the destination truncates it, so this must happen first
	if dstInfo, err := os.Stat(destination); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("%w: %s", ErrSameFile, destination)
	}

	dst, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	return os.Chtimes(destination, info.ModTime(), info.ModTime())
}
