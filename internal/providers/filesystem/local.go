package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// rename is swapped in tests to exercise the cross-device path
var rename = os.Rename

// Local implements Filesystem and Transfer on the host operating system
type Local struct{}

var (
	_ Filesystem = (*Local)(nil)
	_ Transfer   = (*Local)(nil)
)

// NewLocal creates an OS-backed filesystem
func NewLocal() *Local {
	return &Local{}
}

// ListDirectory lists directory entry names
func (l *Local) ListDirectory(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists checks whether path exists
func (l *Local) Exists(ctx context.Context, path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDirectory checks whether path is a directory (symlinks are followed)
func (l *Local) IsDirectory(ctx context.Context, path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// JoinPath joins path segments
func (l *Local) JoinPath(elem ...string) string {
	return filepath.Join(elem...)
}

// CreateDirectory creates a directory recursively
func (l *Local) CreateDirectory(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// Move renames source to destination, copying across devices when needed
func (l *Local) Move(ctx context.Context, source, destination string) error {
	if sameFile(source, destination) {
		return fmt.Errorf("move %s: %w", source, ErrSameFile)
	}

	err := rename(source, destination)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move %s: %w", source, err)
	}

	// Cross-device: copy then remove the original
	info, statErr := os.Lstat(source)
	if statErr != nil {
		return fmt.Errorf("move %s: %w", source, statErr)
	}
	if info.IsDir() {
		err = l.CopyDirectory(ctx, source, destination)
	} else {
		err = l.CopyFile(ctx, source, destination)
	}
	if err != nil {
		return fmt.Errorf("move %s: %w", source, err)
	}
	if err := os.RemoveAll(source); err != nil {
		return fmt.Errorf("move %s: remove source: %w", source, err)
	}
	return nil
}

// DeleteFile removes a single file
func (l *Local) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

// DeleteDirectory removes a directory tree
func (l *Local) DeleteDirectory(ctx context.Context, path string) error {
	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("delete directory %s: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete directory %s: %w", path, err)
	}
	return nil
}

// sameFile reports whether both paths exist and name the same file
func sameFile(a, b string) bool {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(aInfo, bInfo)
}
