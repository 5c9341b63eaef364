package filesystem

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("path not found")
	ErrNotADirectory = errors.New("not a directory")
	ErrSameFile      = errors.New("source and destination are the same file")
)

// Entry types reported by Describe
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Filesystem enumerates and inspects paths
type Filesystem interface {
	// ListDirectory returns the immediate children of path, in port order.
	ListDirectory(ctx context.Context, path string) ([]string, error)
	Exists(ctx context.Context, path string) bool
	IsDirectory(ctx context.Context, path string) bool
	// JoinPath composes path segments without touching storage.
	JoinPath(elem ...string) string
	// CreateDirectory creates path and any missing parents; existing directories are not an error.
	CreateDirectory(ctx context.Context, path string) error
}

// Transfer performs single-entry copy, move and delete operations
type Transfer interface {
	CopyFile(ctx context.Context, source, destination string) error
	CopyDirectory(ctx context.Context, source, destination string) error
	Move(ctx context.Context, source, destination string) error
	DeleteFile(ctx context.Context, path string) error
	DeleteDirectory(ctx context.Context, path string) error
}

// EntryInfo represents listing metadata for a single entry
type EntryInfo struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	MimeType string    `json:"mime_type,omitempty"`
}
