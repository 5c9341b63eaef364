// Package filesystem provides the storage ports used by the file manager.
//
// This package is organized into two capabilities:
//   - Filesystem: enumeration, existence/type checks, path joining, directory creation
//   - Transfer: copy, move and delete primitives for files and directory trees
//
// Local implements both against the host operating system. Paths handed to
// Local are used as-is; sandboxing and validation belong to the caller.
//
// Errors:
//   - ErrNotFound: the path does not exist
//   - ErrNotADirectory: a directory was expected
//
// Example Usage:
//
//	local := filesystem.NewLocal()
//	names, err := local.ListDirectory(ctx, "/srv/files")
//	err = local.CopyDirectory(ctx, "/srv/files/docs", "/srv/backup/docs")
package filesystem
