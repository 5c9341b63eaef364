// Package filemanager implements the selection-and-transfer engine.
//
// A Manager holds the state of one browsing session:
//   - the current directory (unset until the first successful Load)
//   - the entries enumerated for it, in the order the Filesystem returned them
//   - the selected subset of those entries
//
// Copy, move and delete act on the selection as a best-effort batch: every
// selected entry is attempted and per-entry failures are collected in the
// returned Result. When no destination is supplied, a unique directory name is
// generated next to the current directory ("{adjective}_{noun}", numbered
// after ten collisions).
//
// A Manager is not safe for concurrent use; hosts serialize access.
//
// Example Usage:
//
//	mgr := filemanager.NewDefaultManager()
//	entries, err := mgr.Load(ctx, "/srv/files")
//	mgr.Select("report.pdf")
//	res, err := mgr.CopySelection(ctx, "")
//	fmt.Println(res.Destination)
package filemanager
