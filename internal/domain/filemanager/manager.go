package filemanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// ErrNoDirectory is returned when an operation needs a loaded directory
var ErrNoDirectory = errors.New("no directory loaded")

// Batch operation names reported in EntryError
const (
	OpCopy   = "copy"
	OpMove   = "move"
	OpDelete = "delete"
)

// EntryError records the failure of one entry within a batch
type EntryError struct {
	Name string
	Op   string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Result describes the outcome of a batch operation
type Result struct {
	Destination string
	Processed   []string
	Failures    []*EntryError
}

// Failed reports whether any entry failed
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins the per-entry failures, or returns nil
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, failure := range r.Failures {
		errs[i] = failure
	}
	return errors.Join(errs...)
}

// Manager is the selection-and-transfer engine for one session
type Manager struct {
	fs    filesystem.Filesystem
	ops   filesystem.Transfer
	names *NameGenerator
	*Selection
}

// NewManager creates a manager over the given ports
func NewManager(fs filesystem.Filesystem, ops filesystem.Transfer, random RandomSource) *Manager {
	return &Manager{
		fs:        fs,
		ops:       ops,
		names:     NewNameGenerator(fs, random),
		Selection: NewSelection(fs),
	}
}

// NewDefaultManager creates a manager backed by the local filesystem
func NewDefaultManager() *Manager {
	local := filesystem.NewLocal()
	return NewManager(local, local, MathRandom{})
}

// CopySelection copies every selected entry into destination, or into a
// generated directory next to the current one when destination is empty.
// Entries and selection are left unchanged.
func (m *Manager) CopySelection(ctx context.Context, destination string) (*Result, error) {
	dest, err := m.prepareDestination(ctx, destination)
	if err != nil {
		return nil, err
	}

	result := &Result{Destination: dest}
	for _, name := range m.Selected() {
		source := m.fs.JoinPath(m.directory, name)
		target := m.fs.JoinPath(dest, name)

		if m.fs.IsDirectory(ctx, source) {
			err = m.ops.CopyDirectory(ctx, source, target)
		} else {
			err = m.ops.CopyFile(ctx, source, target)
		}
		result.record(OpCopy, name, err)
	}

	return result, nil
}

// MoveSelection moves every selected entry into destination (generated when
// empty). Moved entries leave the entry list and the selection is cleared.
func (m *Manager) MoveSelection(ctx context.Context, destination string) (*Result, error) {
	dest, err := m.prepareDestination(ctx, destination)
	if err != nil {
		return nil, err
	}

	result := &Result{Destination: dest}
	for _, name := range m.Selected() {
		source := m.fs.JoinPath(m.directory, name)
		target := m.fs.JoinPath(dest, name)
		result.record(OpMove, name, m.ops.Move(ctx, source, target))
	}

	m.forget(result.Processed)
	m.DeselectAll()

	return result, nil
}

// DeleteSelection deletes every selected entry. Deleted entries leave the
// entry list and the selection is cleared. An empty selection is a no-op.
func (m *Manager) DeleteSelection(ctx context.Context) (*Result, error) {
	result := &Result{}
	if m.Len() == 0 {
		return result, nil
	}

	for _, name := range m.Selected() {
		path := m.fs.JoinPath(m.directory, name)

		var err error
		if m.fs.IsDirectory(ctx, path) {
			err = m.ops.DeleteDirectory(ctx, path)
		} else {
			err = m.ops.DeleteFile(ctx, path)
		}
		result.record(OpDelete, name, err)
	}

	m.forget(result.Processed)
	m.DeselectAll()

	return result, nil
}

// prepareDestination resolves the destination and creates it when missing
func (m *Manager) prepareDestination(ctx context.Context, explicit string) (string, error) {
	if explicit == "" && !m.loaded {
		return "", ErrNoDirectory
	}

	dest := m.names.ResolveDestination(ctx, m.directory, explicit)
	if !m.fs.Exists(ctx, dest) {
		if err := m.fs.CreateDirectory(ctx, dest); err != nil {
			return "", fmt.Errorf("failed to create destination: %w", err)
		}
	}
	return dest, nil
}

func (r *Result) record(op, name string, err error) {
	if err != nil {
		r.Failures = append(r.Failures, &EntryError{Name: name, Op: op, Err: err})
		return
	}
	r.Processed = append(r.Processed, name)
}
