package filemanager

import (
	"context"
	"fmt"
	"slices"

	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
	"github.com/bmatcuk/doublestar/v4"
)

// Selection tracks the current directory's entries and the selected subset
type Selection struct {
	fs        filesystem.Filesystem
	directory string
	loaded    bool
	entries   []string
	index     map[string]struct{}
	selected  map[string]struct{}
}

// NewSelection creates an empty, unloaded selection
func NewSelection(fs filesystem.Filesystem) *Selection {
	return &Selection{
		fs:       fs,
		index:    make(map[string]struct{}),
		selected: make(map[string]struct{}),
	}
}

// Load enumerates directory, replaces the entries and clears the selection.
// On error the previous state is kept.
func (s *Selection) Load(ctx context.Context, directory string) ([]string, error) {
	names, err := s.fs.ListDirectory(ctx, directory)
	if err != nil {
		return nil, err
	}

	s.directory = directory
	s.loaded = true
	s.entries = slices.Clone(names)
	s.index = make(map[string]struct{}, len(names))
	for _, name := range names {
		s.index[name] = struct{}{}
	}
	s.selected = make(map[string]struct{})

	return slices.Clone(s.entries), nil
}

// CurrentDirectory returns the loaded directory, if any
func (s *Selection) CurrentDirectory() (string, bool) {
	return s.directory, s.loaded
}

// Entries returns a copy of the entries in enumeration order
func (s *Selection) Entries() []string {
	return slices.Clone(s.entries)
}

// Contains reports whether name is an entry of the current directory
func (s *Selection) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Select adds name if it is an entry. Selecting an already selected entry returns true.
func (s *Selection) Select(name string) bool {
	if !s.Contains(name) {
		return false
	}
	s.selected[name] = struct{}{}
	return true
}

// Deselect removes name and reports whether it was selected
func (s *Selection) Deselect(name string) bool {
	if _, ok := s.selected[name]; !ok {
		return false
	}
	delete(s.selected, name)
	return true
}

// SelectAll selects every entry
func (s *Selection) SelectAll() {
	s.selected = make(map[string]struct{}, len(s.entries))
	for _, name := range s.entries {
		s.selected[name] = struct{}{}
	}
}

// DeselectAll clears the selection
func (s *Selection) DeselectAll() {
	s.selected = make(map[string]struct{})
}

// SelectMatching selects every entry whose name matches a glob pattern and
// returns the number of matching entries
func (s *Selection) SelectMatching(pattern string) (int, error) {
	if !doublestar.ValidatePattern(pattern) {
		return 0, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}

	matched := 0
	for _, name := range s.entries {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return matched, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			s.selected[name] = struct{}{}
			matched++
		}
	}
	return matched, nil
}

// Selected returns the selected names, sorted
func (s *Selection) Selected() []string {
	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of selected entries
func (s *Selection) Len() int {
	return len(s.selected)
}

// forget drops names from both the entries and the selection
func (s *Selection) forget(names []string) {
	if len(names) == 0 {
		return
	}
	gone := make(map[string]struct{}, len(names))
	for _, name := range names {
		gone[name] = struct{}{}
		delete(s.index, name)
		delete(s.selected, name)
	}
	s.entries = slices.DeleteFunc(s.entries, func(name string) bool {
		_, ok := gone[name]
		return ok
	})
}
