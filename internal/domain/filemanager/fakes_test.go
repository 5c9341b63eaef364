package filemanager

import (
	"context"
	"path"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// memFS is an in-memory Filesystem double
type memFS struct {
	listings  map[string][]string
	dirs      map[string]bool
	paths     map[string]bool
	created   []string
	listErr   error
	createErr error
}

func newMemFS() *memFS {
	return &memFS{
		listings: make(map[string][]string),
		dirs:     make(map[string]bool),
		paths:    make(map[string]bool),
	}
}

// addDir registers dir with the given files and subdirectories
func (f *memFS) addDir(dir string, files []string, subdirs []string) {
	f.dirs[dir] = true
	f.paths[dir] = true
	var names []string
	for _, name := range files {
		f.paths[path.Join(dir, name)] = true
		names = append(names, name)
	}
	for _, name := range subdirs {
		p := path.Join(dir, name)
		f.paths[p] = true
		f.dirs[p] = true
		names = append(names, name)
	}
	f.listings[dir] = names
}

func (f *memFS) ListDirectory(ctx context.Context, p string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names, ok := f.listings[p]
	if !ok {
		return nil, filesystem.ErrNotFound
	}
	return names, nil
}

func (f *memFS) Exists(ctx context.Context, p string) bool {
	return f.paths[p]
}

func (f *memFS) IsDirectory(ctx context.Context, p string) bool {
	return f.dirs[p]
}

func (f *memFS) JoinPath(elem ...string) string {
	return path.Join(elem...)
}

func (f *memFS) CreateDirectory(ctx context.Context, p string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	f.paths[p] = true
	f.dirs[p] = true
	return nil
}

// scriptedRandom returns values in order and records the lists it was asked to pick from
type scriptedRandom struct {
	values []string
	lists  [][]string
}

func (r *scriptedRandom) Choice(items []string) string {
	i := len(r.lists)
	r.lists = append(r.lists, items)
	return r.values[i%len(r.values)]
}

// MockTransfer is a testify mock of filesystem.Transfer
type MockTransfer struct {
	mock.Mock
}

func (m *MockTransfer) CopyFile(ctx context.Context, source, destination string) error {
	return m.Called(source, destination).Error(0)
}

func (m *MockTransfer) CopyDirectory(ctx context.Context, source, destination string) error {
	return m.Called(source, destination).Error(0)
}

func (m *MockTransfer) Move(ctx context.Context, source, destination string) error {
	return m.Called(source, destination).Error(0)
}

func (m *MockTransfer) DeleteFile(ctx context.Context, p string) error {
	return m.Called(p).Error(0)
}

func (m *MockTransfer) DeleteDirectory(ctx context.Context, p string) error {
	return m.Called(p).Error(0)
}
