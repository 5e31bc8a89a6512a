package mocks

import (
	"github.com/user/framecast/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by an
// in-memory map of path to size.
type FileSystem struct {
	EnsureDirFunc func(path string) error
	ExistsFunc    func(path string) (bool, error)
	RemoveFunc    func(path string) error
	SizeFunc      func(path string) (int64, error)

	// Files maps path to size for the default implementations.
	Files map[string]int64

	// Recorded calls for verification
	EnsuredDirs []string
	Removed     []string
}

func (m *FileSystem) EnsureDir(path string) error {
	m.EnsuredDirs = append(m.EnsuredDirs, path)
	if m.EnsureDirFunc != nil {
		return m.EnsureDirFunc(path)
	}
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	_, ok := m.Files[path]
	return ok, nil
}

func (m *FileSystem) Remove(path string) error {
	m.Removed = append(m.Removed, path)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	delete(m.Files, path)
	return nil
}

func (m *FileSystem) Size(path string) (int64, error) {
	if m.SizeFunc != nil {
		return m.SizeFunc(path)
	}
	return m.Files[path], nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
