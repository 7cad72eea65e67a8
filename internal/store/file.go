package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps each scan result in <dir>/<sid>_data.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore returns a store rooted at dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// Path returns the data file used for sid.
func (s *FileStore) Path(sid string) string {
	return filepath.Join(s.dir, safeName(sid)+"_data")
}

// Load reads the stored result for sid.
func (s *FileStore) Load(_ context.Context, sid string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.Path(sid))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", sid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path(sid), err)
	}
	return data, nil
}

// Save writes data as the stored result for sid, replacing any previous one.
func (s *FileStore) Save(_ context.Context, sid string, data []byte) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.Path(sid), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path(sid), err)
	}
	return nil
}

// safeName replaces characters not safe for file paths
func safeName(s string) string {
	invalid := []rune{'/', '\\', ':', '*', '?', '"', '<', '>', '|'}
	rs := []rune(s)
	for i, r := range rs {
		for _, bad := range invalid {
			if r == bad {
				rs[i] = '_'
			}
		}
	}
	return string(rs)
}
