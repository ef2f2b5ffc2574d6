package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirBackend stores each key as a "<key>.json" file in a folder. Writes go
// through a temporary file renamed over the previous value.
type DirBackend struct {
	root string
}

func NewDirBackend(root string) *DirBackend { return &DirBackend{root: root} }

func (d *DirBackend) file(key string) string { return filepath.Join(d.root, key+".json") }

func (d *DirBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(d.file(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %q: %w", key, err)
	}
	return data, true, nil
}

func (d *DirBackend) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return fmt.Errorf("cannot create store folder: %w", err)
	}
	tmp, err := os.CreateTemp(d.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	_, err = tmp.Write(value)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), d.file(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

func (d *DirBackend) Delete(_ context.Context, key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete %q: %w", key, err)
	}
	return nil
}

func (d *DirBackend) Close() error { return nil }
