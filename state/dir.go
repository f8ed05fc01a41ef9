package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir keeps one .bin file per key in a directory
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("NewDir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Put(_ context.Context, k Key, v []float64) error {
	if err := os.WriteFile(filepath.Join(d.root, k.String()), encode(v), 0o644); err != nil {
		return fmt.Errorf("Dir.Put %s: %w", k, err)
	}
	return nil
}

func (d *Dir) Get(_ context.Context, k Key) ([]float64, error) {
	b, err := os.ReadFile(filepath.Join(d.root, k.String()))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("Dir.Get %s: %w", k, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("Dir.Get %s: %w", k, err)
	}
	return decode(b)
}

func (d *Dir) Close() error { return nil }
