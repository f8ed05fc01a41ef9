package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/multierr"
)

// Pebble keeps state blobs in an embedded key/value store
type Pebble struct {
	db *pebble.DB
}

func NewPebble(dir string) (*Pebble, error) {
	if dir == "" {
		dir = "state"
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Put(_ context.Context, k Key, v []float64) error {
	if err := p.db.Set([]byte(k.String()), encode(v), &pebble.WriteOptions{Sync: false}); err != nil {
		return fmt.Errorf("Pebble.Put %s: %w", k, err)
	}
	return nil
}

func (p *Pebble) Get(_ context.Context, k Key) ([]float64, error) {
	v, closer, err := p.db.Get([]byte(k.String()))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("Pebble.Get %s: %w", k, ErrNotFound)
		}
		return nil, fmt.Errorf("Pebble.Get %s: %w", k, err)
	}
	defer closer.Close()
	return decode(v)
}

func (p *Pebble) Close() error {
	return multierr.Append(p.db.Flush(), p.db.Close())
}
