// Package state persists per-cell model state between runs. Each state
// variable of a date is one blob of little-endian float64 values ordered by
// cell index, keyed <runID>_<YYYY-MM-DD>_<VAR>.bin.
package state

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no blob exists for a key
var ErrNotFound = errors.New("state not found")

// Key identifies one state variable of a run at a date
type Key struct {
	RunID string
	Date  time.Time
	Var   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s.bin", k.RunID, k.Date.Format("2006-01-02"), k.Var)
}

// Backend stores state blobs
type Backend interface {
	Put(ctx context.Context, k Key, v []float64) error
	Get(ctx context.Context, k Key) ([]float64, error)
	Close() error
}

func encode(v []float64) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(8 * len(v))
	binary.Write(buf, binary.LittleEndian, v) // writes to a bytes.Buffer do not fail
	return buf.Bytes()
}

func decode(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("decode: %d bytes is not a multiple of 8", len(b))
	}
	v := make([]float64, len(b)/8)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}
