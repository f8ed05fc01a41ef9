package watergap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructure(t *testing.T) {
	s, err := NewStructure([]int{2, 2, 3, -1, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Nc)
	assert.Equal(t, []int{1, 1, 2, 3, 1}, s.Step)
	assert.Equal(t, [][]int{{0, 1, 4}, {2}, {3}}, s.Order)
	assert.Equal(t, []int{3}, s.Outlets())
	assert.Equal(t, []int{0, 1}, s.Upstream()[2])
	assert.Equal(t, []int{2, 4}, s.Upstream()[3])
}

func TestNewStructureDeepestUpstream(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 and 4 -> 3
	s, err := NewStructure([]int{1, 2, 3, -1, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 1}, s.Step)
	for i, d := range s.Ds {
		if d >= 0 {
			assert.Less(t, s.Step[i], s.Step[d])
		}
	}
}

func TestNewStructureErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		_, err := NewStructure([]int{1, 2, 0, -1}, nil)
		assert.True(t, errors.Is(err, ErrCyclicTopology))
	})
	t.Run("self loop", func(t *testing.T) {
		_, err := NewStructure([]int{0}, nil)
		assert.True(t, errors.Is(err, ErrCyclicTopology))
	})
	t.Run("out of range", func(t *testing.T) {
		_, err := NewStructure([]int{-1, 5}, nil)
		assert.Error(t, err)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := NewStructure(nil, nil)
		assert.Error(t, err)
	})
}

func TestNewStructureGivenSteps(t *testing.T) {
	ds := []int{2, 2, 3, -1, 3}
	s, err := NewStructure(ds, []int{1, 1, 2, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2, 4}, nil, {3}}, s.Order)

	_, err = NewStructure(ds, []int{1, 2, 2, 3, 1})
	assert.Error(t, err)
	_, err = NewStructure(ds, []int{1, 1, 2})
	assert.Error(t, err)
	_, err = NewStructure(ds, []int{0, 1, 2, 3, 1})
	assert.Error(t, err)
}

func TestStructureGob(t *testing.T) {
	s, err := NewStructure([]int{1, -1, 1}, nil)
	require.NoError(t, err)
	fp := filepath.Join(t.TempDir(), "structure.gob")
	require.NoError(t, s.SaveGob(fp))

	got, err := LoadGobStructure(fp)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
