package wateruse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain returns n cells draining 0 -> 1 -> ... -> n-1 -> outlet
func chain(n int) *Cells {
	c := &Cells{
		Ds:         make([]int, n),
		Neighbours: make([][8]int, n),
		Alloc:      make([][]float64, n),
		ResArea:    make([]float64, n),
		LakArea:    make([]float64, n),
		LocLak:     make([]float64, n),
		Capacity:   make([]float64, n),
		Dsc:        20,
	}
	for i := range c.Ds {
		c.Ds[i] = i + 1
		c.Alloc[i] = []float64{1., 1., 1., 1.}
	}
	c.Ds[n-1] = -1
	return c
}

func storages(n int) Storages {
	return Storages{
		River:     make([]float64, n),
		Reservoir: make([]float64, n),
		GloLake:   make([]float64, n),
		LocLake:   make([]float64, n),
	}
}

func TestAbstractPriority(t *testing.T) {
	c := chain(1)
	c.ResArea[0], c.Capacity[0], c.LakArea[0], c.LocLak[0] = 1., 1e-3, 1., 5.
	l := NewLedger(c, SpatialTemporal, false)
	s := storages(1)
	s.River[0], s.Reservoir[0], s.GloLake[0], s.LocLake[0] = 10., 300., 20., 30.

	rem := l.Abstract(0, 240., s)
	assert.Equal(t, 0., rem)
	assert.Equal(t, 0., s.River[0])
	assert.Equal(t, 100., s.Reservoir[0]) // 10% of 1000 mm km² kept
	assert.Equal(t, 0., s.GloLake[0])
	assert.Equal(t, 20., s.LocLake[0])
	assert.Equal(t, 240., l.Actual[0])

	rem = l.Abstract(0, 50., s)
	assert.Equal(t, 30., rem)
	assert.Equal(t, 0., s.LocLake[0])
	assert.Equal(t, 100., s.Reservoir[0])
}

func TestAbstractReturnFlow(t *testing.T) {
	l := NewLedger(chain(1), SpatialTemporal, false)
	s := storages(1)
	s.River[0] = 5.
	assert.Equal(t, 0., l.Abstract(0, -3., s))
	assert.Equal(t, 8., s.River[0])
	assert.Equal(t, -3., l.Actual[0])
}

func TestAbstractSkipsMissingBodies(t *testing.T) {
	l := NewLedger(chain(1), SpatialTemporal, false)
	s := storages(1)
	s.GloLake[0], s.LocLake[0] = 10., 10.
	assert.Equal(t, 4., l.Abstract(0, 4., s))
	assert.Equal(t, 10., s.GloLake[0])
}

func TestSubtractTemporal(t *testing.T) {
	l := NewLedger(chain(2), Temporal, false)
	s := storages(2)
	s.River[1] = 100.
	l.Subtract([]float64{10., 0.}, s)
	assert.Equal(t, 10., l.Unsatisfied[0])
	assert.Equal(t, 100., s.River[1])

	s.River[0] = 15.
	l.Subtract([]float64{10., 0.}, s)
	assert.Equal(t, 5., l.Unsatisfied[0])
	assert.Equal(t, 0., s.River[0])
}

func TestSubtractSpatialDownstream(t *testing.T) {
	l := NewLedger(chain(3), Spatial, false)
	s := storages(3)
	s.River[1], s.River[2] = 4., 100.
	l.Subtract([]float64{10., 0., 0.}, s)
	assert.Equal(t, 0., l.Unsatisfied[0])
	assert.Equal(t, 0., s.River[1])
	assert.Equal(t, 94., s.River[2])
	assert.Equal(t, 4., l.Actual[1])
	assert.Equal(t, 6., l.Actual[2])

	// carried demand is ignored with spatial-only allocation
	l.Unsatisfied[0] = 50.
	s.River[2] = 0.
	l.Subtract([]float64{1., 0., 0.}, s)
	assert.Equal(t, 1., l.Unsatisfied[0])
}

func TestSubtractLegacyRemainder(t *testing.T) {
	t.Run("remainder of the last cell replaces the own remainder", func(t *testing.T) {
		for _, tc := range []struct {
			legacy bool
			want   []float64
		}{
			{false, []float64{10., 3.}},
			{true, []float64{3., 3.}},
		} {
			l := NewLedger(chain(2), Spatial, tc.legacy)
			s := storages(2)
			s.River[1] = 5.
			l.Subtract([]float64{10., 8.}, s)
			assert.Equal(t, tc.want, l.Unsatisfied, "legacy %v", tc.legacy)
			assert.Equal(t, 0., s.River[1])
		}
	})

	t.Run("downstream water left untouched", func(t *testing.T) {
		corrected := NewLedger(chain(2), Spatial, false)
		s := storages(2)
		s.River[1] = 20.
		corrected.Subtract([]float64{10., 4.}, s)
		assert.Equal(t, []float64{0., 0.}, corrected.Unsatisfied)
		assert.Equal(t, 6., s.River[1])
		assert.Equal(t, []float64{0., 14.}, corrected.Actual)

		legacy := NewLedger(chain(2), Spatial, true)
		s = storages(2)
		s.River[1] = 20.
		legacy.Subtract([]float64{10., 4.}, s)
		assert.Equal(t, []float64{0., 0.}, legacy.Unsatisfied)
		assert.Equal(t, 16., s.River[1])
		assert.Equal(t, []float64{0., 4.}, legacy.Actual)
	})
}

func TestSubtractNeighbourFirst(t *testing.T) {
	c := chain(3)
	c.Neighbours[0] = [8]int{3, 0, 0, 0, 0, 0, 0, 0}
	l := NewLedger(c, SpatialTemporal, false)
	s := storages(3)
	s.River[1], s.River[2] = 50., 8.
	l.Subtract([]float64{10., 0., 0.}, s)
	assert.Equal(t, 0., s.River[2])
	assert.Equal(t, 48., s.River[1])
	assert.Equal(t, 0., l.Unsatisfied[0])
}

func TestSubtractMassConservation(t *testing.T) {
	c := chain(4)
	c.Neighbours[3] = [8]int{1, 2, 0, 0, 0, 0, 0, 0}
	c.ResArea[2], c.Capacity[2] = 2., 1e-3
	for _, legacy := range []bool{false, true} {
		l := NewLedger(c, SpatialTemporal, legacy)
		s := storages(4)
		s.River = []float64{3., 7., 1., 2.}
		s.Reservoir[2] = 500.
		before := 513.
		for d := 0; d < 5; d++ {
			l.ResetDay()
			l.Subtract([]float64{4., 1., 0., 9.}, s)
			after := 0.
			for i := range s.River {
				after += s.River[i] + s.Reservoir[i] + s.GloLake[i] + s.LocLake[i]
			}
			used := 0.
			for _, a := range l.Actual {
				used += a
			}
			require.InDelta(t, before-used, after, 1e-9)
			require.GreaterOrEqual(t, s.Reservoir[2], 100.)
			before = after
		}
	}
}

func TestResetYear(t *testing.T) {
	l := NewLedger(chain(2), Temporal, false)
	l.Unsatisfied[0] = 3.
	l.ResetYear()
	assert.Equal(t, []float64{0., 0.}, l.Unsatisfied)
}

func TestDownstreamSumStopsAtReservoir(t *testing.T) {
	c := chain(4)
	c.Alloc[0] = []float64{.5, .25, .1}
	v := []float64{1., 2., 4., 8.}
	assert.InDelta(t, 1.+1.+1.+.8, c.DownstreamSum(0, v), 1e-12)
	c.ResArea[2] = 1.
	assert.InDelta(t, 2., c.DownstreamSum(0, v), 1e-12)
	assert.Equal(t, 8., c.DownstreamSum(3, v))
}
