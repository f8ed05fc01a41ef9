package wateruse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDemand() *Demand {
	d := &Demand{StartYear: 2000, YearlyMean: []float64{365e3, 730e3}}
	for m := 0; m < 24; m++ {
		d.GW = append(d.GW, []float64{31e3, 0.})
		d.SW = append(d.SW, []float64{float64(m) * 1e3, 62e3})
	}
	d.TF = [][]float64{{366e3, 0.}, {365e3, 0.}}
	return d
}

func TestDemandDaily(t *testing.T) {
	d := testDemand()
	gw, sw := make([]float64, 2), make([]float64, 2)

	require.NoError(t, d.Daily(Consumptive, 2001, time.March, false, gw, sw))
	assert.InDelta(t, 1., gw[0], 1e-12)
	assert.InDelta(t, 14./31., sw[0], 1e-12) // month index 14
	assert.InDelta(t, 2., sw[1], 1e-12)

	require.NoError(t, d.Daily(WithTransfer, 2000, time.January, false, gw, sw))
	assert.InDelta(t, 1., sw[0], 1e-12)

	require.NoError(t, d.Daily(Consumptive, 2000, time.February, false, gw, sw))
	assert.InDelta(t, 1./29., sw[0], 1e-12)
	require.NoError(t, d.Daily(Consumptive, 2000, time.February, true, gw, sw))
	assert.InDelta(t, 1./28., sw[0], 1e-12)

	require.NoError(t, d.Daily(NoUse, 2030, time.January, false, gw, sw))
	assert.Equal(t, []float64{0., 0.}, sw)

	assert.ErrorIs(t, d.Daily(Consumptive, 2002, time.January, false, gw, sw), ErrNoData)
	assert.ErrorIs(t, d.Daily(Consumptive, 1999, time.December, false, gw, sw), ErrNoData)
}

func TestDemandMeanDaily(t *testing.T) {
	c := chain(2)
	c.Alloc[0] = []float64{.5}
	m := testDemand().MeanDaily(c, 2001, false)
	assert.InDelta(t, (365e3+.5*730e3)/1000./365., m[0], 1e-12)
	assert.InDelta(t, 2., m[1], 1e-12)

	m = testDemand().MeanDaily(c, 2000, true)
	assert.InDelta(t, 2., m[1], 1e-12)
}

func TestDemandValidate(t *testing.T) {
	assert.NoError(t, testDemand().Validate(2))
	err := testDemand().Validate(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YearlyMean")
	assert.Contains(t, err.Error(), "GW")
}
