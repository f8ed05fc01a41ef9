package wbody

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteRiverCorrected(t *testing.T) {
	sto, qprev := 0., 0.
	k := 2.
	x := math.Exp(-1. / k)
	q := RouteRiver(Corrected, &sto, &qprev, 10., k)
	assert.InDelta(t, 10.*(1.-x), q, 1e-12)
	assert.InDelta(t, 10.-q, sto, 1e-12)
	assert.Equal(t, q, qprev)

	q2 := RouteRiver(Corrected, &sto, &qprev, 10., k)
	assert.InDelta(t, q*x+10.*(1.-x), q2, 1e-12)
}

func TestRouteRiverCorrectedNeverNegative(t *testing.T) {
	sto, qprev := 1., 100.
	q := RouteRiver(Corrected, &sto, &qprev, 0., 1.)
	assert.Equal(t, 0., sto)
	assert.InDelta(t, 1., q, 1e-12)
}

func TestRouteRiverLegacy(t *testing.T) {
	sto, qprev := 5., 0.
	k := .5
	x := math.Exp(-1. / k)
	q := RouteRiver(Legacy, &sto, &qprev, 10., k)
	want := 5.*x + 10.*k*(1.-x)
	assert.InDelta(t, want, sto, 1e-12)
	assert.InDelta(t, 10.+5.-want, q, 1e-12)
}

func TestRiverSteadyState(t *testing.T) {
	for _, rt := range []Routing{Corrected, Legacy} {
		sto, qprev := 0., 0.
		var q float64
		for d := 0; d < 2000; d++ {
			q = RouteRiver(rt, &sto, &qprev, 7., 3.)
		}
		assert.InDelta(t, 7., q, 1e-9)
	}
}

func TestVelocity(t *testing.T) {
	c := Channel{Length: 10., Slope: .001, Roughness: .03, Bankfull: 50.}
	t.Run("constant", func(t *testing.T) {
		assert.Equal(t, 86.4, c.Velocity(false, 86.4, 1e6))
	})
	t.Run("capped at bankfull", func(t *testing.T) {
		bf := 50. * secperday / 1000.
		assert.Equal(t, c.Velocity(true, 86.4, bf), c.Velocity(true, 86.4, 10.*bf))
	})
	t.Run("increases with discharge", func(t *testing.T) {
		assert.Greater(t, c.Velocity(true, 86.4, 2000.), c.Velocity(true, 86.4, 200.))
	})
	t.Run("floored", func(t *testing.T) {
		assert.Equal(t, minvel, c.Velocity(true, 86.4, 0.))
		small := Channel{Length: 1., Slope: .001, Roughness: .03, Bankfull: .001}
		assert.GreaterOrEqual(t, small.Velocity(true, 86.4, 1.), minvel)
	})
}

func TestRiverPET(t *testing.T) {
	c := Channel{Length: 10., Bankfull: 100.}
	w := (BottomWidth(100.) + BankfullWidth(100.)) / 2. / 1000.
	assert.InDelta(t, 5.*w*10., c.PET(5.), 1e-12)
	assert.Greater(t, Channel{Length: 1., Bankfull: 0.}.PET(1.), 0.)
}

func TestSnowStep(t *testing.T) {
	s := Snow{Threshold: -5., FreezeTemp: 0., MeltTemp: 0., MaxDegreeDays: 3.}
	days, snow := 0., 0.
	for i := 0; i < 2; i++ {
		assert.Equal(t, 2., s.Step(&days, &snow, -10., 2.))
	}
	assert.Equal(t, 0., s.Step(&days, &snow, -10., 2.))
	assert.Equal(t, 3., days)
	assert.Equal(t, 2., snow)

	p := s.Step(&days, &snow, .25, 1.)
	assert.Equal(t, 2., days)
	assert.InDelta(t, 2., p, 1e-12) // 1 mm rain + 1 mm melt
	assert.InDelta(t, 1., snow, 1e-12)
}
