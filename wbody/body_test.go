package wbody

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{
	LakeDepth:         .005,
	WetlandDepth:      .002,
	LakeOutflowExp:    1.5,
	WetlandOutflowExp: 2.5,
	EvapoExp:          3.32193,
	EvapoExpReservoir: 2.81383,
	GloStorageFactor:  100.,
	LocStorageFactor:  100.,
	DefaultVelocity:   86.4,
}

func TestReductionFactor(t *testing.T) {
	t.Run("full body evaporates at potential rate", func(t *testing.T) {
		assert.Equal(t, 1., ReductionFactor(120., 100., 3.32193))
	})
	t.Run("empty body does not evaporate", func(t *testing.T) {
		assert.InDelta(t, 0., ReductionFactor(0., 100., 3.32193), 1e-12)
	})
	t.Run("half full", func(t *testing.T) {
		assert.InDelta(t, 1.-math.Pow(.5, 2.81383), ReductionFactor(50., 100., 2.81383), 1e-12)
	})
	t.Run("zero capacity", func(t *testing.T) {
		assert.Equal(t, 1., ReductionFactor(0., 0., 3.32193))
	})
}

func TestResClamp(t *testing.T) {
	r := Res{Sto: 12., Cap: 10.}
	of, def := r.Clamp()
	assert.Equal(t, 2., of)
	assert.Equal(t, 0., def)
	assert.Equal(t, 10., r.Sto)

	r = Res{Sto: -3., Cap: 10.}
	of, def = r.Clamp()
	assert.Equal(t, 0., of)
	assert.Equal(t, -3., def)
	assert.Equal(t, 0., r.Sto)
}

func TestEvaporateNeverNegative(t *testing.T) {
	r := Res{Sto: 1., Cap: 1.}
	e := r.Evaporate(50., 2., 3.32193)
	assert.Equal(t, 1., e)
	assert.Equal(t, 0., r.Sto)
}

func TestBodyMassConservation(t *testing.T) {
	bodies := map[string]Body{
		"local lake":     testParams.LocalLake(),
		"local wetland":  testParams.LocalWetland(),
		"global lake":    testParams.GlobalLake(),
		"global wetland": testParams.GlobalWetland(),
	}
	rng := rand.New(rand.NewSource(42))
	for name, b := range bodies {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				area := rng.Float64() * 20.
				capa := testParams.LakeCap(area)
				r := Res{Sto: rng.Float64() * capa * 1.2, Cap: capa}
				if i%7 == 0 {
					r.Sto = 0.
				}
				s0 := r.Sto
				in := rng.Float64() * capa * .3
				if i%5 == 0 {
					in *= 50.
				}
				prec, pet := rng.Float64()*40., rng.Float64()*10.

				out, f := b.Update(&r, area, prec, pet, in)

				require.InDelta(t, s0+f.Inflow-f.Evapo-f.Outflow-f.Overflow, r.Sto, 1e-6*math.Max(1., capa))
				require.GreaterOrEqual(t, r.Sto, 0.)
				require.LessOrEqual(t, r.Sto, capa)
				require.GreaterOrEqual(t, f.Overflow, 0.)
				require.InDelta(t, f.Outflow+f.Overflow, out, 1e-9)
			}
		})
	}
}

func TestBodyZeroInput(t *testing.T) {
	for _, b := range []Body{testParams.LocalLake(), testParams.GlobalWetland()} {
		r := Res{Sto: 0., Cap: testParams.LakeCap(3.)}
		out, f := b.Update(&r, 3., 0., 0., 0.)
		assert.Equal(t, 0., out)
		assert.Equal(t, 0., r.Sto)
		assert.Equal(t, Flux{}, f)
	}
}

func TestLinearOutflowNonNegative(t *testing.T) {
	l := Linear{K: 100.}
	for _, c := range []struct{ s, in float64 }{{0, 0}, {10, 0}, {0, 10}, {1e6, 3}} {
		sto, q := l.Route(c.s, c.in, 0.)
		assert.GreaterOrEqual(t, q, 0.)
		assert.InDelta(t, c.s+c.in-q, sto, 1e-9)
	}
}

func TestNonlinearLakeOutflow(t *testing.T) {
	n := Nonlinear{K: 100., Exp: 1.5}
	sto, q := n.Route(50., 50., 100.)
	assert.InDelta(t, 1., q, 1e-12) // 100/100·(100/100)^1.5
	assert.InDelta(t, 99., sto, 1e-12)

	sto, q = n.Route(5., 2., 0.)
	assert.Equal(t, 0., sto)
	assert.Equal(t, 7., q)
}
