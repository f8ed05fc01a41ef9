package reservoir

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/JKupzig/WaterGAPLite/calendar"
)

const (
	nclass    = 80 // storage classes above the empty class
	rhog      = 1000. * 9.81
	levelCoef = 6. / (19.45 * 19.45) // storage [m³] to water level [m]
)

// ErrStartClass is returned when the initial storage lies above every
// storage class.
var ErrStartClass = errors.New("storage outside of class table")

// OptimizeInput holds everything the monthly storage-target optimizer needs.
// Volumes are in [m³], flows in [m³/s].
type OptimizeInput struct {
	Type     Type
	Month    time.Month // first month of the 12-month horizon
	Year     int
	SkipLeap bool
	Smax     float64
	Sstart   float64
	Qmin7    float64
	Qmax7    float64
	Qbf      float64
	Forecast Forecast
	EFlow    bool // penalize releases deviating more than 20% from inflow
}

type class struct{ lo, hi, mid float64 }

type choice struct {
	end     int
	benefit float64
	pen     int
}

// classes discretizes [0, smax] into nclass+1 classes; the first and last
// have half width.
func classes(smax float64) (c [nclass + 1]class) {
	w := smax / nclass
	lo, hi := 0., .5*w
	for i := range c {
		c[i] = class{math.Round(lo), math.Round(hi), math.Round((lo + hi) / 2.)}
		lo = hi
		if i < nclass-1 {
			hi += w
		} else {
			hi += .5 * w
		}
	}
	return
}

// Optimize returns the end-of-month storage target [m³] by backward
// induction over a 12-month horizon of storage-class transitions. A
// transition is penalized when it leaves too little storage for a month of
// minimum flow, too little flood reserve for a week of maximum flow, or
// releases above bankfull; among transitions with fewest penalties the one
// with the least cumulative cost is chosen.
func Optimize(in OptimizeInput) (float64, error) {
	cls := classes(in.Smax)

	qmean := 0.
	for _, v := range in.Forecast.Inflow {
		qmean += v * m3
	}
	qmean /= 365. * secperday

	var next [12][nclass + 1]choice
	for m := 11; m >= 0; m-- {
		cm := time.Month((int(in.Month)-1+m)%12 + 1)
		days := float64(calendar.DaysInMonth(cm, in.Year, in.SkipLeap))
		secs := days * secperday
		q := in.Forecast.Inflow[cm-1] / days / secperday * m3
		p := in.Forecast.Prec[cm-1] * 1000. / secperday
		e := in.Forecast.PET[cm-1] * 1000. / secperday

		transition := func(s, t int) (benefit float64, pen int, excluded bool) {
			ms, mt := cls[s].mid, cls[t].mid
			red := 1.
			if sm := (ms + mt) / 2.; sm < in.Smax {
				red = 1. - math.Pow((in.Smax-sm)/in.Smax, 2.81383)
			}
			rm := (ms-mt)/secs + q + p - e*red

			switch in.Type {
			case WaterSupply, FloodControl, Navigation, Recreation, Other:
				benefit = (rm - qmean) * (rm - qmean)
			case Hydropower:
				ls, lt := math.Cbrt(levelCoef*ms), math.Cbrt(levelCoef*mt)
				hmean := 2. / (1./ls + 1./lt)
				benefit = 1. / (rm * rhog * hmean)
			}

			excluded = mt > ms+(q-e*red+p)*secs
			if mt < 30.*in.Qmin7*secperday {
				pen++
			}
			if mt > in.Smax-7.*in.Qmax7*secperday {
				pen++
			}
			if rm > in.Qbf {
				pen++
			}
			if in.EFlow {
				if rm > 1.2*q {
					pen++
				}
				if rm < .8*q {
					pen++
				}
			}
			if m < 11 {
				benefit += next[m+1][t].benefit
				pen += next[m+1][t].pen
			}
			return
		}

		for s := range cls {
			best := choice{end: -1}
			for t := range cls {
				b, pen, x := transition(s, t)
				if x {
					continue
				}
				if best.end < 0 || pen < best.pen || (pen == best.pen && b < best.benefit) {
					best = choice{t, b, pen}
				}
			}
			if best.end < 0 {
				b, pen, _ := transition(s, s)
				best = choice{s, b, pen}
			}
			next[m][s] = best
		}
	}

	start := -1
	for i, c := range cls {
		if in.Sstart >= c.lo && in.Sstart <= c.hi {
			start = i
		}
	}
	if start < 0 {
		if in.Sstart > cls[nclass].hi*1.01 {
			return cls[0].mid, fmt.Errorf("Optimize: %w: start %.0f, class max %.0f", ErrStartClass, in.Sstart, cls[nclass].hi)
		}
		start = nclass
	}
	return cls[next[0][start].end].mid, nil
}
