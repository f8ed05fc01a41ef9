package reservoir

import (
	"math"

	"github.com/JKupzig/WaterGAPLite/wbody"
	"github.com/go-logr/logr"
)

// Schneider steers storage towards a monthly target computed by Optimize on
// the first day of each month (Schneider et al., 2015).
type Schneider struct {
	EvapoExp float64
	EFlow    bool
	SkipLeap bool
	Log      logr.Logger
	Failed   func(error) // called when the storage target falls back to the empty class
}

// Ration is the drought multiplier applied to the release given storage s
// relative to capacity full.
func Ration(s, full float64) float64 {
	switch {
	case s < .1*full:
		return .1
	case s < .15*full:
		return .4
	case s < .2*full:
		return .7
	case s < .25*full:
		return .9
	default:
		return 1.
	}
}

func (p Schneider) Route(r *Reservoir, s *float64, op *Op, in Input) (float64, wbody.Flux) {
	fc := in.Forecast
	if fc == nil {
		fc = &Forecast{}
	}
	day, month := in.Date.Day(), in.Date.Month()
	dim := float64(in.DaysInMonth)

	if day == 1 {
		tgt, err := Optimize(OptimizeInput{
			Type:     r.Type,
			Month:    month,
			Year:     in.Date.Year(),
			SkipLeap: p.SkipLeap,
			Smax:     r.Capacity * m3,
			Sstart:   *s * 1000.,
			Qmin7:    r.Qmin7,
			Qmax7:    r.Qmax7,
			Qbf:      r.Bankfull,
			Forecast: *fc,
			EFlow:    p.EFlow,
		})
		if err != nil {
			if p.Log.GetSink() != nil {
				p.Log.Error(err, "storage target", "date", in.Date.Format("2006-01-02"), "storage", *s)
			}
			if p.Failed != nil {
				p.Failed(err)
			}
		}
		op.Target = tgt / 1000.
	}

	var f wbody.Flux
	full := r.Full()
	f.Inflow = in.Inflow + in.Prec*r.Area
	f.Evapo = in.PET * wbody.ReductionFactor(*s, full, p.EvapoExp) * r.Area

	if day == 1 {
		op.AccInflow = in.Inflow
	} else {
		op.AccInflow += in.Inflow
	}
	elapsed := float64(day - 1)
	qmi := (op.AccInflow + fc.Inflow[month-1]*mmkm2/dim*(dim-elapsed-1.)) / dim
	rel := (*s-op.Target)/(dim-elapsed) + qmi + in.Prec*r.Area - f.Evapo
	rel = math.Max(rel, 0.)
	rel = math.Min(rel, r.Bankfull*kmperday)
	rel = math.Max(rel, r.Qmin7*kmperday)

	*s += f.Inflow - f.Evapo
	f.Outflow = Ration(*s, full) * rel
	*s -= f.Outflow

	if *s > full {
		f.Overflow = *s - full
		*s = full
	}
	if *s < 0. {
		f.Evapo += *s
		if f.Evapo < 0. {
			f.Outflow += f.Evapo
			f.Evapo = 0.
		}
		*s = 0.
	}
	return f.Outflow + f.Overflow, f
}
