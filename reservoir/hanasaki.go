package reservoir

import "github.com/JKupzig/WaterGAPLite/wbody"

// Hanasaki releases a fraction K of a provisional release set by purpose
// and demand (Hanasaki et al., 2006). Usable storage is 85% of capacity.
type Hanasaki struct {
	EvapoExp float64
}

// ReleaseCoefficient is the ratio of storage s to capacity full at the start
// of the operational year, never less than the dead-storage fraction.
func ReleaseCoefficient(s, full float64) float64 {
	if full <= 0. || s < floor*full {
		return floor
	}
	return s / full
}

// ProvisionalRelease [mm km²/d] given the mean inflow, today's demand and the
// mean demand of the cell and its allocated downstream cells.
func ProvisionalRelease(t Type, meanInflow, demand, meanDemand float64) float64 {
	switch {
	case t == Irrigation:
		if meanDemand < 0. || demand < 0. {
			return meanInflow
		} else if meanDemand > 0. && meanDemand >= .5*meanInflow {
			return meanInflow / 2. * (1. + demand/meanDemand)
		}
		return meanInflow + demand - meanDemand
	case t >= WaterSupply:
		return meanInflow
	default:
		return 0.
	}
}

// Release blends the regulated release with the natural inflow for
// reservoirs small relative to their annual inflow (c < 0.5).
func Release(c, k, prov, inflow float64) float64 {
	if c < .5 {
		c4 := 4. * c * c
		return c4*k*prov + (1.-c4)*inflow
	}
	return k * prov
}

func (h Hanasaki) Route(r *Reservoir, s *float64, op *Op, in Input) (float64, wbody.Flux) {
	var f wbody.Flux
	full := r.Full()
	meanInflow := r.MeanInflow * mmkm2 / float64(in.DaysInMonth)
	c := r.Capacity / (r.MeanInflow * 12.)

	res := wbody.Res{Sto: *s, Cap: .85 * full}
	f.Inflow = in.Inflow + in.Prec*r.Area
	res.Sto += f.Inflow
	f.Evapo = res.Evaporate(in.PET, r.Area, h.EvapoExp)

	if in.Date.Day() == 1 && in.Date.Month() == r.StartMonth {
		op.K = ReleaseCoefficient(res.Sto, full)
	}

	rel := Release(c, op.K, ProvisionalRelease(r.Type, meanInflow, in.Demand, in.MeanDemand), in.Inflow)
	if res.Sto >= floor*full {
		f.Outflow = rel
	} else {
		f.Outflow = floor * rel
	}
	res.Sto -= f.Outflow

	of, def := res.Clamp()
	f.Outflow += def
	f.Overflow = of
	*s = res.Sto
	return f.Outflow + f.Overflow, f
}
