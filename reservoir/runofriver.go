package reservoir

import (
	"math"

	"github.com/JKupzig/WaterGAPLite/wbody"
)

// RunOfRiver passes inflow through less evaporation; storage only changes
// through evaporation exceeding inflow and is capped at full capacity.
type RunOfRiver struct {
	EvapoExp float64
}

func (p RunOfRiver) Route(r *Reservoir, s *float64, _ *Op, in Input) (float64, wbody.Flux) {
	var f wbody.Flux
	res := wbody.Res{Sto: *s, Cap: r.Full()}
	f.Inflow = in.Inflow + in.Prec*r.Area
	res.Sto += f.Inflow
	f.Evapo = res.Evaporate(in.PET, r.Area, p.EvapoExp)
	f.Outflow = math.Max(f.Inflow-f.Evapo, 0.)
	res.Sto -= f.Outflow

	of, def := res.Clamp()
	f.Outflow += def
	f.Overflow = of
	*s = res.Sto
	return f.Outflow + f.Overflow, f
}
