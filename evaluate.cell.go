package watergap

import (
	"math"

	"github.com/JKupzig/WaterGAPLite/reservoir"
	"github.com/JKupzig/WaterGAPLite/wbody"
)

// cell runs the cascade of cell i: local lake, local wetland, then with the
// upstream inflow global lake, reservoir, global wetland and the river
// segment. The routed outflow is left in dc.routed[i]; only slots of i are
// written.
func (ev *Evaluator) cell(dc *dayContext, i int) {
	st, par, c := ev.st, ev.par, &ev.cap
	prec, pet := dc.prec[i], dc.pet[i]
	keep := dc.keep
	j := dc.j

	q := dc.land[i]
	if c.aLocLak[i] > 0. {
		r := wbody.Res{Sto: st.LocLake[i], Cap: c.locLak[i]}
		var f wbody.Flux
		q, f = ev.locLak.Update(&r, c.aLocLak[i], prec, pet, q)
		st.LocLake[i] = r.Sto
		if keep {
			dc.out.LocLake.set(j, i, f)
		}
	}
	if c.aLocWet[i] > 0. {
		p := prec
		if dc.temp != nil {
			p = ev.snow.Step(&st.FrozenDays[i], &st.Snow[i], dc.temp[i], prec)
		}
		r := wbody.Res{Sto: st.LocWetland[i], Cap: c.locWet[i]}
		var f wbody.Flux
		q, f = ev.locWet.Update(&r, c.aLocWet[i], p, pet, q)
		st.LocWetland[i] = r.Sto
		if keep {
			dc.out.LocWetland.set(j, i, f)
		}
	}

	q += dc.inflow[i]
	if keep {
		dc.out.InflowUpstream[j][i] = dc.inflow[i]
	}
	if par.LakArea[i] > 0. {
		r := wbody.Res{Sto: st.GloLake[i], Cap: c.gloLak[i]}
		var f wbody.Flux
		q, f = ev.gloLak.Update(&r, par.LakArea[i], prec, pet, q)
		st.GloLake[i] = r.Sto
		if keep {
			dc.out.GloLake.set(j, i, f)
		}
	}
	if par.ResArea[i] > 0. {
		var f wbody.Flux
		q, f = ev.pol.Route(&ev.res[i], &st.Reservoir[i], &st.Op[i], reservoir.Input{
			Date:        dc.t,
			DaysInMonth: dc.dim,
			Prec:        prec,
			PET:         pet,
			Inflow:      q,
			Demand:      ev.ldg.DownstreamSum(i, dc.sw),
			MeanDemand:  dc.meanDemand[i],
			Forecast:    ev.fc[i],
		})
		if keep {
			dc.out.Reservoir.set(j, i, f)
		}
	}
	if c.aGloWet[i] > 0. {
		r := wbody.Res{Sto: st.GloWetland[i], Cap: c.gloWet[i]}
		var f wbody.Flux
		q, f = ev.gloWet.Update(&r, c.aGloWet[i], prec, pet, q)
		st.GloWetland[i] = r.Sto
		if keep {
			dc.out.GloWetland.set(j, i, f)
		}
	}

	ch := ev.chn[i]
	v := ch.Velocity(ev.set.FlowVelocity == 1, ev.defVel, q)
	petr := 0.
	if ev.set.RiverEvaporation == 1 {
		petr = ch.PET(pet)
	}
	dc.routed[i] = wbody.RouteRiver(ev.rte, &st.River[i], &st.RiverQ[i], math.Max(q-petr, 0.), ch.Duration(v))
	dc.velocity[i] = v
	if keep {
		dc.out.PETRiver[j][i] = petr
		dc.out.RiverAvail[j][i] = dc.routed[i] / ev.basin
	}
}
