package watergap

import (
	"fmt"

	"github.com/JKupzig/WaterGAPLite/config"
	"github.com/JKupzig/WaterGAPLite/monitor"
	"github.com/JKupzig/WaterGAPLite/reservoir"
	"github.com/JKupzig/WaterGAPLite/wateruse"
	"github.com/JKupzig/WaterGAPLite/wbody"
	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"
)

// Evaluator runs the daily routing of one basin
type Evaluator struct {
	strc *Structure
	par  *Parameters
	dmd  *wateruse.Demand
	set  config.Settings

	locLak, locWet, gloLak, gloWet wbody.Body
	snow                           wbody.Snow
	defVel                         float64
	rte                            wbody.Routing
	chn                            []wbody.Channel
	cap                            capacities
	res                            []reservoir.Reservoir
	fc                             []*reservoir.Forecast
	pol                            reservoir.Policy
	ldg                            *wateruse.Ledger
	st                             *State
	basin                          float64 // [km²]

	log      logr.Logger
	mon      *monitor.Monitor
	conc     int
	progress bool
}

// capacities are the maximum storages [mm km²] and covered areas [km²] of
// the water bodies of every cell
type capacities struct {
	locLak, locWet, gloLak, gloWet, res []float64
	aLocLak, aLocWet, aGloWet           []float64
}

// NewEvaluator prepares a run of cfg over the basin. Reservoirs are folded
// into par as selected by the settings.
func NewEvaluator(cfg *config.Config, strc *Structure, par *Parameters, dmd *wateruse.Demand, opts ...Option) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewEvaluator: %w", err)
	}
	if err := par.Validate(strc.Nc); err != nil {
		return nil, fmt.Errorf("NewEvaluator: %w", err)
	}
	set := cfg.Settings
	if wateruse.UseType(set.WaterUseType) != wateruse.NoUse {
		if dmd == nil {
			return nil, fmt.Errorf("NewEvaluator: water use type %d without demand data", set.WaterUseType)
		}
		if err := dmd.Validate(strc.Nc); err != nil {
			return nil, fmt.Errorf("NewEvaluator: %w", err)
		}
	}

	ev := &Evaluator{
		strc: strc,
		par:  par,
		dmd:  dmd,
		set:  set,
		log:  logr.Discard(),
		conc: cfg.Concurrency,
	}
	for _, o := range opts {
		o(ev)
	}
	if ev.log.GetSink() == nil {
		ev.log = logr.Discard()
	}

	if n := par.Fold(set.FoldReservoirs()); n > 0 {
		ev.log.V(1).Info("reservoirs treated as global lakes", "count", n)
	}

	k := cfg.Constants
	bp := k.Body()
	ev.locLak, ev.locWet, ev.gloLak, ev.gloWet = bp.LocalLake(), bp.LocalWetland(), bp.GlobalLake(), bp.GlobalWetland()
	ev.snow = k.Snow()
	ev.defVel = bp.DefaultVelocity
	if set.OldRiverRouting == 1 {
		ev.rte = wbody.Legacy
	}
	ev.chn = par.channels()
	ev.res = par.reservoirs()
	ev.basin = floats.Sum(par.Area)

	nc := strc.Nc
	c := capacities{
		locLak: make([]float64, nc), locWet: make([]float64, nc), gloLak: make([]float64, nc),
		gloWet: make([]float64, nc), res: make([]float64, nc),
		aLocLak: make([]float64, nc), aLocWet: make([]float64, nc), aGloWet: make([]float64, nc),
	}
	for i := 0; i < nc; i++ {
		c.aLocLak[i] = wbody.PercentArea(par.LocLak[i], par.Area[i])
		c.aLocWet[i] = wbody.PercentArea(par.LocWet[i], par.Area[i])
		c.aGloWet[i] = wbody.PercentArea(par.GloWet[i], par.Area[i])
		c.locLak[i] = bp.LakeCap(c.aLocLak[i])
		c.locWet[i] = bp.WetlandCap(c.aLocWet[i])
		c.gloLak[i] = bp.LakeCap(par.LakArea[i])
		c.gloWet[i] = bp.WetlandCap(c.aGloWet[i])
		c.res[i] = ev.res[i].Full()
	}
	ev.cap = c

	alg := reservoir.Algorithm(set.ReservoirAlgorithm)
	pol, err := reservoir.NewPolicy(alg, k.EvapoReductionExpReservoir, set.SkipLeap(), ev.log)
	if err != nil {
		return nil, fmt.Errorf("NewEvaluator: %w", err)
	}
	if s, ok := pol.(reservoir.Schneider); ok {
		s.EFlow = set.EFlow
		if ev.mon != nil {
			s.Failed = func(error) { ev.mon.OptimizerFailure() }
		}
		pol = s
	}
	ev.pol = pol

	ev.st = NewState(nc)
	ev.ldg = wateruse.NewLedger(par.cells(strc, k.DownstreamCells), wateruse.Allocation(set.WaterUseAllocation), set.LegacySpatialUse)
	ev.ldg.Unsatisfied = ev.st.Unsatisfied

	ev.log.Info("evaluator ready", "cells", nc, "steps", len(strc.Order), "reservoirs", ev.nres(), "algorithm", alg.String(), "basin area", ev.basin)
	return ev, nil
}

// State returns the live state of the run
func (ev *Evaluator) State() *State { return ev.st }

func (ev *Evaluator) nres() (n int) {
	for _, a := range ev.par.ResArea {
		if a > 0. {
			n++
		}
	}
	return
}

// fill sets every water body to its maximum storage; reservoirs to 85% of
// capacity.
func (ev *Evaluator) fill() {
	copy(ev.st.LocLake, ev.cap.locLak)
	copy(ev.st.LocWetland, ev.cap.locWet)
	copy(ev.st.GloLake, ev.cap.gloLak)
	copy(ev.st.GloWetland, ev.cap.gloWet)
	for i, c := range ev.cap.res {
		ev.st.Reservoir[i] = .85 * c
	}
}

// forecast sets the monthly climatologies steering the reservoir optimizer
func (ev *Evaluator) forecast(frc *Forcing) {
	nc := ev.strc.Nc
	ev.fc = make([]*reservoir.Forecast, nc)
	prec, pet := frc.Climatology(nc)
	for i, r := range ev.res {
		if r.Area <= 0. {
			continue
		}
		fc := &reservoir.Forecast{}
		for m := 0; m < 12; m++ {
			fc.Inflow[m] = r.MeanInflow
			if i < len(ev.par.MonthlyInflow) {
				fc.Inflow[m] = ev.par.MonthlyInflow[i][m]
			}
			fc.Prec[m] = prec[i][m] * r.Area
			fc.PET[m] = pet[i][m] * r.Area
		}
		ev.fc[i] = fc
	}
}
