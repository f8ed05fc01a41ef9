package watergap

import (
	"context"
	"fmt"
	"time"

	"github.com/JKupzig/WaterGAPLite/calendar"
	"github.com/JKupzig/WaterGAPLite/monitor"
	"github.com/JKupzig/WaterGAPLite/reservoir"
	"github.com/JKupzig/WaterGAPLite/wateruse"
	"github.com/gosuri/uiprogress"
)

// dayContext carries the inputs and accumulators of one simulated day
type dayContext struct {
	t    time.Time
	dim  int
	j    int  // output row
	keep bool // write fluxes to out

	prec, pet, temp, land []float64 // today's forcing; land inflow [mm km²]
	gw, sw, meanDemand    []float64 // [mm km²/d]

	inflow   []float64 // river inflow from upstream cells [mm km²]
	routed   []float64 // routed river outflow of each cell [mm km²]
	velocity []float64 // [km/d]

	out *Results
}

func (ev *Evaluator) newDayContext() *dayContext {
	nc := ev.strc.Nc
	f := func() []float64 { return make([]float64, nc) }
	return &dayContext{
		land:       f(),
		gw:         f(),
		sw:         f(),
		meanDemand: f(),
		inflow:     f(),
		routed:     f(),
		velocity:   f(),
	}
}

// Evaluate runs the routing over every day of frc, continuing from the
// current state.
func (ev *Evaluator) Evaluate(ctx context.Context, frc *Forcing) (*Results, error) {
	if err := frc.Validate(ev.strc.Nc, ev.set.WetlandSnow == 1); err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	ev.forecast(frc)
	ev.initRelease()

	nt := len(frc.T)
	out := newResults(frc.T, ev.strc.Nc)
	dc := ev.newDayContext()
	dc.out, dc.keep = out, true

	var bar *uiprogress.Bar
	if ev.progress {
		p := uiprogress.New()
		p.Start()
		defer p.Stop()
		bar = p.AddBar(nt).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			if c := b.Current(); c > 0 && c <= nt {
				return frc.T[c-1].Format("2006-01-02")
			}
			return frc.T[0].Format("2006-01-02")
		})
	}

	ev.log.Info("evaluate", "from", frc.T[0].Format("2006-01-02"), "to", frc.T[nt-1].Format("2006-01-02"), "days", nt)
	my := -1
	for j, t := range frc.T {
		if j%100 == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}
		if t.Year() != my {
			my = t.Year()
			ev.yearly(dc, my)
		}
		dc.j = j
		if err := ev.day(ctx, dc, frc, j); err != nil {
			return out, err
		}
		if bar != nil {
			bar.Incr()
		}
	}
	return out, nil
}

// yearly sets the mean daily demand of the year
func (ev *Evaluator) yearly(dc *dayContext, year int) {
	if wateruse.UseType(ev.set.WaterUseType) == wateruse.NoUse {
		return
	}
	copy(dc.meanDemand, ev.dmd.MeanDaily(ev.ldg.Cells, year, ev.set.SkipLeap()))
}

// initRelease sets the release coefficient of reservoirs starting without one
func (ev *Evaluator) initRelease() {
	for i, r := range ev.res {
		if r.Area > 0. && ev.st.Op[i].K == 0. {
			ev.st.Op[i].K = reservoir.ReleaseCoefficient(ev.st.Reservoir[i], ev.cap.res[i])
		}
	}
}

// day simulates day j of frc: the cascade of every cell in routing order,
// then the surface water abstraction.
func (ev *Evaluator) day(ctx context.Context, dc *dayContext, frc *Forcing, j int) error {
	t := frc.T[j]
	if calendar.IsSkipped(t, ev.set.SkipLeap()) {
		return nil
	}
	dc.t = t
	dc.dim = calendar.DaysInMonth(t.Month(), t.Year(), ev.set.SkipLeap())
	dc.prec, dc.pet = frc.Prec[j], frc.PETw[j]
	if ev.set.WetlandSnow == 1 {
		dc.temp = frc.Temp[j]
	}
	for i := range dc.land {
		dc.land[i] = (frc.SurfaceRunoff[j][i] + frc.GroundwaterRunoff[j][i]) * ev.par.Area[i] * ev.par.LandFrac[i]
		dc.inflow[i] = 0.
	}

	ut := wateruse.UseType(ev.set.WaterUseType)
	if ut != wateruse.NoUse {
		if err := ev.dmd.Daily(ut, t.Year(), t.Month(), ev.set.SkipLeap(), dc.gw, dc.sw); err != nil {
			return fmt.Errorf("Evaluate: %w", err)
		}
	}

	for _, cids := range ev.strc.Order {
		if err := ev.step(ctx, dc, cids); err != nil {
			return err
		}
	}

	ev.ldg.ResetDay()
	if ut != wateruse.NoUse {
		if t.Day() == 1 && t.Month() == time.January {
			ev.ldg.ResetYear()
		}
		ev.ldg.Subtract(dc.sw, wateruse.Storages{
			River:     ev.st.River,
			Reservoir: ev.st.Reservoir,
			GloLake:   ev.st.GloLake,
			LocLake:   ev.st.LocLake,
		})
	}

	if dc.keep {
		dc.out.storages(dc.j, ev.st, ev.ldg.Actual)
		if ev.mon != nil {
			ev.mon.Observe(monitor.Day{
				Storage: map[string][]float64{
					"river":          ev.st.River,
					"local_lake":     ev.st.LocLake,
					"local_wetland":  ev.st.LocWetland,
					"global_lake":    ev.st.GloLake,
					"reservoir":      ev.st.Reservoir,
					"global_wetland": ev.st.GloWetland,
				},
				Discharge:   dc.out.Discharge[dc.j],
				ActualUse:   ev.ldg.Actual,
				Unsatisfied: ev.ldg.Unsatisfied,
			})
		}
	}
	return nil
}
