package watergap

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// step runs the cells of one routing step, in parallel when concurrency is
// set, then passes their routed outflow downstream in member order.
func (ev *Evaluator) step(ctx context.Context, dc *dayContext, cids []int) error {
	if ev.conc < 2 || len(cids) < 2 {
		for _, i := range cids {
			ev.cell(dc, i)
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(ev.conc)
		for _, i := range cids {
			g.Go(func() error {
				ev.cell(dc, i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for _, i := range cids {
		q := dc.routed[i]
		if d := ev.strc.Ds[i]; d >= 0 {
			dc.inflow[d] += q
			continue
		}
		if dc.keep {
			dc.out.Discharge[dc.j] += q / ev.basin
			dc.out.Velocity[dc.j] = dc.velocity[i] / 86.4
		}
	}
	return nil
}
