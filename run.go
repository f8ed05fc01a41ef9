// Package watergap routes daily runoff through the lakes, wetlands,
// reservoirs and rivers of a basin while abstracting surface water for
// human use.
package watergap

import (
	"context"
	"fmt"

	"github.com/JKupzig/WaterGAPLite/config"
	"github.com/JKupzig/WaterGAPLite/monitor"
	"github.com/JKupzig/WaterGAPLite/state"
	"go.uber.org/multierr"
)

// Run loads the inputs of cfg, simulates them and writes the outputs,
// loading and saving state as selected by the settings.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (res *Results, err error) {
	in, err := LoadInputs(ctx, cfg.Paths)
	if err != nil {
		return nil, err
	}
	if len(in.Forcing.T) == 0 {
		return nil, fmt.Errorf("Run: forcing %s holds no days", cfg.Paths.Forcing)
	}

	var mon *monitor.Monitor
	if cfg.Metrics.Textfile != "" {
		mon = monitor.New(cfg.RunID)
		opts = append(opts, WithMonitor(mon))
	}
	ev, err := NewEvaluator(cfg, in.Structure, in.Parameters, in.Demand, opts...)
	if err != nil {
		return nil, err
	}
	log := ev.log

	set := cfg.Settings
	var be state.Backend
	if set.LoadState() || set.SaveState() {
		if be, err = state.Open(ctx, cfg.State); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		defer func() {
			err = multierr.Append(err, be.Close())
		}()
	}

	frc := in.Forcing
	t0 := frc.T[0]
	if set.LoadState() {
		if err := ev.State().Load(ctx, be, cfg.RunID, t0); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		log.Info("state loaded", "date", t0.Format("2006-01-02"), "backend", cfg.State.Backend)
	} else if cfg.Warmup.Years > 0 || cfg.Warmup.Fill {
		if err := ev.WarmUp(ctx, frc, cfg.Warmup.Years, cfg.Warmup.Fill); err != nil {
			return nil, err
		}
	}

	res, err = ev.Evaluate(ctx, frc)
	if err != nil {
		return res, err
	}

	if set.SaveState() {
		t1 := frc.T[len(frc.T)-1].AddDate(0, 0, 1)
		if err := ev.State().Save(ctx, be, cfg.RunID, t1); err != nil {
			return res, fmt.Errorf("Run: %w", err)
		}
		log.Info("state saved", "date", t1.Format("2006-01-02"), "backend", cfg.State.Backend)
	}
	if cfg.Paths.Output != "" {
		if err := res.WriteBins(cfg.Paths.Output); err != nil {
			return res, err
		}
	}
	if mon != nil {
		if err := mon.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return res, err
		}
	}
	return res, nil
}
