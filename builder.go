package watergap

import (
	"context"
	"fmt"

	"github.com/JKupzig/WaterGAPLite/config"
	"github.com/JKupzig/WaterGAPLite/wateruse"
	"golang.org/x/sync/errgroup"
)

// Inputs are the gob-encoded inputs of a run
type Inputs struct {
	Structure  *Structure
	Parameters *Parameters
	Forcing    *Forcing
	Demand     *wateruse.Demand // nil without water use
}

// LoadInputs reads the inputs named in p concurrently
func LoadInputs(ctx context.Context, p config.Paths) (*Inputs, error) {
	var in Inputs
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Structure, err = LoadGobStructure(p.Structure)
		return
	})
	g.Go(func() (err error) {
		in.Parameters, err = LoadGobParameters(p.Parameters)
		return
	})
	g.Go(func() (err error) {
		in.Forcing, err = LoadGobForcing(p.Forcing)
		return
	})
	if p.Demand != "" {
		g.Go(func() (err error) {
			in.Demand, err = LoadGobDemand(p.Demand)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("LoadInputs: %w", err)
	}
	return &in, nil
}

func SaveGobDemand(fp string, d *wateruse.Demand) error {
	if err := saveGob(fp, d); err != nil {
		return fmt.Errorf(" demand.SaveGob %w", err)
	}
	return nil
}

func LoadGobDemand(fp string) (*wateruse.Demand, error) {
	var d wateruse.Demand
	if err := loadGob(fp, &d); err != nil {
		return nil, fmt.Errorf(" LoadGobDemand %w", err)
	}
	return &d, nil
}
