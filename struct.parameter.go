package watergap

import (
	"fmt"
	"time"

	"github.com/JKupzig/WaterGAPLite/reservoir"
	"github.com/JKupzig/WaterGAPLite/wateruse"
	"github.com/JKupzig/WaterGAPLite/wbody"
	"go.uber.org/multierr"
)

// Parameters are the static cell attributes, indexed by cell
type Parameters struct {
	Area, LandFrac         []float64 // [km²], [-]
	LocLak, LocWet, GloWet []float64 // [% of cell area]
	LakArea, ResArea       []float64 // [km²]

	RiverLength, RiverSlope, RiverRoughness []float64 // [km], [-], Manning's n
	Bankfull                                []float64 // [m³/s]

	StorageCapacity []float64     // [km³]
	MeanInflow      []float64     // [km³/month]
	MonthlyInflow   [][12]float64 // optional [km³/month]
	ResType         []int
	StartMonth      []int
	Qmin7, Qmax7    []float64 // optional [m³/s]

	Neighbours [][8]int    // optional, 1-based, 0 where none
	AllocCoeff [][]float64 // optional, downstream allocation coefficients
}

// Validate checks every attribute against nc cells
func (p *Parameters) Validate(nc int) (err error) {
	req := func(name string, n int) {
		if n != nc {
			err = multierr.Append(err, fmt.Errorf("Parameters.%s: %d values for %d cells", name, n, nc))
		}
	}
	opt := func(name string, n int) {
		if n > 0 {
			req(name, n)
		}
	}
	req("Area", len(p.Area))
	req("LandFrac", len(p.LandFrac))
	req("LocLak", len(p.LocLak))
	req("LocWet", len(p.LocWet))
	req("GloWet", len(p.GloWet))
	req("LakArea", len(p.LakArea))
	req("ResArea", len(p.ResArea))
	req("RiverLength", len(p.RiverLength))
	req("RiverSlope", len(p.RiverSlope))
	req("RiverRoughness", len(p.RiverRoughness))
	req("Bankfull", len(p.Bankfull))
	req("StorageCapacity", len(p.StorageCapacity))
	req("MeanInflow", len(p.MeanInflow))
	req("ResType", len(p.ResType))
	req("StartMonth", len(p.StartMonth))
	opt("MonthlyInflow", len(p.MonthlyInflow))
	opt("Qmin7", len(p.Qmin7))
	opt("Qmax7", len(p.Qmax7))
	opt("Neighbours", len(p.Neighbours))
	opt("AllocCoeff", len(p.AllocCoeff))
	if err != nil {
		return err
	}

	for i := 0; i < nc; i++ {
		if p.RiverLength[i] <= 0. {
			err = multierr.Append(err, fmt.Errorf("Parameters.RiverLength: cell %d has length %g", i, p.RiverLength[i]))
		}
		if p.ResArea[i] > 0. {
			if m := p.StartMonth[i]; m < 1 || m > 12 {
				err = multierr.Append(err, fmt.Errorf("Parameters.StartMonth: reservoir cell %d starts in month %d", i, m))
			}
			if t := p.ResType[i]; t < int(reservoir.Unknown) || t > int(reservoir.Other) {
				err = multierr.Append(err, fmt.Errorf("Parameters.ResType: reservoir cell %d has type %d", i, t))
			}
		}
	}
	for i, nb := range p.Neighbours {
		for _, k := range nb {
			if k < 0 || k > nc {
				err = multierr.Append(err, fmt.Errorf("Parameters.Neighbours: cell %d has neighbour %d", i, k))
				break
			}
		}
	}
	return err
}

// Fold moves reservoirs into the global lakes: all of them, or only those of
// unknown purpose.
func (p *Parameters) Fold(all bool) (n int) {
	for i, a := range p.ResArea {
		if a <= 0. {
			continue
		}
		if all || reservoir.Type(p.ResType[i]) == reservoir.Unknown {
			p.LakArea[i] += a
			p.ResArea[i] = 0.
			n++
		}
	}
	return
}

func (p *Parameters) channels() []wbody.Channel {
	c := make([]wbody.Channel, len(p.Area))
	for i := range c {
		c[i] = wbody.Channel{
			Length:    p.RiverLength[i],
			Slope:     p.RiverSlope[i],
			Roughness: p.RiverRoughness[i],
			Bankfull:  p.Bankfull[i],
		}
	}
	return c
}

func (p *Parameters) reservoirs() []reservoir.Reservoir {
	at := func(v []float64, i int) float64 {
		if i < len(v) {
			return v[i]
		}
		return 0.
	}
	r := make([]reservoir.Reservoir, len(p.Area))
	for i := range r {
		if p.ResArea[i] <= 0. {
			continue
		}
		r[i] = reservoir.Reservoir{
			Area:       p.ResArea[i],
			Capacity:   p.StorageCapacity[i],
			MeanInflow: p.MeanInflow[i],
			Type:       reservoir.Type(p.ResType[i]),
			StartMonth: time.Month(p.StartMonth[i]),
			Bankfull:   p.Bankfull[i],
			Qmin7:      at(p.Qmin7, i),
			Qmax7:      at(p.Qmax7, i),
		}
	}
	return r
}

func (p *Parameters) cells(strc *Structure, dsc int) *wateruse.Cells {
	return &wateruse.Cells{
		Ds:         strc.Ds,
		Neighbours: p.Neighbours,
		Alloc:      p.AllocCoeff,
		ResArea:    p.ResArea,
		LakArea:    p.LakArea,
		LocLak:     p.LocLak,
		Capacity:   p.StorageCapacity,
		Dsc:        dsc,
	}
}

func (p *Parameters) SaveGob(fp string) error {
	if err := saveGob(fp, p); err != nil {
		return fmt.Errorf(" parameters.SaveGob %w", err)
	}
	return nil
}

func LoadGobParameters(fp string) (*Parameters, error) {
	var par Parameters
	if err := loadGob(fp, &par); err != nil {
		return nil, fmt.Errorf(" LoadGobParameters %w", err)
	}
	return &par, nil
}
