package watergap

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// Forcing holds the daily inputs of a run, [day][cell]
type Forcing struct {
	T                 []time.Time
	Prec, PETw        [][]float64 // precipitation and potential evaporation over open water [mm]
	Temp              [][]float64 // [°C], only needed with wetland snow
	SurfaceRunoff     [][]float64 // [mm]
	GroundwaterRunoff [][]float64 // [mm]
}

// Validate checks the grids against nc cells and that T advances by one day
func (frc *Forcing) Validate(nc int, needTemp bool) (err error) {
	nt := len(frc.T)
	if nt == 0 {
		return fmt.Errorf("Forcing: no time steps")
	}
	for j := 1; j < nt; j++ {
		if !frc.T[j].Equal(frc.T[j-1].AddDate(0, 0, 1)) {
			return fmt.Errorf("Forcing.T: %s follows %s", frc.T[j].Format("2006-01-02"), frc.T[j-1].Format("2006-01-02"))
		}
	}
	chk := func(name string, g [][]float64) {
		if len(g) != nt {
			err = multierr.Append(err, fmt.Errorf("Forcing.%s: %d days, expected %d", name, len(g), nt))
			return
		}
		for j, r := range g {
			if len(r) != nc {
				err = multierr.Append(err, fmt.Errorf("Forcing.%s day %d: %d values for %d cells", name, j, len(r), nc))
				return
			}
		}
	}
	chk("Prec", frc.Prec)
	chk("PETw", frc.PETw)
	chk("SurfaceRunoff", frc.SurfaceRunoff)
	chk("GroundwaterRunoff", frc.GroundwaterRunoff)
	if needTemp {
		chk("Temp", frc.Temp)
	}
	return
}

// Climatology returns the mean daily precipitation and potential evaporation
// [mm] of every cell by calendar month.
func (frc *Forcing) Climatology(nc int) (prec, pet [][12]float64) {
	prec, pet = make([][12]float64, nc), make([][12]float64, nc)
	var n [12]float64
	for j, t := range frc.T {
		m := t.Month() - 1
		n[m]++
		for i := 0; i < nc; i++ {
			prec[i][m] += frc.Prec[j][i]
			pet[i][m] += frc.PETw[j][i]
		}
	}
	for m, c := range n {
		if c == 0. {
			continue
		}
		for i := 0; i < nc; i++ {
			prec[i][m] /= c
			pet[i][m] /= c
		}
	}
	return
}

// firstYear returns the indices of the days of the first calendar year
func (frc *Forcing) firstYear() []int {
	var js []int
	for j, t := range frc.T {
		if t.Year() != frc.T[0].Year() {
			break
		}
		js = append(js, j)
	}
	return js
}

func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	nt := len(frc.T)
	if nt == 0 {
		return
	}
	nc := len(frc.Prec[0])
	fmt.Printf(" %s to %s, daily (%d timesteps), %d cells\n", frc.T[0].Format("2006-01-02"), frc.T[nt-1].Format("2006-01-02"), nt, nc)

	sp, se, sr := 0., 0., 0.
	for j := range frc.T {
		sp += floats.Sum(frc.Prec[j])
		se += floats.Sum(frc.PETw[j])
		sr += floats.Sum(frc.SurfaceRunoff[j]) + floats.Sum(frc.GroundwaterRunoff[j])
	}
	f := 365.24 / float64(nt) / float64(nc)
	fmt.Printf(" totals (/yr): Prec: %.1f   PETw: %.1f   Runoff: %.1f\n", sp*f, se*f, sr*f)
}

func (frc *Forcing) SaveGob(fp string) error {
	if err := saveGob(fp, frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %w", err)
	}
	return nil
}

func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	if err := loadGob(fp, &frc); err != nil {
		return nil, fmt.Errorf(" LoadGobForcing %w", err)
	}
	return &frc, nil
}
