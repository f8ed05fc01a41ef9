package wateruse

import (
	"errors"
	"fmt"
	"time"

	"github.com/JKupzig/WaterGAPLite/calendar"
	"go.uber.org/multierr"
)

// UseType selects which water uses are simulated
type UseType int

const (
	NoUse UseType = iota
	Consumptive
	WithTransfer // consumptive use plus water transferred to cities
)

// ErrNoData is returned when the use tables do not cover a simulated date
var ErrNoData = errors.New("no water use data")

// Demand holds the water use tables of a basin. Monthly tables start in
// January of StartYear; the transfer table is yearly.
type Demand struct {
	StartYear  int
	GW, SW     [][]float64 // net abstraction [month][cell] [m³/month]
	TF         [][]float64 // transfer to cities [year][cell] [m³/year]
	YearlyMean []float64   // long-term mean surface water demand [m³/year]
}

// Daily fills gw and sw with the daily use [mm km²/d] of every cell for the
// given month.
func (d *Demand) Daily(t UseType, year int, month time.Month, skipLeap bool, gw, sw []float64) error {
	if t == NoUse {
		for i := range gw {
			gw[i], sw[i] = 0., 0.
		}
		return nil
	}
	im := (year-d.StartYear)*12 + int(month) - 1
	if im < 0 || im >= len(d.GW) || im >= len(d.SW) {
		return fmt.Errorf("Demand.Daily %d-%02d: %w", year, month, ErrNoData)
	}
	dim := float64(calendar.DaysInMonth(month, year, skipLeap))
	for i := range gw {
		gw[i] = d.GW[im][i] / 1000. / dim
		sw[i] = d.SW[im][i] / 1000. / dim
	}
	if t == WithTransfer {
		iy := year - d.StartYear
		if iy >= len(d.TF) {
			return fmt.Errorf("Demand.Daily transfer %d: %w", year, ErrNoData)
		}
		diy := float64(calendar.DaysInYear(year, skipLeap))
		for i := range sw {
			sw[i] += d.TF[iy][i] / 1000. / diy
		}
	}
	return nil
}

// MeanDaily returns the mean daily demand [mm km²/d] of every cell and its
// allocated downstream cells.
func (d *Demand) MeanDaily(c *Cells, year int, skipLeap bool) []float64 {
	out := make([]float64, c.Nc())
	if len(d.YearlyMean) < c.Nc() {
		return out
	}
	diy := float64(calendar.DaysInYear(year, skipLeap))
	for i := range out {
		out[i] = c.DownstreamSum(i, d.YearlyMean) / 1000. / diy
	}
	return out
}

// Validate checks the table dimensions against nc cells
func (d *Demand) Validate(nc int) (err error) {
	chk := func(name string, tbl [][]float64) {
		for k, r := range tbl {
			if len(r) != nc {
				err = multierr.Append(err, fmt.Errorf("Demand.%s row %d: %d values for %d cells", name, k, len(r), nc))
				return
			}
		}
	}
	chk("GW", d.GW)
	chk("SW", d.SW)
	chk("TF", d.TF)
	if d.YearlyMean != nil && len(d.YearlyMean) != nc {
		err = multierr.Append(err, fmt.Errorf("Demand.YearlyMean: %d values for %d cells", len(d.YearlyMean), nc))
	}
	return
}
