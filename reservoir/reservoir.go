// Package reservoir holds the operating policies of managed reservoirs:
// the Hanasaki release rule, the Schneider monthly storage-target optimizer
// and a run-of-river pass-through.
package reservoir

import (
	"time"

	"github.com/JKupzig/WaterGAPLite/wbody"
)

const (
	mmkm2     = 1e6  // [km³] to [mm km²]
	m3        = 1e9  // [km³] to [m³]
	kmperday  = 86.4 // [m³/s] to [mm km²/d]
	secperday = 86400.
	floor     = .1 // dead storage fraction of capacity
)

// Type is the main purpose of a reservoir
type Type int

const (
	Unknown Type = iota
	Irrigation
	WaterSupply
	Hydropower
	FloodControl
	Navigation
	Recreation
	Other
)

// Reservoir holds the static attributes of a reservoir cell
type Reservoir struct {
	Area       float64 // [km²]
	Capacity   float64 // [km³]
	MeanInflow float64 // long-term mean monthly inflow [km³/month]
	Type       Type
	StartMonth time.Month // first month of the operational year
	Bankfull   float64    // [m³/s]
	Qmin7      float64    // 7-day minimum flow [m³/s]
	Qmax7      float64    // 7-day maximum flow [m³/s]
}

// Full returns the capacity in [mm km²]
func (r *Reservoir) Full() float64 { return r.Capacity * mmkm2 }

// Op is the operating state carried between days
type Op struct {
	K         float64 // release coefficient, set once per operational year
	Target    float64 // end-of-month storage target [mm km²]
	AccInflow float64 // inflow accumulated since the first of the month [mm km²]
}

// Forecast holds monthly climatologies used by the storage-target optimizer,
// indexed by calendar month (0 = January).
type Forecast struct {
	Inflow [12]float64 // [km³/month]
	PET    [12]float64 // [mm km²/d]
	Prec   [12]float64 // [mm km²/d]
}

// Input gathers today's forcing of one reservoir
type Input struct {
	Date        time.Time
	DaysInMonth int
	Prec, PET   float64 // [mm]
	Inflow      float64 // from the upstream compartments [mm km²]
	Demand      float64 // surface water use of the cell and its allocated downstream cells [mm km²/d]
	MeanDemand  float64 // [mm km²/d]
	Forecast    *Forecast
}

// Policy routes one day of water through a reservoir. s is the storage
// [mm km²], updated in place; it returns the total outflow and the day's fluxes.
type Policy interface {
	Route(r *Reservoir, s *float64, op *Op, in Input) (float64, wbody.Flux)
}
