package wbody

import "math"

// Channel holds the static river attributes of a cell
type Channel struct {
	Length    float64 // [km]
	Slope     float64 // [-]
	Roughness float64 // Manning's n
	Bankfull  float64 // [m³/s]
}

// BankfullWidth is the regression channel width at bankfull flow bf [m³/s], in [m]
func BankfullWidth(bf float64) float64 { return 2.71 * math.Pow(bf, .557) }

// Depth is the regression flow depth at discharge q [m³/s], in [m]
func Depth(q float64) float64 { return .349 * math.Pow(q, .341) }

// BottomWidth of a trapezoidal channel with 2:1 side slopes, in [m]
func BottomWidth(bf float64) float64 { return BankfullWidth(bf) - 2.*2.*Depth(bf) }

// Velocity returns the river flow velocity [km/d]. When variable is false the
// default velocity is used, otherwise Manning's equation over a trapezoidal
// channel estimated from bankfull flow, driven by today's inflow [mm km²]
// capped at bankfull.
func (c Channel) Velocity(variable bool, def, inflow float64) float64 {
	if !variable {
		return def
	}
	q := inflow * 1000. / secperday // [m³/s]
	if q > c.Bankfull {
		q = c.Bankfull
	}
	bf := math.Max(c.Bankfull, minbf)
	d, b := Depth(q), BottomWidth(bf)
	a := d * (2.*d + b)         // [m²]
	p := b + 2.*d*math.Sqrt(5.) // [m]
	v := 1. / c.Roughness * math.Pow(a/p, 2./3.) * math.Sqrt(c.Slope) * kmperday
	if v < minvel || math.IsNaN(v) {
		return minvel
	}
	return v
}

// PET is the evaporation from the open river surface [mm km²] given
// potential evaporation pet [mm]
func (c Channel) PET(pet float64) float64 {
	bf := math.Max(c.Bankfull, minbf)
	w := (BottomWidth(bf) + BankfullWidth(bf)) / 2. / 1000. // [km]
	return pet * w * c.Length
}

// Duration is the residence time [d] of water in the segment
func (c Channel) Duration(v float64) float64 { return c.Length / v }
