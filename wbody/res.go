package wbody

import "math"

// Res is the storage of one water body in one cell
type Res struct {
	Sto float64 // [mm km²]
	Cap float64 // maximum storage [mm km²]
}

// Clamp limits storage to [0, Cap]. It returns the excess above Cap (overflow)
// and the (non-positive) deficit when storage fell below zero.
func (r *Res) Clamp() (overflow, deficit float64) {
	if r.Sto > r.Cap {
		overflow = r.Sto - r.Cap
		r.Sto = r.Cap
	} else if r.Sto < 0. {
		deficit = r.Sto
		r.Sto = 0.
	}
	return
}

// Evaporate removes reduced open-water evaporation over area [km²] given
// potential evaporation pet [mm]. Storage never goes negative; the returned
// evaporation is what was actually removed [mm km²].
func (r *Res) Evaporate(pet, area, exp float64) float64 {
	e := pet * ReductionFactor(r.Sto, r.Cap, exp) * area
	r.Sto -= e
	if r.Sto < 0. {
		e += r.Sto
		r.Sto = 0.
	}
	return e
}

// ReductionFactor damps evaporation as a water body dries out:
// 1 when full, 1-(|S-Smax|/Smax)^exp otherwise.
func ReductionFactor(s, smax, exp float64) float64 {
	if s > smax || smax <= 0. {
		return 1.
	}
	return 1. - math.Pow(math.Abs(s-smax)/smax, exp)
}
