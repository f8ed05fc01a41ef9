package wbody

import "math"

// Flux holds the daily exchange terms of one compartment [mm km²]
type Flux struct {
	Inflow, Evapo, Outflow, Overflow float64
}

// Kinetics routes water through a storage: given storage s after evaporation,
// inflow in and maximum storage smax, it returns the new storage and the
// routed outflow such that sto = s + in - q.
type Kinetics interface {
	Route(s, in, smax float64) (sto, q float64)
}

// Linear is the linear reservoir (Maniak) with residence time K [d]
type Linear struct{ K float64 }

func (l Linear) Route(s, in, _ float64) (float64, float64) {
	x := math.Exp(-1. / l.K)
	sto := s*x + in*l.K*(1.-x)
	return sto, in + s - sto
}

// Nonlinear drains Q = S/K·(S/Smax)^Exp from storage after adding inflow
type Nonlinear struct{ K, Exp float64 }

func (n Nonlinear) Route(s, in, smax float64) (float64, float64) {
	s += in
	if smax < nearzero {
		return 0., s
	}
	q := s / n.K * math.Pow(s/smax, n.Exp)
	return s - q, q
}

// Body is one compartment type: its outflow kinetics and evaporation reduction exponent
type Body struct {
	Kin Kinetics
	Exp float64
}

// Update runs one day of the shared water balance on r: evaporation over area
// [km²] is removed first, then inflow plus precipitation [mm] over area is
// routed, then storage is clamped to [0, Cap]. It returns the total outflow
// (routed + overflow) passed on to the next compartment.
func (b Body) Update(r *Res, area, prec, pet, inflow float64) (float64, Flux) {
	var f Flux
	f.Evapo = r.Evaporate(pet, area, b.Exp)
	f.Inflow = inflow + prec*area
	r.Sto, f.Outflow = b.Kin.Route(r.Sto, f.Inflow, r.Cap)
	of, def := r.Clamp()
	f.Outflow += def
	f.Overflow = of
	return f.Outflow + f.Overflow, f
}
