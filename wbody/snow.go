package wbody

import "math"

// Snow accumulates precipitation on frozen wetlands
type Snow struct {
	Threshold     float64 // temperature counting a frozen day [°C]
	FreezeTemp    float64 // [°C]
	MeltTemp      float64 // [°C]
	MaxDegreeDays float64 // frozen days until the wetland is frozen over
}

// Step advances the frozen-day counter and the snow storage [mm] of one cell
// and returns the precipitation [mm] reaching the wetland water surface.
func (s Snow) Step(days, snow *float64, temp, prec float64) float64 {
	if temp <= s.Threshold {
		*days = math.Min(*days+1., s.MaxDegreeDays)
	} else {
		*days = math.Max(*days-1., 0.)
	}
	if *days == s.MaxDegreeDays && temp <= s.FreezeTemp {
		*snow += prec
		prec = 0.
	}
	if temp > s.MeltTemp {
		m := math.Min(meltrate*math.Abs(temp-s.MeltTemp), *snow)
		*snow -= m
		prec += m
	}
	return prec
}
