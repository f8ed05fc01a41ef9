package wbody

// Params are the constants shared by all water bodies of a run
type Params struct {
	LakeDepth, WetlandDepth           float64 // [km]
	LakeOutflowExp, WetlandOutflowExp float64
	EvapoExp, EvapoExpReservoir       float64 // evaporation reduction exponents
	GloStorageFactor                  float64 // global lake/wetland residence time [d]
	LocStorageFactor                  float64 // local lake/wetland storage factor [d]
	DefaultVelocity                   float64 // [km/d]
}

func (p Params) LocalLake() Body {
	return Body{Kin: Nonlinear{K: p.LocStorageFactor, Exp: p.LakeOutflowExp}, Exp: p.EvapoExp}
}

func (p Params) LocalWetland() Body {
	return Body{Kin: Nonlinear{K: p.LocStorageFactor, Exp: p.WetlandOutflowExp}, Exp: p.EvapoExp}
}

func (p Params) GlobalLake() Body {
	return Body{Kin: Linear{K: p.GloStorageFactor}, Exp: p.EvapoExp}
}

func (p Params) GlobalWetland() Body {
	return Body{Kin: Linear{K: p.GloStorageFactor}, Exp: p.EvapoExp}
}

// LakeCap is the maximum storage of a lake covering area [km²]
func (p Params) LakeCap(area float64) float64 { return area * p.LakeDepth * mmkm2 }

// WetlandCap is the maximum storage of a wetland covering area [km²]
func (p Params) WetlandCap(area float64) float64 { return area * p.WetlandDepth * mmkm2 }

// PercentArea converts a cell coverage percentage into area [km²]
func PercentArea(perc, cellArea float64) float64 { return perc / 100. * cellArea }
