package watergap

import (
	"time"

	"github.com/JKupzig/WaterGAPLite/wbody"
)

// Series holds the daily fluxes and end-of-day storage of one compartment,
// [day][cell] in [mm km²]
type Series struct {
	Inflow, Evapo, Outflow, Overflow, Storage [][]float64
}

func newSeries(nt, nc int) Series {
	return Series{
		Inflow:   newGrid(nt, nc),
		Evapo:    newGrid(nt, nc),
		Outflow:  newGrid(nt, nc),
		Overflow: newGrid(nt, nc),
		Storage:  newGrid(nt, nc),
	}
}

func (s *Series) set(j, i int, f wbody.Flux) {
	s.Inflow[j][i] = f.Inflow
	s.Evapo[j][i] = f.Evapo
	s.Outflow[j][i] = f.Outflow
	s.Overflow[j][i] = f.Overflow
}

// Results are the outputs of a run. Rows of days dropped from a 365-day
// calendar are left zero.
type Results struct {
	T []time.Time

	LocLake, LocWetland, GloLake, Reservoir, GloWetland Series

	RiverStorage   [][]float64 // end-of-day segment storage [mm km²]
	InflowUpstream [][]float64 // river inflow from upstream cells [mm km²]
	RiverAvail     [][]float64 // routed outflow of each cell over the basin area [mm]
	PETRiver       [][]float64 // open river evaporation [mm km²]
	ActualUse      [][]float64 // surface water abstraction by the cell drained [mm km²]
	Snow           [][]float64 // wetland snow storage [mm]

	Discharge []float64 // basin outflow [mm]
	Velocity  []float64 // river velocity at the outlet [m/s]
}

func newResults(t []time.Time, nc int) *Results {
	nt := len(t)
	return &Results{
		T:              t,
		LocLake:        newSeries(nt, nc),
		LocWetland:     newSeries(nt, nc),
		GloLake:        newSeries(nt, nc),
		Reservoir:      newSeries(nt, nc),
		GloWetland:     newSeries(nt, nc),
		RiverStorage:   newGrid(nt, nc),
		InflowUpstream: newGrid(nt, nc),
		RiverAvail:     newGrid(nt, nc),
		PETRiver:       newGrid(nt, nc),
		ActualUse:      newGrid(nt, nc),
		Snow:           newGrid(nt, nc),
		Discharge:      make([]float64, nt),
		Velocity:       make([]float64, nt),
	}
}

// storages copies the end-of-day state into row j
func (r *Results) storages(j int, st *State, actual []float64) {
	copy(r.LocLake.Storage[j], st.LocLake)
	copy(r.LocWetland.Storage[j], st.LocWetland)
	copy(r.GloLake.Storage[j], st.GloLake)
	copy(r.Reservoir.Storage[j], st.Reservoir)
	copy(r.GloWetland.Storage[j], st.GloWetland)
	copy(r.RiverStorage[j], st.River)
	copy(r.Snow[j], st.Snow)
	copy(r.ActualUse[j], actual)
}

func newGrid(nt, nc int) [][]float64 {
	a := make([]float64, nt*nc)
	g := make([][]float64, nt)
	for j := range g {
		g[j] = a[j*nc : (j+1)*nc : (j+1)*nc]
	}
	return g
}
