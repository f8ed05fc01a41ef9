package watergap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JKupzig/WaterGAPLite/reservoir"
	"github.com/JKupzig/WaterGAPLite/state"
)

// ErrDimension is returned when persisted state does not match the cell count
var ErrDimension = errors.New("state dimension mismatch")

// State is the storage state of every cell [mm km²]
type State struct {
	River, RiverQ       []float64 // segment storage and previous-day outflow
	LocLake, LocWetland []float64
	GloLake, GloWetland []float64
	Reservoir           []float64
	Snow, FrozenDays    []float64 // wetland snow storage [mm], days below the snow threshold
	Op                  []reservoir.Op
	Unsatisfied         []float64 // carried surface water demand
}

func NewState(nc int) *State {
	f := func() []float64 { return make([]float64, nc) }
	return &State{
		River:       f(),
		RiverQ:      f(),
		LocLake:     f(),
		LocWetland:  f(),
		GloLake:     f(),
		GloWetland:  f(),
		Reservoir:   f(),
		Snow:        f(),
		FrozenDays:  f(),
		Op:          make([]reservoir.Op, nc),
		Unsatisfied: f(),
	}
}

// Nc returns the number of cells
func (st *State) Nc() int { return len(st.River) }

// vars lists the persisted variables; reservoir operating state is split
// into one slice per field.
func (st *State) vars() map[string][]float64 {
	nc := st.Nc()
	k, tgt, acc := make([]float64, nc), make([]float64, nc), make([]float64, nc)
	for i, o := range st.Op {
		k[i], tgt[i], acc[i] = o.K, o.Target, o.AccInflow
	}
	return map[string][]float64{
		"S_river":               st.River,
		"QA_river":              st.RiverQ,
		"S_locLakeStorage":      st.LocLake,
		"S_locWetlandStorage":   st.LocWetland,
		"S_gloLakeStorage":      st.GloLake,
		"S_gloWetlandStorage":   st.GloWetland,
		"S_ResStorage":          st.Reservoir,
		"snow_wetland":          st.Snow,
		"accum_days":            st.FrozenDays,
		"K_release":             k,
		"S_target":              tgt,
		"Q_accumulated":         acc,
		"G_totalUnsatisfiedUse": st.Unsatisfied,
	}
}

// Save writes every state variable valid on date t
func (st *State) Save(ctx context.Context, be state.Backend, runID string, t time.Time) error {
	for name, v := range st.vars() {
		if err := be.Put(ctx, state.Key{RunID: runID, Date: t, Var: name}, v); err != nil {
			return fmt.Errorf("State.Save: %w", err)
		}
	}
	return nil
}

// Load overwrites the state with the variables persisted for date t. All
// variables are read before any is applied.
func (st *State) Load(ctx context.Context, be state.Backend, runID string, t time.Time) error {
	nc := st.Nc()
	got := make(map[string][]float64)
	for name := range st.vars() {
		v, err := be.Get(ctx, state.Key{RunID: runID, Date: t, Var: name})
		if err != nil {
			return fmt.Errorf("State.Load: %w", err)
		}
		if len(v) != nc {
			return fmt.Errorf("State.Load %s: %d values for %d cells: %w", name, len(v), nc, ErrDimension)
		}
		got[name] = v
	}
	for name, dst := range st.vars() {
		copy(dst, got[name])
	}
	for i := range st.Op {
		st.Op[i] = reservoir.Op{K: got["K_release"][i], Target: got["S_target"][i], AccInflow: got["Q_accumulated"][i]}
	}
	return nil
}
