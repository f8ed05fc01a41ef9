// Package wateruse abstracts daily surface water use from the storages of the
// drainage network, carrying unsatisfied demand in time and distributing it
// to neighbouring and downstream cells.
package wateruse

const mmkm2 = 1e6 // [km³] to [mm km²]

// Cells holds the static cell attributes used for abstraction
type Cells struct {
	Ds         []int       // 0-based downstream cell, -1 at the outlet
	Neighbours [][8]int    // 1-based neighbouring cells, 0 where none
	Alloc      [][]float64 // allocation coefficients of the downstream cells
	ResArea    []float64   // [km²]
	LakArea    []float64   // [km²]
	LocLak     []float64   // [%]
	Capacity   []float64   // reservoir capacity [km³]
	Dsc        int         // number of downstream cells sharing demand
}

// Nc returns the number of cells
func (c *Cells) Nc() int { return len(c.Ds) }

// DownstreamSum returns v[i] plus v of up to Dsc downstream cells weighted
// by the allocation coefficients of i. The walk stops at the outlet or at the
// first downstream reservoir.
func (c *Cells) DownstreamSum(i int, v []float64) float64 {
	s := v[i]
	var a []float64
	if i < len(c.Alloc) {
		a = c.Alloc[i]
	}
	for d, k := c.Ds[i], 0; d >= 0 && k < c.Dsc && k < len(a); d, k = c.Ds[d], k+1 {
		if c.ResArea[d] > 0. {
			break
		}
		s += v[d] * a[k]
	}
	return s
}
