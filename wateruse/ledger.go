package wateruse

// Allocation selects how unsatisfied demand is redistributed
type Allocation int

const (
	// SpatialTemporal carries demand to later days and to other cells
	SpatialTemporal Allocation = iota
	// Spatial satisfies demand from neighbouring and downstream cells only
	Spatial
	// Temporal carries demand to later days only
	Temporal
)

// Storages are the abstractable storages of all cells [mm km²]
type Storages struct {
	River, Reservoir, GloLake, LocLake []float64
}

// Ledger tracks actual and unsatisfied surface water use
type Ledger struct {
	*Cells
	Alloc       Allocation
	Unsatisfied []float64 // carried demand, reset every January 1st [mm km²]
	Actual      []float64 // today's abstraction, by the cell drained [mm km²]

	// Legacy reproduces the redistribution of reference runs, where the
	// remainder of the last cell of the first pass is abstracted again from
	// each demand cell.
	Legacy bool
}

func NewLedger(c *Cells, alloc Allocation, legacy bool) *Ledger {
	return &Ledger{
		Cells:       c,
		Alloc:       alloc,
		Legacy:      legacy,
		Unsatisfied: make([]float64, c.Nc()),
		Actual:      make([]float64, c.Nc()),
	}
}

func (l *Ledger) ResetDay() {
	for i := range l.Actual {
		l.Actual[i] = 0.
	}
}

func (l *Ledger) ResetYear() {
	for i := range l.Unsatisfied {
		l.Unsatisfied[i] = 0.
	}
}

// Abstract takes use from the storages of cell i, in order river, reservoir
// (never below 10% of capacity), global lake, local lake. Negative use is
// returned to the river. It returns the use left unsatisfied.
func (l *Ledger) Abstract(i int, use float64, s Storages) float64 {
	u0 := use
	take := func(sto *float64, avail float64) {
		if use < avail {
			*sto -= use
			use = 0.
		} else {
			*sto -= avail
			use -= avail
		}
	}

	if use < s.River[i] {
		s.River[i] -= use
		use = 0.
	} else {
		use -= s.River[i]
		s.River[i] = 0.
	}
	if use > 0. && l.ResArea[i] > 0. {
		if fl := .1 * l.Capacity[i] * mmkm2; s.Reservoir[i] > fl {
			take(&s.Reservoir[i], s.Reservoir[i]-fl)
		}
	}
	if use > 0. && l.LakArea[i] > 0. && s.GloLake[i] > 0. {
		take(&s.GloLake[i], s.GloLake[i])
	}
	if use > 0. && l.LocLak[i] > 0. && s.LocLake[i] > 0. {
		take(&s.LocLake[i], s.LocLake[i])
	}
	l.Actual[i] += u0 - use
	return use
}

// neighbour returns the neighbour of i holding the most water, or -1
func (l *Ledger) neighbour(i int, s Storages) int {
	if i >= len(l.Neighbours) {
		return -1
	}
	nb, most := -1, 0.
	for _, k := range l.Neighbours[i] {
		if k <= 0 {
			continue
		}
		j := k - 1
		if v := s.River[j] + s.LocLake[j] + s.GloLake[j] + s.Reservoir[j]; v > most {
			nb, most = j, v
		}
	}
	return nb
}

// Subtract abstracts today's surface water use [mm km²] of every cell.
// First each cell draws on its own storages, including carried demand unless
// allocation is spatial only. Then, unless allocation is temporal only, the
// remainder is drawn from the fullest neighbour and the downstream cells.
func (l *Ledger) Subtract(use []float64, s Storages) {
	var last float64
	for i, u := range use {
		if l.Alloc != Spatial {
			u += l.Unsatisfied[i]
		}
		last = l.Abstract(i, u, s)
		l.Unsatisfied[i] = last
	}
	if l.Alloc == Temporal {
		return
	}

	for i := range use {
		rem := l.Unsatisfied[i]
		from := func(j int) float64 {
			if l.Legacy {
				return l.Abstract(i, last, s)
			}
			return l.Abstract(j, rem, s)
		}
		nb := l.neighbour(i, s)
		if nb >= 0 && (l.Legacy || rem > 0.) {
			rem = from(nb)
		}
		for d, k := l.Ds[i], 0; rem > 0. && k < l.Dsc && d >= 0; d, k = l.Ds[d], k+1 {
			if d == nb {
				continue
			}
			rem = from(d)
		}
		l.Unsatisfied[i] = rem
	}
}
