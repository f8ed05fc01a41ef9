package watergap

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ErrCyclicTopology is returned when the drainage graph is not a tree
var ErrCyclicTopology = errors.New("cyclic drainage topology")

// Structure is the drainage topology of a basin
type Structure struct {
	Ds, Step []int   // 0-based downstream cell (-1 at the outlet); routing step (>=1)
	Order    [][]int // cells of step s+1, in ascending index order
	Nc       int     // number of cells
}

// NewStructure builds the routing order from the downstream pointers ds.
// When step is nil it is computed such that every cell comes after all of
// its upstream cells; otherwise the given steps are checked for that.
func NewStructure(ds, step []int) (*Structure, error) {
	nc := len(ds)
	if nc == 0 {
		return nil, fmt.Errorf("NewStructure: no cells")
	}
	for i, d := range ds {
		if d < -1 || d >= nc {
			return nil, fmt.Errorf("NewStructure: cell %d drains to %d, expected -1..%d", i, d, nc-1)
		}
	}
	stp, err := routingSteps(ds)
	if err != nil {
		return nil, fmt.Errorf("NewStructure: %w", err)
	}
	if step != nil {
		if len(step) != nc {
			return nil, fmt.Errorf("NewStructure: %d routing steps for %d cells", len(step), nc)
		}
		for i, d := range ds {
			if step[i] < 1 {
				return nil, fmt.Errorf("NewStructure: cell %d has routing step %d", i, step[i])
			}
			if d >= 0 && step[d] <= step[i] {
				return nil, fmt.Errorf("NewStructure: cell %d (step %d) drains to cell %d of step %d", i, step[i], d, step[d])
			}
		}
		stp = append([]int(nil), step...)
	}
	return &Structure{
		Ds:    append([]int(nil), ds...),
		Step:  stp,
		Order: groupSteps(stp),
		Nc:    nc,
	}, nil
}

// Upstream returns the cells draining directly into each cell
func (s *Structure) Upstream() [][]int {
	up := make([][]int, s.Nc)
	for i, d := range s.Ds {
		if d >= 0 {
			up[d] = append(up[d], i)
		}
	}
	return up
}

// Outlets returns the cells draining out of the basin
func (s *Structure) Outlets() (o []int) {
	for i, d := range s.Ds {
		if d < 0 {
			o = append(o, i)
		}
	}
	return
}

func (s *Structure) CheckAndPrint(log logr.Logger) {
	heads := 0
	for _, u := range s.Upstream() {
		if len(u) == 0 {
			heads++
		}
	}
	log.Info("structure", "cells", s.Nc, "steps", len(s.Order), "outlets", len(s.Outlets()), "head cells", heads)
}

func (s *Structure) SaveGob(fp string) error {
	if err := saveGob(fp, s); err != nil {
		return fmt.Errorf(" structure.SaveGob %w", err)
	}
	return nil
}

// LoadGobStructure reads a structure and rebuilds its routing order
func LoadGobStructure(fp string) (*Structure, error) {
	var strc Structure
	if err := loadGob(fp, &strc); err != nil {
		return nil, fmt.Errorf(" LoadGobStructure %w", err)
	}
	return NewStructure(strc.Ds, strc.Step)
}
