package watergap

import (
	"encoding/gob"
	"fmt"
	"os"
)

// routingSteps counts the depth of every cell from the head cells: a head
// cell is step 1 and a cell is one step below its deepest upstream cell.
// Cells left unvisited sit on a loop.
func routingSteps(ds []int) ([]int, error) {
	nc := len(ds)
	nus := make([]int, nc) // upstream cells not yet visited
	for _, d := range ds {
		if d >= 0 {
			nus[d]++
		}
	}
	step, queue := make([]int, nc), make([]int, 0, nc)
	for i, n := range nus {
		if n == 0 {
			step[i] = 1
			queue = append(queue, i)
		}
	}
	for k := 0; k < len(queue); k++ {
		i := queue[k]
		d := ds[i]
		if d < 0 {
			continue
		}
		if step[i]+1 > step[d] {
			step[d] = step[i] + 1
		}
		nus[d]--
		if nus[d] == 0 {
			queue = append(queue, d)
		}
	}
	if len(queue) < nc {
		for i, n := range nus {
			if n > 0 {
				return nil, fmt.Errorf("cell %d: %w", i, ErrCyclicTopology)
			}
		}
	}
	return step, nil
}

// groupSteps inverts the step of every cell into ordered groups
func groupSteps(step []int) [][]int {
	mx := 0
	for _, s := range step {
		if s > mx {
			mx = s
		}
	}
	o := make([][]int, mx)
	for i, s := range step {
		o[s-1] = append(o[s-1], i)
	}
	return o
}

func saveGob(fp string, v any) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadGob(fp string, v any) error {
	f, err := os.Open(fp)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
