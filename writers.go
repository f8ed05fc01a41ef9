package watergap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// WriteBins writes every output as little-endian float32, grids row by row
// (day, then cell), into dir.
func (r *Results) WriteBins(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("WriteBins: %w", err)
	}
	grids := map[string][][]float64{
		"river.storage":   r.RiverStorage,
		"river.inflow":    r.InflowUpstream,
		"river.avail":     r.RiverAvail,
		"river.pet":       r.PETRiver,
		"wateruse.actual": r.ActualUse,
		"locwet.snow":     r.Snow,
	}
	for prfx, s := range map[string]*Series{
		"loclak": &r.LocLake,
		"locwet": &r.LocWetland,
		"glolak": &r.GloLake,
		"res":    &r.Reservoir,
		"glowet": &r.GloWetland,
	} {
		grids[prfx+".inflow"] = s.Inflow
		grids[prfx+".evapo"] = s.Evapo
		grids[prfx+".outflow"] = s.Outflow
		grids[prfx+".overflow"] = s.Overflow
		grids[prfx+".storage"] = s.Storage
	}

	for name, g := range grids {
		var v []float64
		for _, row := range g {
			v = append(v, row...)
		}
		if err := writeSeries(filepath.Join(dir, name+".bin"), v); err != nil {
			return err
		}
	}
	if err := writeSeries(filepath.Join(dir, "discharge.bin"), r.Discharge); err != nil {
		return err
	}
	return writeSeries(filepath.Join(dir, "velocity.bin"), r.Velocity)
}

// writeSeries stores v as little-endian float32, the layout of the
// model's binary outputs.
func writeSeries(fp string, v []float64) error {
	buf := bytes.NewBuffer(make([]byte, 0, 4*len(v)))
	for _, x := range v {
		if err := binary.Write(buf, binary.LittleEndian, float32(x)); err != nil {
			return fmt.Errorf("encode %s: %w", filepath.Base(fp), err)
		}
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write series: %w", err)
	}
	return nil
}
