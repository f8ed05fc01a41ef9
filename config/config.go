// Package config reads the YAML run file of a simulation.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/JKupzig/WaterGAPLite/state"
	"github.com/JKupzig/WaterGAPLite/wbody"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSetting is returned for out-of-range setting enumerations
var ErrInvalidSetting = errors.New("invalid setting")

// Config is a complete run definition
type Config struct {
	RunID       string       `yaml:"run_id"`
	Paths       Paths        `yaml:"paths"`
	Settings    Settings     `yaml:"settings"`
	Constants   Constants    `yaml:"constants"`
	Warmup      Warmup       `yaml:"warmup"`
	State       state.Config `yaml:"state"`
	Metrics     Metrics      `yaml:"metrics"`
	Concurrency int          `yaml:"concurrency"` // cells of a routing step processed in parallel, <2 runs serially
}

// Paths to the gob-encoded inputs and the output directory
type Paths struct {
	Structure  string `yaml:"structure"`
	Parameters string `yaml:"parameters"`
	Forcing    string `yaml:"forcing"`
	Demand     string `yaml:"demand"`
	Output     string `yaml:"output"`
}

// Settings are the integer switches of a run
type Settings struct {
	WaterUseType       int  `yaml:"water_use_type"`       // 0 off, 1 consumptive, 2 with transfer
	WaterUseAllocation int  `yaml:"water_use_allocation"` // 0 spatial and temporal, 1 spatial, 2 temporal
	FlowVelocity       int  `yaml:"flow_velocity"`        // 0 constant, 1 variable
	GapYear            int  `yaml:"gap_year"`             // 1 skips 29 February
	ReservoirType      int  `yaml:"reservoir_type"`       // 1 treats all reservoirs as global lakes
	ReservoirAlgorithm int  `yaml:"reservoir_algorithm"`  // 0 Hanasaki, 1 Schneider, 2 run-of-river
	SplitType          int  `yaml:"split_type"`
	CalcLong           int  `yaml:"calc_long"`
	SystemValues       int  `yaml:"system_values"`     // 0 none, 1 load, 2 save, 3 load and save
	OldRiverRouting    int  `yaml:"old_river_routing"` // 1 uses the legacy river formula
	RiverEvaporation   int  `yaml:"river_evaporation"`
	WetlandSnow        int  `yaml:"wetland_snow"`
	LegacySpatialUse   bool `yaml:"legacy_spatial_use"`
	EFlow              bool `yaml:"eflow"`
}

func (s Settings) SkipLeap() bool { return s.GapYear == 1 }
func (s Settings) LoadState() bool { return s.SystemValues == 1 || s.SystemValues == 3 }
func (s Settings) SaveState() bool { return s.SystemValues == 2 || s.SystemValues == 3 }
func (s Settings) FoldReservoirs() bool { return s.ReservoirType == 1 }

// Constants are the model constants
type Constants struct {
	LakeDepth                  float64 `yaml:"lake_depth"`    // [km]
	WetlandDepth               float64 `yaml:"wetland_depth"` // [km]
	LakeOutflowExp             float64 `yaml:"lake_outflow_exp"`
	WetlandOutflowExp          float64 `yaml:"wetland_outflow_exp"`
	EvapoReductionExp          float64 `yaml:"evapo_reduction_exp"`
	EvapoReductionExpReservoir float64 `yaml:"evapo_reduction_exp_reservoir"`
	GloStorageFactor           float64 `yaml:"glo_storage_factor"`     // [d]
	LocStorageFactor           float64 `yaml:"loc_storage_factor"`     // [d]
	DefaultRiverVelocity       float64 `yaml:"default_river_velocity"` // [km/d]
	DownstreamCells            int     `yaml:"downstream_cells"`
	SnowThreshold              float64 `yaml:"snow_threshold"` // [°C]
	SnowFreezeTemp             float64 `yaml:"snow_freeze_temp"`
	SnowMeltTemp               float64 `yaml:"snow_melt_temp"`
	MaxDegreeDays              float64 `yaml:"max_degree_days"`
}

// Body returns the water body constants
func (c Constants) Body() wbody.Params {
	return wbody.Params{
		LakeDepth:         c.LakeDepth,
		WetlandDepth:      c.WetlandDepth,
		LakeOutflowExp:    c.LakeOutflowExp,
		WetlandOutflowExp: c.WetlandOutflowExp,
		EvapoExp:          c.EvapoReductionExp,
		EvapoExpReservoir: c.EvapoReductionExpReservoir,
		GloStorageFactor:  c.GloStorageFactor,
		LocStorageFactor:  c.LocStorageFactor,
		DefaultVelocity:   c.DefaultRiverVelocity,
	}
}

func (c Constants) Snow() wbody.Snow {
	return wbody.Snow{
		Threshold:     c.SnowThreshold,
		FreezeTemp:    c.SnowFreezeTemp,
		MeltTemp:      c.SnowMeltTemp,
		MaxDegreeDays: c.MaxDegreeDays,
	}
}

// Warmup repeats the first simulation year before the run
type Warmup struct {
	Years int  `yaml:"years"`
	Fill  bool `yaml:"fill"` // start from full water bodies
}

// Metrics export; an empty Textfile disables it
type Metrics struct {
	Textfile string `yaml:"textfile"`
}

// Default returns a configuration holding the standard model constants
func Default() Config {
	return Config{
		RunID: "watergap",
		Constants: Constants{
			LakeDepth:                  .005,
			WetlandDepth:               .002,
			LakeOutflowExp:             1.5,
			WetlandOutflowExp:          2.5,
			EvapoReductionExp:          3.32193,
			EvapoReductionExpReservoir: 2.81383,
			GloStorageFactor:           100.,
			LocStorageFactor:           100.,
			DefaultRiverVelocity:       86.4,
			DownstreamCells:            20,
			SnowThreshold:              -5.,
			SnowFreezeTemp:             0.,
			SnowMeltTemp:               0.,
			MaxDegreeDays:              10.,
		},
		State: state.Config{Backend: state.BackendDir, Dir: "state"},
	}
}

// Load reads the YAML file fp over the defaults and validates the result
func Load(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config.Parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func inRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s = %d, expected %d..%d: %w", name, v, lo, hi, ErrInvalidSetting)
	}
	return nil
}

// Validate checks every setting enumeration and the constants
func (c *Config) Validate() error {
	s := c.Settings
	err := multierr.Combine(
		inRange("water_use_type", s.WaterUseType, 0, 2),
		inRange("water_use_allocation", s.WaterUseAllocation, 0, 2),
		inRange("flow_velocity", s.FlowVelocity, 0, 1),
		inRange("gap_year", s.GapYear, 0, 1),
		inRange("reservoir_type", s.ReservoirType, 0, 1),
		inRange("reservoir_algorithm", s.ReservoirAlgorithm, 0, 2),
		inRange("split_type", s.SplitType, 0, 1),
		inRange("calc_long", s.CalcLong, 0, 1),
		inRange("system_values", s.SystemValues, 0, 3),
		inRange("old_river_routing", s.OldRiverRouting, 0, 1),
		inRange("river_evaporation", s.RiverEvaporation, 0, 1),
		inRange("wetland_snow", s.WetlandSnow, 0, 1),
	)
	k := c.Constants
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"lake_depth", k.LakeDepth},
		{"wetland_depth", k.WetlandDepth},
		{"lake_outflow_exp", k.LakeOutflowExp},
		{"wetland_outflow_exp", k.WetlandOutflowExp},
		{"evapo_reduction_exp", k.EvapoReductionExp},
		{"evapo_reduction_exp_reservoir", k.EvapoReductionExpReservoir},
	} {
		if p.v <= 0. {
			err = multierr.Append(err, fmt.Errorf("%s = %v, must be positive: %w", p.name, p.v, ErrInvalidSetting))
		}
	}
	if k.GloStorageFactor <= 0. || k.LocStorageFactor <= 0. {
		err = multierr.Append(err, fmt.Errorf("storage factors must be positive: %w", ErrInvalidSetting))
	}
	if k.DefaultRiverVelocity <= 0. {
		err = multierr.Append(err, fmt.Errorf("default_river_velocity must be positive: %w", ErrInvalidSetting))
	}
	if k.DownstreamCells < 0 {
		err = multierr.Append(err, fmt.Errorf("downstream_cells must not be negative: %w", ErrInvalidSetting))
	}
	if c.Warmup.Years < 0 {
		err = multierr.Append(err, fmt.Errorf("warmup years must not be negative: %w", ErrInvalidSetting))
	}
	if s.SystemValues > 0 && c.RunID == "" {
		err = multierr.Append(err, fmt.Errorf("run_id required to load or save state: %w", ErrInvalidSetting))
	}
	return err
}
