// Package monitor keeps run metrics of a simulation and exports them in the
// Prometheus text format.
package monitor

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/floats"
)

// Day is the basin summary of one simulated day
type Day struct {
	Storage     map[string][]float64 // per compartment, per cell [mm km²]
	Discharge   float64              // basin outflow [mm]
	ActualUse   []float64            // [mm km²]
	Unsatisfied []float64            // [mm km²]
}

// Monitor holds the metrics of a run
type Monitor struct {
	reg         *prometheus.Registry
	days        prometheus.Counter
	storage     *prometheus.GaugeVec
	discharge   prometheus.Counter
	actualUse   prometheus.Counter
	unsatisfied prometheus.Gauge
	failures    prometheus.Counter
}

func New(runID string) *Monitor {
	cl := prometheus.Labels{"run": runID}
	m := &Monitor{
		reg: prometheus.NewRegistry(),
		days: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "watergap", Name: "simulated_days_total",
			Help: "Days simulated.", ConstLabels: cl,
		}),
		storage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "watergap", Name: "storage_mmkm2",
			Help: "Basin total storage of a compartment at the end of the last simulated day.", ConstLabels: cl,
		}, []string{"compartment"}),
		discharge: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "watergap", Name: "discharge_mm_total",
			Help: "Accumulated basin discharge.", ConstLabels: cl,
		}),
		actualUse: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "watergap", Name: "actual_use_mmkm2_total",
			Help: "Accumulated surface water abstraction.", ConstLabels: cl,
		}),
		unsatisfied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "watergap", Name: "unsatisfied_use_mmkm2",
			Help: "Carried unsatisfied demand at the end of the last simulated day.", ConstLabels: cl,
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "watergap", Name: "optimizer_failures_total",
			Help: "Reservoir storage-target optimizations falling outside the class table.", ConstLabels: cl,
		}),
	}
	m.reg.MustRegister(m.days, m.storage, m.discharge, m.actualUse, m.unsatisfied, m.failures)
	return m
}

func (m *Monitor) Registry() *prometheus.Registry { return m.reg }

// Observe records one simulated day
func (m *Monitor) Observe(d Day) {
	m.days.Inc()
	for k, v := range d.Storage {
		m.storage.WithLabelValues(k).Set(floats.Sum(v))
	}
	if d.Discharge > 0. {
		m.discharge.Add(d.Discharge)
	}
	if u := floats.Sum(d.ActualUse); u > 0. {
		m.actualUse.Add(u) // return flows are not counted
	}
	m.unsatisfied.Set(floats.Sum(d.Unsatisfied))
}

func (m *Monitor) OptimizerFailure() { m.failures.Inc() }

// WriteTextfile writes all metrics to fp, e.g. for the node exporter textfile collector
func (m *Monitor) WriteTextfile(fp string) error {
	if err := prometheus.WriteToTextfile(fp, m.reg); err != nil {
		return fmt.Errorf("monitor.WriteTextfile: %w", err)
	}
	return nil
}
