package watergap

import (
	"github.com/JKupzig/WaterGAPLite/monitor"
	"github.com/go-logr/logr"
)

type Option func(*Evaluator)

func WithLogr(log logr.Logger) Option {
	return func(ev *Evaluator) {
		ev.log = log
	}
}

// WithProgress shows a progress bar over the simulated days
func WithProgress() Option {
	return func(ev *Evaluator) {
		ev.progress = true
	}
}

// WithConcurrency processes up to n cells of a routing step in parallel
func WithConcurrency(n int) Option {
	return func(ev *Evaluator) {
		ev.conc = n
	}
}

func WithMonitor(m *monitor.Monitor) Option {
	return func(ev *Evaluator) {
		ev.mon = m
	}
}
