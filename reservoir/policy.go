package reservoir

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Algorithm selects the operating policy of a run
type Algorithm int

const (
	AlgHanasaki Algorithm = iota
	AlgSchneider
	AlgRunOfRiver
)

func (a Algorithm) String() string {
	switch a {
	case AlgHanasaki:
		return "hanasaki"
	case AlgSchneider:
		return "schneider"
	case AlgRunOfRiver:
		return "run-of-river"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// NewPolicy returns the policy selected by a with evaporation reduction
// exponent exp.
func NewPolicy(a Algorithm, exp float64, skipLeap bool, log logr.Logger) (Policy, error) {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	switch a {
	case AlgHanasaki:
		return Hanasaki{EvapoExp: exp}, nil
	case AlgSchneider:
		return Schneider{EvapoExp: exp, SkipLeap: skipLeap, Log: log.WithName("schneider")}, nil
	case AlgRunOfRiver:
		return RunOfRiver{EvapoExp: exp}, nil
	}
	return nil, fmt.Errorf("NewPolicy: unknown reservoir algorithm %d", int(a))
}
