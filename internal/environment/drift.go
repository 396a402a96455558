package environment

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// driftBound is the distance at which a drift episode terminates.
const driftBound = 10.0

// DriftSim is a small built-in simulation: the state drifts away from the
// origin each step and the agent's action counteracts the drift. Reward is
// the negated distance from the origin. It exists so the pipeline can run
// end to end without an external simulation service.
type DriftSim struct {
	spec  *Spec
	state []float64
	drift []float64
	steps int
}

// NewDriftSim creates a drift simulation shaped by the spec.
func NewDriftSim(spec *Spec) *DriftSim {
	return &DriftSim{spec: spec}
}

func (s *DriftSim) Reset(ctx context.Context, seed int64) ([]float64, error) {
	rng := rand.New(rand.NewSource(seed))
	s.state = make([]float64, s.spec.ObservationDim)
	s.drift = make([]float64, s.spec.ObservationDim)
	for i := range s.drift {
		s.drift[i] = rng.Float64()*0.2 - 0.1
	}
	s.steps = 0
	return append([]float64(nil), s.state...), nil
}

func (s *DriftSim) Step(ctx context.Context, action Action) (StepResult, error) {
	if s.state == nil {
		return StepResult{}, fmt.Errorf("step before reset")
	}
	if len(action.Values) != s.spec.ActionDim {
		return StepResult{}, fmt.Errorf("action has %d values, want %d", len(action.Values), s.spec.ActionDim)
	}

	var dist float64
	for i := range s.state {
		s.state[i] += s.drift[i]
		if i < len(action.Values) {
			s.state[i] += action.Values[i] * 0.1
		}
		dist += s.state[i] * s.state[i]
	}
	dist = math.Sqrt(dist)
	s.steps++

	return StepResult{
		Observation: append([]float64(nil), s.state...),
		Reward:      -dist,
		Terminated:  dist > driftBound,
		Truncated:   s.spec.MaxSteps > 0 && s.steps >= s.spec.MaxSteps,
	}, nil
}

func (s *DriftSim) Close() error {
	s.state = nil
	return nil
}
