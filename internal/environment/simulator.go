package environment

import (
	"context"
	"math"
)

// Action is one actor's action for a step. An empty value set means the actor
// declined to act this step; for a teacher actor that leaves the player's
// action in force.
type Action struct {
	Values []float64
}

// IsNil reports whether the action carries no value.
func (a Action) IsNil() bool {
	return len(a.Values) == 0
}

// StepResult is the outcome of one simulation step.
type StepResult struct {
	Observation []float64
	Reward      float64
	Terminated  bool
	Truncated   bool
}

// Simulator is the per-trial simulation boundary.
type Simulator interface {
	// Reset starts a fresh episode and returns the initial observation.
	Reset(ctx context.Context, seed int64) ([]float64, error)

	// Step advances the simulation by one action.
	Step(ctx context.Context, action Action) (StepResult, error)

	Close() error
}

// clip bounds action values to [low, high] element-wise. Values beyond the
// bounded dimensions pass through unchanged; the simulation rejects
// mis-shaped actions itself.
func clip(values, low, high []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i := 0; i < min(len(values), len(low)); i++ {
		out[i] = math.Min(math.Max(values[i], low[i]), high[i])
	}
	return out
}
