// Package environment contains a representative sample-producer
// implementation that drives one simulated environment per trial. The
// pipeline core consumes it only through the producer.Impl contract.
package environment

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Spec describes an environment, parsed from an env.toml file.
type Spec struct {
	Name           string    `toml:"name"`
	ObservationDim int       `toml:"observation_dim"`
	ActionDim      int       `toml:"action_dim"`
	ActionLow      []float64 `toml:"action_low,omitempty"`
	ActionHigh     []float64 `toml:"action_high,omitempty"`
	MaxSteps       int       `toml:"max_steps"`
	TurnBased      bool      `toml:"turn_based"`
	NumPlayers     int       `toml:"num_players"`
}

// DefaultSpec returns a Spec with default values.
func DefaultSpec() Spec {
	return Spec{
		ObservationDim: 1,
		ActionDim:      1,
		MaxSteps:       1000,
		NumPlayers:     1,
	}
}

// LoadSpec loads and validates an env.toml file.
func LoadSpec(path string) (*Spec, error) {
	spec := DefaultSpec()
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return nil, fmt.Errorf("parsing environment spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment spec %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the spec for internal consistency.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.ObservationDim < 1 {
		return fmt.Errorf("observation_dim must be positive, got %d", s.ObservationDim)
	}
	if s.ActionDim < 1 {
		return fmt.Errorf("action_dim must be positive, got %d", s.ActionDim)
	}
	if s.NumPlayers != 1 {
		return fmt.Errorf("exactly one player is supported, got %d", s.NumPlayers)
	}
	if len(s.ActionLow) != len(s.ActionHigh) {
		return fmt.Errorf("action_low and action_high must have the same length")
	}
	if len(s.ActionLow) > 0 && len(s.ActionLow) != s.ActionDim {
		return fmt.Errorf("action bounds must match action_dim %d, got %d", s.ActionDim, len(s.ActionLow))
	}
	for i := range s.ActionLow {
		if s.ActionLow[i] > s.ActionHigh[i] {
			return fmt.Errorf("action bound %d inverted: low %v > high %v", i, s.ActionLow[i], s.ActionHigh[i])
		}
	}
	return nil
}

// Bounded reports whether the action space carries box bounds.
func (s *Spec) Bounded() bool {
	return len(s.ActionLow) > 0
}
