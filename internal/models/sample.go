package models

// Sample is one unit of recorded interaction data attributed to a trial: a
// single observation/action/reward step. The worker treats it as opaque; only
// environment implementations and reporting tools look inside.
type Sample struct {
	TickID            int       `cbor:"tick_id"`
	Observation       []float64 `cbor:"observation,omitempty"`
	Action            []float64 `cbor:"action,omitempty"`
	Reward            float64   `cbor:"reward"`
	OverriddenPlayers []string  `cbor:"overridden_players,omitempty"`
	Terminal          bool      `cbor:"terminal,omitempty"`
}
