package models

// TrialStartedEvent announces on the trial-started channel that the
// orchestrator has begun a new trial. An event with Done set is the terminal
// sentinel: it carries no trial identity and is the last event ever delivered
// on its channel.
type TrialStartedEvent struct {
	TrialID  string `cbor:"trial_id"`
	TrialIdx int    `cbor:"trial_idx"`
	Done     bool   `cbor:"done,omitempty"`
}

// SampleEvent carries one produced sample on the sample channel. The worker
// emits exactly one terminal instance (Done set, no sample) after every
// in-flight producer task has completed.
type SampleEvent struct {
	TrialID  string `cbor:"trial_id"`
	TrialIdx int    `cbor:"trial_idx"`
	Sample   Sample `cbor:"sample"`
	Done     bool   `cbor:"done,omitempty"`
}
