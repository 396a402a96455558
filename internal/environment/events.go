package environment

import "context"

// Event carries one step's actions for every trial participant, indexed by
// the actor's position in the trial's participant list.
type Event struct {
	Actions              []Action
	TerminationRequested bool
}

// Source feeds step events to the adapter. Next blocks until the actors'
// actions for the step are available; ok is false once the stream has closed.
type Source interface {
	Next(ctx context.Context, observation []float64) (event Event, ok bool, err error)
}

// ScriptedSource replays a fixed list of events and then closes. Used by
// tests and offline drives.
type ScriptedSource struct {
	events []Event
	next   int
}

// Scripted builds a source over a fixed event list.
func Scripted(events ...Event) *ScriptedSource {
	return &ScriptedSource{events: events}
}

func (s *ScriptedSource) Next(ctx context.Context, observation []float64) (Event, bool, error) {
	if s.next >= len(s.events) {
		return Event{}, false, nil
	}
	event := s.events[s.next]
	s.next++
	return event, true, nil
}

// PolicySource derives every participant's action from the current
// observation with a fixed policy function. The stream never closes on its
// own; the simulation decides termination.
type PolicySource struct {
	policy func(observation []float64) []Action
}

// NewPolicySource builds a source around a policy function.
func NewPolicySource(policy func(observation []float64) []Action) *PolicySource {
	return &PolicySource{policy: policy}
}

func (s *PolicySource) Next(ctx context.Context, observation []float64) (Event, bool, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, false, err
	}
	return Event{Actions: s.policy(observation)}, true, nil
}
