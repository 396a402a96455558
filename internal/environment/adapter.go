package environment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/producer"
)

// SimulatorFactory builds the simulation for one trial.
type SimulatorFactory func(ctx context.Context, info *models.TrialInfo) (Simulator, error)

// SourceFactory connects to the action feed for one trial.
type SourceFactory func(ctx context.Context, info *models.TrialInfo) (Source, error)

// Adapter is a producer.Impl that drives one simulated environment per trial:
// it exchanges observation/action events with the trial's actors, steps the
// simulation, attributes reward to the player, and produces one sample per
// step. A trial needs exactly one player actor; a single teacher actor may
// override the player's action on any step.
type Adapter struct {
	spec      *Spec
	newSim    SimulatorFactory
	newSource SourceFactory
}

// NewAdapter creates an adapter for the given environment spec.
func NewAdapter(spec *Spec, newSim SimulatorFactory, newSource SourceFactory) *Adapter {
	return &Adapter{spec: spec, newSim: newSim, newSource: newSource}
}

// Run executes one trial's production logic.
func (a *Adapter) Run(ctx context.Context, session *producer.Session) error {
	info := session.Info()

	players := info.Players()
	if len(players) != 1 {
		return models.NewTrialError(models.ErrActorSetupInvalid,
			"trial has %d player actors, want exactly 1", len(players))
	}
	player := players[0]

	teachers := info.Teachers()
	if len(teachers) > 1 {
		return models.NewTrialError(models.ErrActorSetupInvalid,
			"trial has %d teacher actors, want at most 1", len(teachers))
	}

	sim, err := a.newSim(ctx, info)
	if err != nil {
		return models.NewTrialError(models.ErrSimulationFailed, "creating simulation: %s", err)
	}
	defer sim.Close()

	source, err := a.newSource(ctx, info)
	if err != nil {
		return models.NewTrialError(models.ErrActionFeedClosed, "connecting action feed: %s", err)
	}

	observation, err := sim.Reset(ctx, info.Seed)
	if err != nil {
		return models.NewTrialError(models.ErrSimulationFailed, "resetting simulation: %s", err)
	}

	for tick := 0; ; tick++ {
		event, ok, err := source.Next(ctx, observation)
		if err != nil {
			return fmt.Errorf("reading action feed: %w", err)
		}
		if !ok {
			// The stream closed without a final step: record the last
			// observation as the terminal sample.
			return session.Produce(ctx, models.Sample{
				TickID:      tick,
				Observation: observation,
				Terminal:    true,
			})
		}

		action, overridden, err := a.resolveAction(event, player, teachers)
		if err != nil {
			return err
		}

		result, err := sim.Step(ctx, action)
		if err != nil {
			return models.NewTrialError(models.ErrSimulationFailed, "stepping simulation: %s", err)
		}

		done := result.Terminated || result.Truncated || event.TerminationRequested
		sample := models.Sample{
			TickID:            tick,
			Observation:       result.Observation,
			Action:            action.Values,
			Reward:            result.Reward,
			OverriddenPlayers: overridden,
			Terminal:          done,
		}
		if err := session.Produce(ctx, sample); err != nil {
			return fmt.Errorf("producing sample: %w", err)
		}

		if done {
			slog.Debug("trial episode finished",
				"trial_id", info.TrialID,
				"ticks", tick+1,
				"terminated", result.Terminated,
				"truncated", result.Truncated,
			)
			return nil
		}
		observation = result.Observation
	}
}

// resolveAction picks the step's effective action: the player's, unless a
// teacher supplied a non-nil override.
func (a *Adapter) resolveAction(event Event, player models.IndexedActor, teachers []models.IndexedActor) (Action, []string, error) {
	if player.Index >= len(event.Actions) {
		return Action{}, nil, models.NewTrialError(models.ErrActionFeedClosed,
			"step event has %d actions, player is index %d", len(event.Actions), player.Index)
	}
	action := event.Actions[player.Index]

	var overridden []string
	if len(teachers) == 1 {
		teacher := teachers[0]
		if teacher.Index < len(event.Actions) {
			if teacherAction := event.Actions[teacher.Index]; !teacherAction.IsNil() {
				action = teacherAction
				overridden = []string{player.Actor.Name}
			}
		}
	}

	if a.spec.Bounded() {
		action = Action{Values: clip(action.Values, a.spec.ActionLow, a.spec.ActionHigh)}
	}
	return action, overridden, nil
}
