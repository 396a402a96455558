// Package producer implements the sample-production pipeline: a worker that
// turns a stream of trial-start announcements into per-trial concurrent
// producer tasks and relays their samples to a downstream consumer.
package producer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/queue"
	"github.com/trialworks/samplegen/internal/registry"
)

// Impl is a pluggable per-trial production behavior. Run observes or drives
// one trial through its session and emits zero or more samples; the worker
// only cares whether it failed. Variants (different environments, post-hoc
// converters) are separate implementations of this interface.
type Impl interface {
	Run(ctx context.Context, session *Session) error
}

// ImplFunc adapts a plain function to an Impl.
type ImplFunc func(ctx context.Context, session *Session) error

// Run calls f.
func (f ImplFunc) Run(ctx context.Context, session *Session) error {
	return f(ctx, session)
}

// Session is the per-trial, per-task context binding handed to an Impl. It is
// constructed immediately before the task is spawned, lives exactly as long
// as the task, and is never shared across trials; no field changes after
// construction.
type Session struct {
	trialIdx int
	info     *models.TrialInfo
	samples  queue.Queue[models.SampleEvent]
	store    datastore.Client
	registry *registry.Client
	impl     Impl
}

func newSession(
	trialIdx int,
	info *models.TrialInfo,
	samples queue.Queue[models.SampleEvent],
	store datastore.Client,
	reg *registry.Client,
	impl Impl,
) *Session {
	return &Session{
		trialIdx: trialIdx,
		info:     info,
		samples:  samples,
		store:    store,
		registry: reg,
		impl:     impl,
	}
}

// TrialIdx returns the trial's index in its run.
func (s *Session) TrialIdx() int { return s.trialIdx }

// Info returns the resolved trial metadata.
func (s *Session) Info() *models.TrialInfo { return s.info }

// Registry returns the shared model registry handle.
func (s *Session) Registry() *registry.Client { return s.registry }

// Produce enqueues one sample for this trial on the sample channel. The
// channel is unbounded, so the call never waits on the consumer and never
// drops a sample.
func (s *Session) Produce(ctx context.Context, sample models.Sample) error {
	return s.samples.Put(ctx, models.SampleEvent{
		TrialID:  s.info.TrialID,
		TrialIdx: s.trialIdx,
		Sample:   sample,
	})
}

// AllSamples returns the full recorded sample history of this trial from the
// datastore, for implementations that want a post-hoc view rather than the
// live stream.
func (s *Session) AllSamples(ctx context.Context) ([]models.Sample, error) {
	return s.store.AllSamples(ctx, s.info)
}

// run executes the impl. A user interrupt is swallowed here, it is logged at
// the process level; any other failure is logged with the trial id attached
// and returned to the task's owner.
func (s *Session) run(ctx context.Context) error {
	err := s.impl.Run(ctx, s)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	slog.Error("uncaught error during sample production",
		"trial_id", s.info.TrialID,
		"trial_idx", s.trialIdx,
		"error", err,
	)
	return err
}
