package producer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/queue"
	"github.com/trialworks/samplegen/internal/registry"
)

// State is the worker lifecycle phase. Transitions are one-way:
// Running -> Draining on the terminal trial-start event, Draining -> Stopped
// once every spawned task has completed.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Config tunes the worker's retry-by-requeue behavior.
type Config struct {
	// RequeueDelay is how long the retrieval loop pauses after requeueing an
	// unresolvable trial, so a trial whose metadata is slow to land does not
	// spin the loop.
	RequeueDelay time.Duration

	// MaxRequeueAttempts caps requeues per trial; zero means retry without
	// bound, matching the at-least-once admission guarantee.
	MaxRequeueAttempts int
}

// Worker owns the retrieval loop: it receives trial-start announcements,
// resolves trial metadata, fans out one producer task per trial, and
// guarantees an ordered shutdown ending with the terminal sample event.
type Worker struct {
	started  queue.Queue[models.TrialStartedEvent]
	samples  queue.Queue[models.SampleEvent]
	impl     Impl
	store    datastore.Client
	registry *registry.Client
	cfg      Config

	state atomic.Int32

	mu     sync.Mutex
	active map[string]struct{}
}

// NewWorker creates a worker bound to a channel pair, an implementation, and
// the shared directory/registry clients.
func NewWorker(
	started queue.Queue[models.TrialStartedEvent],
	samples queue.Queue[models.SampleEvent],
	impl Impl,
	store datastore.Client,
	reg *registry.Client,
	cfg Config,
) *Worker {
	return &Worker{
		started:  started,
		samples:  samples,
		impl:     impl,
		store:    store,
		registry: reg,
		cfg:      cfg,
		active:   make(map[string]struct{}),
	}
}

// State reports the worker's current lifecycle phase.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Run executes the retrieval loop until the terminal trial-start event
// arrives, then drains in-flight tasks and emits exactly one terminal sample
// event. It returns the context's error on interrupt and a wrapped error on a
// loop-level failure; per-trial failures are logged and isolated, they never
// surface here.
func (w *Worker) Run(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		failed   atomic.Int64
		spawned  int
		attempts = make(map[string]int)
	)

	for {
		event, err := w.started.Get(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return fmt.Errorf("receiving trial start event: %w", err)
		}

		if event.Done {
			break
		}

		if w.isActive(event.TrialID) {
			// A requeued duplicate of a trial that has since been admitted.
			slog.Debug("trial already has an active producer, ignoring event", "trial_id", event.TrialID)
			continue
		}

		info, err := w.store.GetTrial(ctx, event.TrialID)
		if errors.Is(err, datastore.ErrTrialNotFound) {
			if err := w.requeue(ctx, event, attempts); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("resolving trial %q: %w", event.TrialID, err)
		}
		delete(attempts, event.TrialID)

		slog.Debug("trial started", "trial_id", info.TrialID, "trial_idx", event.TrialIdx)

		session := newSession(event.TrialIdx, info, w.samples, w.store, w.registry, w.impl)
		w.setActive(info.TrialID, true)
		spawned++
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer w.setActive(info.TrialID, false)
			if err := session.run(ctx); err != nil {
				failed.Add(1)
			}
		}()
	}

	w.state.Store(int32(StateDraining))
	slog.Info("trial start stream ended, draining producer tasks", "spawned", spawned)
	wg.Wait()

	// An interrupt during the drain is an abnormal exit; the terminal event
	// marks only a completed shutdown.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := w.samples.Put(ctx, models.SampleEvent{Done: true}); err != nil {
		return fmt.Errorf("emitting terminal sample event: %w", err)
	}
	w.state.Store(int32(StateStopped))
	slog.Info("sample production stopped", "spawned", spawned, "failed", failed.Load())
	return nil
}

// requeue re-appends an unresolvable trial-start event at the tail of its
// channel. A failed requeue is fatal: silently losing the event would break
// at-least-once delivery of the trial start.
func (w *Worker) requeue(ctx context.Context, event models.TrialStartedEvent, attempts map[string]int) error {
	attempts[event.TrialID]++
	if w.cfg.MaxRequeueAttempts > 0 && attempts[event.TrialID] > w.cfg.MaxRequeueAttempts {
		slog.Error("trial metadata never became resolvable, dropping trial",
			"trial_id", event.TrialID,
			"attempts", attempts[event.TrialID]-1,
		)
		delete(attempts, event.TrialID)
		return nil
	}

	slog.Warn("trial not found in the trial datastore, retrying later", "trial_id", event.TrialID)
	if err := w.started.Put(ctx, event); err != nil {
		return fmt.Errorf("requeueing start event for trial %q: %w", event.TrialID, err)
	}

	if w.cfg.RequeueDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.RequeueDelay):
		}
	}
	return nil
}

func (w *Worker) isActive(trialID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.active[trialID]
	return ok
}

func (w *Worker) setActive(trialID string, active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if active {
		w.active[trialID] = struct{}{}
	} else {
		delete(w.active, trialID)
	}
}
