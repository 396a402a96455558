package producer

import (
	"context"

	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/queue"
	"github.com/trialworks/samplegen/internal/registry"
)

// Handle tracks a running worker.
type Handle struct {
	worker *Worker
	done   chan struct{}
	err    error
}

// Start spawns a worker bound to the given channel pair and implementation in
// its own execution context and returns a handle to it. The returned handle
// is single-use: the worker runs once and cannot be restarted.
func Start(
	ctx context.Context,
	started queue.Queue[models.TrialStartedEvent],
	samples queue.Queue[models.SampleEvent],
	impl Impl,
	store datastore.Client,
	reg *registry.Client,
	cfg Config,
) *Handle {
	h := &Handle{
		worker: NewWorker(started, samples, impl, store, reg, cfg),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		h.err = h.worker.Run(ctx)
	}()
	return h
}

// Wait blocks until the worker has stopped and returns its outcome. It is
// safe to call more than once.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// State reports the worker's current lifecycle phase.
func (h *Handle) State() State {
	return h.worker.State()
}
