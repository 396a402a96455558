// Package registry is the model registry handle handed to sample producer
// sessions. The pipeline core never inspects model contents; it only routes
// the handle into each per-trial session.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrModelNotFound reports that a model id has no stored version.
var ErrModelNotFound = errors.New("model not found in registry")

// Store is the backing model store.
type Store interface {
	FetchModel(ctx context.Context, modelID string) (*ModelVersion, error)
}

// Client resolves model versions, caching each model id after its first
// successful fetch. The cache is shared read-mostly state across all
// concurrently running producer tasks.
type Client struct {
	store Store

	mu    sync.Mutex
	cache map[string]*ModelVersion
}

// NewClient creates a registry client over the given store.
func NewClient(store Store) *Client {
	return &Client{
		store: store,
		cache: make(map[string]*ModelVersion),
	}
}

// Model returns the stored version of a model, fetching it on first use.
func (c *Client) Model(ctx context.Context, modelID string) (*ModelVersion, error) {
	c.mu.Lock()
	if v, ok := c.cache[modelID]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.store.FetchModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("fetching model %q: %w", modelID, err)
	}

	slog.Debug("model version fetched", "model_id", modelID, "version", v.Number)

	c.mu.Lock()
	c.cache[modelID] = v
	c.mu.Unlock()
	return v, nil
}

// Prefetch warms the cache for a set of model ids in parallel.
func (c *Client) Prefetch(ctx context.Context, modelIDs ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range modelIDs {
		id := id
		g.Go(func() error {
			_, err := c.Model(ctx, id)
			return err
		})
	}
	return g.Wait()
}

// NextVersion returns the version number a new publication of the model
// should carry: one past the stored version, or 1 for a new model id.
func NextVersion(ctx context.Context, store Store, modelID string) (int, error) {
	v, err := store.FetchModel(ctx, modelID)
	if errors.Is(err, ErrModelNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading current version of model %q: %w", modelID, err)
	}
	return v.Number + 1, nil
}
