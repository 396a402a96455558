// Package datastore is the trial directory client: it resolves announced
// trial ids to durable trial metadata and serves the recorded sample history
// of a trial.
package datastore

import (
	"context"
	"errors"

	"github.com/trialworks/samplegen/internal/models"
)

// ErrTrialNotFound reports that a trial id has been announced but its
// metadata is not durable yet. Callers are expected to retry; this is not a
// failure of the trial.
var ErrTrialNotFound = errors.New("trial not found in datastore")

// Client resolves trial metadata and recorded samples.
type Client interface {
	// GetTrial resolves a trial id to its durable metadata, or
	// ErrTrialNotFound if the record does not exist yet.
	GetTrial(ctx context.Context, trialID string) (*models.TrialInfo, error)

	// AllSamples returns the full recorded sample history of a trial, in
	// record order.
	AllSamples(ctx context.Context, info *models.TrialInfo) ([]models.Sample, error)
}
