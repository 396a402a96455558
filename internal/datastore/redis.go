package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"

	"github.com/trialworks/samplegen/internal/models"
)

// DefaultResolveTimeout bounds a single metadata resolution call.
const DefaultResolveTimeout = 60 * time.Second

// RedisClient is a Client backed by redis. Trial metadata lives at
// trial:<id> as a cbor blob; the recorded sample history lives in the list
// trial:<id>:samples.
type RedisClient struct {
	client         *redis.Client
	resolveTimeout time.Duration
}

// NewRedisClient creates a client. A non-positive resolveTimeout falls back
// to DefaultResolveTimeout.
func NewRedisClient(client *redis.Client, resolveTimeout time.Duration) *RedisClient {
	if resolveTimeout <= 0 {
		resolveTimeout = DefaultResolveTimeout
	}
	return &RedisClient{client: client, resolveTimeout: resolveTimeout}
}

func trialKey(trialID string) string {
	return "trial:" + trialID
}

func samplesKey(trialID string) string {
	return "trial:" + trialID + ":samples"
}

// GetTrial resolves trial metadata. A missing record is ErrTrialNotFound,
// never a call failure; the call itself is bounded by the resolve timeout.
func (c *RedisClient) GetTrial(ctx context.Context, trialID string) (*models.TrialInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.resolveTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, trialKey(trialID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("resolving trial %q: %w", trialID, ErrTrialNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving trial %q: %w", trialID, err)
	}

	var info models.TrialInfo
	if err := cbor.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decoding trial %q metadata: %w", trialID, err)
	}
	return &info, nil
}

// AllSamples returns the full recorded sample history of a trial.
func (c *RedisClient) AllSamples(ctx context.Context, info *models.TrialInfo) ([]models.Sample, error) {
	raw, err := c.client.LRange(ctx, samplesKey(info.TrialID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching samples for trial %q: %w", info.TrialID, err)
	}

	samples := make([]models.Sample, 0, len(raw))
	for i, item := range raw {
		var sample models.Sample
		if err := cbor.Unmarshal([]byte(item), &sample); err != nil {
			return nil, fmt.Errorf("decoding sample %d of trial %q: %w", i, info.TrialID, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// RecordTrial writes trial metadata, making the trial id resolvable. It is
// the orchestrator-side half of the directory contract.
func (c *RedisClient) RecordTrial(ctx context.Context, info *models.TrialInfo) error {
	data, err := cbor.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding trial %q metadata: %w", info.TrialID, err)
	}
	if err := c.client.Set(ctx, trialKey(info.TrialID), data, 0).Err(); err != nil {
		return fmt.Errorf("recording trial %q: %w", info.TrialID, err)
	}
	return nil
}

// AppendSample appends one sample to a trial's recorded history.
func (c *RedisClient) AppendSample(ctx context.Context, trialID string, sample models.Sample) error {
	data, err := cbor.Marshal(sample)
	if err != nil {
		return fmt.Errorf("encoding sample for trial %q: %w", trialID, err)
	}
	if err := c.client.RPush(ctx, samplesKey(trialID), data).Err(); err != nil {
		return fmt.Errorf("appending sample for trial %q: %w", trialID, err)
	}
	return nil
}
