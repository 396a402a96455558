package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by redis. The latest version of each model
// lives at model:<id> as a cbor blob.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over the given redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func modelKey(modelID string) string {
	return "model:" + modelID
}

// FetchModel reads the latest stored version of a model.
func (s *RedisStore) FetchModel(ctx context.Context, modelID string) (*ModelVersion, error) {
	data, err := s.client.Get(ctx, modelKey(modelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("model %q: %w", modelID, ErrModelNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading model %q: %w", modelID, err)
	}

	var v ModelVersion
	if err := cbor.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding model %q: %w", modelID, err)
	}
	return &v, nil
}

// PublishModel stores a model version, replacing any previous one. It is the
// trainer-side half of the registry contract.
func (s *RedisStore) PublishModel(ctx context.Context, v *ModelVersion) error {
	data, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding model %q: %w", v.ModelID, err)
	}
	if err := s.client.Set(ctx, modelKey(v.ModelID), data, 0).Err(); err != nil {
		return fmt.Errorf("publishing model %q: %w", v.ModelID, err)
	}
	return nil
}
