package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultPollInterval bounds how long a single blocking pop waits before the
// receive loop re-checks its context.
const DefaultPollInterval = time.Second

// Redis is a cross-process Queue backed by a redis list. Events are
// cbor-encoded; RPUSH appends at the tail and BLPOP pops from the head, so
// send order is preserved and a requeued event goes to the back of the line.
type Redis[T any] struct {
	client *redis.Client
	key    string
	poll   time.Duration
}

// NewRedis creates a queue on the given redis list key.
func NewRedis[T any](client *redis.Client, key string) *Redis[T] {
	return &Redis[T]{
		client: client,
		key:    key,
		poll:   DefaultPollInterval,
	}
}

// Put appends an event at the tail of the list.
func (q *Redis[T]) Put(ctx context.Context, item T) error {
	data, err := cbor.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding event for %s: %w", q.key, err)
	}
	if err := q.client.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("appending to %s: %w", q.key, err)
	}
	return nil
}

// Get blocks until an event is available. The blocking pop is bounded by the
// poll interval so the caller's context is honored even while no events
// arrive.
func (q *Redis[T]) Get(ctx context.Context) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		res, err := q.client.BLPop(ctx, q.poll, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, fmt.Errorf("popping from %s: %w", q.key, err)
		}
		// BLPOP result is [key, value].
		var item T
		if err := cbor.Unmarshal([]byte(res[1]), &item); err != nil {
			return zero, fmt.Errorf("decoding event from %s: %w", q.key, err)
		}
		return item, nil
	}
}
