// Package queue provides the unbounded, ordered delivery channels that
// connect the sample producer worker to the orchestrator and to the sample
// consumer. Both ends of a channel may live in different processes.
package queue

import "context"

// Queue is an unbounded FIFO channel of events. Put appends at the tail and
// never blocks on capacity; Get blocks until an event is available or the
// context is done. Events are delivered in send order.
type Queue[T any] interface {
	Put(ctx context.Context, item T) error
	Get(ctx context.Context) (T, error)
}
