package queue

import (
	"context"
	"sync"
)

// Memory is an in-process Queue. It backs tests and single-process runs where
// both ends of a channel live in the same binary.
type Memory[T any] struct {
	mu    sync.Mutex
	items []T
	wake  chan struct{}
}

// NewMemory creates an empty in-process queue.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{wake: make(chan struct{})}
}

// Put appends an event at the tail and wakes any blocked receivers.
func (q *Memory[T]) Put(ctx context.Context, item T) error {
	q.mu.Lock()
	q.items = append(q.items, item)
	wake := q.wake
	q.wake = make(chan struct{})
	q.mu.Unlock()
	close(wake)
	return nil
}

// Get blocks until an event is available or the context is done.
func (q *Memory[T]) Get(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return item, nil
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-wake:
		}
	}
}

// Len reports the number of undelivered events.
func (q *Memory[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
