package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryOrdering(t *testing.T) {
	ctx := context.Background()
	q := NewMemory[int]()

	for i := 0; i < 5; i++ {
		if err := q.Put(ctx, i); err != nil {
			t.Fatalf("putting %d: %v", i, err)
		}
	}

	for want := 0; want < 5; want++ {
		got, err := q.Get(ctx)
		if err != nil {
			t.Fatalf("getting: %v", err)
		}
		if got != want {
			t.Errorf("Get() = %d, want %d", got, want)
		}
	}
}

func TestMemoryGetBlocksUntilPut(t *testing.T) {
	ctx := context.Background()
	q := NewMemory[string]()

	var wg sync.WaitGroup
	var got string
	var getErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		got, getErr = q.Get(ctx)
	}()

	// Give the receiver a moment to block before delivering.
	time.Sleep(10 * time.Millisecond)
	if err := q.Put(ctx, "hello"); err != nil {
		t.Fatalf("putting: %v", err)
	}

	wg.Wait()
	if getErr != nil {
		t.Fatalf("getting: %v", getErr)
	}
	if got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}

func TestMemoryGetHonorsContext(t *testing.T) {
	q := NewMemory[int]()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := q.Get(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

func TestMemoryConcurrentReceivers(t *testing.T) {
	ctx := context.Background()
	q := NewMemory[int]()

	const n = 20
	results := make(chan int, n)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := q.Get(ctx)
				if err != nil {
					return
				}
				results <- v
				if v == -1 {
					return
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		q.Put(ctx, i)
	}

	seen := make(map[int]bool)
	for r := 0; r < n; r++ {
		seen[<-results] = true
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			t.Errorf("event %d never delivered", i)
		}
	}

	// Unblock the receivers.
	for g := 0; g < 4; g++ {
		q.Put(ctx, -1)
	}
	wg.Wait()
}
