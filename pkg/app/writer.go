package app

import (
	"context"
	"sync"

	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

type pending struct {
	week *week.Week
	// done receives the write result when the caller waits for it.
	done chan error
}

// writer persists snapshots one at a time in the order they were queued.
// A goroutine runs only while the queue is non-empty.
type writer struct {
	p      store.Persistence
	failed func(week.ID, error)

	mu      sync.Mutex
	queue   []pending
	running bool
	idle    chan struct{}
	dirty   bool
}

func newWriter(p store.Persistence, failed func(week.ID, error)) *writer {
	return &writer{p: p, failed: failed}
}

// enqueue queues snapshot behind every earlier one. The returned channel
// yields the result of writing it.
func (w *writer) enqueue(snapshot *week.Week) <-chan error {
	done := make(chan error, 1)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, pending{week: snapshot, done: done})
	w.dirty = true
	if !w.running {
		w.running = true
		w.idle = make(chan struct{})
		go w.run(w.idle)
	}
	return done
}

func (w *writer) run(idle chan struct{}) {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			w.running = false
			close(idle)
			w.mu.Unlock()
			return
		}
		next := w.queue[0]
		w.queue[0] = pending{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		_, err := w.p.Put(context.Background(), next.week)

		w.mu.Lock()
		if err == nil && len(w.queue) == 0 {
			w.dirty = false
		}
		w.mu.Unlock()

		next.done <- err
		if err != nil && w.failed != nil {
			w.failed(next.week.ID, err)
		}
	}
}

func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) synced() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.dirty
}
