package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/ftf/pkg/week"
)

// Memory is a Persistence that keeps snapshots in process memory. It backs
// the "memory" backend and tests.
type Memory struct {
	mu       sync.Mutex
	weeks    map[week.ID]*week.Week
	watchers []chan Event
	failPuts error
}

// NewMemory returns an empty in-memory store seeded with weeks.
func NewMemory(weeks ...*week.Week) *Memory {
	m := &Memory{weeks: make(map[week.ID]*week.Week)}
	for _, w := range weeks {
		if w != nil {
			m.weeks[w.ID] = w.Clone()
		}
	}
	return m
}

// FailPuts makes every following Put return err without storing anything.
// A nil err restores normal behavior.
func (m *Memory) FailPuts(err error) {
	m.mu.Lock()
	m.failPuts = err
	m.mu.Unlock()
}

func (m *Memory) Get(_ context.Context, id week.ID) (*week.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.weeks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return w.Clone(), nil
}

func (m *Memory) Put(_ context.Context, w *week.Week) (week.ID, error) {
	if w == nil || w.ID == "" {
		return "", errors.New("store: week id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPuts != nil {
		return "", m.failPuts
	}
	snapshot := w.Clone()
	snapshot.Normalize()
	m.weeks[w.ID] = snapshot
	m.notifyLocked(Event{Type: EventWeekChanged, Week: w.ID})
	return w.ID, nil
}

func (m *Memory) Delete(_ context.Context, id week.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.weeks[id]; ok {
		delete(m.weeks, id)
		m.notifyLocked(Event{Type: EventWeekChanged, Week: id})
	}
	return nil
}

func (m *Memory) Exists(_ context.Context, id week.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.weeks[id]
	return ok, nil
}

func (m *Memory) ListAll(_ context.Context, opts ListOptions) ([]*week.Week, error) {
	m.mu.Lock()
	all := make([]*week.Week, 0, len(m.weeks))
	for _, w := range m.weeks {
		all = append(all, w.Clone())
	}
	m.mu.Unlock()
	return sortAndLimit(all, opts), nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) notifyLocked(ev Event) {
	for _, ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
