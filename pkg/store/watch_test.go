package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/ftf/pkg/week"
)

func TestPersistenceWatchEmitsWeekChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base, BackendDiskv))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	w := &week.Week{ID: "2026-W03", CreatedAt: time.Now()}
	if _, err := p.Put(ctx, w); err != nil {
		t.Fatalf("put week: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventWeeksInvalidated {
				return
			}
			if evt.Type == EventWeekChanged {
				if evt.Week != "2026-W03" {
					t.Fatalf("expected week 2026-W03, got %q", evt.Week)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for week change event")
		}
	}
}

func TestMemoryWatchEmitsOnPut(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := m.Put(ctx, &week.Week{ID: "2026-W10"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Week != "2026-W10" {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for memory event")
	}
}

func TestWeekForPath(t *testing.T) {
	if got := weekForPath("/tmp/x/weeks/2026/2026-W03"); got != "2026-W03" {
		t.Fatalf("unexpected week %q", got)
	}
	if got := weekForPath("/tmp/x/weeks/2026/tmp123"); got != "" {
		t.Fatalf("expected no week, got %q", got)
	}
}
