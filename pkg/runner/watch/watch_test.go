package watch

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

func init() {
	color.NoColor = true
}

// syncBuffer guards a buffer written by the watch loop and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

var _ io.Writer = (*syncBuffer)(nil)

func TestAffects(t *testing.T) {
	assert.True(t, Affects(store.Event{Type: store.EventWeekChanged, Week: "2026-W03"}, "2026-W03"))
	assert.False(t, Affects(store.Event{Type: store.EventWeekChanged, Week: "2026-W04"}, "2026-W03"))
	assert.True(t, Affects(store.Event{Type: store.EventWeeksInvalidated}, "2026-W03"))
}

func TestWatchReprintsOnChange(t *testing.T) {
	mem := store.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		w := Watch{Week: "2026-W03", Persistence: mem, Out: out}
		done <- w.Do(ctx)
	}()

	require.Eventually(t, func() bool {
		ok, _ := mem.Exists(ctx, "2026-W03")
		return ok
	}, time.Second, 10*time.Millisecond)

	// The watcher subscribes after the first print.
	require.Eventually(t, func() bool {
		_, _ = mem.Put(ctx, &week.Week{ID: "2026-W03", Roles: []week.Role{{ID: "r", Name: "Garden"}}})
		return strings.Contains(out.String(), "Garden")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
