package show

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

func init() {
	color.NoColor = true
}

func TestShowCreatesWeekWithPreviousRoles(t *testing.T) {
	prev := &week.Week{
		ID:        "2026-W02",
		StartDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		Roles:     []week.Role{{ID: "r1", Name: "Work", Color: week.Teal}},
	}
	mem := store.NewMemory(prev)

	var buf bytes.Buffer
	s := Show{Week: "2026-W03", Persistence: mem, Out: &buf}
	require.NoError(t, s.Do(context.Background()))

	assert.Contains(t, buf.String(), "2026-W03")
	assert.Contains(t, buf.String(), "Work")

	ok, err := mem.Exists(context.Background(), "2026-W03")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer
	s := Show{Week: "2026-W03", Format: printers.FormatJSON, Persistence: store.NewMemory(), Out: &buf}
	require.NoError(t, s.Do(context.Background()))

	var got week.Week
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, week.ID("2026-W03"), got.ID)
}

func TestShowGrid(t *testing.T) {
	var buf bytes.Buffer
	s := Show{Week: "2026-W03", Grid: true, Persistence: store.NewMemory(), Out: &buf}
	require.NoError(t, s.Do(context.Background()))
	assert.Contains(t, buf.String(), "8:00")
}

func TestShowRejectsBadWeek(t *testing.T) {
	s := Show{Week: "soon", Persistence: store.NewMemory(), Out: &bytes.Buffer{}}
	assert.Error(t, s.Do(context.Background()))

	s = Show{Week: "2026-W03"}
	assert.Error(t, s.Do(context.Background()))
}
