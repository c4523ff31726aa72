package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

const w03 week.ID = "2026-W03"

func newTestService(t *testing.T, mem *store.Memory) *Service {
	t.Helper()
	var mu sync.Mutex
	n := 0
	svc := NewService(mem, slog.New(slog.NewTextHandler(io.Discard, nil)),
		app.WithIDs(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("mcp-%d", n)
		}),
	)
	svc.now = func() time.Time { return time.Date(2026, time.January, 14, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceLoadWeekDefaultsToCurrent(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	w, err := svc.LoadWeek(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, w03, w.ID)
}

func TestServicePlanAndPersist(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := newTestService(t, mem)

	r, err := svc.AddRole(ctx, w03, "Work")
	require.NoError(t, err)
	assert.Equal(t, week.Teal, r.Color)

	g, err := svc.AddGoal(ctx, "", app.GoalInput{RoleID: r.ID, Text: "Ship"})
	require.NoError(t, err)

	p, err := svc.AddPriority(ctx, "", app.PriorityInput{GoalID: g.ID, Day: week.Monday})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Order)

	b, err := svc.AddTimeBlock(ctx, "", app.TimeBlockInput{Type: week.BlockGoal, GoalID: g.ID, Day: week.Monday, StartSlot: 2, Duration: 2})
	require.NoError(t, err)
	assert.Equal(t, r.ID, b.RoleID)

	_, err = svc.AddEveningBlock(ctx, "", app.EveningBlockInput{Type: week.BlockFreestyle, Day: week.Monday, Title: "Read"})
	require.NoError(t, err)
	_, err = svc.AddEveningBlock(ctx, "", app.EveningBlockInput{Type: week.BlockFreestyle, Day: week.Monday, Title: "Again"})
	assert.ErrorIs(t, err, app.ErrEveningSlotOccupied)

	toggled, err := svc.ToggleGoal(ctx, "", g.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	require.NoError(t, svc.Close(ctx))
	stored, err := mem.Get(ctx, w03)
	require.NoError(t, err)
	assert.Len(t, stored.Goals, 1)
	assert.Len(t, stored.DayPriorities, 1)
	assert.Len(t, stored.TimeBlocks, 1)
	assert.Len(t, stored.EveningBlocks, 1)
}

func TestServiceSwitchesWeeks(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := newTestService(t, mem)

	_, err := svc.AddRole(ctx, w03, "Work")
	require.NoError(t, err)

	// The next week starts with the roles of this one.
	w, err := svc.LoadWeek(ctx, "2026-W04")
	require.NoError(t, err)
	require.Len(t, w.Roles, 1)
	assert.Equal(t, "Work", w.Roles[0].Name)

	prev, err := svc.Week(ctx, w03)
	require.NoError(t, err)
	assert.Equal(t, w03, prev.ID)

	cur, err := svc.Week(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, week.ID("2026-W04"), cur.ID)
}

func TestServiceDrop(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemory())

	r, err := svc.AddRole(ctx, w03, "Work")
	require.NoError(t, err)
	g, err := svc.AddGoal(ctx, "", app.GoalInput{RoleID: r.ID, Text: "Ship"})
	require.NoError(t, err)

	out, err := svc.Drop(ctx, "", dnd.KindGoal, g.ID, dnd.TimeGridZone{Day: week.Thursday, Slot: 4})
	require.NoError(t, err)
	assert.Equal(t, dnd.OutcomeCreated, out.Kind)

	cur, err := svc.Week(ctx, "")
	require.NoError(t, err)
	blocks := cur.TimeBlocksFor(week.Thursday)
	require.Len(t, blocks, 1)
	assert.Equal(t, week.DefaultBlockDuration, blocks[0].Duration)

	_, err = svc.Drop(ctx, "", dnd.KindGoal, "missing", dnd.EveningZone{Day: week.Friday})
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestServiceDeleteRoleCascades(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemory())

	r, err := svc.AddRole(ctx, w03, "Work")
	require.NoError(t, err)
	g, err := svc.AddGoal(ctx, "", app.GoalInput{RoleID: r.ID, Text: "Ship"})
	require.NoError(t, err)
	_, err = svc.AddPriority(ctx, "", app.PriorityInput{GoalID: g.ID, Day: week.Friday})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(ctx, "", r.ID))
	cur, err := svc.Week(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, cur.Goals)
	assert.Empty(t, cur.DayPriorities)

	assert.ErrorIs(t, svc.DeleteGoal(ctx, "", g.ID), app.ErrNotFound)
}

func TestServiceRequiresPersistence(t *testing.T) {
	svc := &Service{Weeks: app.New(nil)}
	_, err := svc.AddRole(context.Background(), w03, "Work")
	assert.Error(t, err)
	_, err = svc.ListWeeks(context.Background())
	assert.Error(t, err)
}

func TestServiceListWeeks(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(&week.Week{ID: "2026-W01"}, &week.Week{ID: "2026-W02"})
	svc := newTestService(t, mem)

	weeks, err := svc.ListWeeks(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, week.ID("2026-W02"), weeks[0].ID)
}

func call(t *testing.T, svc *Service, method string, params any) string {
	t.Helper()
	srv := newServer("ftf", "test", svc)
	req := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	resp := srv.HandleMessage(context.Background(), raw)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func TestServerListsTools(t *testing.T) {
	out := call(t, newTestService(t, store.NewMemory()), "tools/list", nil)
	for _, name := range []string{"load_week", "get_week", "add_role", "delete_role", "add_goal", "delete_goal",
		"toggle_goal", "add_priority", "add_time_block", "add_evening_block", "drop"} {
		assert.Contains(t, out, `"`+name+`"`)
	}
}

func TestServerCallsTool(t *testing.T) {
	mem := store.NewMemory()
	svc := newTestService(t, mem)
	out := call(t, svc, "tools/call", map[string]any{
		"name":      "add_role",
		"arguments": map[string]any{"week": string(w03), "name": "Garden"},
	})
	assert.Contains(t, out, "Garden")

	require.NoError(t, svc.Close(context.Background()))
	w, err := mem.Get(context.Background(), w03)
	require.NoError(t, err)
	require.Len(t, w.Roles, 1)

	out = call(t, svc, "tools/call", map[string]any{
		"name":      "add_time_block",
		"arguments": map[string]any{"day": "mon", "start": "6:00", "title": "Early"},
	})
	assert.Contains(t, out, "not on the 8:00-19:30 grid")
}

func TestServerReadsWeekResource(t *testing.T) {
	svc := newTestService(t, store.NewMemory())
	_, err := svc.AddRole(context.Background(), w03, "Garden")
	require.NoError(t, err)

	out := call(t, svc, "resources/read", map[string]any{"uri": "ftf://weeks/2026-W03"})
	assert.Contains(t, out, "Garden")
}

func TestTemplateArg(t *testing.T) {
	assert.Equal(t, "a", templateArg("a"))
	assert.Equal(t, "b", templateArg([]string{"b"}))
	assert.Equal(t, "", templateArg(nil))
	assert.Equal(t, "", templateArg(errors.New("x")))
}
