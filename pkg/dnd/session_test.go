package dnd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/uistate"
	"tableflip.dev/ftf/pkg/week"
)

func newSession(t *testing.T) (*dnd.Session, *app.WeekStore, *uistate.State) {
	t.Helper()
	w := &week.Week{
		ID:    "2026-W10",
		Roles: []week.Role{{ID: "R", Name: "Work"}},
		Goals: []week.Goal{{ID: "G", RoleID: "R", Text: "Draft"}},
	}
	s := app.New(store.NewMemory(w))
	require.NoError(t, s.LoadWeek(context.Background(), w.ID))
	state := uistate.New()
	return &dnd.Session{Engine: dnd.NewEngine(s, nil), State: state}, s, state
}

func TestSessionDrop(t *testing.T) {
	sess, s, state := newSession(t)

	sess.Start(dnd.GoalPayload{GoalID: "G", RoleID: "R", Text: "Draft"})
	target := dnd.TimeGridZone{Day: week.Monday, Slot: 2}
	sess.Hover(target)
	assert.True(t, state.IsDraggingKind(dnd.KindGoal))

	out, err := sess.End(context.Background(), state.DropTarget())
	require.NoError(t, err)
	assert.Equal(t, dnd.OutcomeCreated, out.Kind)
	assert.False(t, state.Dragging(), "drag state is cleared on drop")
	assert.Len(t, s.Current().TimeBlocks, 1)
}

func TestSessionDropOutsideZones(t *testing.T) {
	sess, s, state := newSession(t)

	sess.Start(dnd.GoalPayload{GoalID: "G"})
	sess.Hover(dnd.PrioritiesZone{Day: week.Monday})
	sess.Hover(nil)

	out, err := sess.End(context.Background(), state.DropTarget())
	require.NoError(t, err)
	assert.Equal(t, dnd.OutcomeNoop, out.Kind)
	assert.False(t, state.Dragging())
	assert.Empty(t, s.Current().DayPriorities)
}

func TestSessionCancel(t *testing.T) {
	sess, s, state := newSession(t)

	sess.Start(dnd.GoalPayload{GoalID: "G"})
	sess.Hover(dnd.PrioritiesZone{Day: week.Monday})
	sess.Cancel()

	assert.False(t, state.Dragging())
	out, err := sess.End(context.Background(), dnd.PrioritiesZone{Day: week.Monday})
	require.NoError(t, err)
	assert.Equal(t, dnd.OutcomeNoop, out.Kind, "no drag in progress")
	assert.Empty(t, s.Current().DayPriorities)
}
