package teaui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/uistate"
	"tableflip.dev/ftf/pkg/week"
)

const testWeek week.ID = "2026-W03"

var (
	space = tea.KeyPressMsg{Code: tea.KeySpace}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	right = tea.KeyPressMsg{Code: tea.KeyRight}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
)

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seeded() *store.Memory {
	return store.NewMemory(&week.Week{
		ID:        testWeek,
		StartDate: time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		Roles:     []week.Role{{ID: "r1", Name: "Work", Color: week.Teal}},
		Goals:     []week.Goal{{ID: "g1", RoleID: "r1", Text: "Ship it"}},
		TimeBlocks: []week.TimeBlock{
			{ID: "b1", Type: week.BlockGoal, GoalID: "g1", RoleID: "r1", Day: week.Monday, StartSlot: 2, Duration: 2, Title: "Ship it"},
		},
	})
}

func newModel(t *testing.T, p store.Persistence) (Model, *app.WeekStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ws := app.New(p, app.WithLogger(log))
	require.NoError(t, ws.OpenWeek(context.Background(), testWeek))
	return New(context.Background(), ws, log), ws
}

func press(t *testing.T, m Model, keys ...tea.KeyPressMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestPickGoalAndDropOnTimeGrid(t *testing.T) {
	mem := seeded()
	m, ws := newModel(t, mem)

	m = press(t, m, space)
	require.True(t, m.State().Dragging())
	assert.True(t, m.State().IsDraggingKind(dnd.KindGoal))
	assert.False(t, m.State().IsDraggingKind(dnd.KindBlock))
	assert.True(t, m.State().IsDropTargetActive(dnd.ZonePriorities, week.Monday, nil))

	// Past the empty priorities row to 10:00.
	m = press(t, m, down, down, down, down, down)
	slot := week.Slot(4)
	assert.True(t, m.State().IsDropTargetActive(dnd.ZoneTimeGrid, week.Monday, &slot))
	assert.False(t, m.State().IsDropTargetActive(dnd.ZonePriorities, week.Monday, nil))

	m = press(t, m, enter)
	assert.False(t, m.State().Dragging())
	assert.Nil(t, m.State().DropTarget())

	var created week.TimeBlock
	for _, b := range ws.Current().TimeBlocksFor(week.Monday) {
		if b.StartSlot == slot {
			created = b
		}
	}
	assert.Equal(t, "g1", created.GoalID)
	assert.Equal(t, week.DefaultBlockDuration, created.Duration)

	persisted, err := mem.Get(context.Background(), testWeek)
	require.NoError(t, err)
	assert.Len(t, persisted.TimeBlocks, 2)
}

func TestEscCancelsDrag(t *testing.T) {
	mem := seeded()
	m, ws := newModel(t, mem)
	before := ws.Current()

	m = press(t, m, space, down, down, esc)
	assert.False(t, m.State().Dragging())
	assert.Nil(t, m.State().Payload())
	assert.Nil(t, m.State().DropTarget())
	assert.Equal(t, before.TimeBlocks, ws.Current().TimeBlocks)
	assert.Empty(t, ws.Current().DayPriorities)
	assert.Contains(t, stripANSI(m.View()), "Drop cancelled")
}

func TestMoveBlockToAnotherDay(t *testing.T) {
	m, ws := newModel(t, seeded())

	// The 9:00 row on Monday holds b1.
	m = press(t, m, tab, down, down, down)
	assert.True(t, m.State().IsSelected("b1"))

	m = press(t, m, space)
	assert.True(t, m.State().IsDraggingKind(dnd.KindBlock))
	assert.Contains(t, stripANSI(m.View()), "⇢ Ship it")

	m = press(t, m, right)
	slot := week.Slot(2)
	assert.True(t, m.State().IsDropTargetActive(dnd.ZoneTimeGrid, week.Tuesday, &slot))

	m = press(t, m, enter)
	b, ok := ws.Current().TimeBlock("b1")
	require.True(t, ok)
	assert.Equal(t, week.Tuesday, b.Day)
	assert.Equal(t, slot, b.StartSlot)
}

func TestSelectionFollowsCursor(t *testing.T) {
	m, _ := newModel(t, seeded())

	m = press(t, m, down)
	assert.True(t, m.State().IsSelected("g1"))

	m = press(t, m, tab)
	assert.Empty(t, m.State().Selected(), "empty priorities row holds nothing")
}

func TestSidebarToggle(t *testing.T) {
	m, _ := newModel(t, seeded())
	assert.Contains(t, stripANSI(m.View()), "Roles")

	m = press(t, m, char('s'))
	assert.True(t, m.State().SidebarCollapsed())
	assert.NotContains(t, stripANSI(m.View()), "Roles")

	m = press(t, m, tab, char('s'))
	assert.False(t, m.State().SidebarCollapsed())
	view := stripANSI(m.View())
	assert.Contains(t, view, "Roles")
	assert.Contains(t, view, "Ship it")
}

func TestNewRoleModal(t *testing.T) {
	m, ws := newModel(t, seeded())

	m = press(t, m, char('n'))
	kind, _ := m.State().Modal()
	require.Equal(t, uistate.ModalNewRole, kind)
	assert.Contains(t, stripANSI(m.View()), "New role")

	m.input.SetValue("Health")
	m = press(t, m, enter)
	kind, _ = m.State().Modal()
	assert.Equal(t, uistate.ModalNone, kind)

	roles := ws.Current().SortedRoles()
	require.Len(t, roles, 2)
	assert.Equal(t, "Health", roles[1].Name)
}

func TestNewGoalModalUsesRoleUnderCursor(t *testing.T) {
	m, ws := newModel(t, seeded())

	m = press(t, m, char('g'))
	kind, ctx := m.State().Modal()
	require.Equal(t, uistate.ModalNewGoal, kind)
	assert.Equal(t, "r1", ctx["roleId"])
	assert.Contains(t, stripANSI(m.View()), "New goal for Work")

	m.input.SetValue("Review budget")
	m = press(t, m, enter)
	goals := ws.Current().GoalsByRole("r1")
	require.Len(t, goals, 2)
	assert.Equal(t, "Review budget", goals[1].Text)

	m = press(t, m, char('g'), esc)
	kind, _ = m.State().Modal()
	assert.Equal(t, uistate.ModalNone, kind)
	assert.Len(t, ws.Current().Goals, 2)
}

func TestWeekNavigation(t *testing.T) {
	mem := seeded()
	m, ws := newModel(t, mem)

	next, cmd := m.Update(char(']'))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.State().Navigating())
	assert.Contains(t, stripANSI(m.View()), "loading")

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.False(t, m.State().Navigating())

	cur := ws.Current()
	require.NotNil(t, cur)
	assert.Equal(t, week.ID("2026-W04"), cur.ID)
	require.Len(t, cur.Roles, 1)
	assert.Equal(t, "Work", cur.Roles[0].Name)
	assert.Empty(t, cur.Goals)
	assert.Contains(t, stripANSI(m.View()), "2026-W04")
}

func TestToggleAndDeleteUnderCursor(t *testing.T) {
	m, ws := newModel(t, seeded())

	m = press(t, m, char('x'))
	g, ok := ws.Current().Goal("g1")
	require.True(t, ok)
	assert.True(t, g.Completed)

	m = press(t, m, tab, down, down, down, char('d'))
	_, ok = ws.Current().TimeBlock("b1")
	assert.False(t, ok)
	assert.Contains(t, stripANSI(m.View()), "Deleted")
}

func TestQuitCancelsDrag(t *testing.T) {
	m, _ := newModel(t, seeded())
	m = press(t, m, space)

	next, cmd := m.Update(char('q'))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.State().Dragging())
}
