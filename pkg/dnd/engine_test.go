package dnd

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

const fixtureWeek week.ID = "2026-W03"

func fixture() *week.Week {
	return &week.Week{
		ID:    fixtureWeek,
		Roles: []week.Role{{ID: "R", Name: "Work", Color: week.Teal}},
		Goals: []week.Goal{
			{ID: "G", RoleID: "R", Text: "Write report"},
			{ID: "H", RoleID: "R", Text: "Plan"},
		},
		DayPriorities: []week.DayPriority{
			{ID: "P1", GoalID: "G", Day: week.Monday, Completed: true},
		},
		TimeBlocks: []week.TimeBlock{
			{ID: "BG", Type: week.BlockGoal, GoalID: "G", RoleID: "R", Day: week.Monday, StartSlot: 2, Duration: 3, Title: "Write report", Completed: true},
			{ID: "BF", Type: week.BlockFreestyle, Day: week.Tuesday, StartSlot: 0, Duration: 2, Title: "Gym"},
		},
		EveningBlocks: []week.EveningBlock{
			{ID: "EG", Type: week.BlockGoal, GoalID: "H", RoleID: "R", Day: week.Friday, Title: "Plan", Completed: true},
			{ID: "EF", Type: week.BlockFreestyle, Day: week.Saturday, Title: "Movie"},
		},
	}
}

func newEngine(t *testing.T) (*Engine, *app.WeekStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := app.New(store.NewMemory(fixture()), app.WithLogger(logger))
	require.NoError(t, s.LoadWeek(context.Background(), fixtureWeek))
	return NewEngine(s, logger), s
}

func drop(t *testing.T, p Payload, target Target) (Outcome, *week.Week) {
	t.Helper()
	e, s := newEngine(t)
	out, err := e.Drop(context.Background(), p, target)
	require.NoError(t, err)
	return out, s.Current()
}

func assertUnchanged(t *testing.T, w *week.Week) {
	t.Helper()
	want := fixture()
	assert.Equal(t, want.DayPriorities, w.DayPriorities)
	assert.Equal(t, want.TimeBlocks, w.TimeBlocks)
	assert.Equal(t, want.EveningBlocks, w.EveningBlocks)
}

func TestGoalDrops(t *testing.T) {
	goal := GoalPayload{GoalID: "G", RoleID: "R", Text: "Write report"}

	t.Run("priorities", func(t *testing.T) {
		out, w := drop(t, goal, PrioritiesZone{Day: week.Tuesday})
		assert.Equal(t, OutcomeCreated, out.Kind)
		p, ok := w.DayPriority(out.Created)
		require.True(t, ok)
		assert.Equal(t, "G", p.GoalID)
		assert.Equal(t, week.Tuesday, p.Day)
		assert.False(t, p.Completed)
		assert.Len(t, w.DayPriorities, 2)
	})

	t.Run("time grid", func(t *testing.T) {
		out, w := drop(t, goal, TimeGridZone{Day: week.Monday, Slot: 4})
		assert.Equal(t, OutcomeCreated, out.Kind)
		b, ok := w.TimeBlock(out.Created)
		require.True(t, ok)
		assert.Equal(t, week.TimeBlock{
			ID: out.Created, Type: week.BlockGoal, GoalID: "G", RoleID: "R",
			Day: week.Monday, StartSlot: 4, Duration: 2, Title: "Write report",
		}, b)
		assert.Len(t, w.TimeBlocks, 3)
	})

	t.Run("evening empty", func(t *testing.T) {
		out, w := drop(t, goal, EveningZone{Day: week.Wednesday})
		assert.Equal(t, OutcomeCreated, out.Kind)
		b, ok := w.EveningBlockFor(week.Wednesday)
		require.True(t, ok)
		assert.Equal(t, week.BlockGoal, b.Type)
		assert.Equal(t, "G", b.GoalID)
		assert.False(t, b.Completed)
	})

	t.Run("evening occupied", func(t *testing.T) {
		out, w := drop(t, goal, EveningZone{Day: week.Friday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonEveningOccupied, out.Reason)
		assertUnchanged(t, w)
	})

	t.Run("deleted goal", func(t *testing.T) {
		out, w := drop(t, GoalPayload{GoalID: "gone"}, PrioritiesZone{Day: week.Monday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assertUnchanged(t, w)
	})
}

func TestBlockDrops(t *testing.T) {
	t.Run("goal block to priorities", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "BG", SourceDay: week.Monday}, PrioritiesZone{Day: week.Thursday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		assert.Equal(t, "BG", out.Removed)
		_, ok := w.TimeBlock("BG")
		assert.False(t, ok)
		p, ok := w.DayPriority(out.Created)
		require.True(t, ok)
		assert.Equal(t, "G", p.GoalID)
		assert.Equal(t, week.Thursday, p.Day)
		assert.False(t, p.Completed)
	})

	t.Run("freestyle block to priorities", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "BF", SourceDay: week.Tuesday}, PrioritiesZone{Day: week.Thursday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonFreestyle, out.Reason)
		assertUnchanged(t, w)
	})

	t.Run("time grid moves in place", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "BG", SourceDay: week.Monday}, TimeGridZone{Day: week.Wednesday, Slot: 10})
		assert.Equal(t, OutcomeMoved, out.Kind)
		assert.Equal(t, "BG", out.Updated)
		require.Len(t, w.TimeBlocks, 2)
		b, ok := w.TimeBlock("BG")
		require.True(t, ok)
		assert.Equal(t, week.Wednesday, b.Day)
		assert.Equal(t, week.Slot(10), b.StartSlot)
		assert.Equal(t, 3, b.Duration, "duration is kept")
		assert.True(t, b.Completed)
	})

	t.Run("evening empty", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "BF", SourceDay: week.Tuesday}, EveningZone{Day: week.Tuesday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		_, ok := w.TimeBlock("BF")
		assert.False(t, ok)
		eb, ok := w.EveningBlock(out.Created)
		require.True(t, ok)
		assert.Equal(t, week.BlockFreestyle, eb.Type)
		assert.Equal(t, "Gym", eb.Title)
	})

	t.Run("evening occupied", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "BG", SourceDay: week.Monday}, EveningZone{Day: week.Saturday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assertUnchanged(t, w)
	})

	t.Run("missing block", func(t *testing.T) {
		out, w := drop(t, BlockPayload{BlockID: "nope"}, TimeGridZone{Day: week.Monday, Slot: 1})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonMissingSource, out.Reason)
		assertUnchanged(t, w)
	})
}

func TestPriorityDrops(t *testing.T) {
	prio := PriorityPayload{PriorityID: "P1", GoalID: "G", RoleID: "R", Text: "Write report", SourceDay: week.Monday}

	t.Run("time grid", func(t *testing.T) {
		out, w := drop(t, prio, TimeGridZone{Day: week.Monday, Slot: 6})
		assert.Equal(t, OutcomeMoved, out.Kind)
		assert.Equal(t, "P1", out.Removed)
		assert.Empty(t, w.DayPriorities)
		b, ok := w.TimeBlock(out.Created)
		require.True(t, ok)
		assert.Equal(t, week.BlockGoal, b.Type)
		assert.Equal(t, "G", b.GoalID)
		assert.Equal(t, "R", b.RoleID)
		assert.Equal(t, 2, b.Duration)
		assert.Equal(t, "Write report", b.Title)
	})

	t.Run("evening empty", func(t *testing.T) {
		out, w := drop(t, prio, EveningZone{Day: week.Sunday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		assert.Empty(t, w.DayPriorities)
		eb, ok := w.EveningBlockFor(week.Sunday)
		require.True(t, ok)
		assert.Equal(t, "G", eb.GoalID)
	})

	t.Run("evening occupied", func(t *testing.T) {
		out, w := drop(t, prio, EveningZone{Day: week.Friday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assertUnchanged(t, w)
	})

	t.Run("same day", func(t *testing.T) {
		out, w := drop(t, prio, PrioritiesZone{Day: week.Monday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonSameDay, out.Reason)
		assertUnchanged(t, w)
	})

	t.Run("other day", func(t *testing.T) {
		out, w := drop(t, prio, PrioritiesZone{Day: week.Wednesday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		require.Len(t, w.DayPriorities, 1)
		p := w.DayPriorities[0]
		assert.Equal(t, out.Created, p.ID)
		assert.Equal(t, week.Wednesday, p.Day)
		assert.Equal(t, "G", p.GoalID)
		assert.False(t, p.Completed)
	})
}

func TestEveningDrops(t *testing.T) {
	goalEvening := EveningPayload{EveningBlockID: "EG", GoalID: "H", RoleID: "R", Title: "Plan", SourceDay: week.Friday}
	freeEvening := EveningPayload{EveningBlockID: "EF", Title: "Movie", SourceDay: week.Saturday}

	t.Run("goal evening to priorities", func(t *testing.T) {
		out, w := drop(t, goalEvening, PrioritiesZone{Day: week.Friday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		_, ok := w.EveningBlock("EG")
		assert.False(t, ok)
		p, ok := w.DayPriority(out.Created)
		require.True(t, ok)
		assert.Equal(t, "H", p.GoalID)
	})

	t.Run("freestyle evening to priorities", func(t *testing.T) {
		out, w := drop(t, freeEvening, PrioritiesZone{Day: week.Friday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assertUnchanged(t, w)
	})

	t.Run("time grid mirrors", func(t *testing.T) {
		out, w := drop(t, freeEvening, TimeGridZone{Day: week.Saturday, Slot: 20})
		assert.Equal(t, OutcomeMoved, out.Kind)
		b, ok := w.TimeBlock(out.Created)
		require.True(t, ok)
		assert.Equal(t, week.BlockFreestyle, b.Type)
		assert.Equal(t, "Movie", b.Title)
		assert.Equal(t, 2, b.Duration)
		assert.Len(t, w.EveningBlocks, 1)
	})

	t.Run("same day", func(t *testing.T) {
		out, w := drop(t, goalEvening, EveningZone{Day: week.Friday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonSameDay, out.Reason)
		assertUnchanged(t, w)
	})

	t.Run("occupied day", func(t *testing.T) {
		out, w := drop(t, goalEvening, EveningZone{Day: week.Saturday})
		assert.Equal(t, OutcomeNoop, out.Kind)
		assert.Equal(t, ReasonEveningOccupied, out.Reason)
		assertUnchanged(t, w)
	})

	t.Run("free day resets completion", func(t *testing.T) {
		out, w := drop(t, goalEvening, EveningZone{Day: week.Monday})
		assert.Equal(t, OutcomeMoved, out.Kind)
		assert.Equal(t, "EG", out.Removed)
		eb, ok := w.EveningBlockFor(week.Monday)
		require.True(t, ok)
		assert.Equal(t, "H", eb.GoalID)
		assert.False(t, eb.Completed)
		_, ok = w.EveningBlockFor(week.Friday)
		assert.False(t, ok)
	})
}

func TestDropWithoutTargetIsNoop(t *testing.T) {
	out, w := drop(t, GoalPayload{GoalID: "G"}, nil)
	assert.Equal(t, OutcomeNoop, out.Kind)
	assert.Equal(t, ReasonNoTarget, out.Reason)
	assertUnchanged(t, w)
}

func TestDropWithoutWeek(t *testing.T) {
	e := NewEngine(app.New(store.NewMemory()), nil)
	_, err := e.Drop(context.Background(), GoalPayload{GoalID: "G"}, PrioritiesZone{})
	assert.ErrorIs(t, err, app.ErrNoWeekLoaded)
}

type strayPayload struct{}

func (strayPayload) Kind() Kind { return "stray" }
func (strayPayload) payload()   {}

type strayTarget struct{}

func (strayTarget) Zone() Zone         { return "stray" }
func (strayTarget) DayIndex() week.Day { return week.Monday }
func (strayTarget) target()            {}

func TestUnknownVariants(t *testing.T) {
	e, _ := newEngine(t)
	ctx := context.Background()

	_, err := e.Drop(ctx, strayPayload{}, PrioritiesZone{Day: week.Monday})
	assert.ErrorIs(t, err, ErrUnknownPayload)

	_, err = e.Drop(ctx, GoalPayload{GoalID: "G"}, strayTarget{})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

// Every payload kind must be handled for every zone.
func TestDropIsExhaustive(t *testing.T) {
	samples := map[Kind]Payload{
		KindGoal:     GoalPayload{GoalID: "G", RoleID: "R", Text: "Write report"},
		KindBlock:    BlockPayload{BlockID: "BG", SourceDay: week.Monday},
		KindPriority: PriorityPayload{PriorityID: "P1", GoalID: "G", SourceDay: week.Monday},
		KindEvening:  EveningPayload{EveningBlockID: "EG", GoalID: "H", SourceDay: week.Friday},
	}
	for _, kind := range AllPayloadKinds() {
		p, ok := samples[kind]
		require.True(t, ok, "no sample payload for %s", kind)
		assert.Equal(t, kind, p.Kind())
		for _, zone := range AllZones() {
			target, err := NewTarget(zone, week.Wednesday, 3)
			require.NoError(t, err)
			e, _ := newEngine(t)
			_, err = e.Drop(context.Background(), p, target)
			assert.NoError(t, err, "%s -> %s", kind, zone)
		}
	}
}

func TestPayloadFor(t *testing.T) {
	w := fixture()

	p, err := PayloadFor(w, KindPriority, "P1")
	require.NoError(t, err)
	assert.Equal(t, PriorityPayload{PriorityID: "P1", GoalID: "G", RoleID: "R", Text: "Write report", SourceDay: week.Monday}, p)

	p, err = PayloadFor(w, KindEvening, "EF")
	require.NoError(t, err)
	assert.Equal(t, KindEvening, p.Kind())

	_, err = PayloadFor(w, KindBlock, "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)

	_, err = PayloadFor(w, "stray", "x")
	assert.ErrorIs(t, err, ErrUnknownPayload)
}

func TestParseKindAndZone(t *testing.T) {
	k, err := ParseKind("Block")
	require.NoError(t, err)
	assert.Equal(t, KindBlock, k)
	_, err = ParseKind("role")
	assert.Error(t, err)

	z, err := ParseZone("time-grid")
	require.NoError(t, err)
	assert.Equal(t, ZoneTimeGrid, z)
	_, err = ParseZone("sidebar")
	assert.Error(t, err)

	_, err = NewTarget(ZoneTimeGrid, week.Monday, 30)
	assert.Error(t, err)
	_, err = NewTarget(ZoneEvening, 9, 0)
	assert.Error(t, err)
}
