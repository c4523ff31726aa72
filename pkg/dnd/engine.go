package dnd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/week"
)

var (
	// ErrUnknownPayload is returned for a payload variant the engine does not handle.
	ErrUnknownPayload = errors.New("dnd: unknown payload")
	// ErrUnknownTarget is returned for a target variant the engine does not handle.
	ErrUnknownTarget = errors.New("dnd: unknown target")
)

// Mutator is the part of the week store the engine drives.
type Mutator interface {
	Current() *week.Week
	AddDayPriority(in app.PriorityInput) (week.DayPriority, error)
	RemoveDayPriority(id string) error
	AddTimeBlock(in app.TimeBlockInput) (week.TimeBlock, error)
	UpdateTimeBlock(id string, u app.TimeBlockUpdate) error
	DeleteTimeBlock(id string) error
	AddEveningBlock(in app.EveningBlockInput) (week.EveningBlock, error)
	DeleteEveningBlock(id string) error
}

var _ Mutator = (*app.WeekStore)(nil)

// OutcomeKind classifies what a drop did.
type OutcomeKind string

const (
	OutcomeNoop    OutcomeKind = "noop"
	OutcomeCreated OutcomeKind = "created"
	OutcomeMoved   OutcomeKind = "moved"
)

// Outcome describes the effect of a drop. Created and Removed hold entity
// ids; a move in place sets Updated.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Created string      `json:"created,omitempty"`
	Removed string      `json:"removed,omitempty"`
	Updated string      `json:"updated,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

func noop(reason string) Outcome {
	return Outcome{Kind: OutcomeNoop, Reason: reason}
}

// Noop reasons.
const (
	ReasonNoTarget        = "no target"
	ReasonMissingSource   = "source no longer exists"
	ReasonEveningOccupied = "evening occupied"
	ReasonFreestyle       = "freestyle cannot become a priority"
	ReasonSameDay         = "dropped on its own day"
)

// Engine applies drops to a Mutator.
type Engine struct {
	store Mutator
	log   *slog.Logger
}

// NewEngine returns an engine over m. A nil logger uses slog.Default.
func NewEngine(m Mutator, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: m, log: log}
}

// Drop reconciles payload dropped on target. A nil target is a no-op.
// Source entities and evening occupancy are read from the store at call
// time, not from the payload. Moves are a create followed by a delete; if
// the delete fails the returned Outcome still names the created entity.
func (e *Engine) Drop(ctx context.Context, payload Payload, target Target) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if target == nil {
		return noop(ReasonNoTarget), nil
	}
	switch target.(type) {
	case PrioritiesZone, TimeGridZone, EveningZone:
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
	}
	w := e.store.Current()
	if w == nil {
		return Outcome{}, app.ErrNoWeekLoaded
	}

	var (
		out Outcome
		err error
	)
	switch p := payload.(type) {
	case GoalPayload:
		out, err = e.dropGoal(w, p, target)
	case BlockPayload:
		out, err = e.dropBlock(w, p, target)
	case PriorityPayload:
		out, err = e.dropPriority(w, p, target)
	case EveningPayload:
		out, err = e.dropEvening(w, p, target)
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownPayload, payload)
	}
	if err != nil {
		e.log.Error("drop failed", "payload", payload.Kind(), "zone", target.Zone(), "day", target.DayIndex(), "error", err)
		return out, err
	}
	e.log.Debug("drop", "payload", payload.Kind(), "zone", target.Zone(), "day", target.DayIndex(), "outcome", out.Kind, "reason", out.Reason)
	return out, nil
}

func (e *Engine) dropGoal(w *week.Week, p GoalPayload, target Target) (Outcome, error) {
	g, ok := w.Goal(p.GoalID)
	if !ok {
		return noop(ReasonMissingSource), nil
	}
	roleID := firstNonEmpty(p.RoleID, g.RoleID)
	title := firstNonEmpty(p.Text, g.Text)

	switch t := target.(type) {
	case PrioritiesZone:
		created, err := e.store.AddDayPriority(app.PriorityInput{GoalID: g.ID, Day: t.Day})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeCreated, Created: created.ID}, nil
	case TimeGridZone:
		created, err := e.store.AddTimeBlock(app.TimeBlockInput{
			Type:      week.BlockGoal,
			GoalID:    g.ID,
			RoleID:    roleID,
			Day:       t.Day,
			StartSlot: t.Slot,
			Duration:  week.DefaultBlockDuration,
			Title:     title,
		})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeCreated, Created: created.ID}, nil
	case EveningZone:
		return e.createEvening(t.Day, app.EveningBlockInput{
			Type:   week.BlockGoal,
			GoalID: g.ID,
			RoleID: roleID,
			Day:    t.Day,
			Title:  title,
		}, nil)
	}
	return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
}

func (e *Engine) dropBlock(w *week.Week, p BlockPayload, target Target) (Outcome, error) {
	b, ok := w.TimeBlock(p.BlockID)
	if !ok {
		return noop(ReasonMissingSource), nil
	}
	remove := func() error { return e.store.DeleteTimeBlock(b.ID) }

	switch t := target.(type) {
	case PrioritiesZone:
		if b.GoalID == "" {
			return noop(ReasonFreestyle), nil
		}
		return e.createPriority(b.GoalID, t.Day, b.ID, remove)
	case TimeGridZone:
		day, slot := t.Day, t.Slot
		if err := e.store.UpdateTimeBlock(b.ID, app.TimeBlockUpdate{Day: &day, StartSlot: &slot}); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeMoved, Updated: b.ID}, nil
	case EveningZone:
		return e.createEvening(t.Day, app.EveningBlockInput{
			Type:   b.Type,
			GoalID: b.GoalID,
			RoleID: b.RoleID,
			Day:    t.Day,
			Title:  b.Title,
		}, &removal{id: b.ID, fn: remove})
	}
	return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
}

func (e *Engine) dropPriority(w *week.Week, p PriorityPayload, target Target) (Outcome, error) {
	pr, ok := w.DayPriority(p.PriorityID)
	if !ok {
		return noop(ReasonMissingSource), nil
	}
	remove := func() error { return e.store.RemoveDayPriority(pr.ID) }
	goal, _ := w.Goal(pr.GoalID)
	roleID := firstNonEmpty(p.RoleID, goal.RoleID)
	title := firstNonEmpty(p.Text, goal.Text)

	switch t := target.(type) {
	case PrioritiesZone:
		if t.Day == pr.Day {
			return noop(ReasonSameDay), nil
		}
		return e.createPriority(pr.GoalID, t.Day, pr.ID, remove)
	case TimeGridZone:
		created, err := e.store.AddTimeBlock(app.TimeBlockInput{
			Type:      week.BlockGoal,
			GoalID:    pr.GoalID,
			RoleID:    roleID,
			Day:       t.Day,
			StartSlot: t.Slot,
			Duration:  week.DefaultBlockDuration,
			Title:     title,
		})
		if err != nil {
			return Outcome{}, err
		}
		return moved(created.ID, pr.ID, remove())
	case EveningZone:
		return e.createEvening(t.Day, app.EveningBlockInput{
			Type:   week.BlockGoal,
			GoalID: pr.GoalID,
			RoleID: roleID,
			Day:    t.Day,
			Title:  title,
		}, &removal{id: pr.ID, fn: remove})
	}
	return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
}

func (e *Engine) dropEvening(w *week.Week, p EveningPayload, target Target) (Outcome, error) {
	eb, ok := w.EveningBlock(p.EveningBlockID)
	if !ok {
		return noop(ReasonMissingSource), nil
	}
	remove := func() error { return e.store.DeleteEveningBlock(eb.ID) }

	switch t := target.(type) {
	case PrioritiesZone:
		if eb.Type != week.BlockGoal || eb.GoalID == "" {
			return noop(ReasonFreestyle), nil
		}
		return e.createPriority(eb.GoalID, t.Day, eb.ID, remove)
	case TimeGridZone:
		created, err := e.store.AddTimeBlock(app.TimeBlockInput{
			Type:      eb.Type,
			GoalID:    eb.GoalID,
			RoleID:    eb.RoleID,
			Day:       t.Day,
			StartSlot: t.Slot,
			Duration:  week.DefaultBlockDuration,
			Title:     eb.Title,
		})
		if err != nil {
			return Outcome{}, err
		}
		return moved(created.ID, eb.ID, remove())
	case EveningZone:
		if t.Day == eb.Day {
			return noop(ReasonSameDay), nil
		}
		return e.createEvening(t.Day, app.EveningBlockInput{
			Type:   eb.Type,
			GoalID: eb.GoalID,
			RoleID: eb.RoleID,
			Day:    t.Day,
			Title:  eb.Title,
		}, &removal{id: eb.ID, fn: remove})
	}
	return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownTarget, target)
}

type removal struct {
	id string
	fn func() error
}

func (e *Engine) createPriority(goalID string, day week.Day, sourceID string, remove func() error) (Outcome, error) {
	created, err := e.store.AddDayPriority(app.PriorityInput{GoalID: goalID, Day: day})
	if err != nil {
		return Outcome{}, err
	}
	return moved(created.ID, sourceID, remove())
}

// createEvening adds an evening block on day unless the day is taken, then
// removes the source when there is one. Occupancy is checked against the
// store's current week.
func (e *Engine) createEvening(day week.Day, in app.EveningBlockInput, src *removal) (Outcome, error) {
	if _, taken := e.store.Current().EveningBlockFor(day); taken {
		return noop(ReasonEveningOccupied), nil
	}
	created, err := e.store.AddEveningBlock(in)
	if errors.Is(err, app.ErrEveningSlotOccupied) {
		return noop(ReasonEveningOccupied), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	if src == nil {
		return Outcome{Kind: OutcomeCreated, Created: created.ID}, nil
	}
	return moved(created.ID, src.id, src.fn())
}

func moved(created, removed string, removeErr error) (Outcome, error) {
	if removeErr != nil {
		return Outcome{Kind: OutcomeCreated, Created: created}, fmt.Errorf("remove source %s: %w", removed, removeErr)
	}
	return Outcome{Kind: OutcomeMoved, Created: created, Removed: removed}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// PayloadFor builds the payload for the entity of kind id in w, the way a
// drag source would.
func PayloadFor(w *week.Week, kind Kind, id string) (Payload, error) {
	switch kind {
	case KindGoal:
		if g, ok := w.Goal(id); ok {
			return GoalPayload{GoalID: g.ID, RoleID: g.RoleID, Text: g.Text}, nil
		}
	case KindBlock:
		if b, ok := w.TimeBlock(id); ok {
			return BlockPayload{BlockID: b.ID, SourceDay: b.Day}, nil
		}
	case KindPriority:
		if p, ok := w.DayPriority(id); ok {
			g, _ := w.Goal(p.GoalID)
			return PriorityPayload{PriorityID: p.ID, GoalID: p.GoalID, RoleID: g.RoleID, Text: g.Text, SourceDay: p.Day}, nil
		}
	case KindEvening:
		if b, ok := w.EveningBlock(id); ok {
			return EveningPayload{EveningBlockID: b.ID, GoalID: b.GoalID, RoleID: b.RoleID, Title: b.Title, SourceDay: b.Day}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayload, kind)
	}
	return nil, fmt.Errorf("%s %q: %w", kind, id, app.ErrNotFound)
}
