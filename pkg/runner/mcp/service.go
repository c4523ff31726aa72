// Package mcp provides the Model Context Protocol server integration for ftf.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/runner/list"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

// Service owns the week store shared by every MCP request. Requests naming
// a different week switch the loaded week first.
type Service struct {
	Persistence store.Persistence
	Weeks       *app.WeekStore

	engine *dnd.Engine
	now    func() time.Time
	mu     sync.Mutex
}

// NewService builds a service over p. opts configure the underlying week store.
func NewService(p store.Persistence, log *slog.Logger, opts ...app.Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	opts = append([]app.Option{app.WithLogger(log)}, opts...)
	ws := app.New(p, opts...)
	return &Service{
		Persistence: p,
		Weeks:       ws,
		engine:      dnd.NewEngine(ws, log),
		now:         time.Now,
	}
}

// LoadWeek makes id the loaded week and returns it. An empty id is the
// current calendar week.
func (s *Service) LoadWeek(ctx context.Context, id week.ID) (*week.Week, error) {
	if id == "" {
		id = timeutil.CurrentWeekID(s.now())
	}
	var w *week.Week
	err := s.with(ctx, id, func() error {
		w = s.Weeks.Current()
		return nil
	})
	return w, err
}

// Week returns a snapshot of id without loading it. An empty id is the
// loaded week.
func (s *Service) Week(ctx context.Context, id week.ID) (*week.Week, error) {
	s.mu.Lock()
	cur := s.Weeks.Current()
	s.mu.Unlock()
	if cur != nil && (id == "" || id == cur.ID) {
		return cur, nil
	}
	if id == "" {
		return nil, app.ErrNoWeekLoaded
	}
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.Persistence.Get(ctx, id)
}

// ListWeeks summarizes every stored week, newest first.
func (s *Service) ListWeeks(ctx context.Context) ([]list.Summary, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	weeks, err := s.Persistence.ListAll(ctx, store.ListOptions{Order: store.Newest})
	if err != nil {
		return nil, err
	}
	return list.Summaries(weeks), nil
}

func (s *Service) AddRole(ctx context.Context, id week.ID, name string) (week.Role, error) {
	var r week.Role
	err := s.with(ctx, id, func() (err error) {
		r, err = s.Weeks.AddRole(name)
		return err
	})
	return r, err
}

func (s *Service) DeleteRole(ctx context.Context, id week.ID, roleID string) error {
	return s.with(ctx, id, func() error {
		return s.Weeks.DeleteRole(roleID)
	})
}

func (s *Service) AddGoal(ctx context.Context, id week.ID, in app.GoalInput) (week.Goal, error) {
	var g week.Goal
	err := s.with(ctx, id, func() (err error) {
		g, err = s.Weeks.AddGoal(in)
		return err
	})
	return g, err
}

func (s *Service) DeleteGoal(ctx context.Context, id week.ID, goalID string) error {
	return s.with(ctx, id, func() error {
		return s.Weeks.DeleteGoal(goalID)
	})
}

// ToggleGoal flips completion and returns the goal as stored afterwards.
func (s *Service) ToggleGoal(ctx context.Context, id week.ID, goalID string) (week.Goal, error) {
	var g week.Goal
	err := s.with(ctx, id, func() error {
		if err := s.Weeks.ToggleGoalCompleted(goalID); err != nil {
			return err
		}
		g, _ = s.Weeks.Current().Goal(goalID)
		return nil
	})
	return g, err
}

func (s *Service) AddPriority(ctx context.Context, id week.ID, in app.PriorityInput) (week.DayPriority, error) {
	var p week.DayPriority
	err := s.with(ctx, id, func() (err error) {
		p, err = s.Weeks.AddDayPriority(in)
		return err
	})
	return p, err
}

func (s *Service) AddTimeBlock(ctx context.Context, id week.ID, in app.TimeBlockInput) (week.TimeBlock, error) {
	var b week.TimeBlock
	err := s.with(ctx, id, func() (err error) {
		b, err = s.Weeks.AddTimeBlock(in)
		return err
	})
	return b, err
}

func (s *Service) AddEveningBlock(ctx context.Context, id week.ID, in app.EveningBlockInput) (week.EveningBlock, error) {
	var b week.EveningBlock
	err := s.with(ctx, id, func() (err error) {
		b, err = s.Weeks.AddEveningBlock(in)
		return err
	})
	return b, err
}

// Drop drags the entity kind/itemID onto target.
func (s *Service) Drop(ctx context.Context, id week.ID, kind dnd.Kind, itemID string, target dnd.Target) (dnd.Outcome, error) {
	var out dnd.Outcome
	err := s.with(ctx, id, func() error {
		payload, err := dnd.PayloadFor(s.Weeks.Current(), kind, itemID)
		if err != nil {
			return err
		}
		out, err = s.engine.Drop(ctx, payload, target)
		return err
	})
	return out, err
}

// Close waits for queued writes.
func (s *Service) Close(ctx context.Context) error {
	return s.Weeks.Flush(ctx)
}

// with runs fn with week id loaded, holding the service lock so no other
// request can switch weeks underneath it.
func (s *Service) with(ctx context.Context, id week.ID, fn func() error) error {
	if s.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx, id); err != nil {
		return err
	}
	return fn()
}

func (s *Service) ensure(ctx context.Context, id week.ID) error {
	cur := s.Weeks.Current()
	if id == "" {
		if cur != nil {
			return nil
		}
		id = timeutil.CurrentWeekID(s.now())
	}
	if cur != nil && cur.ID == id {
		return nil
	}
	if err := s.Weeks.Flush(ctx); err != nil {
		return fmt.Errorf("switch to %s: %w", id, err)
	}
	return s.Weeks.OpenWeek(ctx, id)
}
