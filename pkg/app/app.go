// Package app holds the week snapshot store: the in-memory source of truth
// for the currently loaded week and the operations that mutate it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

var (
	// ErrNoWeekLoaded is returned by every mutation when no week is current.
	ErrNoWeekLoaded = errors.New("app: no week loaded")
	// ErrEveningSlotOccupied is returned when a day already has an evening block.
	ErrEveningSlotOccupied = errors.New("app: evening slot occupied")
	// ErrNotFound is returned when a mutation names an id the week does not hold.
	ErrNotFound = errors.New("app: not found")
	// ErrInvalidInput is returned when a mutation carries values outside the model.
	ErrInvalidInput = errors.New("app: invalid input")
	// ErrNotSaved is returned when a change was applied in memory but could
	// not be written to persistence.
	ErrNotSaved = errors.New("app: change was not saved")
)

// Status is the load state of the store.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Option configures a WeekStore.
type Option func(*WeekStore)

// WithLogger sets the logger used for load and persistence events.
func WithLogger(l *slog.Logger) Option {
	return func(s *WeekStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *WeekStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs overrides the entity id generator.
func WithIDs(next func() string) Option {
	return func(s *WeekStore) {
		if next != nil {
			s.newID = next
		}
	}
}

// WithPersistErrorHandler registers fn to be called whenever a background
// write fails. The in-memory week is left as it is.
func WithPersistErrorHandler(fn func(week.ID, error)) Option {
	return func(s *WeekStore) {
		s.onPersistErr = fn
	}
}

// WeekStore owns the current week. Mutations apply to memory immediately and
// are written to persistence in order by a background writer.
type WeekStore struct {
	Persistence store.Persistence

	log          *slog.Logger
	now          func() time.Time
	newID        func() string
	onPersistErr func(week.ID, error)

	mu      sync.Mutex
	current *week.Week
	status  Status
	err     error

	writer *writer
}

// New constructs a WeekStore over p.
func New(p store.Persistence, opts ...Option) *WeekStore {
	s := &WeekStore{
		Persistence: p,
		log:         slog.Default(),
		now:         time.Now,
		newID:       timeutil.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writer = newWriter(p, s.persistFailed)
	return s
}

// Status returns the current load state.
func (s *WeekStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error recorded by the last failed load.
func (s *WeekStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Current returns a copy of the loaded week, or nil.
func (s *WeekStore) Current() *week.Week {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Reset drops the loaded week. Writes already queued still complete.
func (s *WeekStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.status = StatusEmpty
	s.err = nil
}

// LoadWeek makes id the current week. A week that does not exist yet is
// created, seeded with carryOver roles.
func (s *WeekStore) LoadWeek(ctx context.Context, id week.ID, carryOver ...week.Role) error {
	s.setStatus(StatusLoading, nil)

	if _, err := timeutil.ParseWeekID(id); err != nil {
		s.failLoad(err)
		return err
	}

	w, err := s.Persistence.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Debug("week not found, creating", "week", id, "carryOver", len(carryOver))
		w, err = s.CreateWeek(ctx, id, carryOver)
	}
	if err != nil {
		err = fmt.Errorf("load week %s: %w", id, err)
		s.log.Error("load week failed", "week", id, "error", err)
		s.failLoad(err)
		return err
	}
	w.Normalize()

	s.mu.Lock()
	s.current = w
	s.status = StatusLoaded
	s.err = nil
	s.mu.Unlock()
	s.log.Debug("week loaded", "week", id, "roles", len(w.Roles), "goals", len(w.Goals))
	return nil
}

// CreateWeek builds and persists an empty week. Carry-over roles get fresh
// ids and keep their color; their order is renumbered from zero following
// the original order. Goals are never carried.
func (s *WeekStore) CreateWeek(ctx context.Context, id week.ID, carryOver []week.Role) (*week.Week, error) {
	monday, err := timeutil.ParseWeekID(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	w := &week.Week{
		ID:        id,
		StartDate: monday,
		CreatedAt: now,
		UpdatedAt: now,
	}
	carried := append([]week.Role(nil), carryOver...)
	sort.SliceStable(carried, func(i, j int) bool {
		return carried[i].Order < carried[j].Order
	})
	for i, r := range carried {
		w.Roles = append(w.Roles, week.Role{
			ID:    s.newID(),
			Name:  r.Name,
			Color: r.Color,
			Order: i,
		})
	}
	w.Normalize()
	if _, err := s.Persistence.Put(ctx, w); err != nil {
		return nil, fmt.Errorf("create week %s: %w", id, err)
	}
	return w, nil
}

// CarryOverRoles returns the roles of week id, for seeding a new week. A
// missing week yields no roles.
func (s *WeekStore) CarryOverRoles(ctx context.Context, id week.ID) ([]week.Role, error) {
	w, err := s.Persistence.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w.SortedRoles(), nil
}

// OpenWeek loads id. A missing week is created with the roles of the week
// before it.
func (s *WeekStore) OpenWeek(ctx context.Context, id week.ID) error {
	exists, err := s.Persistence.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("open week %s: %w", id, err)
	}
	if exists {
		return s.LoadWeek(ctx, id)
	}
	prev, err := timeutil.PreviousWeekID(id)
	if err != nil {
		return s.LoadWeek(ctx, id)
	}
	roles, err := s.CarryOverRoles(ctx, prev)
	if err != nil {
		return fmt.Errorf("open week %s: %w", id, err)
	}
	return s.LoadWeek(ctx, id, roles...)
}

// SaveCurrentWeek stamps the current week and writes it behind any queued
// writes, waiting for the result.
func (s *WeekStore) SaveCurrentWeek(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoWeekLoaded
	}
	next := s.current.Clone()
	next.UpdatedAt = s.now()
	s.current = next
	id := next.ID
	done := s.writer.enqueue(next.Clone())
	s.mu.Unlock()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("save week %s: %w", id, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Flush blocks until every queued snapshot has been written or ctx is done.
func (s *WeekStore) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Synced reports whether the latest snapshot reached persistence.
func (s *WeekStore) Synced() bool {
	return s.writer.synced()
}

func (s *WeekStore) setStatus(status Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.err = err
}

// failLoad records a failed load. The previous week is dropped so that
// mutations cannot land on a week other than the one requested.
func (s *WeekStore) failLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.status = StatusError
	s.err = err
}

func (s *WeekStore) persistFailed(id week.ID, err error) {
	s.log.Error("persist week failed", "week", id, "error", err)
	if s.onPersistErr != nil {
		s.onPersistErr(id, err)
	}
}

// mutate runs fn against a copy of the current week. On success the copy
// becomes current and is queued for writing.
func (s *WeekStore) mutate(fn func(w *week.Week) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoWeekLoaded
	}
	next := s.current.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.UpdatedAt = s.now()
	s.current = next
	s.writer.enqueue(next.Clone())
	return nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
