// Package week defines the week snapshot data model shared by the store,
// the drag-drop engine and the CLI.
package week

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ID is an ISO-8601 week identifier such as "2026-W03".
type ID string

func (id ID) String() string {
	return string(id)
}

// Day is a day-of-week index, 0 = Sunday through 6 = Saturday.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the number of day columns in a week.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Valid reports whether d is within 0..6.
func (d Day) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns the three letter day name.
func (d Day) Short() string {
	if !d.Valid() {
		return d.String()
	}
	return dayNames[d][:3]
}

// ParseDay accepts a day index ("0".."6") or a full or short day name.
func ParseDay(raw string) (Day, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return Day(s[0] - '0'), nil
	}
	for i, name := range dayNames {
		lower := strings.ToLower(name)
		if s == lower || (len(s) >= 3 && strings.HasPrefix(lower, s)) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("week: unknown day %q", raw)
}

// Days returns every day in index order.
func Days() []Day {
	return []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// Slot is a 30 minute time slot index on the day grid. Slot 0 starts at 08:00
// and slot 23 at 19:30.
type Slot int

const (
	// SlotsPerDay is the nominal size of the day grid (08:00-20:00).
	SlotsPerDay = 24
	// DefaultBlockDuration is the number of slots a dropped item occupies (1 hour).
	DefaultBlockDuration = 2
)

// Valid reports whether s is on the nominal grid.
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotsPerDay
}

// BlockType distinguishes goal-linked blocks from freestyle blocks.
type BlockType string

const (
	BlockGoal      BlockType = "goal"
	BlockFreestyle BlockType = "freestyle"
)

// Week is the complete planning snapshot for one ISO week. It is the only unit
// of persistence; all children are embedded.
type Week struct {
	ID            ID             `json:"id" yaml:"id"`
	StartDate     time.Time      `json:"startDate" yaml:"startDate"`
	Roles         []Role         `json:"roles" yaml:"roles"`
	Goals         []Goal         `json:"goals" yaml:"goals"`
	DayPriorities []DayPriority  `json:"dayPriorities" yaml:"dayPriorities"`
	TimeBlocks    []TimeBlock    `json:"timeBlocks" yaml:"timeBlocks"`
	EveningBlocks []EveningBlock `json:"eveningBlocks" yaml:"eveningBlocks"`
	CreatedAt     time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" yaml:"updatedAt"`
}

// Role is a life area that owns goals and carries a display color.
type Role struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name" yaml:"name"`
	Color RoleColor `json:"color" yaml:"color"`
	Order int       `json:"order" yaml:"order"`
}

// Goal is a weekly objective under a role.
type Goal struct {
	ID        string `json:"id" yaml:"id"`
	RoleID    string `json:"roleId" yaml:"roleId"`
	Text      string `json:"text" yaml:"text"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// DayPriority is an unscheduled instance of a goal pinned to a day. GoalID is
// a non-owning reference.
type DayPriority struct {
	ID        string `json:"id" yaml:"id"`
	GoalID    string `json:"goalId" yaml:"goalId"`
	Day       Day    `json:"dayIndex" yaml:"dayIndex"`
	Order     int    `json:"order" yaml:"order"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// TimeBlock is a scheduled entry on the day grid. StartSlot+Duration is not
// clamped to the grid and overlapping blocks are allowed.
type TimeBlock struct {
	ID        string    `json:"id" yaml:"id"`
	Type      BlockType `json:"type" yaml:"type"`
	GoalID    string    `json:"goalId,omitempty" yaml:"goalId,omitempty"`
	RoleID    string    `json:"roleId,omitempty" yaml:"roleId,omitempty"`
	Day       Day       `json:"dayIndex" yaml:"dayIndex"`
	StartSlot Slot      `json:"startSlot" yaml:"startSlot"`
	Duration  int       `json:"duration" yaml:"duration"`
	Title     string    `json:"title" yaml:"title"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// EndSlot is the first slot after the block.
func (b TimeBlock) EndSlot() Slot {
	return b.StartSlot + Slot(b.Duration)
}

// EveningBlock is the single post-20:00 entry of a day.
type EveningBlock struct {
	ID        string    `json:"id" yaml:"id"`
	Type      BlockType `json:"type" yaml:"type"`
	GoalID    string    `json:"goalId,omitempty" yaml:"goalId,omitempty"`
	RoleID    string    `json:"roleId,omitempty" yaml:"roleId,omitempty"`
	Day       Day       `json:"dayIndex" yaml:"dayIndex"`
	Title     string    `json:"title" yaml:"title"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// Clone returns a deep copy of w. A nil week clones to nil.
func (w *Week) Clone() *Week {
	if w == nil {
		return nil
	}
	out := *w
	out.Roles = slices.Clone(w.Roles)
	out.Goals = slices.Clone(w.Goals)
	out.DayPriorities = slices.Clone(w.DayPriorities)
	out.TimeBlocks = slices.Clone(w.TimeBlocks)
	out.EveningBlocks = slices.Clone(w.EveningBlocks)
	return &out
}

// Normalize replaces nil collections with empty ones so snapshots encode as
// empty arrays.
func (w *Week) Normalize() {
	if w.Roles == nil {
		w.Roles = []Role{}
	}
	if w.Goals == nil {
		w.Goals = []Goal{}
	}
	if w.DayPriorities == nil {
		w.DayPriorities = []DayPriority{}
	}
	if w.TimeBlocks == nil {
		w.TimeBlocks = []TimeBlock{}
	}
	if w.EveningBlocks == nil {
		w.EveningBlocks = []EveningBlock{}
	}
}
