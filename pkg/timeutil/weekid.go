// Package timeutil holds the identifier and calendar helpers used by the
// planner: ISO week ids, week labels, slot conversion and block durations.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/ftf/pkg/week"
)

// ErrInvalidWeekID is returned for week ids that are not "YYYY-Www".
var ErrInvalidWeekID = errors.New("invalid week id format")

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// NewID returns a random identifier for new entities.
func NewID() string {
	return uuid.NewString()
}

// WeekID returns the ISO-8601 week id for the calendar date of t.
func WeekID(t time.Time) week.ID {
	year, wk := t.ISOWeek()
	return week.ID(fmt.Sprintf("%04d-W%02d", year, wk))
}

// CurrentWeekID returns the week id containing now.
func CurrentWeekID(now time.Time) week.ID {
	return WeekID(now)
}

// ParseWeekID returns the Monday (00:00 UTC) that starts the week.
func ParseWeekID(id week.ID) (time.Time, error) {
	m := weekIDPattern.FindStringSubmatch(string(id))
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekID, id)
	}
	year, _ := strconv.Atoi(m[1])
	wk, _ := strconv.Atoi(m[2])
	if wk < 1 || wk > WeeksInYear(year) {
		return time.Time{}, fmt.Errorf("%w: %q has no week %d", ErrInvalidWeekID, id, wk)
	}
	return isoWeekOneMonday(year).AddDate(0, 0, (wk-1)*7), nil
}

// MustParseWeekID is ParseWeekID that panics. Intended for tests and constants.
func MustParseWeekID(id week.ID) time.Time {
	t, err := ParseWeekID(id)
	if err != nil {
		panic(err)
	}
	return t
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in year.
func WeeksInYear(year int) int {
	_, wk := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

// January 4 is always in week 1.
func isoWeekOneMonday(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}
	return jan4.AddDate(0, 0, 1-offset)
}

// WeekStart returns 00:00 on the Monday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	d := t.AddDate(0, 0, 1-offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// NextWeekID returns the week after id.
func NextWeekID(id week.ID) (week.ID, error) {
	monday, err := ParseWeekID(id)
	if err != nil {
		return "", err
	}
	return WeekID(monday.AddDate(0, 0, 7)), nil
}

// PreviousWeekID returns the week before id.
func PreviousWeekID(id week.ID) (week.ID, error) {
	monday, err := ParseWeekID(id)
	if err != nil {
		return "", err
	}
	return WeekID(monday.AddDate(0, 0, -7)), nil
}

// DateForDay returns the date of day within the week starting at monday.
// Sunday is the last day of an ISO week.
func DateForDay(monday time.Time, day week.Day) time.Time {
	offset := int(day) - 1
	if day == week.Sunday {
		offset = 6
	}
	return monday.AddDate(0, 0, offset)
}

// FormatWeekLabel renders a week id for humans, e.g. "Jan 12-18, 2026" or
// "Dec 29 - Jan 4, 2025".
func FormatWeekLabel(id week.ID) (string, error) {
	monday, err := ParseWeekID(id)
	if err != nil {
		return "", err
	}
	sunday := monday.AddDate(0, 0, 6)
	if monday.Month() == sunday.Month() {
		return fmt.Sprintf("%s %d-%d, %d", monday.Format("Jan"), monday.Day(), sunday.Day(), monday.Year()), nil
	}
	return fmt.Sprintf("%s %d - %s %d, %d", monday.Format("Jan"), monday.Day(), sunday.Format("Jan"), sunday.Day(), monday.Year()), nil
}
