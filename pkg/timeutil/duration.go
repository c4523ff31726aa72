package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotLength is the wall-clock length of one grid slot.
	SlotLength = 30 * time.Minute
	// DefaultDuration is used when no block length is provided.
	DefaultDuration = "1h"
)

var (
	durationPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap         = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"slot":    SlotLength,
		"slots":   SlotLength,
	}
)

// ParseDuration parses a human-friendly block length (for example "1h",
// "90m" or "1h30m") and returns it as a count of 30 minute slots, rounded up.
// A bare integer is read as a slot count. Empty input yields the one hour
// default.
func ParseDuration(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultDuration
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be greater than zero")
		}
		return n, nil
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := durationPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		if value > int64(math.MaxInt64-total)/int64(base) {
			return 0, fmt.Errorf("duration %q is too long", trimmed)
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	slots := int(total / SlotLength)
	if total%SlotLength != 0 {
		slots++
	}
	return slots, nil
}

// FormatDuration renders a slot count as hours and minutes, e.g. 3 -> "1h30m".
func FormatDuration(slots int) string {
	if slots <= 0 {
		return "0m"
	}
	d := time.Duration(slots) * SlotLength
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
