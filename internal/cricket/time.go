package cricket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned for any time value that is not a
	// 24-hour "HH:MM" string.
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	// ErrInvalidDuration is returned for zero or negative durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	// ErrCrossesMidnight is returned for windows whose end would roll past
	// midnight. Same-day arithmetic only; there is no day offset.
	ErrCrossesMidnight = errors.New("match window crosses midnight")
)

// ClockMinutes parses a 24-hour "HH:MM" string into minutes since midnight.
func ClockMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as an "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Window is a half-open [Start, End) interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// NewWindow builds the window for a match starting at startTime and running
// for durationMinutes. Windows that would cross midnight are rejected.
func NewWindow(startTime string, durationMinutes int) (Window, error) {
	start, err := ClockMinutes(startTime)
	if err != nil {
		return Window{}, err
	}
	if durationMinutes <= 0 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}
	end := start + durationMinutes
	if end > minutesPerDay {
		return Window{}, fmt.Errorf("%w: %s + %dm", ErrCrossesMidnight, startTime, durationMinutes)
	}
	return Window{Start: start, End: end}, nil
}

// SlotWindow builds the window for a declared availability slot. Slots must
// start before they end within the same day.
func SlotWindow(start, end string) (Window, error) {
	s, err := ClockMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return Window{}, err
	}
	if s >= e {
		return Window{}, fmt.Errorf("%w: slot %s-%s", ErrInvalidTimeFormat, start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open windows intersect. A window ending
// exactly when another begins does not overlap it.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}
