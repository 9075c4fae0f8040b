package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/anragha/silly-mid-on/internal/availability"
	"github.com/anragha/silly-mid-on/internal/cricket"
)

// hourlySlotTimes is the fixed grid checked by AvailableTimeSlots, one slot
// per hour from 06:00 through 20:00.
var hourlySlotTimes = buildHourlyGrid(6, 20)

func buildHourlyGrid(firstHour, lastHour int) []string {
	var grid []string
	for h := firstHour; h <= lastHour; h++ {
		grid = append(grid, cricket.FormatClock(h*60))
	}
	return grid
}

// SuggestTimes scans the two-hour candidate grid for start times with no
// overlapping fixture on the date. Declared player availability is not
// consulted; see the availability engine's suggester for that side.
// Candidates too late in the day to fit the duration are skipped.
func (e engine) SuggestTimes(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error) {
	var suggestions []string
	for _, candidate := range availability.CandidateStartTimes {
		free, err := e.IsTimeSlotAvailable(date, candidate, durationMinutes, matches)
		if errors.Is(err, cricket.ErrCrossesMidnight) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if free {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions, nil
}

// MatchesForDate filters by exact date equality.
func (engine) MatchesForDate(date string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch {
	var out []cricket.ScheduledMatch
	for _, m := range matches {
		if m.Date == date {
			out = append(out, m)
		}
	}
	return out
}

// MatchesForTeam filters by team id in either the home or away slot.
func (engine) MatchesForTeam(teamID string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch {
	var out []cricket.ScheduledMatch
	for _, m := range matches {
		if m.Involves(teamID) {
			out = append(out, m)
		}
	}
	return out
}

// UpcomingMatchesForTeam returns the team's scheduled matches strictly
// after now, ascending by kick-off.
func (engine) UpcomingMatchesForTeam(teamID string, matches []cricket.ScheduledMatch, now time.Time) ([]cricket.ScheduledMatch, error) {
	type upcoming struct {
		match   cricket.ScheduledMatch
		kickoff time.Time
	}

	var out []upcoming
	for _, m := range matches {
		if m.Status != cricket.StatusScheduled || !m.Involves(teamID) {
			continue
		}
		kickoff, err := time.ParseInLocation("2006-01-02 15:04", m.Date+" "+m.StartTime, now.Location())
		if err != nil {
			return nil, fmt.Errorf("match %s has unparseable start %q %q: %w", m.ID, m.Date, m.StartTime, err)
		}
		if kickoff.After(now) {
			out = append(out, upcoming{match: m, kickoff: kickoff})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].kickoff.Before(out[j].kickoff)
	})

	result := make([]cricket.ScheduledMatch, len(out))
	for i, u := range out {
		result[i] = u.match
	}
	return result, nil
}

// IsTimeSlotAvailable reports whether no non-cancelled match on the date
// overlaps the proposed window.
func (engine) IsTimeSlotAvailable(date, startTime string, durationMinutes int, matches []cricket.ScheduledMatch) (bool, error) {
	window, err := cricket.NewWindow(startTime, durationMinutes)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if m.Status == cricket.StatusCancelled || m.Date != date {
			continue
		}
		matchWindow, err := m.Window()
		if err != nil {
			return false, fmt.Errorf("existing match %s: %w", m.ID, err)
		}
		if window.Overlaps(matchWindow) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableTimeSlots filters the hourly grid by IsTimeSlotAvailable. Slots
// too late in the day to fit the duration are skipped.
func (e engine) AvailableTimeSlots(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error) {
	var slots []string
	for _, slot := range hourlySlotTimes {
		free, err := e.IsTimeSlotAvailable(date, slot, durationMinutes, matches)
		if errors.Is(err, cricket.ErrCrossesMidnight) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if free {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// MatchStatistics counts matches by status.
func (engine) MatchStatistics(matches []cricket.ScheduledMatch) MatchStatistics {
	stats := MatchStatistics{Total: len(matches)}
	for _, m := range matches {
		switch m.Status {
		case cricket.StatusScheduled:
			stats.Scheduled++
		case cricket.StatusLive:
			stats.Live++
		case cricket.StatusCompleted:
			stats.Completed++
		case cricket.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
