package scheduling

import (
	"time"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// Engine validates and constructs fixtures between two teams, composing
// team-level fixture checks with player-level availability checks.
// Implementations are stateless and safe for concurrent callers.
type Engine interface {
	// ScheduleMatch validates the proposed fixture gate by gate and, on
	// success, returns a new match in scheduled state with an empty playing
	// XI. On failure the result carries the specific conflicts plus
	// alternative start times that avoid existing fixtures.
	ScheduleMatch(req ScheduleRequest) (ScheduleResult, error)

	// SuggestTimes returns candidate start times on the given date with no
	// overlapping existing fixture. Player availability is deliberately not
	// consulted here; that concern belongs to the availability engine's own
	// suggester.
	SuggestTimes(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error)

	// RescheduleMatch re-validates player availability for the match's two
	// rosters against the new window, excluding the match being moved.
	RescheduleMatch(req RescheduleRequest) (RescheduleResult, error)

	// CancelMatch flips the match's status to cancelled and returns the
	// updated record. Cancelling an already cancelled match is a no-op.
	CancelMatch(matchID string, matches []cricket.ScheduledMatch) (*cricket.ScheduledMatch, error)

	// MatchesForDate filters matches by exact date equality.
	MatchesForDate(date string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch

	// MatchesForTeam filters matches involving the team in either slot.
	MatchesForTeam(teamID string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch

	// UpcomingMatchesForTeam returns the team's scheduled matches strictly
	// after now, sorted ascending by date and start time.
	UpcomingMatchesForTeam(teamID string, matches []cricket.ScheduledMatch, now time.Time) ([]cricket.ScheduledMatch, error)

	// IsTimeSlotAvailable reports whether no existing match on the date
	// overlaps the proposed window.
	IsTimeSlotAvailable(date, startTime string, durationMinutes int, matches []cricket.ScheduledMatch) (bool, error)

	// AvailableTimeSlots filters the hourly grid 06:00..20:00 by
	// IsTimeSlotAvailable.
	AvailableTimeSlots(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error)

	// MatchStatistics counts the supplied matches by status.
	MatchStatistics(matches []cricket.ScheduledMatch) MatchStatistics
}
