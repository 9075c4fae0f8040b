package scheduling

import "github.com/anragha/silly-mid-on/internal/cricket"

// ScheduleRequest carries everything needed to validate and construct a new
// fixture. The engine holds no state of its own; existing matches and the
// player registry are snapshots supplied by the caller.
type ScheduleRequest struct {
	HomeTeam        cricket.Team
	AwayTeam        cricket.Team
	Venue           string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	DurationMinutes int
	ExistingMatches []cricket.ScheduledMatch
	AllPlayers      []cricket.Player
}

// ScheduleResult is the structured outcome of a scheduling attempt. A
// failure is an ordinary negative result, never an error.
type ScheduleResult struct {
	Success     bool                    `json:"success"`
	Match       *cricket.ScheduledMatch `json:"match,omitempty"`
	Conflicts   []cricket.Conflict      `json:"conflicts"`
	Suggestions []string                `json:"suggestions"`
}

// RescheduleRequest carries the inputs for moving an existing fixture to a
// new window. Only player availability is re-validated; team fixture
// clashes are not re-checked on reschedule, mirroring the original
// scheduling flow's known asymmetry.
type RescheduleRequest struct {
	MatchID         string
	NewDate         string
	NewStartTime    string
	HomeTeam        cricket.Team
	AwayTeam        cricket.Team
	ExistingMatches []cricket.ScheduledMatch
	AllPlayers      []cricket.Player
}

// RescheduleResult is the structured outcome of a reschedule attempt.
type RescheduleResult struct {
	Success   bool                    `json:"success"`
	Match     *cricket.ScheduledMatch `json:"match,omitempty"`
	Conflicts []cricket.Conflict      `json:"conflicts"`
}

// MatchStatistics counts matches by lifecycle status.
type MatchStatistics struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Live      int `json:"live"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
