package scheduling

import (
	"errors"
	"fmt"

	"github.com/anragha/silly-mid-on/internal/availability"
	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/google/uuid"
)

// ErrMatchNotFound is returned when a match id is absent from the supplied
// match list.
var ErrMatchNotFound = errors.New("match not found")

type engine struct {
	availability availability.Engine
}

var _ Engine = engine{}

// New returns a stateless scheduling engine composing the given
// availability engine for player-level checks.
func New(avail availability.Engine) Engine {
	return engine{availability: avail}
}

// ScheduleMatch runs the two hard gates in order. Team-level fixture
// conflicts short-circuit before any player is consulted; there is no
// partial success.
func (e engine) ScheduleMatch(req ScheduleRequest) (ScheduleResult, error) {
	window, err := cricket.NewWindow(req.StartTime, req.DurationMinutes)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("schedule match: %w", err)
	}

	teamConflicts, err := e.teamConflicts(req.HomeTeam, req.AwayTeam, req.Date, window, req.ExistingMatches)
	if err != nil {
		return ScheduleResult{}, err
	}
	if len(teamConflicts) > 0 {
		suggestions, err := e.SuggestTimes(req.Date, req.DurationMinutes, req.ExistingMatches)
		if err != nil {
			return ScheduleResult{}, err
		}
		return ScheduleResult{
			Success:     false,
			Conflicts:   teamConflicts,
			Suggestions: suggestions,
		}, nil
	}

	playerConflicts, err := e.rosterConflicts(req.HomeTeam, req.AwayTeam, req.Date, req.StartTime, req.DurationMinutes, req.ExistingMatches, req.AllPlayers)
	if err != nil {
		return ScheduleResult{}, err
	}
	if len(playerConflicts) > 0 {
		suggestions, err := e.SuggestTimes(req.Date, req.DurationMinutes, req.ExistingMatches)
		if err != nil {
			return ScheduleResult{}, err
		}
		return ScheduleResult{
			Success:     false,
			Conflicts:   playerConflicts,
			Suggestions: suggestions,
		}, nil
	}

	match := &cricket.ScheduledMatch{
		ID:              uuid.New().String(),
		HomeTeamID:      req.HomeTeam.ID,
		AwayTeamID:      req.AwayTeam.ID,
		Venue:           req.Venue,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          cricket.StatusScheduled,
		PlayingXI:       cricket.PlayingXI{HomeTeam: []string{}, AwayTeam: []string{}},
	}
	return ScheduleResult{
		Success:     true,
		Match:       match,
		Conflicts:   []cricket.Conflict{},
		Suggestions: []string{},
	}, nil
}

// teamConflicts checks the self-match sentinel and, per team, any existing
// fixture on the date whose window overlaps the proposal.
func (e engine) teamConflicts(home, away cricket.Team, date string, window cricket.Window, matches []cricket.ScheduledMatch) ([]cricket.Conflict, error) {
	var conflicts []cricket.Conflict

	if home.ID == away.ID {
		conflicts = append(conflicts, cricket.Conflict{
			PlayerID: cricket.TeamConflictSentinel,
			Reason:   cricket.ReasonTimeOverlap,
		})
	}

	for _, team := range []cricket.Team{home, away} {
		overlapping, err := overlappingMatchIDs(team.ID, date, window, matches)
		if err != nil {
			return nil, err
		}
		if len(overlapping) > 0 {
			conflicts = append(conflicts, cricket.Conflict{
				PlayerID:            team.ID,
				ConflictingMatchIDs: overlapping,
				Reason:              cricket.ReasonTimeOverlap,
			})
		}
	}
	return conflicts, nil
}

// rosterConflicts resolves each team's active roster and runs the
// availability check per side, concatenating the conflicts.
func (e engine) rosterConflicts(home, away cricket.Team, date, startTime string, durationMinutes int, matches []cricket.ScheduledMatch, allPlayers []cricket.Player) ([]cricket.Conflict, error) {
	var conflicts []cricket.Conflict
	for _, team := range []cricket.Team{home, away} {
		roster := resolveRoster(&team, allPlayers)
		check, err := e.availability.CheckPlayers(roster, date, startTime, durationMinutes, matches)
		if err != nil {
			return nil, fmt.Errorf("roster check for team %s: %w", team.ID, err)
		}
		conflicts = append(conflicts, check.Conflicts...)
	}
	return conflicts, nil
}

// RescheduleMatch moves a fixture to a new window after re-running the
// player-level check for both rosters, with the moved match excluded from
// the conflict scan. Team fixture clashes are intentionally not re-checked.
func (e engine) RescheduleMatch(req RescheduleRequest) (RescheduleResult, error) {
	match, ok := findMatch(req.MatchID, req.ExistingMatches)
	if !ok {
		return RescheduleResult{}, fmt.Errorf("reschedule: %w: %s", ErrMatchNotFound, req.MatchID)
	}

	if _, err := cricket.NewWindow(req.NewStartTime, match.DurationMinutes); err != nil {
		return RescheduleResult{}, fmt.Errorf("reschedule match: %w", err)
	}

	remaining := make([]cricket.ScheduledMatch, 0, len(req.ExistingMatches))
	for _, m := range req.ExistingMatches {
		if m.ID != req.MatchID {
			remaining = append(remaining, m)
		}
	}

	conflicts, err := e.rosterConflicts(req.HomeTeam, req.AwayTeam, req.NewDate, req.NewStartTime, match.DurationMinutes, remaining, req.AllPlayers)
	if err != nil {
		return RescheduleResult{}, err
	}
	if len(conflicts) > 0 {
		return RescheduleResult{Success: false, Conflicts: conflicts}, nil
	}

	updated := match
	updated.Date = req.NewDate
	updated.StartTime = req.NewStartTime
	return RescheduleResult{
		Success:   true,
		Match:     &updated,
		Conflicts: []cricket.Conflict{},
	}, nil
}

// CancelMatch returns a copy of the match with status cancelled. Logical
// delete only; repeated cancellation yields the same state.
func (e engine) CancelMatch(matchID string, matches []cricket.ScheduledMatch) (*cricket.ScheduledMatch, error) {
	match, ok := findMatch(matchID, matches)
	if !ok {
		return nil, fmt.Errorf("cancel: %w: %s", ErrMatchNotFound, matchID)
	}
	match.Status = cricket.StatusCancelled
	return &match, nil
}

func findMatch(matchID string, matches []cricket.ScheduledMatch) (cricket.ScheduledMatch, bool) {
	for _, m := range matches {
		if m.ID == matchID {
			return m, true
		}
	}
	return cricket.ScheduledMatch{}, false
}

// resolveRoster maps a team's active member ids to player records. An
// active member with no registry entry is treated as a player with no
// declared availability.
func resolveRoster(team *cricket.Team, allPlayers []cricket.Player) []cricket.Player {
	byID := make(map[string]cricket.Player, len(allPlayers))
	for _, p := range allPlayers {
		byID[p.ID] = p
	}

	var roster []cricket.Player
	for _, id := range team.ActiveMemberIDs() {
		if p, ok := byID[id]; ok {
			roster = append(roster, p)
		} else {
			roster = append(roster, cricket.Player{ID: id})
		}
	}
	return roster
}

// overlappingMatchIDs collects the ids of every non-cancelled match on the
// date involving the team whose window overlaps the proposal.
func overlappingMatchIDs(teamID, date string, window cricket.Window, matches []cricket.ScheduledMatch) ([]string, error) {
	var ids []string
	for _, m := range matches {
		if m.Status == cricket.StatusCancelled {
			continue
		}
		if m.Date != date || !m.Involves(teamID) {
			continue
		}
		matchWindow, err := m.Window()
		if err != nil {
			return nil, fmt.Errorf("existing match %s: %w", m.ID, err)
		}
		if window.Overlaps(matchWindow) {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}
