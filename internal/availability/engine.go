package availability

import (
	"errors"
	"fmt"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// CandidateStartTimes is the fixed grid of day-start candidates evaluated by
// SuggestTimes, two hours apart.
var CandidateStartTimes = []string{
	"06:00", "08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00",
}

// availabilityThreshold is the fraction of players that must be free for a
// candidate time to be suggested. Compared as a real number, not rounded.
const availabilityThreshold = 0.8

type engine struct{}

var _ Engine = engine{}

// New returns a stateless availability engine.
func New() Engine {
	return engine{}
}

// CheckPlayer applies the availability rules in priority order: the date
// veto first, then declared blocked slots, then clashes with existing
// fixtures the player is selected for. The first matching rule decides.
func (engine) CheckPlayer(player cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (CheckResult, error) {
	window, err := cricket.NewWindow(startTime, durationMinutes)
	if err != nil {
		return CheckResult{}, fmt.Errorf("check availability for player %s: %w", player.ID, err)
	}

	if rec, ok := player.RecordFor(matchDate); ok {
		if !rec.IsAvailable {
			return CheckResult{
				IsAvailable: false,
				Conflicts: []cricket.Conflict{{
					PlayerID: player.ID,
					Reason:   cricket.ReasonPlayerUnavailable,
				}},
			}, nil
		}

		for _, slot := range rec.TimeSlots {
			if slot.IsAvailable {
				continue
			}
			slotWindow, err := cricket.SlotWindow(slot.Start, slot.End)
			if err != nil {
				return CheckResult{}, fmt.Errorf("availability slot for player %s on %s: %w", player.ID, matchDate, err)
			}
			if window.Overlaps(slotWindow) {
				return CheckResult{
					IsAvailable: false,
					Conflicts: []cricket.Conflict{{
						PlayerID: player.ID,
						Reason:   cricket.ReasonTimeOverlap,
					}},
				}, nil
			}
		}
	}

	var overlapping []string
	for _, match := range existingMatches {
		if match.Status == cricket.StatusCancelled {
			continue
		}
		if match.Date != matchDate || !match.HasPlayer(player.ID) {
			continue
		}
		matchWindow, err := match.Window()
		if err != nil {
			return CheckResult{}, fmt.Errorf("existing match %s: %w", match.ID, err)
		}
		if window.Overlaps(matchWindow) {
			overlapping = append(overlapping, match.ID)
		}
	}
	if len(overlapping) > 0 {
		return CheckResult{
			IsAvailable: false,
			Conflicts: []cricket.Conflict{{
				PlayerID:            player.ID,
				ConflictingMatchIDs: overlapping,
				Reason:              cricket.ReasonTimeOverlap,
			}},
		}, nil
	}

	return CheckResult{IsAvailable: true, Conflicts: []cricket.Conflict{}}, nil
}

// CheckPlayers partitions the players into available and unavailable for
// the window. Players are checked independently; there is no prioritization.
func (e engine) CheckPlayers(players []cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (MultiCheckResult, error) {
	result := MultiCheckResult{Conflicts: []cricket.Conflict{}}
	for _, player := range players {
		check, err := e.CheckPlayer(player, matchDate, startTime, durationMinutes, existingMatches)
		if err != nil {
			return MultiCheckResult{}, err
		}
		if check.IsAvailable {
			result.AvailablePlayers = append(result.AvailablePlayers, player)
		} else {
			result.UnavailablePlayers = append(result.UnavailablePlayers, player)
			result.Conflicts = append(result.Conflicts, check.Conflicts...)
		}
	}
	return result, nil
}

// SuggestTimes scans the fixed candidate grid against declared availability
// only. Candidates retain grid order in the output; candidates too late in
// the day to fit the duration are skipped.
func (e engine) SuggestTimes(players []cricket.Player, date string, durationMinutes int) ([]string, error) {
	var suggestions []string
	for _, candidate := range CandidateStartTimes {
		check, err := e.CheckPlayers(players, date, candidate, durationMinutes, nil)
		if errors.Is(err, cricket.ErrCrossesMidnight) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if float64(len(check.AvailablePlayers)) >= float64(len(players))*availabilityThreshold {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions, nil
}
