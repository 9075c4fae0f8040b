package availability

import "github.com/anragha/silly-mid-on/internal/cricket"

// Engine decides whether players can be scheduled for a proposed match
// window. Implementations are stateless; every call receives the full input
// snapshot and returns results by value.
type Engine interface {
	// CheckPlayer decides whether one player may be scheduled for the
	// proposed window and explains why not when they may not.
	CheckPlayer(player cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (CheckResult, error)

	// CheckPlayers applies CheckPlayer to every player independently and
	// partitions the input, preserving relative order.
	CheckPlayers(players []cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (MultiCheckResult, error)

	// SuggestTimes returns the candidate start times for which at least 80%
	// of the given players are available by declared availability alone.
	// Other fixtures are deliberately not considered here.
	SuggestTimes(players []cricket.Player, date string, durationMinutes int) ([]string, error)
}
