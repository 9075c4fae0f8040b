package availability

import "github.com/anragha/silly-mid-on/internal/cricket"

// CheckResult is the outcome of a single-player availability check.
type CheckResult struct {
	IsAvailable bool               `json:"is_available"`
	Conflicts   []cricket.Conflict `json:"conflicts"`
}

// MultiCheckResult partitions a set of players into available and
// unavailable for a proposed window, with the aggregate conflict list for
// the unavailable side. Both partitions preserve input order.
type MultiCheckResult struct {
	AvailablePlayers   []cricket.Player   `json:"available_players"`
	UnavailablePlayers []cricket.Player   `json:"unavailable_players"`
	Conflicts          []cricket.Conflict `json:"conflicts"`
}
