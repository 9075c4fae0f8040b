package club

import "github.com/anragha/silly-mid-on/internal/cricket"

// ClubStore defines the interface for interacting with the club's data. It
// is the persistence collaborator around the scheduling core: it loads the
// roster/availability/match snapshots the engines consume and writes back
// the matches they produce.
type ClubStore interface {
	UpsertPlayers(players []PlayerInfo) error
	IsKnownPlayer(playerID string) bool
	GetAllPlayers() ([]cricket.Player, error)
	GetPlayers(playerIDs []string) ([]cricket.Player, error)

	// SetAvailability replaces the player's record for the record's date.
	// One active record per (player, date); no history is kept.
	SetAvailability(playerID string, record cricket.AvailabilityRecord) error

	UpsertTeam(team cricket.Team) error
	GetTeam(teamID string) (cricket.Team, error)
	GetAllTeams() ([]cricket.Team, error)

	InsertMatch(match *cricket.ScheduledMatch) error
	UpdateMatchSchedule(matchID, newDate, newStartTime string) error
	UpdateMatchStatus(matchID string, status cricket.MatchStatus) error
	SetPlayingXI(matchID string, xi cricket.PlayingXI) error
	GetMatch(matchID string) (*cricket.ScheduledMatch, error)
	GetAllMatches() ([]cricket.ScheduledMatch, error)

	Clear()
}
