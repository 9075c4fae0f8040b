package cricket

// MatchStatus represents the lifecycle state of a scheduled match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
	StatusCancelled MatchStatus = "cancelled"
)

// ConflictReason classifies why a player or team cannot be scheduled.
type ConflictReason string

const (
	ReasonPlayerUnavailable ConflictReason = "player_unavailable"
	ReasonTimeOverlap       ConflictReason = "time_overlap"
	// ReasonLocationConflict is reserved in the taxonomy but is not produced
	// by any current check.
	ReasonLocationConflict ConflictReason = "location_conflict"
)

// TeamConflictSentinel is placed in Conflict.PlayerID for team-level
// conflicts that are not attributable to a single team, such as a team
// being scheduled against itself.
const TeamConflictSentinel = "team_conflict"

// Conflict is an advisory record explaining a scheduling rejection. PlayerID
// holds a team id for team-level conflicts.
type Conflict struct {
	PlayerID            string         `json:"player_id"`
	ConflictingMatchIDs []string       `json:"conflicting_match_ids,omitempty"`
	Reason              ConflictReason `json:"reason"`
}

// TimeSlot is one interval of a day in a player's declared availability.
// Slots marked unavailable block any match window they overlap.
type TimeSlot struct {
	Start       string `json:"start"` // HH:MM
	End         string `json:"end"`   // HH:MM
	IsAvailable bool   `json:"is_available"`
}

// AvailabilityRecord is a player's declared availability for a single date.
// IsAvailable = false vetoes the whole date regardless of TimeSlots. An
// empty TimeSlots list with IsAvailable = true means available all day.
type AvailabilityRecord struct {
	Date        string     `json:"date"` // YYYY-MM-DD
	TimeSlots   []TimeSlot `json:"time_slots,omitempty"`
	IsAvailable bool       `json:"is_available"`
	Reason      string     `json:"reason,omitempty"`
}

// Player is a registered club player with at most one availability record
// per date.
type Player struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Availability []AvailabilityRecord `json:"availability,omitempty"`
}

// RecordFor returns the player's availability record for a date, if any.
func (p *Player) RecordFor(date string) (AvailabilityRecord, bool) {
	for _, rec := range p.Availability {
		if rec.Date == date {
			return rec, true
		}
	}
	return AvailabilityRecord{}, false
}

// TeamMember is a roster membership entry. Only active members count toward
// scheduling conflict checks.
type TeamMember struct {
	PlayerID string `json:"player_id"`
	IsActive bool   `json:"is_active"`
}

// Team is a club side with its roster.
type Team struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members,omitempty"`
}

// ActiveMemberIDs returns the player ids of the team's active roster,
// preserving roster order.
func (t *Team) ActiveMemberIDs() []string {
	var ids []string
	for _, m := range t.Members {
		if m.IsActive {
			ids = append(ids, m.PlayerID)
		}
	}
	return ids
}

// PlayingXI holds the selected players per side for a specific match.
// Selection happens after scheduling, never during it.
type PlayingXI struct {
	HomeTeam []string `json:"home_team"`
	AwayTeam []string `json:"away_team"`
}

// ScheduledMatch is a fixture between two teams. The scheduler creates
// matches in StatusScheduled; all other status transitions are driven by
// external callers.
type ScheduledMatch struct {
	ID              string      `json:"id"`
	HomeTeamID      string      `json:"home_team_id"`
	AwayTeamID      string      `json:"away_team_id"`
	Venue           string      `json:"venue"`
	Date            string      `json:"date"`       // YYYY-MM-DD
	StartTime       string      `json:"start_time"` // HH:MM
	DurationMinutes int         `json:"duration_minutes"`
	Status          MatchStatus `json:"status"`
	PlayingXI       PlayingXI   `json:"playing_xi"`
}

// Involves reports whether the team occupies either slot of the fixture.
func (m *ScheduledMatch) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// HasPlayer reports whether the player is in either side's playing XI.
func (m *ScheduledMatch) HasPlayer(playerID string) bool {
	for _, id := range m.PlayingXI.HomeTeam {
		if id == playerID {
			return true
		}
	}
	for _, id := range m.PlayingXI.AwayTeam {
		if id == playerID {
			return true
		}
	}
	return false
}

// Window returns the match's half-open time window.
func (m *ScheduledMatch) Window() (Window, error) {
	return NewWindow(m.StartTime, m.DurationMinutes)
}
