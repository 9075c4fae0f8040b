package club

import (
	"fmt"
	"sync"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayersFunc       func(players []PlayerInfo) error
	IsKnownPlayerFunc       func(playerID string) bool
	GetAllPlayersFunc       func() ([]cricket.Player, error)
	GetPlayersFunc          func(playerIDs []string) ([]cricket.Player, error)
	SetAvailabilityFunc     func(playerID string, record cricket.AvailabilityRecord) error
	UpsertTeamFunc          func(team cricket.Team) error
	GetTeamFunc             func(teamID string) (cricket.Team, error)
	GetAllTeamsFunc         func() ([]cricket.Team, error)
	InsertMatchFunc         func(match *cricket.ScheduledMatch) error
	UpdateMatchScheduleFunc func(matchID, newDate, newStartTime string) error
	UpdateMatchStatusFunc   func(matchID string, status cricket.MatchStatus) error
	SetPlayingXIFunc        func(matchID string, xi cricket.PlayingXI) error
	GetMatchFunc            func(matchID string) (*cricket.ScheduledMatch, error)
	GetAllMatchesFunc       func() ([]cricket.ScheduledMatch, error)

	// Call records
	UpsertPlayersCalls     [][]PlayerInfo
	SetAvailabilityCalls   []SetAvailabilityCall
	UpsertTeamCalls        []cricket.Team
	InsertMatchCalls       []*cricket.ScheduledMatch
	UpdateMatchStatusCalls []UpdateMatchStatusCall
	ClearCalls             int
}

// SetAvailabilityCall holds the arguments of a SetAvailability call.
type SetAvailabilityCall struct {
	PlayerID string
	Record   cricket.AvailabilityRecord
}

// UpdateMatchStatusCall holds the arguments of an UpdateMatchStatus call.
type UpdateMatchStatusCall struct {
	MatchID string
	Status  cricket.MatchStatus
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = nil
	m.SetAvailabilityCalls = nil
	m.UpsertTeamCalls = nil
	m.InsertMatchCalls = nil
	m.UpdateMatchStatusCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) GetAllPlayers() ([]cricket.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]cricket.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) SetAvailability(playerID string, record cricket.AvailabilityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetAvailabilityCalls = append(m.SetAvailabilityCalls, SetAvailabilityCall{PlayerID: playerID, Record: record})
	if m.SetAvailabilityFunc != nil {
		return m.SetAvailabilityFunc(playerID, record)
	}
	return nil
}

func (m *MockStore) UpsertTeam(team cricket.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertTeamCalls = append(m.UpsertTeamCalls, team)
	if m.UpsertTeamFunc != nil {
		return m.UpsertTeamFunc(team)
	}
	return nil
}

func (m *MockStore) GetTeam(teamID string) (cricket.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return cricket.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
}

func (m *MockStore) GetAllTeams() ([]cricket.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllTeamsFunc != nil {
		return m.GetAllTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) InsertMatch(match *cricket.ScheduledMatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchCalls = append(m.InsertMatchCalls, match)
	if m.InsertMatchFunc != nil {
		return m.InsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpdateMatchSchedule(matchID, newDate, newStartTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchScheduleFunc != nil {
		return m.UpdateMatchScheduleFunc(matchID, newDate, newStartTime)
	}
	return nil
}

func (m *MockStore) UpdateMatchStatus(matchID string, status cricket.MatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMatchStatusCalls = append(m.UpdateMatchStatusCalls, UpdateMatchStatusCall{MatchID: matchID, Status: status})
	if m.UpdateMatchStatusFunc != nil {
		return m.UpdateMatchStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) SetPlayingXI(matchID string, xi cricket.PlayingXI) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetPlayingXIFunc != nil {
		return m.SetPlayingXIFunc(matchID, xi)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*cricket.ScheduledMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
}

func (m *MockStore) GetAllMatches() ([]cricket.ScheduledMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}
