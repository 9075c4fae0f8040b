package availability

import (
	"sync"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// Mock is a mock implementation of the Engine interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	CheckPlayerFunc  func(player cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (CheckResult, error)
	CheckPlayersFunc func(players []cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (MultiCheckResult, error)
	SuggestTimesFunc func(players []cricket.Player, date string, durationMinutes int) ([]string, error)

	// Call records
	CheckPlayerCalls  []CheckPlayerCall
	CheckPlayersCalls []CheckPlayersCall
	SuggestTimesCalls []SuggestTimesCall
}

// CheckPlayerCall holds the arguments of a CheckPlayer call.
type CheckPlayerCall struct {
	Player          cricket.Player
	MatchDate       string
	StartTime       string
	DurationMinutes int
}

// CheckPlayersCall holds the arguments of a CheckPlayers call.
type CheckPlayersCall struct {
	Players         []cricket.Player
	MatchDate       string
	StartTime       string
	DurationMinutes int
}

// SuggestTimesCall holds the arguments of a SuggestTimes call.
type SuggestTimesCall struct {
	Players         []cricket.Player
	Date            string
	DurationMinutes int
}

// NewMock creates a new mock engine.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckPlayerCalls = nil
	m.CheckPlayersCalls = nil
	m.SuggestTimesCalls = nil
}

func (m *Mock) CheckPlayer(player cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (CheckResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckPlayerCalls = append(m.CheckPlayerCalls, CheckPlayerCall{Player: player, MatchDate: matchDate, StartTime: startTime, DurationMinutes: durationMinutes})
	if m.CheckPlayerFunc != nil {
		return m.CheckPlayerFunc(player, matchDate, startTime, durationMinutes, existingMatches)
	}
	return CheckResult{IsAvailable: true, Conflicts: []cricket.Conflict{}}, nil
}

func (m *Mock) CheckPlayers(players []cricket.Player, matchDate, startTime string, durationMinutes int, existingMatches []cricket.ScheduledMatch) (MultiCheckResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckPlayersCalls = append(m.CheckPlayersCalls, CheckPlayersCall{Players: players, MatchDate: matchDate, StartTime: startTime, DurationMinutes: durationMinutes})
	if m.CheckPlayersFunc != nil {
		return m.CheckPlayersFunc(players, matchDate, startTime, durationMinutes, existingMatches)
	}
	return MultiCheckResult{AvailablePlayers: players, Conflicts: []cricket.Conflict{}}, nil
}

func (m *Mock) SuggestTimes(players []cricket.Player, date string, durationMinutes int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestTimesCalls = append(m.SuggestTimesCalls, SuggestTimesCall{Players: players, Date: date, DurationMinutes: durationMinutes})
	if m.SuggestTimesFunc != nil {
		return m.SuggestTimesFunc(players, date, durationMinutes)
	}
	return nil, nil
}
