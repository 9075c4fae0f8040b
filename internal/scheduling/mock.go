package scheduling

import (
	"sync"
	"time"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// Mock is a mock implementation of the Engine interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	ScheduleMatchFunc          func(req ScheduleRequest) (ScheduleResult, error)
	SuggestTimesFunc           func(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error)
	RescheduleMatchFunc        func(req RescheduleRequest) (RescheduleResult, error)
	CancelMatchFunc            func(matchID string, matches []cricket.ScheduledMatch) (*cricket.ScheduledMatch, error)
	MatchesForDateFunc         func(date string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch
	MatchesForTeamFunc         func(teamID string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch
	UpcomingMatchesForTeamFunc func(teamID string, matches []cricket.ScheduledMatch, now time.Time) ([]cricket.ScheduledMatch, error)
	IsTimeSlotAvailableFunc    func(date, startTime string, durationMinutes int, matches []cricket.ScheduledMatch) (bool, error)
	AvailableTimeSlotsFunc     func(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error)
	MatchStatisticsFunc        func(matches []cricket.ScheduledMatch) MatchStatistics

	// Call records
	ScheduleMatchCalls   []ScheduleRequest
	RescheduleMatchCalls []RescheduleRequest
	CancelMatchCalls     []string
}

// NewMock creates a new mock engine.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScheduleMatchCalls = nil
	m.RescheduleMatchCalls = nil
	m.CancelMatchCalls = nil
}

func (m *Mock) ScheduleMatch(req ScheduleRequest) (ScheduleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScheduleMatchCalls = append(m.ScheduleMatchCalls, req)
	if m.ScheduleMatchFunc != nil {
		return m.ScheduleMatchFunc(req)
	}
	return ScheduleResult{Success: true, Conflicts: []cricket.Conflict{}, Suggestions: []string{}}, nil
}

func (m *Mock) SuggestTimes(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SuggestTimesFunc != nil {
		return m.SuggestTimesFunc(date, durationMinutes, matches)
	}
	return nil, nil
}

func (m *Mock) RescheduleMatch(req RescheduleRequest) (RescheduleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RescheduleMatchCalls = append(m.RescheduleMatchCalls, req)
	if m.RescheduleMatchFunc != nil {
		return m.RescheduleMatchFunc(req)
	}
	return RescheduleResult{Success: true, Conflicts: []cricket.Conflict{}}, nil
}

func (m *Mock) CancelMatch(matchID string, matches []cricket.ScheduledMatch) (*cricket.ScheduledMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelMatchCalls = append(m.CancelMatchCalls, matchID)
	if m.CancelMatchFunc != nil {
		return m.CancelMatchFunc(matchID, matches)
	}
	return nil, ErrMatchNotFound
}

func (m *Mock) MatchesForDate(date string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch {
	if m.MatchesForDateFunc != nil {
		return m.MatchesForDateFunc(date, matches)
	}
	return nil
}

func (m *Mock) MatchesForTeam(teamID string, matches []cricket.ScheduledMatch) []cricket.ScheduledMatch {
	if m.MatchesForTeamFunc != nil {
		return m.MatchesForTeamFunc(teamID, matches)
	}
	return nil
}

func (m *Mock) UpcomingMatchesForTeam(teamID string, matches []cricket.ScheduledMatch, now time.Time) ([]cricket.ScheduledMatch, error) {
	if m.UpcomingMatchesForTeamFunc != nil {
		return m.UpcomingMatchesForTeamFunc(teamID, matches, now)
	}
	return nil, nil
}

func (m *Mock) IsTimeSlotAvailable(date, startTime string, durationMinutes int, matches []cricket.ScheduledMatch) (bool, error) {
	if m.IsTimeSlotAvailableFunc != nil {
		return m.IsTimeSlotAvailableFunc(date, startTime, durationMinutes, matches)
	}
	return true, nil
}

func (m *Mock) AvailableTimeSlots(date string, durationMinutes int, matches []cricket.ScheduledMatch) ([]string, error) {
	if m.AvailableTimeSlotsFunc != nil {
		return m.AvailableTimeSlotsFunc(date, durationMinutes, matches)
	}
	return nil, nil
}

func (m *Mock) MatchStatistics(matches []cricket.ScheduledMatch) MatchStatistics {
	if m.MatchStatisticsFunc != nil {
		return m.MatchStatisticsFunc(matches)
	}
	return MatchStatistics{Total: len(matches)}
}
