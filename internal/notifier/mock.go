package notifier

import (
	"sync"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendMatchScheduledFunc       func(match *cricket.ScheduledMatch, dryRun bool) error
	SendMatchRescheduledFunc     func(match *cricket.ScheduledMatch, dryRun bool) error
	SendMatchCancelledFunc       func(match *cricket.ScheduledMatch, dryRun bool) error
	SendSchedulingConflictsFunc  func(date, startTime string, conflicts []cricket.Conflict, suggestions []string, dryRun bool) error

	// Call records
	SendMatchScheduledCalls      []*cricket.ScheduledMatch
	SendMatchRescheduledCalls    []*cricket.ScheduledMatch
	SendMatchCancelledCalls      []*cricket.ScheduledMatch
	SendSchedulingConflictsCalls []SchedulingConflictsCall
}

// SchedulingConflictsCall holds the arguments of a SendSchedulingConflicts call.
type SchedulingConflictsCall struct {
	Date        string
	StartTime   string
	Conflicts   []cricket.Conflict
	Suggestions []string
}

// NewMock creates a new mock notifier.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchScheduledCalls = nil
	m.SendMatchRescheduledCalls = nil
	m.SendMatchCancelledCalls = nil
	m.SendSchedulingConflictsCalls = nil
}

func (m *Mock) SendMatchScheduled(match *cricket.ScheduledMatch, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchScheduledCalls = append(m.SendMatchScheduledCalls, match)
	if m.SendMatchScheduledFunc != nil {
		return m.SendMatchScheduledFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchRescheduled(match *cricket.ScheduledMatch, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRescheduledCalls = append(m.SendMatchRescheduledCalls, match)
	if m.SendMatchRescheduledFunc != nil {
		return m.SendMatchRescheduledFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchCancelled(match *cricket.ScheduledMatch, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCancelledCalls = append(m.SendMatchCancelledCalls, match)
	if m.SendMatchCancelledFunc != nil {
		return m.SendMatchCancelledFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendSchedulingConflicts(date, startTime string, conflicts []cricket.Conflict, suggestions []string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSchedulingConflictsCalls = append(m.SendSchedulingConflictsCalls, SchedulingConflictsCall{
		Date:        date,
		StartTime:   startTime,
		Conflicts:   conflicts,
		Suggestions: suggestions,
	})
	if m.SendSchedulingConflictsFunc != nil {
		return m.SendSchedulingConflictsFunc(date, startTime, conflicts, suggestions, dryRun)
	}
	return nil
}
