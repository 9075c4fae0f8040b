package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	schedulingAttempts     int
	matchesScheduled       int
	schedulingConflicts    map[string]int
	scheduleCheckDurations []float64
	slackNotifSent         int
	slackNotifFailed       int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		schedulingConflicts:    make(map[string]int),
		scheduleCheckDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSchedulingAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulingAttempts++
}

func (m *Mock) IncMatchesScheduled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesScheduled++
}

func (m *Mock) IncSchedulingConflicts(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulingConflicts[reason]++
}

func (m *Mock) ObserveScheduleCheckDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleCheckDurations = append(m.scheduleCheckDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SchedulingAttempts returns the number of times IncSchedulingAttempts was called.
func (m *Mock) SchedulingAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulingAttempts
}

// MatchesScheduled returns the number of times IncMatchesScheduled was called.
func (m *Mock) MatchesScheduled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesScheduled
}

// SchedulingConflicts returns the number of conflicts recorded for a reason.
func (m *Mock) SchedulingConflicts(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulingConflicts[reason]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
