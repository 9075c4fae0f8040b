package notifier

import "github.com/anragha/silly-mid-on/internal/cricket"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly scheduled fixtures
	SendMatchScheduled(match *cricket.ScheduledMatch, dryRun bool) error
	// For fixtures moved to a new window
	SendMatchRescheduled(match *cricket.ScheduledMatch, dryRun bool) error
	// For cancelled fixtures
	SendMatchCancelled(match *cricket.ScheduledMatch, dryRun bool) error
	// For failed scheduling attempts, with the conflicts and any
	// alternative start times that would avoid them
	SendSchedulingConflicts(date, startTime string, conflicts []cricket.Conflict, suggestions []string, dryRun bool) error
}
