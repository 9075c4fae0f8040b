package processor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/pubsub"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

// New creates a new Processor.
func New(notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// MatchScheduled handles the outcome of a scheduling attempt. On success it
// publishes the fixture and notifies the club channel; on failure it notifies
// with the conflicts and any suggested alternative start times.
func (p *Processor) MatchScheduled(result *scheduling.ScheduleResult, date, startTime string, dryRun bool) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveScheduleCheckDuration(time.Since(start).Seconds())
	}()

	p.metrics.IncSchedulingAttempts()

	if !result.Success {
		log.Info("Match could not be scheduled", "date", date, "startTime", startTime, "conflicts", len(result.Conflicts))
		for _, c := range result.Conflicts {
			p.metrics.IncSchedulingConflicts(string(c.Reason))
		}
		if err := p.notifier.SendSchedulingConflicts(date, startTime, result.Conflicts, result.Suggestions, dryRun); err != nil {
			log.Error("Failed to send scheduling conflicts notification", "error", err)
		}
		return
	}

	log.Info("Match scheduled", "matchID", result.Match.ID, "date", result.Match.Date, "startTime", result.Match.StartTime)
	p.metrics.IncMatchesScheduled()
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventMatchScheduled, result.Match); err != nil {
			log.Error("Failed to publish match scheduled event", "error", err, "matchID", result.Match.ID)
		}
	}
	if err := p.notifier.SendMatchScheduled(result.Match, dryRun); err != nil {
		log.Error("Failed to send match scheduled notification", "error", err, "matchID", result.Match.ID)
	}
}

// MatchRescheduled handles the outcome of a reschedule attempt.
func (p *Processor) MatchRescheduled(result *scheduling.RescheduleResult, date, startTime string, dryRun bool) {
	if !result.Success {
		log.Info("Match could not be rescheduled", "date", date, "startTime", startTime, "conflicts", len(result.Conflicts))
		for _, c := range result.Conflicts {
			p.metrics.IncSchedulingConflicts(string(c.Reason))
		}
		if err := p.notifier.SendSchedulingConflicts(date, startTime, result.Conflicts, nil, dryRun); err != nil {
			log.Error("Failed to send scheduling conflicts notification", "error", err)
		}
		return
	}

	log.Info("Match rescheduled", "matchID", result.Match.ID, "date", result.Match.Date, "startTime", result.Match.StartTime)
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventMatchRescheduled, result.Match); err != nil {
			log.Error("Failed to publish match rescheduled event", "error", err, "matchID", result.Match.ID)
		}
	}
	if err := p.notifier.SendMatchRescheduled(result.Match, dryRun); err != nil {
		log.Error("Failed to send match rescheduled notification", "error", err, "matchID", result.Match.ID)
	}
}

// NotifyScheduled sends only the notification for an already published
// fixture. Used by the pubsub push handlers so consuming an event never
// republishes it.
func (p *Processor) NotifyScheduled(match *cricket.ScheduledMatch, dryRun bool) error {
	return p.notifier.SendMatchScheduled(match, dryRun)
}

// NotifyRescheduled sends only the notification for a rescheduled fixture.
func (p *Processor) NotifyRescheduled(match *cricket.ScheduledMatch, dryRun bool) error {
	return p.notifier.SendMatchRescheduled(match, dryRun)
}

// NotifyCancelled sends only the notification for a cancelled fixture.
func (p *Processor) NotifyCancelled(match *cricket.ScheduledMatch, dryRun bool) error {
	return p.notifier.SendMatchCancelled(match, dryRun)
}

// MatchCancelled publishes and notifies a cancellation.
func (p *Processor) MatchCancelled(match *cricket.ScheduledMatch, dryRun bool) {
	log.Info("Match cancelled", "matchID", match.ID, "date", match.Date)
	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventMatchCancelled, match); err != nil {
			log.Error("Failed to publish match cancelled event", "error", err, "matchID", match.ID)
		}
	}
	if err := p.notifier.SendMatchCancelled(match, dryRun); err != nil {
		log.Error("Failed to send match cancelled notification", "error", err, "matchID", match.ID)
	}
}
