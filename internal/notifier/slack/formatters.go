package slack

import (
	"fmt"
	"strings"

	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/slack-go/slack"
)

// formatMatchScheduled creates the Slack message for a newly scheduled fixture using Block Kit.
func (s *Notifier) formatMatchScheduled(match *cricket.ScheduledMatch) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🏏 New match scheduled! 🏏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details - Use newlines for clear separation.
	detailsText := fmt.Sprintf("%s vs %s\nVenue: %s\nWhen: %s at %s (%d min)",
		match.HomeTeamID, match.AwayTeamID, match.Venue, match.Date, match.StartTime, match.DurationMinutes)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatMatchRescheduled creates the Slack message for a moved fixture.
func (s *Notifier) formatMatchRescheduled(match *cricket.ScheduledMatch) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏏 Match rescheduled", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s\nNew time: %s at %s\nVenue: %s",
		match.HomeTeamID, match.AwayTeamID, match.Date, match.StartTime, match.Venue)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatMatchCancelled creates the Slack message for a cancelled fixture.
func (s *Notifier) formatMatchCancelled(match *cricket.ScheduledMatch) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "❌ Match cancelled", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s on %s at %s has been cancelled.",
		match.HomeTeamID, match.AwayTeamID, match.Date, match.StartTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatSchedulingConflicts creates the Slack message for a failed scheduling attempt.
func (s *Notifier) formatSchedulingConflicts(date, startTime string, conflicts []cricket.Conflict, suggestions []string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚠️ Scheduling conflict", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	intro := fmt.Sprintf("Could not schedule for %s at %s.", date, startTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", intro, false, false), nil, nil))

	var lines []string
	for _, c := range conflicts {
		line := fmt.Sprintf("• %s: %s", c.PlayerID, describeReason(c.Reason))
		if len(c.ConflictingMatchIDs) > 0 {
			line += fmt.Sprintf(" (clashes with %s)", strings.Join(c.ConflictingMatchIDs, ", "))
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		conflictsText := "Conflicts:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", conflictsText, true, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	if len(suggestions) > 0 {
		suggestionText := slack.NewTextBlockObject("plain_text", "Free start times: "+strings.Join(suggestions, ", "), true, false)
		blocks = append(blocks, slack.NewContextBlock("", suggestionText))
	}

	return slack.NewBlockMessage(blocks...)
}

func describeReason(reason cricket.ConflictReason) string {
	switch reason {
	case cricket.ReasonPlayerUnavailable:
		return "player unavailable"
	case cricket.ReasonTimeOverlap:
		return "time overlap"
	case cricket.ReasonLocationConflict:
		return "venue conflict"
	default:
		return string(reason)
	}
}
