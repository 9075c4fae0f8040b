package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/notifier"
	"github.com/anragha/silly-mid-on/internal/pubsub"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

func TestProcessor_MatchScheduled(t *testing.T) {
	t.Run("successful schedule publishes event and notifies", func(t *testing.T) {
		// Setup
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(notif, metr, ps)

		match := &cricket.ScheduledMatch{
			ID:        "m1",
			Date:      "2025-06-14",
			StartTime: "10:00",
			Status:    cricket.StatusScheduled,
		}

		// Execute
		p.MatchScheduled(&scheduling.ScheduleResult{Success: true, Match: match}, "2025-06-14", "10:00", false)

		// Assert
		assert.Equal(t, 1, metr.SchedulingAttempts())
		assert.Equal(t, 1, metr.MatchesScheduled())
		require.Len(t, ps.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventMatchScheduled, ps.SendMessageCalls[0].Event)
		require.Len(t, notif.SendMatchScheduledCalls, 1)
		assert.Equal(t, "m1", notif.SendMatchScheduledCalls[0].ID)
		require.Len(t, notif.SendSchedulingConflictsCalls, 0)
	})

	t.Run("failed schedule sends conflicts notification with suggestions", func(t *testing.T) {
		// Setup
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(notif, metr, ps)

		result := &scheduling.ScheduleResult{
			Success: false,
			Conflicts: []cricket.Conflict{
				{PlayerID: "p1", Reason: cricket.ReasonTimeOverlap, ConflictingMatchIDs: []string{"m0"}},
			},
			Suggestions: []string{"14:00", "16:00"},
		}

		// Execute
		p.MatchScheduled(result, "2025-06-14", "10:00", false)

		// Assert
		assert.Equal(t, 1, metr.SchedulingAttempts())
		assert.Equal(t, 0, metr.MatchesScheduled())
		assert.Equal(t, 1, metr.SchedulingConflicts(string(cricket.ReasonTimeOverlap)))
		require.Len(t, ps.SendMessageCalls, 0, "No event should be published for a failed attempt")
		require.Len(t, notif.SendMatchScheduledCalls, 0)
		require.Len(t, notif.SendSchedulingConflictsCalls, 1)
		call := notif.SendSchedulingConflictsCalls[0]
		assert.Equal(t, "2025-06-14", call.Date)
		assert.Equal(t, []string{"14:00", "16:00"}, call.Suggestions)
	})

	t.Run("dry run skips publishing but still notifies", func(t *testing.T) {
		// Setup
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(notif, metr, ps)

		match := &cricket.ScheduledMatch{ID: "m1", Status: cricket.StatusScheduled}

		// Execute
		p.MatchScheduled(&scheduling.ScheduleResult{Success: true, Match: match}, "2025-06-14", "10:00", true)

		// Assert
		require.Len(t, ps.SendMessageCalls, 0)
		require.Len(t, notif.SendMatchScheduledCalls, 1)
	})
}

func TestProcessor_MatchRescheduled(t *testing.T) {
	t.Run("successful reschedule publishes event and notifies", func(t *testing.T) {
		// Setup
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(notif, metr, ps)

		match := &cricket.ScheduledMatch{ID: "m1", Date: "2025-06-21", StartTime: "12:00"}

		// Execute
		p.MatchRescheduled(&scheduling.RescheduleResult{Success: true, Match: match}, "2025-06-21", "12:00", false)

		// Assert
		require.Len(t, ps.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventMatchRescheduled, ps.SendMessageCalls[0].Event)
		require.Len(t, notif.SendMatchRescheduledCalls, 1)
	})

	t.Run("failed reschedule sends conflicts notification", func(t *testing.T) {
		// Setup
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(notif, metr, ps)

		result := &scheduling.RescheduleResult{
			Success:   false,
			Conflicts: []cricket.Conflict{{PlayerID: "p1", Reason: cricket.ReasonPlayerUnavailable}},
		}

		// Execute
		p.MatchRescheduled(result, "2025-06-21", "12:00", false)

		// Assert
		assert.Equal(t, 1, metr.SchedulingConflicts(string(cricket.ReasonPlayerUnavailable)))
		require.Len(t, ps.SendMessageCalls, 0)
		require.Len(t, notif.SendMatchRescheduledCalls, 0)
		require.Len(t, notif.SendSchedulingConflictsCalls, 1)
	})
}

func TestProcessor_MatchCancelled(t *testing.T) {
	// Setup
	notif := notifier.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock("TEST")
	p := New(notif, metr, ps)

	match := &cricket.ScheduledMatch{ID: "m1", Date: "2025-06-14", Status: cricket.StatusCancelled}

	// Execute
	p.MatchCancelled(match, false)

	// Assert
	require.Len(t, ps.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventMatchCancelled, ps.SendMessageCalls[0].Event)
	require.Len(t, notif.SendMatchCancelledCalls, 1)
	assert.Equal(t, "m1", notif.SendMatchCancelledCalls[0].ID)
}
