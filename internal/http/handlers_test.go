package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/anragha/silly-mid-on/internal/availability"
	"github.com/anragha/silly-mid-on/internal/club"
	"github.com/anragha/silly-mid-on/internal/config"
	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/anragha/silly-mid-on/internal/database"
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/notifier"
	"github.com/anragha/silly-mid-on/internal/processor"
	"github.com/anragha/silly-mid-on/internal/pubsub"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notif notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	ps := pubsub.NewMock("TEST")
	ps.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}
	proc := processor.New(notif, metricsSvc, ps)
	avail := availability.New()
	scheduler := scheduling.New(avail)
	server := NewServer(clubStore, scheduler, avail, metricsSvc, metricsHandler, cfg, proc, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// seedClub loads a minimal two-team club into the store.
func seedClub(t *testing.T, store club.ClubStore) {
	t.Helper()

	players := make([]club.PlayerInfo, 0, 22)
	firstXI := make([]cricket.TeamMember, 0, 11)
	secondXI := make([]cricket.TeamMember, 0, 11)
	for i := 1; i <= 22; i++ {
		id := fmt.Sprintf("p%d", i)
		players = append(players, club.PlayerInfo{ID: id, Name: fmt.Sprintf("Player %d", i)})
		if i <= 11 {
			firstXI = append(firstXI, cricket.TeamMember{PlayerID: id, IsActive: true})
		} else {
			secondXI = append(secondXI, cricket.TeamMember{PlayerID: id, IsActive: true})
		}
	}
	require.NoError(t, store.UpsertPlayers(players))
	require.NoError(t, store.UpsertTeam(cricket.Team{ID: "first-xi", Name: "First XI", Members: firstXI}))
	require.NoError(t, store.UpsertTeam(cricket.Team{ID: "second-xi", Name: "Second XI", Members: secondXI}))
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", path, bytes.NewReader(payload))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestScheduleMatchHandler(t *testing.T) {
	t.Run("schedules a valid match and persists it", func(t *testing.T) {
		notif := notifier.NewMock()
		server, teardown := setupTestServer(t, notif)
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
			HomeTeamID:      "first-xi",
			AwayTeamID:      "second-xi",
			Venue:           "The Oval",
			Date:            "2025-06-14",
			StartTime:       "10:00",
			DurationMinutes: 360,
		})

		require.Equal(t, http.StatusOK, rr.Code)
		var result scheduling.ScheduleResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.True(t, result.Success)
		require.NotNil(t, result.Match)
		assert.Equal(t, cricket.StatusScheduled, result.Match.Status)

		stored, err := server.Store.GetMatch(result.Match.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Oval", stored.Venue)
		require.Len(t, notif.SendMatchScheduledCalls, 1)
	})

	t.Run("rejects a team playing itself without persisting", func(t *testing.T) {
		notif := notifier.NewMock()
		server, teardown := setupTestServer(t, notif)
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
			HomeTeamID:      "first-xi",
			AwayTeamID:      "first-xi",
			Venue:           "The Oval",
			Date:            "2025-06-14",
			StartTime:       "10:00",
			DurationMinutes: 360,
		})

		require.Equal(t, http.StatusOK, rr.Code)
		var result scheduling.ScheduleResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.Success)
		require.NotEmpty(t, result.Conflicts)
		assert.Equal(t, cricket.TeamConflictSentinel, result.Conflicts[0].PlayerID)

		matches, err := server.Store.GetAllMatches()
		require.NoError(t, err)
		assert.Empty(t, matches, "no match should be persisted on conflict")
		require.Len(t, notif.SendSchedulingConflictsCalls, 1)
	})

	t.Run("returns 404 for an unknown team", func(t *testing.T) {
		server, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
			HomeTeamID:      "third-xi",
			AwayTeamID:      "second-xi",
			Date:            "2025-06-14",
			StartTime:       "10:00",
			DurationMinutes: 360,
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rejects a malformed start time", func(t *testing.T) {
		server, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
			HomeTeamID:      "first-xi",
			AwayTeamID:      "second-xi",
			Date:            "2025-06-14",
			StartTime:       "25:00",
			DurationMinutes: 360,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRescheduleMatchHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedClub(t, server.Store)

	rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
		HomeTeamID:      "first-xi",
		AwayTeamID:      "second-xi",
		Venue:           "The Oval",
		Date:            "2025-06-14",
		StartTime:       "10:00",
		DurationMinutes: 360,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var scheduled scheduling.ScheduleResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scheduled))
	require.True(t, scheduled.Success)

	rr = postJSON(t, server, "/matches/reschedule", rescheduleMatchRequest{
		MatchID:      scheduled.Match.ID,
		NewDate:      "2025-06-21",
		NewStartTime: "12:00",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var result scheduling.RescheduleResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Success)

	stored, err := server.Store.GetMatch(scheduled.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-21", stored.Date)
	assert.Equal(t, "12:00", stored.StartTime)
}

func TestRescheduleMatchHandler_NotFound(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/matches/reschedule", rescheduleMatchRequest{
		MatchID:      "does-not-exist",
		NewDate:      "2025-06-21",
		NewStartTime: "12:00",
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCancelMatchHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()
	seedClub(t, server.Store)

	rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
		HomeTeamID:      "first-xi",
		AwayTeamID:      "second-xi",
		Venue:           "The Oval",
		Date:            "2025-06-14",
		StartTime:       "10:00",
		DurationMinutes: 360,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var scheduled scheduling.ScheduleResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scheduled))
	require.True(t, scheduled.Success)

	rr = postJSON(t, server, "/matches/cancel", cancelMatchRequest{MatchID: scheduled.Match.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	stored, err := server.Store.GetMatch(scheduled.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, cricket.StatusCancelled, stored.Status)
	require.Len(t, notif.SendMatchCancelledCalls, 1)

	// Cancelling again is a no-op, not an error.
	rr = postJSON(t, server, "/matches/cancel", cancelMatchRequest{MatchID: scheduled.Match.ID})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSetAvailabilityHandler(t *testing.T) {
	t.Run("stores a record and the check honours it", func(t *testing.T) {
		server, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/availability", setAvailabilityRequest{
			PlayerID:    "p1",
			Date:        "2025-06-14",
			IsAvailable: false,
			Reason:      "injured",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		req, err := http.NewRequest("GET", "/availability/check?player_id=p1&date=2025-06-14&start_time=10:00&duration=360", nil)
		require.NoError(t, err)
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var result availability.CheckResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.IsAvailable)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, cricket.ReasonPlayerUnavailable, result.Conflicts[0].Reason)
	})

	t.Run("rejects malformed slot times", func(t *testing.T) {
		server, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()

		rr := postJSON(t, server, "/availability", setAvailabilityRequest{
			PlayerID:    "p1",
			Date:        "2025-06-14",
			IsAvailable: true,
			TimeSlots:   []cricket.TimeSlot{{Start: "9am", End: "12:00"}},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown player is a 404", func(t *testing.T) {
		server, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()
		seedClub(t, server.Store)

		rr := postJSON(t, server, "/availability", setAvailabilityRequest{
			PlayerID:    "nobody",
			Date:        "2025-06-14",
			IsAvailable: false,
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCheckAvailabilityHandler_UnknownPlayerIsAvailable(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/availability/check?player_id=ghost&date=2025-06-14&start_time=10:00&duration=360", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result availability.CheckResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.IsAvailable)
}

func TestAvailableSlotsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedClub(t, server.Store)

	rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
		HomeTeamID:      "first-xi",
		AwayTeamID:      "second-xi",
		Venue:           "The Oval",
		Date:            "2025-06-14",
		StartTime:       "10:00",
		DurationMinutes: 120,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	req, err := http.NewRequest("GET", "/availability/slots?date=2025-06-14&duration=60", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var slots []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &slots))
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "11:00")
	assert.Contains(t, slots, "12:00")
	assert.Contains(t, slots, "09:00")
}

func TestListMatchesHandler_Filters(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedClub(t, server.Store)

	for _, fixture := range []struct{ date, start string }{
		{"2025-06-14", "10:00"},
		{"2025-06-21", "10:00"},
	} {
		rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
			HomeTeamID:      "first-xi",
			AwayTeamID:      "second-xi",
			Venue:           "The Oval",
			Date:            fixture.date,
			StartTime:       fixture.start,
			DurationMinutes: 360,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	req, err := http.NewRequest("GET", "/matches?date=2025-06-14", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var matches []cricket.ScheduledMatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	assert.Len(t, matches, 1)

	req, err = http.NewRequest("GET", "/matches?team=first-xi", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	assert.Len(t, matches, 2)
}

func TestMatchStatsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	seedClub(t, server.Store)

	rr := postJSON(t, server, "/matches/schedule", scheduleMatchRequest{
		HomeTeamID:      "first-xi",
		AwayTeamID:      "second-xi",
		Venue:           "The Oval",
		Date:            "2025-06-14",
		StartTime:       "10:00",
		DurationMinutes: 360,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	req, err := http.NewRequest("GET", "/matches/stats", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var stats scheduling.MatchStatistics
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Scheduled)
}

func TestNotifyMatchScheduledHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()

	match := cricket.ScheduledMatch{ID: "m1", Date: "2025-06-14", StartTime: "10:00"}
	payload, err := msgpack.Marshal(match)
	require.NoError(t, err)

	push := map[string]any{
		"subscription": "test-sub",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}
	rr := postJSON(t, server, "/notify/match-scheduled", push)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notif.SendMatchScheduledCalls, 1)
	assert.Equal(t, "m1", notif.SendMatchScheduledCalls[0].ID)
}
