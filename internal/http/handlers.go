package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anragha/silly-mid-on/internal/club"
	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondJSON(w, players)
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Store.GetAllTeams()
		if err != nil {
			http.Error(w, "Failed to get teams", http.StatusInternalServerError)
			log.Error("Failed to get teams from store", "error", err)
			return
		}
		respondJSON(w, teams)
	}
}

// ListMatchesHandler supports optional filters: 'date' for a single day,
// 'team' for either fixture slot, and 'upcoming' (with 'team') for the
// team's scheduled matches after now, sorted by kickoff.
func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}

		date := r.URL.Query().Get("date")
		team := r.URL.Query().Get("team")
		upcoming := r.URL.Query().Get("upcoming") == "true"

		switch {
		case upcoming && team != "":
			matches, err = s.Scheduler.UpcomingMatchesForTeam(team, matches, time.Now())
			if err != nil {
				http.Error(w, "Failed to filter upcoming matches", http.StatusInternalServerError)
				log.Error("Failed to filter upcoming matches", "error", err, "team", team)
				return
			}
		case team != "":
			matches = s.Scheduler.MatchesForTeam(team, matches)
		case date != "":
			matches = s.Scheduler.MatchesForDate(date, matches)
		}

		respondJSON(w, matches)
	}
}

func (s *Server) MatchStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondJSON(w, s.Scheduler.MatchStatistics(matches))
	}
}

// ScheduleMatchHandler runs the full scheduling flow: load the snapshot
// from the store, validate through the scheduling engine, persist on
// success and hand the outcome to the processor. The structured result is
// returned to the caller whether or not the attempt succeeded.
func (s *Server) ScheduleMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		homeTeam, err := s.Store.GetTeam(req.HomeTeamID)
		if err != nil {
			respondTeamLookupError(w, err, req.HomeTeamID)
			return
		}
		awayTeam, err := s.Store.GetTeam(req.AwayTeamID)
		if err != nil {
			respondTeamLookupError(w, err, req.AwayTeamID)
			return
		}

		players, matches, ok := s.loadSnapshot(w)
		if !ok {
			return
		}

		result, err := s.Scheduler.ScheduleMatch(scheduling.ScheduleRequest{
			HomeTeam:        homeTeam,
			AwayTeam:        awayTeam,
			Venue:           req.Venue,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			ExistingMatches: matches,
			AllPlayers:      players,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if result.Success && !isDryRun {
			if err := s.Store.InsertMatch(result.Match); err != nil {
				http.Error(w, "Failed to save match", http.StatusInternalServerError)
				log.Error("Failed to insert match", "error", err, "matchID", result.Match.ID)
				return
			}
		}

		s.Processor.MatchScheduled(&result, req.Date, req.StartTime, isDryRun)
		respondJSON(w, result)
	}
}

// RescheduleMatchHandler re-validates player availability for the match's
// rosters against the new window and persists the move on success.
func (s *Server) RescheduleMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rescheduleMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		match, err := s.Store.GetMatch(req.MatchID)
		if err != nil {
			if errors.Is(err, club.ErrMatchNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			log.Error("Failed to get match from store", "error", err, "matchID", req.MatchID)
			return
		}

		homeTeam, err := s.Store.GetTeam(match.HomeTeamID)
		if err != nil {
			respondTeamLookupError(w, err, match.HomeTeamID)
			return
		}
		awayTeam, err := s.Store.GetTeam(match.AwayTeamID)
		if err != nil {
			respondTeamLookupError(w, err, match.AwayTeamID)
			return
		}

		players, matches, ok := s.loadSnapshot(w)
		if !ok {
			return
		}

		result, err := s.Scheduler.RescheduleMatch(scheduling.RescheduleRequest{
			MatchID:         req.MatchID,
			NewDate:         req.NewDate,
			NewStartTime:    req.NewStartTime,
			HomeTeam:        homeTeam,
			AwayTeam:        awayTeam,
			ExistingMatches: matches,
			AllPlayers:      players,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrMatchNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if result.Success && !isDryRun {
			if err := s.Store.UpdateMatchSchedule(req.MatchID, req.NewDate, req.NewStartTime); err != nil {
				http.Error(w, "Failed to save match", http.StatusInternalServerError)
				log.Error("Failed to update match schedule", "error", err, "matchID", req.MatchID)
				return
			}
		}

		s.Processor.MatchRescheduled(&result, req.NewDate, req.NewStartTime, isDryRun)
		respondJSON(w, result)
	}
}

// CancelMatchHandler flips the match to cancelled. Cancelling twice is a
// no-op and still returns the match.
func (s *Server) CancelMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}

		match, err := s.Scheduler.CancelMatch(req.MatchID, matches)
		if err != nil {
			if errors.Is(err, scheduling.ErrMatchNotFound) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to cancel match", http.StatusInternalServerError)
			log.Error("Failed to cancel match", "error", err, "matchID", req.MatchID)
			return
		}

		if !isDryRun {
			if err := s.Store.UpdateMatchStatus(req.MatchID, cricket.StatusCancelled); err != nil {
				http.Error(w, "Failed to save match", http.StatusInternalServerError)
				log.Error("Failed to update match status", "error", err, "matchID", req.MatchID)
				return
			}
		}

		s.Processor.MatchCancelled(match, isDryRun)
		respondJSON(w, match)
	}
}

// SetAvailabilityHandler replaces a player's availability record for a
// date. Slot times are validated up front so a malformed record can never
// reach the engines.
func (s *Server) SetAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setAvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" || req.Date == "" {
			http.Error(w, "player_id and date are required", http.StatusBadRequest)
			return
		}
		for _, slot := range req.TimeSlots {
			if _, err := cricket.SlotWindow(slot.Start, slot.End); err != nil {
				http.Error(w, fmt.Sprintf("invalid time slot %s-%s: %v", slot.Start, slot.End, err), http.StatusBadRequest)
				return
			}
		}
		if !s.Store.IsKnownPlayer(req.PlayerID) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		record := cricket.AvailabilityRecord{
			Date:        req.Date,
			TimeSlots:   req.TimeSlots,
			IsAvailable: req.IsAvailable,
			Reason:      req.Reason,
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have set availability", "playerID", req.PlayerID, "date", req.Date)
			respondJSON(w, record)
			return
		}

		if err := s.Store.SetAvailability(req.PlayerID, record); err != nil {
			http.Error(w, "Failed to set availability", http.StatusInternalServerError)
			log.Error("Failed to set availability", "error", err, "playerID", req.PlayerID)
			return
		}
		respondJSON(w, record)
	}
}

// CheckAvailabilityHandler runs the single-player availability check for a
// proposed window. A player with no stored record is treated as available
// all day.
func (s *Server) CheckAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("player_id")
		date := r.URL.Query().Get("date")
		startTime := r.URL.Query().Get("start_time")
		duration, err := durationParam(r)
		if playerID == "" || date == "" || startTime == "" || err != nil {
			http.Error(w, "player_id, date, start_time and duration are required", http.StatusBadRequest)
			return
		}

		players, err := s.Store.GetPlayers([]string{playerID})
		if err != nil {
			http.Error(w, "Failed to get player", http.StatusInternalServerError)
			log.Error("Failed to get player from store", "error", err, "playerID", playerID)
			return
		}
		player := cricket.Player{ID: playerID}
		if len(players) > 0 {
			player = players[0]
		}

		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}

		result, err := s.Availability.CheckPlayer(player, date, startTime, duration, matches)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, result)
	}
}

// AvailableSlotsHandler returns the hourly slots on a date with no
// overlapping fixture.
func (s *Server) AvailableSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		duration, err := durationParam(r)
		if date == "" || err != nil {
			http.Error(w, "date and duration are required", http.StatusBadRequest)
			return
		}

		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}

		slots, err := s.Scheduler.AvailableTimeSlots(date, duration, matches)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, slots)
	}
}

// SuggestTimesHandler returns start times for which enough of the team's
// active roster is available by declared availability alone.
func (s *Server) SuggestTimesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		date := r.URL.Query().Get("date")
		duration, err := durationParam(r)
		if teamID == "" || date == "" || err != nil {
			http.Error(w, "team_id, date and duration are required", http.StatusBadRequest)
			return
		}

		team, err := s.Store.GetTeam(teamID)
		if err != nil {
			respondTeamLookupError(w, err, teamID)
			return
		}

		players, err := s.Store.GetPlayers(team.ActiveMemberIDs())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err, "teamID", teamID)
			return
		}

		suggestions, err := s.Availability.SuggestTimes(players, date, duration)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, suggestions)
	}
}

func (s *Server) NotifyMatchScheduledHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.handleMatchPush(w, r, s.Processor.NotifyScheduled)
	}
}

func (s *Server) NotifyMatchRescheduledHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.handleMatchPush(w, r, s.Processor.NotifyRescheduled)
	}
}

func (s *Server) NotifyMatchCancelledHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.handleMatchPush(w, r, s.Processor.NotifyCancelled)
	}
}

// handleMatchPush decodes a Pub/Sub push delivery into a match and hands
// it to the given notify action. Consuming an event never republishes it.
func (s *Server) handleMatchPush(w http.ResponseWriter, r *http.Request, notify func(*cricket.ScheduledMatch, bool) error) {
	rawData, err := decodePushMessage(r)
	if err != nil {
		log.Error("Failed to decode push message", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match := cricket.ScheduledMatch{}
	if err := s.pubsub.ProcessMessage(rawData, &match); err != nil {
		log.Error("Failed to decode match payload", "error", err)
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return
	}

	if err := notify(&match, isDryRunFromContext(r)); err != nil {
		log.Error("Failed to send notification", "error", err, "matchID", match.ID)
		http.Error(w, "Failed to send notification", http.StatusInternalServerError)
		return
	}
	w.Write([]byte("OK"))
}

// decodePushMessage unwraps the Pub/Sub push envelope: outer JSON with a
// base64-encoded payload inside.
func decodePushMessage(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return rawData, nil
}

// loadSnapshot loads the full player registry and match list the engines
// consume. Writes the error response itself and reports ok=false.
func (s *Server) loadSnapshot(w http.ResponseWriter) ([]cricket.Player, []cricket.ScheduledMatch, bool) {
	players, err := s.Store.GetAllPlayers()
	if err != nil {
		http.Error(w, "Failed to get players", http.StatusInternalServerError)
		log.Error("Failed to get players from store", "error", err)
		return nil, nil, false
	}
	matches, err := s.Store.GetAllMatches()
	if err != nil {
		http.Error(w, "Failed to get matches", http.StatusInternalServerError)
		log.Error("Failed to get matches from store", "error", err)
		return nil, nil, false
	}
	return players, matches, true
}

func respondTeamLookupError(w http.ResponseWriter, err error, teamID string) {
	if errors.Is(err, club.ErrTeamNotFound) {
		http.Error(w, fmt.Sprintf("Team %s not found", teamID), http.StatusNotFound)
		return
	}
	http.Error(w, "Failed to get team", http.StatusInternalServerError)
	log.Error("Failed to get team from store", "error", err, "teamID", teamID)
}

func durationParam(r *http.Request) (int, error) {
	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		return 0, err
	}
	return duration, nil
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
