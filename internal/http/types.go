package http

import (
	"net/http"

	"github.com/anragha/silly-mid-on/internal/availability"
	"github.com/anragha/silly-mid-on/internal/club"
	"github.com/anragha/silly-mid-on/internal/config"
	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/processor"
	"github.com/anragha/silly-mid-on/internal/pubsub"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

type Server struct {
	Store          club.ClubStore
	Scheduler      scheduling.Engine
	Availability   availability.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// scheduleMatchRequest is the JSON body for POST /matches/schedule.
type scheduleMatchRequest struct {
	HomeTeamID      string `json:"home_team_id"`
	AwayTeamID      string `json:"away_team_id"`
	Venue           string `json:"venue"`
	Date            string `json:"date"`       // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
}

// rescheduleMatchRequest is the JSON body for POST /matches/reschedule.
type rescheduleMatchRequest struct {
	MatchID      string `json:"match_id"`
	NewDate      string `json:"new_date"`
	NewStartTime string `json:"new_start_time"`
}

// cancelMatchRequest is the JSON body for POST /matches/cancel.
type cancelMatchRequest struct {
	MatchID string `json:"match_id"`
}

// setAvailabilityRequest is the JSON body for POST /availability. It
// replaces the player's record for the date.
type setAvailabilityRequest struct {
	PlayerID    string             `json:"player_id"`
	Date        string             `json:"date"`
	IsAvailable bool               `json:"is_available"`
	Reason      string             `json:"reason,omitempty"`
	TimeSlots   []cricket.TimeSlot `json:"time_slots,omitempty"`
}
