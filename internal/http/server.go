package http

import (
	"net/http"

	"github.com/anragha/silly-mid-on/internal/availability"
	"github.com/anragha/silly-mid-on/internal/club"
	"github.com/anragha/silly-mid-on/internal/config"
	"github.com/anragha/silly-mid-on/internal/metrics"
	"github.com/anragha/silly-mid-on/internal/processor"
	"github.com/anragha/silly-mid-on/internal/pubsub"
	"github.com/anragha/silly-mid-on/internal/scheduling"
)

func NewServer(store club.ClubStore, scheduler scheduling.Engine, avail availability.Engine, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Scheduler:      scheduler,
		Availability:   avail,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/stats", Chain(s.MatchStatsHandler(), paramsMiddleware))
	s.Router.Handle("/matches/schedule", Chain(s.ScheduleMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/reschedule", Chain(s.RescheduleMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/cancel", Chain(s.CancelMatchHandler(), paramsMiddleware))
	s.Router.Handle("/availability", Chain(s.SetAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/availability/check", Chain(s.CheckAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/availability/slots", Chain(s.AvailableSlotsHandler(), paramsMiddleware))
	s.Router.Handle("/availability/suggest", Chain(s.SuggestTimesHandler(), paramsMiddleware))
	s.Router.Handle("/notify/match-scheduled", Chain(s.NotifyMatchScheduledHandler(), paramsMiddleware))
	s.Router.Handle("/notify/match-rescheduled", Chain(s.NotifyMatchRescheduledHandler(), paramsMiddleware))
	s.Router.Handle("/notify/match-cancelled", Chain(s.NotifyMatchCancelledHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
