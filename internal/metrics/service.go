package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SchedulingAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_scheduling_attempts_total",
			Help: "The total number of match scheduling attempts.",
		}),
		MatchesScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_matches_scheduled_total",
			Help: "The total number of matches successfully scheduled.",
		}),
		SchedulingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_scheduling_conflicts_total",
			Help: "The total number of scheduling conflicts detected, by reason.",
		}, []string{"reason"}),
		ScheduleCheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cricket_schedule_check_duration_seconds",
			Help:    "The duration of individual scheduling checks.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cricket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SchedulingAttempts,
		s.MatchesScheduled,
		s.SchedulingConflicts,
		s.ScheduleCheckDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSchedulingAttempts() {
	s.SchedulingAttempts.Inc()
}

func (s *Service) IncMatchesScheduled() {
	s.MatchesScheduled.Inc()
}

func (s *Service) IncSchedulingConflicts(reason string) {
	s.SchedulingConflicts.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveScheduleCheckDuration(duration float64) {
	s.ScheduleCheckDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
