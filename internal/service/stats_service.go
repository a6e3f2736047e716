package service

import (
	"context"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/ai/router"
	"henna-assistant-be/pkg/events"

	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "henna"

// Label values of henna_chat_answers_total
const (
	OutcomeAnswered = "answered"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

type IStatsService interface {
	Record(event events.Event)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	sessionsStarted prometheus.Counter
	answers         *prometheus.CounterVec // source, outcome
	resets          prometheus.Counter
	packages        *prometheus.CounterVec // action
	activeSessions  func() int
}

// NewStatsService registers the assistant's collectors on reg and keeps them
// current from domain events. activeSessions may be nil.
func NewStatsService(reg prometheus.Registerer, activeSessions func() int) IStatsService {
	s := &statsService{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_started_total",
			Help:      "Visitor sessions created.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_answers_total",
			Help:      "Chat replies by source (faq, ai) and outcome.",
		}, []string{"source", "outcome"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_resets_total",
			Help:      "Conversations restarted.",
		}),
		packages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "package_events_total",
			Help:      "Package listing interactions by action (filtered, revealed).",
		}, []string{"action"}),
		activeSessions: activeSessions,
	}

	reg.MustRegister(s.sessionsStarted, s.answers, s.resets, s.packages)
	if activeSessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}, func() float64 { return float64(activeSessions()) }))
	}
	return s
}

func (s *statsService) Record(event events.Event) {
	switch event.EventType() {
	case events.SessionStarted:
		s.sessionsStarted.Inc()
	case events.ChatAnswered:
		switch events.String(event, "source") {
		case string(router.SourceFAQ):
			s.answers.WithLabelValues(string(router.SourceFAQ), OutcomeAnswered).Inc()
		case string(router.SourceAI):
			s.answers.WithLabelValues(string(router.SourceAI), aiOutcome(events.String(event, "kind"))).Inc()
		}
	case events.ChatReset:
		s.resets.Inc()
	case events.PackagesFiltered:
		s.packages.WithLabelValues("filtered").Inc()
	case events.PackagesRevealed:
		s.packages.WithLabelValues("revealed").Inc()
	}
}

func aiOutcome(kind string) string {
	switch kind {
	case agent.KindEmptyResponse.String():
		return OutcomeFallback
	case agent.KindTransport.String():
		return OutcomeError
	default:
		return OutcomeAnswered
	}
}

// GetStats is a JSON view over the collectors.
func (s *statsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	res := &dto.StatsResponse{
		SessionsStarted:  counterValue(s.sessionsStarted),
		FAQAnswers:       counterValue(s.answers.WithLabelValues(string(router.SourceFAQ), OutcomeAnswered)),
		AIAnswers:        counterValue(s.answers.WithLabelValues(string(router.SourceAI), OutcomeAnswered)),
		AIFallbacks:      counterValue(s.answers.WithLabelValues(string(router.SourceAI), OutcomeFallback)),
		AIErrors:         counterValue(s.answers.WithLabelValues(string(router.SourceAI), OutcomeError)),
		Resets:           counterValue(s.resets),
		PackageSearches:  counterValue(s.packages.WithLabelValues("filtered")),
		PackagesRevealed: counterValue(s.packages.WithLabelValues("revealed")),
	}
	if s.activeSessions != nil {
		res.ActiveSessions = s.activeSessions()
	}
	return res, nil
}

func counterValue(c prometheus.Counter) int64 {
	var m promdto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return int64(m.GetCounter().GetValue())
}
