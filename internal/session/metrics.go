package session

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lianhua/qinna-quiz/internal/scoring"
)

// Metrics counts engine activity. A nil *Metrics records nothing.
type Metrics struct {
	sessionsStarted   prometheus.Counter
	sessionsCompleted prometheus.Counter
	startFailures     prometheus.Counter
	answers           *prometheus.CounterVec
	ignoredActions    *prometheus.CounterVec
}

// NewMetrics builds the engine counters and registers them on reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_started_total",
			Help:      "Quiz sessions started.",
		}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_completed_total",
			Help:      "Quiz sessions that reached the final question.",
		}),
		startFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "start_failures_total",
			Help:      "Variant selections rejected because no question was eligible.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_total",
			Help:      "Graded questions by outcome.",
		}, []string{"outcome"}),
		ignoredActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "ignored_actions_total",
			Help:      "Actions dropped because they were invalid in the current phase.",
		}, []string{"action"}),
	}
	if reg != nil {
		reg.MustRegister(m.sessionsStarted, m.sessionsCompleted, m.startFailures, m.answers, m.ignoredActions)
	}
	return m
}

func (m *Metrics) sessionStarted() {
	if m != nil {
		m.sessionsStarted.Inc()
	}
}

func (m *Metrics) sessionCompleted() {
	if m != nil {
		m.sessionsCompleted.Inc()
	}
}

func (m *Metrics) startFailed() {
	if m != nil {
		m.startFailures.Inc()
	}
}

func (m *Metrics) graded(outcome scoring.Outcome) {
	if m != nil {
		m.answers.WithLabelValues(string(outcome)).Inc()
	}
}

func (m *Metrics) ignored(action string) {
	if m != nil {
		m.ignoredActions.WithLabelValues(action).Inc()
	}
}
