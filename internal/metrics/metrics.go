package metrics

import (
	"errors"
	"net/http"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"
	"signal-desk/internal/signal"
	"signal-desk/internal/tier"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "signal_desk"

// Metrics records session activity on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	Events       *prometheus.CounterVec
	Signals      *prometheus.CounterVec
	QuotaResets  prometheus.Counter
	LiveSessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "events_total",
				Help:      "Dispatched session events by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		Signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "signals_total",
				Help:      "Generated signals by tier",
			},
			[]string{"tier"},
		),
		QuotaResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quota",
			Name:      "resets_total",
			Help:      "Quota windows reset by the 12h check",
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "live",
			Help:      "Sessions held in memory",
		}),
	}
	m.registry.MustRegister(m.Events, m.Signals, m.QuotaResets, m.LiveSessions)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEvent counts ev by type and outcome. Unrecognised types share the
// "unknown" label so client input cannot grow the series set.
func (m *Metrics) RecordEvent(ev session.EventType, err error) {
	label := string(ev)
	if !ev.Known() {
		label = "unknown"
	}
	m.Events.WithLabelValues(label, outcome(err)).Inc()
}

func (m *Metrics) RecordSignal(t domain.Tier) {
	m.Signals.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) RecordReset() {
	m.QuotaResets.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, session.ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, session.ErrQuotaExhausted):
		return "quota_exhausted"
	case errors.Is(err, session.ErrMarketClosed):
		return "market_closed"
	case errors.Is(err, session.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, tier.ErrInvalidSecret):
		return "invalid_secret"
	case errors.Is(err, signal.ErrFeedbackClosed), errors.Is(err, signal.ErrSignalNotFound):
		return "feedback_rejected"
	default:
		return "rejected"
	}
}
