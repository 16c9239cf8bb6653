package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/sileo/pkg/domain"
)

// Metrics holds the notifier collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	created   *prometheus.CounterVec
	updated   *prometheus.CounterVec
	dismissed prometheus.Counter
	removed   prometheus.Counter
	replaced  prometheus.Counter
	syncs     prometheus.Counter
	timers    *prometheus.CounterVec
	instances prometheus.Gauge
	pending   prometheus.Gauge
}

// NewMetrics creates and registers the collectors under the given namespace.
// An empty namespace defaults to "sileo".
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "sileo"
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_created_total",
			Help:      "Toasts created, by state.",
		}, []string{"state"}),
		updated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_updated_total",
			Help:      "Toasts updated, by resulting state.",
		}, []string{"state"}),
		dismissed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_dismissed_total",
			Help:      "Toasts flagged as exiting.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_removed_total",
			Help:      "Toasts removed after their exit animation.",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_replaced_total",
			Help:      "Toasts dropped by id collisions.",
		}),
		syncs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Reconciliation passes.",
		}),
		timers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dismiss_timer_events_total",
			Help:      "Auto-dismiss timer transitions, by action.",
		}, []string{"action"}),
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_instances",
			Help:      "Lifecycle machines alive after the last sync.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_dismiss_timers",
			Help:      "Auto-dismiss timers armed after the last sync.",
		}),
	}
	m.registry.MustRegister(
		m.created, m.updated, m.dismissed, m.removed, m.replaced,
		m.syncs, m.timers, m.instances, m.pending,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns the hooks feeding the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnCreate: func(e *domain.ToastEvent) {
			m.created.WithLabelValues(string(e.State)).Inc()
			m.replaced.Add(float64(e.Replaced))
		},
		OnUpdate: func(e *domain.ToastEvent) {
			m.updated.WithLabelValues(string(e.State)).Inc()
		},
		OnDismiss: func(*domain.ToastEvent) {
			m.dismissed.Inc()
		},
		OnRemove: func(*domain.ToastEvent) {
			m.removed.Inc()
		},
		OnSync: func(e *domain.SyncEvent) {
			m.syncs.Inc()
			m.instances.Set(float64(e.Instances))
			m.pending.Set(float64(e.Timers))
		},
		OnTimer: func(e *domain.TimerEvent) {
			m.timers.WithLabelValues(string(e.Action)).Inc()
		},
	}
}
