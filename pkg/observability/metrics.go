package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/steward/pkg/domain"
)

const namespace = "steward"

// Metrics holds the assistant's counters.
type Metrics struct {
	Events             *prometheus.CounterVec
	Steps              *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Inbound platform events by kind.",
		}, []string{"kind"}),
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_steps_total",
			Help:      "Workflow steps entered.",
		}, []string{"workflow", "step"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Workflows discarded with a private rejection, by reason.",
		}, []string{"reason"}),
		SideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Outbound actions that failed and were skipped.",
		}, []string{"action"}),
	}

	for _, c := range []prometheus.Collector{m.Events, m.Steps, m.Rejections, m.SideEffectFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvent: func(_ context.Context, ev *domain.Event) {
			m.Events.WithLabelValues(string(ev.Kind)).Inc()
		},
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			m.Steps.WithLabelValues(ev.Workflow, ev.Step).Inc()
		},
		OnReject: func(_ context.Context, ev *domain.RejectEvent) {
			m.Rejections.WithLabelValues(ev.Reason).Inc()
		},
		OnEffect: func(_ context.Context, ev *domain.EffectEvent) {
			if ev.Err != nil {
				m.SideEffectFailures.WithLabelValues(string(ev.Action)).Inc()
			}
		},
	}
}
