package observability

import (
	"errors"
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts runner activity.
type Metrics struct {
	NodeVisits  *prometheus.CounterVec
	Choices     *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Completions prometheus.Counter
	Resets      prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node"},
		),
		Choices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_choices_total",
				Help: "Total number of accepted choices, by the node they were taken from",
			},
			[]string{"node"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_rejected_choices_total",
				Help: "Total number of rejected choices, by reason",
			},
			[]string{"reason"},
		),
		Completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parley_completions_total",
			Help: "Total number of dialogues that reached a terminal choice",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parley_resets_total",
			Help: "Total number of runner resets",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.NodeVisits, m.Choices, m.Rejections, m.Completions, m.Resets} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("register metrics: %w", err)
			}
		}
	}
	return m, nil
}

// Hooks returns runner hooks feeding the counters.
// label names nodes; nil uses the internal id.
func (m *Metrics) Hooks(label func(domain.NodeID) string) domain.LifecycleHooks {
	if label == nil {
		label = func(id domain.NodeID) string { return domain.To(id).String() }
	}
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(label(e.NodeID)).Inc()
		},
		OnChoice: func(e *domain.ChoiceEvent) {
			m.Choices.WithLabelValues(label(e.From)).Inc()
		},
		OnReject: func(e *domain.RejectEvent) {
			m.Rejections.WithLabelValues(Reason(e.Err)).Inc()
		},
		OnComplete: func(*domain.NodeEvent) {
			m.Completions.Inc()
		},
		OnReset: func(*domain.NodeEvent) {
			m.Resets.Inc()
		},
	}
}

// Reason maps a traversal error to a short metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyTerminal):
		return "already_terminal"
	case errors.Is(err, domain.ErrForeignChoice):
		return "foreign_choice"
	case errors.Is(err, domain.ErrConditionNotMet):
		return "condition_not_met"
	default:
		return "other"
	}
}
