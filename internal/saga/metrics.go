// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts saga runs and compensations. A nil *Metrics records nothing.
type Metrics struct {
	runs          *prometheus.CounterVec
	compensations *prometheus.CounterVec
}

// NewMetrics registers the saga counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "research_projects",
			Subsystem: "saga",
			Name:      "runs_total",
			Help:      "Saga runs by operation and final state.",
		}, []string{"op", "state"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "research_projects",
			Subsystem: "saga",
			Name:      "compensations_total",
			Help:      "Compensating actions by operation and result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(m.runs, m.compensations)
	return m
}

func (m *Metrics) observeRun(op Op, state State) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(op), string(state)).Inc()
}

func (m *Metrics) observeCompensation(op Op, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.compensations.WithLabelValues(string(op), result).Inc()
}
