// Package metrics exports search progress on a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"localSearch/internal/opt"
)

// Metrics implements opt.Observer.
type Metrics struct {
	Registry *prometheus.Registry

	Restarts        *prometheus.CounterVec
	Steps           *prometheus.CounterVec
	AcceptedMoves   *prometheus.CounterVec
	BestObjective   *prometheus.GaugeVec
	RestartDuration *prometheus.HistogramVec

	runtimeOnce sync.Once
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Restarts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "localsearch_restarts_total", Help: "Finished restarts by stop reason."},
			[]string{"problem", "stopped"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "localsearch_steps_total", Help: "Neighbor moves evaluated."},
			[]string{"problem"},
		),
		AcceptedMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "localsearch_accepted_moves_total", Help: "Neighbor moves kept by the acceptance policy."},
			[]string{"problem"},
		),
		BestObjective: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "localsearch_best_objective", Help: "Objective of the best feasible solution so far."},
			[]string{"problem"},
		),
		RestartDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "localsearch_restart_duration_seconds", Help: "Wall time of one restart.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
			[]string{"problem"},
		),
	}
	m.Registry.MustRegister(m.Restarts, m.Steps, m.AcceptedMoves, m.BestObjective, m.RestartDuration)
	return m
}

// RegisterRuntime adds the Go and process collectors once.
func (m *Metrics) RegisterRuntime() {
	m.runtimeOnce.Do(func() {
		m.Registry.MustRegister(collectors.NewGoCollector())
		m.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RestartDone(problem string, st opt.RestartStats) {
	m.Restarts.WithLabelValues(problem, string(st.Stopped)).Inc()
	m.Steps.WithLabelValues(problem).Add(float64(st.Iterations))
	m.AcceptedMoves.WithLabelValues(problem).Add(float64(st.Accepted))
	m.RestartDuration.WithLabelValues(problem).Observe(st.Duration.Seconds())
}

func (m *Metrics) Improved(problem string, objective float64) {
	m.BestObjective.WithLabelValues(problem).Set(objective)
}
