// Package observability exposes navigator activity as Prometheus metrics through
// lifecycle hooks.
package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/drwadu/savan/pkg/domain"
)

// Metrics holds the navigator collectors.
type Metrics struct {
	registry *prometheus.Registry

	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	models        *prometheus.CounterVec
	rebuilds      *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savan_queries_total",
				Help: "Total number of solver queries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "savan_query_duration_seconds",
				Help:    "Duration of solver queries",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"kind"},
		),
		models: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savan_models_total",
				Help: "Total number of models pulled from solver streams",
			},
			[]string{"kind"},
		),
		rebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savan_rebuilds_total",
				Help: "Total number of session reconstructions by reason",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(m.queries, m.queryDuration, m.models, m.rebuilds)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks recording into the collectors.
// If logger is not nil, every query is also logged.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQueryEnd: func(ctx context.Context, e *domain.QueryEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.queries.WithLabelValues(string(e.Kind), outcome).Inc()
			m.queryDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
			if logger != nil {
				logger.Info("query",
					"kind", e.Kind,
					"route", e.Route,
					"models", e.Models,
					"duration", e.Duration,
					"outcome", outcome,
				)
			}
		},
		OnModel: func(ctx context.Context, kind domain.QueryKind, _ *domain.Model) {
			m.models.WithLabelValues(string(kind)).Inc()
		},
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			m.rebuilds.WithLabelValues(e.Reason).Inc()
		},
	}
}

// WriteText dumps the collected metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
