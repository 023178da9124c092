// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_builder"

var (
	DraftCommits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_commits_total",
			Help:      "Editor draft commits published.",
		},
	)

	Intents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Dialog intents dispatched, by type and result.",
		},
		[]string{"type", "result"},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_generations_total",
			Help:      "Content generation calls, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Draft snapshots that failed to save.",
		},
	)

	OpenSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_sessions_open",
			Help:      "Editor sessions currently cached.",
		},
	)
)
