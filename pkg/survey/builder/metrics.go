package builder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OUTCOME_APPLIED  = "applied"
	OUTCOME_NOOP     = "noop"
	OUTCOME_REJECTED = "rejected"
)

var (
	// actionsDispatched counts dispatched actions by type and whether they changed the document
	actionsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_builder_actions_total",
		Help: "Builder actions dispatched by type and outcome",
	}, []string{"action", "outcome"})

	// autosaveWrites counts autosave attempts by result
	autosaveWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_builder_autosave_total",
		Help: "Autosave writes by result",
	}, []string{"result"})

	// autosaveDuration tracks how long a draft write takes
	autosaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "survey_builder_autosave_duration_seconds",
		Help:    "Autosave write duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)
