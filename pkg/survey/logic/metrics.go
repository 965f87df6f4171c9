package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	WARNING_REASON_MISSING_QUESTION_ID = "missing_question_id"
	WARNING_REASON_MISSING_FIELD_NAME  = "missing_field_name"
	WARNING_REASON_UNKNOWN_SOURCE      = "unknown_source"
	WARNING_REASON_MISSING_VALUE       = "missing_value"
	WARNING_REASON_UNKNOWN_OPERATOR    = "unknown_operator"
)

var (
	// conditionEvaluations counts conditions that resolved a value, by source type
	conditionEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_logic_condition_evaluations_total",
		Help: "Logic conditions evaluated against response or embedded data",
	}, []string{"source"})

	// malformedConditions counts conditions that failed closed because of their configuration
	malformedConditions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_logic_malformed_conditions_total",
		Help: "Logic conditions evaluated as false because they were malformed",
	}, []string{"reason"})
)
