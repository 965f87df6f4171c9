package logic

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

// ResponseData maps question ids to the respondent's answers.
type ResponseData map[string]interface{}

// EmbeddedData maps embedded field names to the participant's values.
type EmbeddedData map[string]interface{}

type SkipResult struct {
	ShouldSkip       bool                 `json:"shouldSkip"`
	TargetType       types.SkipTargetType `json:"targetType,omitempty"`
	TargetQuestionID string               `json:"targetQuestionId,omitempty"`
}

type CircularLogicResult struct {
	HasIssue bool   `json:"hasIssue"`
	Details  string `json:"details,omitempty"`
}

// EvaluateCondition decides whether a single condition holds. Malformed conditions fail closed:
// they evaluate to false and a warning is logged.
func EvaluateCondition(condition types.DisplayLogicCondition, responses ResponseData, embedded EmbeddedData) bool {
	var actualValue interface{}

	switch condition.Source() {
	case types.CONDITION_SOURCE_QUESTION:
		if condition.QuestionID == "" {
			warnCondition(condition, WARNING_REASON_MISSING_QUESTION_ID, "condition has no questionId")
			return false
		}
		actualValue = responses[condition.QuestionID]
	case types.CONDITION_SOURCE_EMBEDDED_DATA:
		if condition.EmbeddedFieldName == "" {
			warnCondition(condition, WARNING_REASON_MISSING_FIELD_NAME, "condition has no embeddedFieldName")
			return false
		}
		v, ok := embedded[condition.EmbeddedFieldName]
		if !ok {
			if condition.EmbeddedFieldType == types.EMBEDDED_FIELD_KIND_CUSTOM {
				slog.Warn("custom embedded field not found in embedded data", slog.String("field", condition.EmbeddedFieldName))
			}
			return false
		}
		actualValue = v
	default:
		warnCondition(condition, WARNING_REASON_UNKNOWN_SOURCE, fmt.Sprintf("unknown source type: %s", condition.SourceType))
		return false
	}
	conditionEvaluations.WithLabelValues(string(condition.Source())).Inc()

	switch condition.Operator {
	case types.OPERATOR_IS_ANSWERED:
		return !isEmptyAnswer(actualValue)
	case types.OPERATOR_IS_NOT_ANSWERED:
		return isEmptyAnswer(actualValue)
	}

	if actualValue == nil {
		return false
	}

	if condition.Value == nil && OperatorRequiresValue(condition.Operator) {
		warnCondition(condition, WARNING_REASON_MISSING_VALUE, "condition has no value")
		return false
	}
	expectedValue := condition.Value

	switch condition.Operator {
	case types.OPERATOR_EQUALS:
		return coerceEquals(actualValue, expectedValue)
	case types.OPERATOR_NOT_EQUALS:
		return !coerceEquals(actualValue, expectedValue)
	case types.OPERATOR_CONTAINS:
		return containsValue(actualValue, expectedValue)
	case types.OPERATOR_NOT_CONTAINS:
		return !containsValue(actualValue, expectedValue)
	case types.OPERATOR_GREATER_THAN:
		return coerceNumber(actualValue) > coerceNumber(expectedValue)
	case types.OPERATOR_LESS_THAN:
		return coerceNumber(actualValue) < coerceNumber(expectedValue)
	default:
		warnCondition(condition, WARNING_REASON_UNKNOWN_OPERATOR, fmt.Sprintf("unknown operator: %s", condition.Operator))
		return false
	}
}

// containsValue is a membership test for multi-select answers and a case-insensitive substring test otherwise.
func containsValue(actual interface{}, expected interface{}) bool {
	if list, ok := asList(actual); ok {
		for _, item := range list {
			if coerceEquals(item, expected) {
				return true
			}
		}
		return false
	}
	return strings.Contains(
		strings.ToLower(toString(normalizeValue(actual))),
		strings.ToLower(toString(normalizeValue(expected))),
	)
}

// EvaluateLogic combines conditions. An empty list is always true; AND requires all conditions,
// any other operator requires at least one.
func EvaluateLogic(conditions []types.DisplayLogicCondition, operator types.LogicOperator, responses ResponseData, embedded EmbeddedData) bool {
	if len(conditions) == 0 {
		return true
	}

	if operator == types.LOGIC_OPERATOR_AND {
		for _, c := range conditions {
			if !EvaluateCondition(c, responses, embedded) {
				return false
			}
		}
		return true
	}

	for _, c := range conditions {
		if EvaluateCondition(c, responses, embedded) {
			return true
		}
	}
	return false
}

func EvaluateDisplayLogic(displayLogic *types.DisplayLogic, responses ResponseData, embedded EmbeddedData) bool {
	if displayLogic == nil || !displayLogic.Enabled {
		return true
	}
	return EvaluateLogic(displayLogic.Conditions, displayLogic.Operator, responses, embedded)
}

// EvaluateSkipLogic reports the configured target when the skip conditions are met. Acting on
// the target is left to the caller.
func EvaluateSkipLogic(skipLogic *types.SkipLogic, responses ResponseData, embedded EmbeddedData) SkipResult {
	if skipLogic == nil || !skipLogic.Enabled {
		return SkipResult{ShouldSkip: false}
	}

	if !EvaluateLogic(skipLogic.Conditions, skipLogic.Operator, responses, embedded) {
		return SkipResult{ShouldSkip: false}
	}
	return SkipResult{
		ShouldSkip:       true,
		TargetType:       skipLogic.TargetType,
		TargetQuestionID: skipLogic.TargetQuestionID,
	}
}

// GetVisibleQuestions filters by display logic and keeps the original order.
func GetVisibleQuestions(questions []types.Question, responses ResponseData, embedded EmbeddedData) []types.Question {
	visible := []types.Question{}
	for _, q := range questions {
		if EvaluateDisplayLogic(q.DisplayLogic, responses, embedded) {
			visible = append(visible, q)
		}
	}
	return visible
}

// DetectCircularLogic only finds questions whose display logic refers to the question itself.
// Use DetectLogicCycles for cycles spanning several questions.
func DetectCircularLogic(questions []types.Question) CircularLogicResult {
	for _, q := range questions {
		if q.DisplayLogic == nil || !q.DisplayLogic.Enabled {
			continue
		}
		for _, c := range q.DisplayLogic.Conditions {
			if c.Source() == types.CONDITION_SOURCE_QUESTION && c.QuestionID == q.ID {
				return CircularLogicResult{
					HasIssue: true,
					Details:  fmt.Sprintf("Question %s references itself in display logic", q.ID),
				}
			}
		}
	}
	return CircularLogicResult{HasIssue: false}
}

func warnCondition(condition types.DisplayLogicCondition, reason string, msg string) {
	malformedConditions.WithLabelValues(reason).Inc()
	slog.Warn(msg,
		slog.String("conditionID", condition.ID),
		slog.String("sourceType", string(condition.SourceType)),
		slog.String("operator", string(condition.Operator)),
	)
}
