package logic

import (
	"fmt"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type WarningType string

const (
	WARNING_TYPE_BROKEN      WarningType = "broken"
	WARNING_TYPE_UNLINKED    WarningType = "unlinked"
	WARNING_TYPE_UNREACHABLE WarningType = "unreachable"
	WARNING_TYPE_CONFLICT    WarningType = "conflict"
)

// LogicWarning is a non-fatal configuration problem shown next to a condition. It never blocks saving.
type LogicWarning struct {
	Type        WarningType `json:"type"`
	Message     string      `json:"message"`
	ConditionID string      `json:"conditionId,omitempty"`
}

func isMissingValue(v interface{}) bool {
	v = normalizeValue(v)
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// ValidateCondition checks a condition against the questions preceding its owner and the declared
// embedded fields.
func ValidateCondition(condition types.DisplayLogicCondition, previousQuestions []types.Question, embeddedFields []types.EmbeddedDataField) []LogicWarning {
	warnings := []LogicWarning{}

	switch condition.Source() {
	case types.CONDITION_SOURCE_QUESTION:
		idx := findQuestionIndex(previousQuestions, condition.QuestionID)
		if condition.QuestionID == "" || idx < 0 {
			warnings = append(warnings, LogicWarning{
				Type:        WARNING_TYPE_BROKEN,
				Message:     "Referenced question not found or comes after this question",
				ConditionID: condition.ID,
			})
			break
		}
		question := previousQuestions[idx]
		if !isOperatorAllowed(condition.Operator, GetOperatorsForQuestion(&question)) {
			warnings = append(warnings, LogicWarning{
				Type:        WARNING_TYPE_BROKEN,
				Message:     fmt.Sprintf("Operator \"%s\" is not valid for %s questions", condition.Operator, question.Type()),
				ConditionID: condition.ID,
			})
		}
		if OperatorRequiresValue(condition.Operator) && isMissingValue(condition.Value) {
			warnings = append(warnings, LogicWarning{
				Type:        WARNING_TYPE_BROKEN,
				Message:     "Value is required for this operator",
				ConditionID: condition.ID,
			})
		}
	case types.CONDITION_SOURCE_EMBEDDED_DATA:
		if _, ok := findEmbeddedField(embeddedFields, condition.EmbeddedFieldName); !ok {
			warnings = append(warnings, LogicWarning{
				Type:        WARNING_TYPE_UNLINKED,
				Message:     fmt.Sprintf("Embedded field \"%s\" is not defined", condition.EmbeddedFieldName),
				ConditionID: condition.ID,
			})
		}
		if OperatorRequiresValue(condition.Operator) && isMissingValue(condition.Value) {
			warnings = append(warnings, LogicWarning{
				Type:        WARNING_TYPE_BROKEN,
				Message:     "Value is required for this operator",
				ConditionID: condition.ID,
			})
		}
	default:
		warnings = append(warnings, LogicWarning{
			Type:        WARNING_TYPE_BROKEN,
			Message:     fmt.Sprintf("Unknown condition source \"%s\"", condition.SourceType),
			ConditionID: condition.ID,
		})
	}
	return warnings
}

// ValidateSkipTarget checks that a question target exists and lies after the current question.
func ValidateSkipTarget(targetQuestionID string, targetType types.SkipTargetType, allQuestions []types.Question, currentQuestionIndex int) []LogicWarning {
	warnings := []LogicWarning{}
	if targetType != types.SKIP_TARGET_QUESTION {
		return warnings
	}

	if targetQuestionID == "" {
		return append(warnings, LogicWarning{Type: WARNING_TYPE_BROKEN, Message: "Skip target question is not specified"})
	}
	targetIndex := findQuestionIndex(allQuestions, targetQuestionID)
	if targetIndex < 0 {
		return append(warnings, LogicWarning{Type: WARNING_TYPE_BROKEN, Message: "Skip target question not found"})
	}
	if targetIndex <= currentQuestionIndex {
		return append(warnings, LogicWarning{Type: WARNING_TYPE_BROKEN, Message: "Skip target must be after the current question"})
	}
	return warnings
}

// GetQuestionLogicWarnings validates the display and skip logic of the question at questionIndex.
// A condition pointing at its own question is reported as a conflict.
func GetQuestionLogicWarnings(question types.Question, questionIndex int, allQuestions []types.Question, embeddedFields []types.EmbeddedDataField) []LogicWarning {
	warnings := []LogicWarning{}
	if questionIndex > len(allQuestions) {
		questionIndex = len(allQuestions)
	}
	if questionIndex < 0 {
		questionIndex = 0
	}
	previousQuestions := allQuestions[:questionIndex]

	validate := func(conditions []types.DisplayLogicCondition, logicName string) {
		for _, c := range conditions {
			if c.Source() == types.CONDITION_SOURCE_QUESTION && c.QuestionID == question.ID {
				warnings = append(warnings, LogicWarning{
					Type:        WARNING_TYPE_CONFLICT,
					Message:     fmt.Sprintf("Question references itself in %s", logicName),
					ConditionID: c.ID,
				})
				continue
			}
			warnings = append(warnings, ValidateCondition(c, previousQuestions, embeddedFields)...)
		}
	}

	if question.DisplayLogic != nil && question.DisplayLogic.Enabled {
		validate(question.DisplayLogic.Conditions, "display logic")
	}

	if question.SkipLogic != nil && question.SkipLogic.Enabled {
		validate(question.SkipLogic.Conditions, "skip logic")
		warnings = append(warnings, ValidateSkipTarget(
			question.SkipLogic.TargetQuestionID,
			question.SkipLogic.TargetType,
			allQuestions,
			questionIndex,
		)...)
	}
	return warnings
}

// GetSurveyLogicWarnings validates every question of the survey in document order. Only
// questions with at least one warning are present in the result.
func GetSurveyLogicWarnings(survey *types.Survey) map[string][]LogicWarning {
	result := map[string][]LogicWarning{}
	if survey == nil {
		return result
	}
	questions := survey.AllQuestions()
	fields := SurveyEmbeddedFields(survey)
	for i, q := range questions {
		warnings := GetQuestionLogicWarnings(q, i, questions, fields)
		if len(warnings) > 0 {
			result[q.ID] = warnings
		}
	}
	return result
}
