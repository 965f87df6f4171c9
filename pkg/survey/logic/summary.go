package logic

import (
	"fmt"
	"strings"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type LogicSummary struct {
	DisplayLogic string `json:"displayLogic,omitempty"`
	SkipLogic    string `json:"skipLogic,omitempty"`
}

// GetLogicSummary describes the question's active logic in a compact form such as
// "When Q1 equals Yes AND [Department] equals Sales, skip to End of Survey".
func GetLogicSummary(question types.Question, allQuestions []types.Question, embeddedFields []types.EmbeddedDataField) LogicSummary {
	summary := LogicSummary{}

	if dl := question.DisplayLogic; dl != nil && dl.Enabled && len(dl.Conditions) > 0 {
		summary.DisplayLogic = "When " + joinConditions(dl.Conditions, dl.Operator, allQuestions, embeddedFields)
	}

	if sl := question.SkipLogic; sl != nil && sl.Enabled && len(sl.Conditions) > 0 {
		targetText := ""
		switch sl.TargetType {
		case types.SKIP_TARGET_QUESTION:
			if sl.TargetQuestionID != "" {
				targetText = questionRef(allQuestions, sl.TargetQuestionID)
			}
		case types.SKIP_TARGET_END_OF_SURVEY:
			targetText = "End of Survey"
		case types.SKIP_TARGET_END_OF_BLOCK:
			targetText = "End of Block"
		}
		summary.SkipLogic = fmt.Sprintf("When %s, skip to %s", joinConditions(sl.Conditions, sl.Operator, allQuestions, embeddedFields), targetText)
	}
	return summary
}

// GetSurveyLogicSummaries returns the logic summary of every question with active logic, keyed by
// question id.
func GetSurveyLogicSummaries(survey *types.Survey) map[string]LogicSummary {
	result := map[string]LogicSummary{}
	if survey == nil {
		return result
	}
	questions := survey.AllQuestions()
	fields := SurveyEmbeddedFields(survey)
	for _, q := range questions {
		summary := GetLogicSummary(q, questions, fields)
		if summary.DisplayLogic != "" || summary.SkipLogic != "" {
			result[q.ID] = summary
		}
	}
	return result
}

func joinConditions(conditions []types.DisplayLogicCondition, operator types.LogicOperator, allQuestions []types.Question, embeddedFields []types.EmbeddedDataField) string {
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		value := "undefined"
		if c.Value != nil {
			value = toString(normalizeValue(c.Value))
		}

		if c.Source() == types.CONDITION_SOURCE_QUESTION {
			parts[i] = fmt.Sprintf("%s %s %s", questionRef(allQuestions, c.QuestionID), c.Operator, value)
			continue
		}
		label := c.EmbeddedFieldName
		if field, ok := findEmbeddedField(embeddedFields, c.EmbeddedFieldName); ok && field.Label != "" {
			label = field.Label
		}
		parts[i] = fmt.Sprintf("[%s] %s %s", label, c.Operator, value)
	}
	return strings.Join(parts, fmt.Sprintf(" %s ", operator))
}

func questionRef(allQuestions []types.Question, questionID string) string {
	idx := findQuestionIndex(allQuestions, questionID)
	if idx < 0 {
		return "Unknown"
	}
	return fmt.Sprintf("Q%d", idx+1)
}
