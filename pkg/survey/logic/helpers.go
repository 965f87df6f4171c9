package logic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type OperatorInfo struct {
	Value         types.ConditionOperator `json:"value"`
	Label         string                  `json:"label"`
	RequiresValue bool                    `json:"requiresValue"`
}

type OperatorCategory string

const (
	OPERATOR_CATEGORY_SINGLE_CHOICE   OperatorCategory = "singleChoice"
	OPERATOR_CATEGORY_MULTIPLE_CHOICE OperatorCategory = "multipleChoice"
	OPERATOR_CATEGORY_NUMERIC         OperatorCategory = "numeric"
	OPERATOR_CATEGORY_TEXT            OperatorCategory = "text"
	OPERATOR_CATEGORY_EMBEDDED_DATA   OperatorCategory = "embeddedData"
	OPERATOR_CATEGORY_DEFAULT         OperatorCategory = "default"
)

var (
	opEquals        = OperatorInfo{Value: types.OPERATOR_EQUALS, Label: "Equals", RequiresValue: true}
	opNotEquals     = OperatorInfo{Value: types.OPERATOR_NOT_EQUALS, Label: "Does Not Equal", RequiresValue: true}
	opContains      = OperatorInfo{Value: types.OPERATOR_CONTAINS, Label: "Contains", RequiresValue: true}
	opNotContains   = OperatorInfo{Value: types.OPERATOR_NOT_CONTAINS, Label: "Does Not Contain", RequiresValue: true}
	opGreaterThan   = OperatorInfo{Value: types.OPERATOR_GREATER_THAN, Label: "Greater Than", RequiresValue: true}
	opLessThan      = OperatorInfo{Value: types.OPERATOR_LESS_THAN, Label: "Less Than", RequiresValue: true}
	opIsAnswered    = OperatorInfo{Value: types.OPERATOR_IS_ANSWERED, Label: "Is Answered", RequiresValue: false}
	opIsNotAnswered = OperatorInfo{Value: types.OPERATOR_IS_NOT_ANSWERED, Label: "Is Not Answered", RequiresValue: false}
)

var operatorConfig = map[OperatorCategory][]OperatorInfo{
	OPERATOR_CATEGORY_SINGLE_CHOICE: {opEquals, opNotEquals, opIsAnswered, opIsNotAnswered},
	OPERATOR_CATEGORY_MULTIPLE_CHOICE: {
		opContains,
		opNotContains,
		{Value: types.OPERATOR_EQUALS, Label: "Equals (Exact Match)", RequiresValue: true},
		opIsAnswered,
		opIsNotAnswered,
	},
	OPERATOR_CATEGORY_NUMERIC:       {opEquals, opNotEquals, opGreaterThan, opLessThan, opIsAnswered, opIsNotAnswered},
	OPERATOR_CATEGORY_TEXT:          {opEquals, opNotEquals, opContains, opNotContains, opIsAnswered, opIsNotAnswered},
	OPERATOR_CATEGORY_EMBEDDED_DATA: {opEquals, opNotEquals, opContains, opNotContains},
	OPERATOR_CATEGORY_DEFAULT:       {opIsAnswered, opIsNotAnswered},
}

var operatorSummaryLabels = map[types.ConditionOperator]string{
	types.OPERATOR_EQUALS:          "equals",
	types.OPERATOR_NOT_EQUALS:      "does not equal",
	types.OPERATOR_CONTAINS:        "contains",
	types.OPERATOR_NOT_CONTAINS:    "does not contain",
	types.OPERATOR_GREATER_THAN:    "is greater than",
	types.OPERATOR_LESS_THAN:       "is less than",
	types.OPERATOR_IS_ANSWERED:     "is answered",
	types.OPERATOR_IS_NOT_ANSWERED: "is not answered",
}

// GetOperatorCategory maps a question to the group of operators that make sense for its answers.
func GetOperatorCategory(question types.Question) OperatorCategory {
	switch b := question.Body.(type) {
	case *types.MultipleChoice:
		if b.AllowMultiple {
			return OPERATOR_CATEGORY_MULTIPLE_CHOICE
		}
		return OPERATOR_CATEGORY_SINGLE_CHOICE
	case *types.RankOrder, *types.PickGroupRank, *types.MatrixTable:
		return OPERATOR_CATEGORY_SINGLE_CHOICE
	case *types.Slider, *types.ConstantSum, *types.NetPromoter:
		return OPERATOR_CATEGORY_NUMERIC
	case *types.TextEntry, *types.FormField:
		return OPERATOR_CATEGORY_TEXT
	case *types.SideBySide, *types.TextGraphic, *types.HotSpot, *types.Heatmap, *types.PageBreak:
		return OPERATOR_CATEGORY_DEFAULT
	default:
		return OPERATOR_CATEGORY_DEFAULT
	}
}

// GetOperatorsForQuestion returns the operators allowed for a question; nil gets the default set.
func GetOperatorsForQuestion(question *types.Question) []OperatorInfo {
	if question == nil {
		return copyOperators(operatorConfig[OPERATOR_CATEGORY_DEFAULT])
	}
	return copyOperators(operatorConfig[GetOperatorCategory(*question)])
}

func GetOperatorsForEmbeddedData() []OperatorInfo {
	return copyOperators(operatorConfig[OPERATOR_CATEGORY_EMBEDDED_DATA])
}

func copyOperators(ops []OperatorInfo) []OperatorInfo {
	return append([]OperatorInfo{}, ops...)
}

func OperatorRequiresValue(operator types.ConditionOperator) bool {
	return operator != types.OPERATOR_IS_ANSWERED && operator != types.OPERATOR_IS_NOT_ANSWERED
}

func isOperatorAllowed(operator types.ConditionOperator, allowed []OperatorInfo) bool {
	for _, op := range allowed {
		if op.Value == operator {
			return true
		}
	}
	return false
}

type ChoiceOption struct {
	ID    string      `json:"id"`
	Text  string      `json:"text"`
	Value interface{} `json:"value"`
}

// QuestionHasChoices reports whether a condition value for this question is picked from a list.
func QuestionHasChoices(question *types.Question) bool {
	if question == nil {
		return false
	}
	switch question.Body.(type) {
	case *types.MultipleChoice, *types.RankOrder, *types.PickGroupRank, *types.ConstantSum, *types.MatrixTable, *types.NetPromoter:
		return true
	default:
		return false
	}
}

func GetQuestionChoices(question *types.Question) []ChoiceOption {
	choices := []ChoiceOption{}
	if question == nil {
		return choices
	}

	switch b := question.Body.(type) {
	case *types.MultipleChoice:
		for _, c := range b.Choices {
			choices = append(choices, ChoiceOption{ID: c.ID, Text: c.Text, Value: c.ID})
		}
	case *types.RankOrder:
		for _, item := range b.Items {
			choices = append(choices, ChoiceOption{ID: item.ID, Text: item.Text, Value: item.ID})
		}
	case *types.ConstantSum:
		for _, item := range b.Items {
			choices = append(choices, ChoiceOption{ID: item.ID, Text: item.Text, Value: item.ID})
		}
	case *types.PickGroupRank:
		for _, item := range b.Items {
			choices = append(choices, ChoiceOption{ID: item.ID, Text: item.Text, Value: item.ID})
		}
	case *types.MatrixTable:
		// columns act as the answer options
		for _, col := range b.Columns {
			value := col.ID
			if col.Value != nil {
				value = strconv.FormatFloat(*col.Value, 'f', -1, 64)
			}
			choices = append(choices, ChoiceOption{ID: col.ID, Text: col.Text, Value: value})
		}
	case *types.NetPromoter:
		for i := 0; i <= 10; i++ {
			choices = append(choices, ChoiceOption{ID: fmt.Sprintf("nps-%d", i), Text: strconv.Itoa(i), Value: i})
		}
	}
	return choices
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

func plainText(s string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(s, ""))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}

// GetQuestionDisplayLabel renders "Q<n>: <text>" with markup stripped and long text shortened.
func GetQuestionDisplayLabel(question types.Question, index int) string {
	text := plainText(question.Text)
	if text == "" {
		text = "Untitled Question"
	} else {
		text = truncate(text, 40)
	}
	return fmt.Sprintf("Q%d: %s", index+1, text)
}

func findQuestionIndex(questions []types.Question, questionID string) int {
	for i, q := range questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

func findEmbeddedField(fields []types.EmbeddedDataField, name string) (types.EmbeddedDataField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return types.EmbeddedDataField{}, false
}

// GetConditionSummary renders a condition as readable text, e.g. `Q1: Do you like it equals "Yes"`.
func GetConditionSummary(condition types.DisplayLogicCondition, questions []types.Question, embeddedFields []types.EmbeddedDataField) string {
	sourceName := "Unknown"

	if condition.Source() == types.CONDITION_SOURCE_QUESTION {
		if idx := findQuestionIndex(questions, condition.QuestionID); idx >= 0 {
			text := plainText(questions[idx].Text)
			if text == "" {
				text = "Untitled"
			}
			sourceName = fmt.Sprintf("Q%d: %s", idx+1, truncate(text, 20))
		}
	} else {
		field, ok := findEmbeddedField(embeddedFields, condition.EmbeddedFieldName)
		switch {
		case ok && field.Label != "":
			sourceName = field.Label
		case condition.EmbeddedFieldName != "":
			sourceName = condition.EmbeddedFieldName
		default:
			sourceName = "Unknown Field"
		}
	}

	operatorText, ok := operatorSummaryLabels[condition.Operator]
	if !ok {
		operatorText = string(condition.Operator)
	}

	if !OperatorRequiresValue(condition.Operator) {
		return fmt.Sprintf("%s %s", sourceName, operatorText)
	}

	valueText := "(no value)"
	if condition.Value != nil {
		valueText = fmt.Sprintf("\"%s\"", toString(normalizeValue(condition.Value)))
	}
	return fmt.Sprintf("%s %s %s", sourceName, operatorText, valueText)
}

// DefaultEmbeddedFields is the schema used when a survey has not declared one yet.
func DefaultEmbeddedFields() []types.EmbeddedDataField {
	return []types.EmbeddedDataField{
		{Name: "firstName", Label: "First Name", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true},
		{Name: "lastName", Label: "Last Name", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true},
		{Name: "email", Label: "Email", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true},
		{Name: "department", Label: "Department", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
		{Name: "location", Label: "Location", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
		{Name: "manager", Label: "Manager", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
		{Name: "employeeId", Label: "Employee ID", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
		{Name: "jobTitle", Label: "Job Title", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
		{Name: "hireDate", Label: "Hire Date", DataType: types.EMBEDDED_DATA_TYPE_DATE},
	}
}

// SurveyEmbeddedFields returns the survey's declared fields, or the defaults when it has no schema.
func SurveyEmbeddedFields(survey *types.Survey) []types.EmbeddedDataField {
	if survey == nil || survey.EmbeddedDataSchema == nil {
		return DefaultEmbeddedFields()
	}
	return survey.EmbeddedDataSchema.Fields
}

func GetFieldPlaceholder(fieldName string) string {
	return "{{" + fieldName + "}}"
}

var placeholderRegex = regexp.MustCompile(`^\{\{(.+)\}\}$`)

func ParseFieldPlaceholder(placeholder string) (string, bool) {
	m := placeholderRegex.FindStringSubmatch(placeholder)
	if m == nil {
		return "", false
	}
	return m[1], true
}
