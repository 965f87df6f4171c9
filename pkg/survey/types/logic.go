package types

type ConditionSourceType string

const (
	CONDITION_SOURCE_QUESTION      ConditionSourceType = "question"
	CONDITION_SOURCE_EMBEDDED_DATA ConditionSourceType = "embeddedData"
)

type ConditionOperator string

const (
	OPERATOR_EQUALS          ConditionOperator = "equals"
	OPERATOR_NOT_EQUALS      ConditionOperator = "notEquals"
	OPERATOR_CONTAINS        ConditionOperator = "contains"
	OPERATOR_NOT_CONTAINS    ConditionOperator = "notContains"
	OPERATOR_GREATER_THAN    ConditionOperator = "greaterThan"
	OPERATOR_LESS_THAN       ConditionOperator = "lessThan"
	OPERATOR_IS_ANSWERED     ConditionOperator = "isAnswered"
	OPERATOR_IS_NOT_ANSWERED ConditionOperator = "isNotAnswered"
)

type LogicOperator string

const (
	LOGIC_OPERATOR_AND LogicOperator = "AND"
	LOGIC_OPERATOR_OR  LogicOperator = "OR"
)

type SkipTargetType string

const (
	SKIP_TARGET_QUESTION      SkipTargetType = "question"
	SKIP_TARGET_END_OF_BLOCK  SkipTargetType = "endOfBlock"
	SKIP_TARGET_END_OF_SURVEY SkipTargetType = "endOfSurvey"
)

const (
	EMBEDDED_FIELD_KIND_DEFINED = "defined"
	EMBEDDED_FIELD_KIND_CUSTOM  = "custom"
)

type DisplayLogicCondition struct {
	ID string `bson:"id" json:"id"`
	// SourceType defaults to question when empty.
	SourceType        ConditionSourceType `bson:"sourceType,omitempty" json:"sourceType,omitempty"`
	QuestionID        string              `bson:"questionId,omitempty" json:"questionId,omitempty"`
	EmbeddedFieldName string              `bson:"embeddedFieldName,omitempty" json:"embeddedFieldName,omitempty"`
	EmbeddedFieldType string              `bson:"embeddedFieldType,omitempty" json:"embeddedFieldType,omitempty"`
	Operator          ConditionOperator   `bson:"operator" json:"operator"`
	// Value is a string, number, bool or list of strings. Not needed for isAnswered/isNotAnswered.
	Value interface{} `bson:"value,omitempty" json:"value,omitempty"`
}

// Source resolves the effective source type of the condition.
func (c DisplayLogicCondition) Source() ConditionSourceType {
	if c.SourceType == "" {
		return CONDITION_SOURCE_QUESTION
	}
	return c.SourceType
}

type DisplayLogic struct {
	Enabled    bool                    `bson:"enabled" json:"enabled"`
	Conditions []DisplayLogicCondition `bson:"conditions" json:"conditions"`
	Operator   LogicOperator           `bson:"operator" json:"operator"`
}

type SkipLogic struct {
	Enabled          bool                    `bson:"enabled" json:"enabled"`
	Conditions       []DisplayLogicCondition `bson:"conditions" json:"conditions"`
	Operator         LogicOperator           `bson:"operator" json:"operator"`
	TargetType       SkipTargetType          `bson:"targetType" json:"targetType"`
	TargetQuestionID string                  `bson:"targetQuestionId,omitempty" json:"targetQuestionId,omitempty"`
}

// ColumnLogic shows or hides a side-by-side column based on responses to another column.
type ColumnLogic struct {
	Enabled        bool                    `bson:"enabled" json:"enabled"`
	SourceColumnID string                  `bson:"sourceColumnId" json:"sourceColumnId"`
	Conditions     []DisplayLogicCondition `bson:"conditions" json:"conditions"`
	Operator       LogicOperator           `bson:"operator" json:"operator"`
}
