package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionType string

const (
	QUESTION_TYPE_MULTIPLE_CHOICE QuestionType = "MultipleChoice"
	QUESTION_TYPE_TEXT_ENTRY      QuestionType = "TextEntry"
	QUESTION_TYPE_FORM_FIELD      QuestionType = "FormField"
	QUESTION_TYPE_MATRIX_TABLE    QuestionType = "MatrixTable"
	QUESTION_TYPE_SIDE_BY_SIDE    QuestionType = "SideBySide"
	QUESTION_TYPE_SLIDER          QuestionType = "Slider"
	QUESTION_TYPE_RANK_ORDER      QuestionType = "RankOrder"
	QUESTION_TYPE_CONSTANT_SUM    QuestionType = "ConstantSum"
	QUESTION_TYPE_PICK_GROUP_RANK QuestionType = "PickGroupRank"
	QUESTION_TYPE_NET_PROMOTER    QuestionType = "NetPromoter"
	QUESTION_TYPE_TEXT_GRAPHIC    QuestionType = "TextGraphic"
	QUESTION_TYPE_HOT_SPOT        QuestionType = "HotSpot"
	QUESTION_TYPE_HEATMAP         QuestionType = "Heatmap"
	QUESTION_TYPE_PAGE_BREAK      QuestionType = "PageBreak"
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []QuestionType{
	QUESTION_TYPE_MULTIPLE_CHOICE,
	QUESTION_TYPE_TEXT_ENTRY,
	QUESTION_TYPE_FORM_FIELD,
	QUESTION_TYPE_MATRIX_TABLE,
	QUESTION_TYPE_SIDE_BY_SIDE,
	QUESTION_TYPE_SLIDER,
	QUESTION_TYPE_RANK_ORDER,
	QUESTION_TYPE_CONSTANT_SUM,
	QUESTION_TYPE_PICK_GROUP_RANK,
	QUESTION_TYPE_NET_PROMOTER,
	QUESTION_TYPE_TEXT_GRAPHIC,
	QUESTION_TYPE_HOT_SPOT,
	QUESTION_TYPE_HEATMAP,
	QUESTION_TYPE_PAGE_BREAK,
}

type ValidationRule struct {
	Type    string      `bson:"type" json:"type"` // required, minChoices, maxChoices, minLength, maxLength, contentType
	Value   interface{} `bson:"value,omitempty" json:"value,omitempty"`
	Message string      `bson:"message,omitempty" json:"message,omitempty"`
}

// QuestionBody holds the type specific part of a question. The set of implementations is closed:
// only the variant structs of this package satisfy it.
type QuestionBody interface {
	QuestionType() QuestionType
	isQuestionBody()
}

// Question is a survey item. Its type is derived from the body, so the discriminator and the
// variant fields always agree.
type Question struct {
	ID             string
	Text           string
	Description    string
	Required       bool
	ValidationType string // force, request or none
	DisplayLogic   *DisplayLogic
	SkipLogic      *SkipLogic
	Randomize      bool
	Dimensions     []string
	Validation     []ValidationRule
	Body           QuestionBody
}

// questionCommon is the wire shape of the fields shared by every question type.
type questionCommon struct {
	ID             string           `json:"id"`
	Type           QuestionType     `json:"type"`
	Text           string           `json:"text"`
	Description    string           `json:"description,omitempty"`
	Required       bool             `json:"required"`
	ValidationType string           `json:"validationType,omitempty"`
	DisplayLogic   *DisplayLogic    `json:"displayLogic,omitempty"`
	SkipLogic      *SkipLogic       `json:"skipLogic,omitempty"`
	Randomize      bool             `json:"randomize,omitempty"`
	Dimensions     []string         `json:"dimensions,omitempty"`
	Validation     []ValidationRule `json:"validation,omitempty"`
}

func (q Question) Type() QuestionType {
	if q.Body == nil {
		return ""
	}
	return q.Body.QuestionType()
}

// NewQuestionBody returns an empty body for the given question type.
func NewQuestionBody(qType QuestionType) (QuestionBody, error) {
	switch qType {
	case QUESTION_TYPE_MULTIPLE_CHOICE:
		return &MultipleChoice{}, nil
	case QUESTION_TYPE_TEXT_ENTRY:
		return &TextEntry{}, nil
	case QUESTION_TYPE_FORM_FIELD:
		return &FormField{}, nil
	case QUESTION_TYPE_MATRIX_TABLE:
		return &MatrixTable{}, nil
	case QUESTION_TYPE_SIDE_BY_SIDE:
		return &SideBySide{}, nil
	case QUESTION_TYPE_SLIDER:
		return &Slider{}, nil
	case QUESTION_TYPE_RANK_ORDER:
		return &RankOrder{}, nil
	case QUESTION_TYPE_CONSTANT_SUM:
		return &ConstantSum{}, nil
	case QUESTION_TYPE_PICK_GROUP_RANK:
		return &PickGroupRank{}, nil
	case QUESTION_TYPE_NET_PROMOTER:
		return &NetPromoter{}, nil
	case QUESTION_TYPE_TEXT_GRAPHIC:
		return &TextGraphic{}, nil
	case QUESTION_TYPE_HOT_SPOT:
		return &HotSpot{}, nil
	case QUESTION_TYPE_HEATMAP:
		return &Heatmap{}, nil
	case QUESTION_TYPE_PAGE_BREAK:
		return &PageBreak{}, nil
	default:
		return nil, fmt.Errorf("unknown question type: %s", qType)
	}
}

func (q Question) MarshalJSON() ([]byte, error) {
	if q.Body == nil {
		return nil, errors.New("question has no body")
	}
	common, err := json.Marshal(questionCommon{
		ID:             q.ID,
		Type:           q.Type(),
		Text:           q.Text,
		Description:    q.Description,
		Required:       q.Required,
		ValidationType: q.ValidationType,
		DisplayLogic:   q.DisplayLogic,
		SkipLogic:      q.SkipLogic,
		Randomize:      q.Randomize,
		Dimensions:     q.Dimensions,
		Validation:     q.Validation,
	})
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(q.Body)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	commonFields := map[string]json.RawMessage{}
	if err := json.Unmarshal(common, &commonFields); err != nil {
		return nil, err
	}
	for k, v := range commonFields {
		fields[k] = v
	}
	return json.Marshal(fields)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var common questionCommon
	if err := json.Unmarshal(data, &common); err != nil {
		return err
	}
	body, err := NewQuestionBody(common.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, body); err != nil {
		return fmt.Errorf("question %s: %w", common.ID, err)
	}
	*q = Question{
		ID:             common.ID,
		Text:           common.Text,
		Description:    common.Description,
		Required:       common.Required,
		ValidationType: common.ValidationType,
		DisplayLogic:   common.DisplayLogic,
		SkipLogic:      common.SkipLogic,
		Randomize:      common.Randomize,
		Dimensions:     common.Dimensions,
		Validation:     common.Validation,
		Body:           body,
	}
	return nil
}

// MarshalBSON stores the question in the same flat shape as its JSON representation.
func (q Question) MarshalBSON() ([]byte, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

func (q *Question) UnmarshalBSON(data []byte) error {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	j, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return err
	}
	return json.Unmarshal(j, q)
}

// Clone returns a deep copy of the question; nested slices and logic are not shared.
func (q Question) Clone() Question {
	data, err := json.Marshal(q)
	if err != nil {
		slog.Error("unexpected error when cloning question", slog.String("questionID", q.ID), slog.String("error", err.Error()))
		return q
	}
	var c Question
	if err := json.Unmarshal(data, &c); err != nil {
		slog.Error("unexpected error when cloning question", slog.String("questionID", q.ID), slog.String("error", err.Error()))
		return q
	}
	return c
}

// Conditions returns display and skip logic conditions of the question, in that order.
func (q Question) Conditions() []DisplayLogicCondition {
	conditions := []DisplayLogicCondition{}
	if q.DisplayLogic != nil {
		conditions = append(conditions, q.DisplayLogic.Conditions...)
	}
	if q.SkipLogic != nil {
		conditions = append(conditions, q.SkipLogic.Conditions...)
	}
	return conditions
}

// AllowsMultiple reports whether the question accepts more than one selected answer.
func (q Question) AllowsMultiple() bool {
	switch b := q.Body.(type) {
	case *MultipleChoice:
		return b.AllowMultiple
	case *MatrixTable:
		return b.AllowMultiple
	default:
		return false
	}
}
