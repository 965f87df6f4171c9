package builder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

type ActionType string

const (
	ACTION_SET_SURVEY            ActionType = "SET_SURVEY"
	ACTION_UPDATE_SURVEY         ActionType = "UPDATE_SURVEY"
	ACTION_ADD_BLOCK             ActionType = "ADD_BLOCK"
	ACTION_UPDATE_BLOCK          ActionType = "UPDATE_BLOCK"
	ACTION_DELETE_BLOCK          ActionType = "DELETE_BLOCK"
	ACTION_MOVE_BLOCK            ActionType = "MOVE_BLOCK"
	ACTION_REORDER_BLOCK         ActionType = "REORDER_BLOCK"
	ACTION_ADD_QUESTION          ActionType = "ADD_QUESTION"
	ACTION_UPDATE_QUESTION       ActionType = "UPDATE_QUESTION"
	ACTION_DUPLICATE_QUESTION    ActionType = "DUPLICATE_QUESTION"
	ACTION_DELETE_QUESTION       ActionType = "DELETE_QUESTION"
	ACTION_MOVE_QUESTION         ActionType = "MOVE_QUESTION"
	ACTION_REORDER_QUESTION      ActionType = "REORDER_QUESTION"
	ACTION_UPDATE_WELCOME_PAGE   ActionType = "UPDATE_WELCOME_PAGE"
	ACTION_UPDATE_CONSENT_PAGE   ActionType = "UPDATE_CONSENT_PAGE"
	ACTION_UPDATE_THANK_YOU_PAGE ActionType = "UPDATE_THANK_YOU_PAGE"
	ACTION_UPDATE_LOOK_AND_FEEL  ActionType = "UPDATE_LOOK_AND_FEEL"
	ACTION_UPDATE_SETTINGS       ActionType = "UPDATE_SETTINGS"
	ACTION_ADD_EMBEDDED_FIELD    ActionType = "ADD_EMBEDDED_FIELD"
	ACTION_UPDATE_EMBEDDED_FIELD ActionType = "UPDATE_EMBEDDED_FIELD"
	ACTION_DELETE_EMBEDDED_FIELD ActionType = "DELETE_EMBEDDED_FIELD"
	ACTION_UNDO                  ActionType = "UNDO"
	ACTION_REDO                  ActionType = "REDO"
)

type Direction string

const (
	DIRECTION_UP   Direction = "up"
	DIRECTION_DOWN Direction = "down"
)

// Action is a document edit or history command. Only the action structs of this package
// implement it.
type Action interface {
	ActionType() ActionType
	isAction()
}

type SetSurvey struct {
	Survey *types.Survey
}

type UpdateSurvey struct {
	Patch SurveyPatch
}

type AddBlock struct {
	Block types.Block
}

// UpdateBlock replaces the block with the same id.
type UpdateBlock struct {
	Block types.Block
}

type DeleteBlock struct {
	BlockID string
}

type MoveBlock struct {
	BlockID   string    `json:"blockId"`
	Direction Direction `json:"direction"`
}

// ReorderBlock moves a block to an absolute position.
type ReorderBlock struct {
	BlockID  string `json:"blockId"`
	NewIndex int    `json:"newIndex"`
}

type AddQuestion struct {
	BlockID  string         `json:"blockId"`
	Question types.Question `json:"question"`
}

type UpdateQuestion struct {
	BlockID  string         `json:"blockId"`
	Question types.Question `json:"question"`
}

type DuplicateQuestion struct {
	BlockID    string `json:"blockId"`
	QuestionID string `json:"questionId"`
}

type DeleteQuestion struct {
	BlockID    string `json:"blockId"`
	QuestionID string `json:"questionId"`
}

type MoveQuestion struct {
	BlockID    string    `json:"blockId"`
	QuestionID string    `json:"questionId"`
	Direction  Direction `json:"direction"`
}

// ReorderQuestion moves a question to an absolute position, possibly into another block.
type ReorderQuestion struct {
	SourceBlockID string `json:"sourceBlockId"`
	TargetBlockID string `json:"targetBlockId"`
	QuestionID    string `json:"questionId"`
	NewIndex      int    `json:"newIndex"`
}

type UpdateWelcomePage struct {
	Patch WelcomePagePatch
}

type UpdateConsentPage struct {
	Patch ConsentPagePatch
}

type UpdateThankYouPage struct {
	Patch ThankYouPagePatch
}

type UpdateLookAndFeel struct {
	Patch map[string]interface{}
}

type UpdateSettings struct {
	Patch SettingsPatch
}

type AddEmbeddedField struct {
	Field types.EmbeddedDataField
}

// UpdateEmbeddedField replaces the field with the same name.
type UpdateEmbeddedField struct {
	Field types.EmbeddedDataField
}

type DeleteEmbeddedField struct {
	Name string
}

type Undo struct{}

type Redo struct{}

func (SetSurvey) ActionType() ActionType           { return ACTION_SET_SURVEY }
func (UpdateSurvey) ActionType() ActionType        { return ACTION_UPDATE_SURVEY }
func (AddBlock) ActionType() ActionType            { return ACTION_ADD_BLOCK }
func (UpdateBlock) ActionType() ActionType         { return ACTION_UPDATE_BLOCK }
func (DeleteBlock) ActionType() ActionType         { return ACTION_DELETE_BLOCK }
func (MoveBlock) ActionType() ActionType           { return ACTION_MOVE_BLOCK }
func (ReorderBlock) ActionType() ActionType        { return ACTION_REORDER_BLOCK }
func (AddQuestion) ActionType() ActionType         { return ACTION_ADD_QUESTION }
func (UpdateQuestion) ActionType() ActionType      { return ACTION_UPDATE_QUESTION }
func (DuplicateQuestion) ActionType() ActionType   { return ACTION_DUPLICATE_QUESTION }
func (DeleteQuestion) ActionType() ActionType      { return ACTION_DELETE_QUESTION }
func (MoveQuestion) ActionType() ActionType        { return ACTION_MOVE_QUESTION }
func (ReorderQuestion) ActionType() ActionType     { return ACTION_REORDER_QUESTION }
func (UpdateWelcomePage) ActionType() ActionType   { return ACTION_UPDATE_WELCOME_PAGE }
func (UpdateConsentPage) ActionType() ActionType   { return ACTION_UPDATE_CONSENT_PAGE }
func (UpdateThankYouPage) ActionType() ActionType  { return ACTION_UPDATE_THANK_YOU_PAGE }
func (UpdateLookAndFeel) ActionType() ActionType   { return ACTION_UPDATE_LOOK_AND_FEEL }
func (UpdateSettings) ActionType() ActionType      { return ACTION_UPDATE_SETTINGS }
func (AddEmbeddedField) ActionType() ActionType    { return ACTION_ADD_EMBEDDED_FIELD }
func (UpdateEmbeddedField) ActionType() ActionType { return ACTION_UPDATE_EMBEDDED_FIELD }
func (DeleteEmbeddedField) ActionType() ActionType { return ACTION_DELETE_EMBEDDED_FIELD }
func (Undo) ActionType() ActionType                { return ACTION_UNDO }
func (Redo) ActionType() ActionType                { return ACTION_REDO }

func (SetSurvey) isAction()           {}
func (UpdateSurvey) isAction()        {}
func (AddBlock) isAction()            {}
func (UpdateBlock) isAction()         {}
func (DeleteBlock) isAction()         {}
func (MoveBlock) isAction()           {}
func (ReorderBlock) isAction()        {}
func (AddQuestion) isAction()         {}
func (UpdateQuestion) isAction()      {}
func (DuplicateQuestion) isAction()   {}
func (DeleteQuestion) isAction()      {}
func (MoveQuestion) isAction()        {}
func (ReorderQuestion) isAction()     {}
func (UpdateWelcomePage) isAction()   {}
func (UpdateConsentPage) isAction()   {}
func (UpdateThankYouPage) isAction()  {}
func (UpdateLookAndFeel) isAction()   {}
func (UpdateSettings) isAction()      {}
func (AddEmbeddedField) isAction()    {}
func (UpdateEmbeddedField) isAction() {}
func (DeleteEmbeddedField) isAction() {}
func (Undo) isAction()                {}
func (Redo) isAction()                {}

type actionEnvelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeAction parses a {"type": ..., "payload": ...} message into an action.
func DecodeAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Type == "" {
		return nil, errors.New("action type missing")
	}

	needsPayload := env.Type != ACTION_UNDO && env.Type != ACTION_REDO
	if needsPayload && (len(env.Payload) == 0 || string(env.Payload) == "null") {
		return nil, fmt.Errorf("%s: payload missing", env.Type)
	}

	var (
		action Action
		err    error
	)
	switch env.Type {
	case ACTION_SET_SURVEY:
		var s types.Survey
		err = json.Unmarshal(env.Payload, &s)
		action = SetSurvey{Survey: &s}
	case ACTION_UPDATE_SURVEY:
		var p SurveyPatch
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateSurvey{Patch: p}
	case ACTION_ADD_BLOCK:
		var b types.Block
		err = json.Unmarshal(env.Payload, &b)
		action = AddBlock{Block: b}
	case ACTION_UPDATE_BLOCK:
		var b types.Block
		err = json.Unmarshal(env.Payload, &b)
		action = UpdateBlock{Block: b}
	case ACTION_DELETE_BLOCK:
		var id string
		err = json.Unmarshal(env.Payload, &id)
		action = DeleteBlock{BlockID: id}
	case ACTION_MOVE_BLOCK:
		var a MoveBlock
		err = json.Unmarshal(env.Payload, &a)
		if err == nil {
			err = validateDirection(a.Direction)
		}
		action = a
	case ACTION_REORDER_BLOCK:
		var a ReorderBlock
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_ADD_QUESTION:
		var a AddQuestion
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_UPDATE_QUESTION:
		var a UpdateQuestion
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_DUPLICATE_QUESTION:
		var a DuplicateQuestion
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_DELETE_QUESTION:
		var a DeleteQuestion
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_MOVE_QUESTION:
		var a MoveQuestion
		err = json.Unmarshal(env.Payload, &a)
		if err == nil {
			err = validateDirection(a.Direction)
		}
		action = a
	case ACTION_REORDER_QUESTION:
		var a ReorderQuestion
		err = json.Unmarshal(env.Payload, &a)
		action = a
	case ACTION_UPDATE_WELCOME_PAGE:
		var p WelcomePagePatch
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateWelcomePage{Patch: p}
	case ACTION_UPDATE_CONSENT_PAGE:
		var p ConsentPagePatch
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateConsentPage{Patch: p}
	case ACTION_UPDATE_THANK_YOU_PAGE:
		var p ThankYouPagePatch
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateThankYouPage{Patch: p}
	case ACTION_UPDATE_LOOK_AND_FEEL:
		var p map[string]interface{}
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateLookAndFeel{Patch: p}
	case ACTION_UPDATE_SETTINGS:
		var p SettingsPatch
		err = json.Unmarshal(env.Payload, &p)
		action = UpdateSettings{Patch: p}
	case ACTION_ADD_EMBEDDED_FIELD:
		var f types.EmbeddedDataField
		err = json.Unmarshal(env.Payload, &f)
		action = AddEmbeddedField{Field: f}
	case ACTION_UPDATE_EMBEDDED_FIELD:
		var f types.EmbeddedDataField
		err = json.Unmarshal(env.Payload, &f)
		action = UpdateEmbeddedField{Field: f}
	case ACTION_DELETE_EMBEDDED_FIELD:
		var name string
		err = json.Unmarshal(env.Payload, &name)
		action = DeleteEmbeddedField{Name: name}
	case ACTION_UNDO:
		action = Undo{}
	case ACTION_REDO:
		action = Redo{}
	default:
		return nil, fmt.Errorf("unknown action type: %s", env.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Type, err)
	}
	return action, nil
}

func validateDirection(d Direction) error {
	if d != DIRECTION_UP && d != DIRECTION_DOWN {
		return fmt.Errorf("invalid direction: %s", d)
	}
	return nil
}
