package embeddeddata

import (
	"slices"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

const (
	LOGIC_KIND_DISPLAY = "display"
	LOGIC_KIND_SKIP    = "skip"
)

// FieldReference points at a logic condition that reads an embedded field.
type FieldReference struct {
	BlockID     string `json:"blockId"`
	QuestionID  string `json:"questionId"`
	ConditionID string `json:"conditionId"`
	Logic       string `json:"logic"`
}

// CanDeleteField reports ErrSystemField for predefined fields.
func CanDeleteField(schema *types.EmbeddedDataSchema, fieldName string) error {
	if schema == nil {
		return nil
	}
	if i, ok := schema.FindField(fieldName); ok && schema.Fields[i].IsSystemField {
		return ErrSystemField
	}
	return nil
}

// CanAddField validates the name of a field before it is added to a schema.
func CanAddField(field types.EmbeddedDataField) error {
	return ValidateFieldName(field.Name)
}

// CanUpdateField checks a replacement for the field with the same name. System fields keep
// everything but their label.
func CanUpdateField(schema *types.EmbeddedDataSchema, updated types.EmbeddedDataField) error {
	if schema == nil {
		return nil
	}
	i, ok := schema.FindField(updated.Name)
	if !ok {
		return nil
	}
	current := schema.Fields[i]
	if current.IsSystemField != updated.IsSystemField {
		return ErrSystemFlagChanged
	}
	if current.IsSystemField {
		if current.DataType != updated.DataType || !slices.Equal(current.SuggestedValues, updated.SuggestedValues) {
			return ErrSystemFieldReadOnly
		}
	}
	return nil
}

// ConditionsReferencingField lists the conditions that will evaluate as false once the field is
// removed from participant data. Block display logic is included with an empty question id.
func ConditionsReferencingField(survey *types.Survey, fieldName string) []FieldReference {
	refs := []FieldReference{}
	if survey == nil {
		return refs
	}

	collect := func(blockID string, questionID string, logicKind string, conditions []types.DisplayLogicCondition) {
		for _, c := range conditions {
			if c.Source() == types.CONDITION_SOURCE_EMBEDDED_DATA && c.EmbeddedFieldName == fieldName {
				refs = append(refs, FieldReference{
					BlockID:     blockID,
					QuestionID:  questionID,
					ConditionID: c.ID,
					Logic:       logicKind,
				})
			}
		}
	}

	for _, b := range survey.Blocks {
		if b.DisplayLogic != nil {
			collect(b.ID, "", LOGIC_KIND_DISPLAY, b.DisplayLogic.Conditions)
		}
		for _, q := range b.Questions {
			if q.DisplayLogic != nil {
				collect(b.ID, q.ID, LOGIC_KIND_DISPLAY, q.DisplayLogic.Conditions)
			}
			if q.SkipLogic != nil {
				collect(b.ID, q.ID, LOGIC_KIND_SKIP, q.SkipLogic.Conditions)
			}
		}
	}
	return refs
}
