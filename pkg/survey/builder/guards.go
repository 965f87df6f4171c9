package builder

import (
	"github.com/case-framework/discovery-builder/pkg/survey/embeddeddata"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

// CheckEmbeddedFieldAction rejects schema edits that would remove or alter a system field, or add
// a field with an invalid name. Other actions pass.
func CheckEmbeddedFieldAction(survey *types.Survey, action Action) error {
	if survey == nil {
		return nil
	}
	switch a := action.(type) {
	case AddEmbeddedField:
		return embeddeddata.CanAddField(a.Field)
	case UpdateEmbeddedField:
		schema := EffectiveSchema(survey)
		return embeddeddata.CanUpdateField(&schema, a.Field)
	case DeleteEmbeddedField:
		schema := EffectiveSchema(survey)
		return embeddeddata.CanDeleteField(&schema, a.Name)
	}
	return nil
}
