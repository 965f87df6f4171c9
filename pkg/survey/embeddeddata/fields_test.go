package embeddeddata

import (
	"fmt"
	"strings"
	"testing"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

func TestGetSystemFields(t *testing.T) {
	fields := GetSystemFields()
	if len(fields) != 10 {
		t.Errorf("unexpected number of system fields: %d", len(fields))
	}
	for _, f := range fields {
		if !f.IsSystemField {
			t.Errorf("field %s should be a system field", f.Name)
		}
		if f.SuggestedValues == nil {
			t.Errorf("field %s should have a non-nil suggested values list", f.Name)
		}
	}
	if GetFieldDataType("tenure", fields) != types.EMBEDDED_DATA_TYPE_NUMBER {
		t.Error("lookup should ignore case")
	}
}

func TestValidateFieldName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "valid", input: "employee_id2", expected: nil},
		{name: "empty", input: "", expected: ErrFieldNameEmpty},
		{name: "blank", input: "   ", expected: ErrFieldNameEmpty},
		{name: "too long", input: strings.Repeat("a", 51), expected: ErrFieldNameTooLong},
		{name: "max length", input: strings.Repeat("a", 50), expected: nil},
		{name: "leading digit", input: "1st", expected: ErrFieldNameLeadingDigit},
		{name: "space", input: "first name", expected: ErrFieldNameInvalidSymbol},
		{name: "dash", input: "first-name", expected: ErrFieldNameInvalidSymbol},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateFieldName(tc.input); err != tc.expected {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFieldLookups(t *testing.T) {
	fields := []types.EmbeddedDataField{
		CreateCustomField("Team", types.EMBEDDED_DATA_TYPE_TEXT, "", []string{"Red", "Blue"}),
	}
	if !FieldExists("team", fields) || FieldExists("squad", fields) {
		t.Error("unexpected field existence result")
	}
	if values := GetSuggestedValues("TEAM", fields); len(values) != 2 {
		t.Errorf("unexpected suggested values: %v", values)
	}
	if values := GetSuggestedValues("squad", fields); values == nil || len(values) != 0 {
		t.Errorf("unexpected suggested values: %v", values)
	}
	if GetFieldDataType("squad", fields) != types.EMBEDDED_DATA_TYPE_TEXT {
		t.Error("unknown field should default to text")
	}
	if GetFieldLabel(fields[0]) != "Team" || GetFieldLabel(types.EmbeddedDataField{Name: "x"}) != "x" {
		t.Error("unexpected label")
	}
	if fields[0].IsSystemField {
		t.Error("custom fields are not system fields")
	}
}

func TestParseSuggestedValues(t *testing.T) {
	values := ParseSuggestedValues(" a, b ,, c ,")
	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestExtractUniqueValues(t *testing.T) {
	t.Run("frequency order", func(t *testing.T) {
		values := ExtractUniqueValues([]string{"b", " a", "c", "a ", "", "c", "a"})
		if len(values) != 3 || values[0] != "a" || values[1] != "c" || values[2] != "b" {
			t.Errorf("unexpected values: %v", values)
		}
	})

	t.Run("limit", func(t *testing.T) {
		column := []string{}
		for i := 0; i < 60; i++ {
			column = append(column, fmt.Sprintf("v%d", i))
		}
		column = append(column, "v59")
		values := ExtractUniqueValues(column)
		if len(values) != 50 || values[0] != "v59" || values[1] != "v0" {
			t.Errorf("unexpected values: %v", values)
		}
	})
}

func TestInferDataType(t *testing.T) {
	testCases := []struct {
		values   []string
		expected types.EmbeddedDataType
	}{
		{values: nil, expected: types.EMBEDDED_DATA_TYPE_TEXT},
		{values: []string{"Yes", "no", "1"}, expected: types.EMBEDDED_DATA_TYPE_BOOLEAN},
		{values: []string{"1", "0"}, expected: types.EMBEDDED_DATA_TYPE_BOOLEAN},
		{values: []string{"12", "-3.5", "7."}, expected: types.EMBEDDED_DATA_TYPE_NUMBER},
		{values: []string{"2024-01-31", "1/2/24"}, expected: types.EMBEDDED_DATA_TYPE_DATE},
		{values: []string{"2024-01-31", "soon"}, expected: types.EMBEDDED_DATA_TYPE_TEXT},
	}

	for _, tc := range testCases {
		t.Run(strings.Join(tc.values, "|"), func(t *testing.T) {
			if got := InferDataType(tc.values); got != tc.expected {
				t.Errorf("unexpected type: %s", got)
			}
		})
	}
}

func TestFormatPipedText(t *testing.T) {
	if s := FormatPipedText("Department"); s != "${e://Field/Department}" {
		t.Errorf("unexpected piped text: %s", s)
	}
}

func TestGetOperatorsByDataType(t *testing.T) {
	if ops := GetOperatorsByDataType(types.EMBEDDED_DATA_TYPE_BOOLEAN); len(ops) != 2 {
		t.Errorf("unexpected operators: %v", ops)
	}
	ops := GetOperatorsByDataType(types.EMBEDDED_DATA_TYPE_DATE)
	if len(ops) != 4 || ops[2] != types.OPERATOR_GREATER_THAN {
		t.Errorf("unexpected operators: %v", ops)
	}
}

func TestFieldGuards(t *testing.T) {
	schema := &types.EmbeddedDataSchema{Fields: []types.EmbeddedDataField{
		{Name: "email", IsSystemField: true},
		{Name: "team"},
	}}

	if err := CanDeleteField(schema, "email"); err != ErrSystemField {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CanDeleteField(schema, "team"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAddAndUpdateGuards(t *testing.T) {
	schema := &types.EmbeddedDataSchema{Fields: []types.EmbeddedDataField{
		{Name: "email", Label: "Email", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true},
		{Name: "team", DataType: types.EMBEDDED_DATA_TYPE_TEXT},
	}}

	addCases := []struct {
		input    string
		expected error
	}{
		{input: "squad", expected: nil},
		{input: "", expected: ErrFieldNameEmpty},
		{input: "1bad", expected: ErrFieldNameLeadingDigit},
		{input: "bad-name", expected: ErrFieldNameInvalidSymbol},
	}
	for _, tc := range addCases {
		if err := CanAddField(types.EmbeddedDataField{Name: tc.input}); err != tc.expected {
			t.Errorf("add %q: unexpected error: %v", tc.input, err)
		}
	}

	updateCases := []struct {
		name     string
		field    types.EmbeddedDataField
		expected error
	}{
		{name: "relabel system field", field: types.EmbeddedDataField{Name: "email", Label: "Work mail", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true}, expected: nil},
		{name: "system field data type", field: types.EmbeddedDataField{Name: "email", Label: "Email", DataType: types.EMBEDDED_DATA_TYPE_NUMBER, IsSystemField: true}, expected: ErrSystemFieldReadOnly},
		{name: "system field suggestions", field: types.EmbeddedDataField{Name: "email", DataType: types.EMBEDDED_DATA_TYPE_TEXT, SuggestedValues: []string{"a"}, IsSystemField: true}, expected: ErrSystemFieldReadOnly},
		{name: "unflag system field", field: types.EmbeddedDataField{Name: "email", DataType: types.EMBEDDED_DATA_TYPE_TEXT}, expected: ErrSystemFlagChanged},
		{name: "flag custom field", field: types.EmbeddedDataField{Name: "team", DataType: types.EMBEDDED_DATA_TYPE_TEXT, IsSystemField: true}, expected: ErrSystemFlagChanged},
		{name: "custom field data type", field: types.EmbeddedDataField{Name: "team", DataType: types.EMBEDDED_DATA_TYPE_NUMBER}, expected: nil},
		{name: "unknown field", field: types.EmbeddedDataField{Name: "other"}, expected: nil},
	}
	for _, tc := range updateCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := CanUpdateField(schema, tc.field); err != tc.expected {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConditionsReferencingField(t *testing.T) {
	deptCondition := types.DisplayLogicCondition{ID: "c1", SourceType: types.CONDITION_SOURCE_EMBEDDED_DATA, EmbeddedFieldName: "department", Operator: types.OPERATOR_EQUALS, Value: "Sales"}
	survey := &types.Survey{
		ID: "s1",
		Blocks: []types.Block{
			{
				ID:           "b1",
				DisplayLogic: &types.DisplayLogic{Conditions: []types.DisplayLogicCondition{deptCondition}},
				Questions: []types.Question{
					{ID: "q1", Body: &types.TextEntry{}, SkipLogic: &types.SkipLogic{Conditions: []types.DisplayLogicCondition{deptCondition}}},
					{ID: "q2", Body: &types.TextEntry{}, DisplayLogic: &types.DisplayLogic{Conditions: []types.DisplayLogicCondition{
						{ID: "c2", QuestionID: "q1", Operator: types.OPERATOR_IS_ANSWERED},
					}}},
				},
			},
		},
	}

	refs := ConditionsReferencingField(survey, "department")
	if len(refs) != 2 {
		t.Errorf("unexpected references: %v", refs)
		return
	}
	if refs[0].QuestionID != "" || refs[0].Logic != LOGIC_KIND_DISPLAY {
		t.Errorf("unexpected block reference: %v", refs[0])
	}
	if refs[1].QuestionID != "q1" || refs[1].Logic != LOGIC_KIND_SKIP || refs[1].ConditionID != "c1" {
		t.Errorf("unexpected question reference: %v", refs[1])
	}
}
