package embeddeddata

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/case-framework/discovery-builder/pkg/survey/types"
)

const (
	MAX_FIELD_NAME_LENGTH = 50
	MAX_UNIQUE_VALUES     = 50
)

var (
	ErrFieldNameEmpty         = errors.New("field name cannot be empty")
	ErrFieldNameTooLong       = errors.New("field name must be 50 characters or less")
	ErrFieldNameLeadingDigit  = errors.New("field name cannot start with a number")
	ErrFieldNameInvalidSymbol = errors.New("field name can only contain letters, numbers and underscores")
	ErrSystemField            = errors.New("system fields cannot be deleted or renamed")
	ErrSystemFieldReadOnly    = errors.New("only the label of a system field can be changed")
	ErrSystemFlagChanged      = errors.New("a field cannot be turned into or out of a system field")
)

// GetSystemFields returns the predefined fields users can enable for their survey.
func GetSystemFields() []types.EmbeddedDataField {
	return []types.EmbeddedDataField{
		systemField("Gender", "Gender", types.EMBEDDED_DATA_TYPE_TEXT, "Male", "Female", "Non-binary", "Prefer not to say"),
		systemField("AgeGroup", "Age Group", types.EMBEDDED_DATA_TYPE_TEXT, "18-24", "25-34", "35-44", "45-54", "55-64", "65+"),
		systemField("Department", "Department", types.EMBEDDED_DATA_TYPE_TEXT, "Sales", "Marketing", "Engineering", "HR", "Finance", "Operations"),
		systemField("Location", "Location", types.EMBEDDED_DATA_TYPE_TEXT),
		systemField("EmployeeType", "Employee Type", types.EMBEDDED_DATA_TYPE_TEXT, "Full-time", "Part-time", "Contract", "Intern"),
		systemField("StartDate", "Start Date", types.EMBEDDED_DATA_TYPE_DATE),
		systemField("Tenure", "Tenure (Years)", types.EMBEDDED_DATA_TYPE_NUMBER),
		systemField("JobLevel", "Job Level", types.EMBEDDED_DATA_TYPE_TEXT, "Individual Contributor", "Manager", "Senior Manager", "Director", "Executive"),
		systemField("Region", "Region", types.EMBEDDED_DATA_TYPE_TEXT, "North America", "Europe", "Asia Pacific", "Latin America", "Middle East & Africa"),
		systemField("CustomerSegment", "Customer Segment", types.EMBEDDED_DATA_TYPE_TEXT, "Enterprise", "Mid-Market", "SMB", "Consumer"),
	}
}

func systemField(name string, label string, dataType types.EmbeddedDataType, suggested ...string) types.EmbeddedDataField {
	if suggested == nil {
		suggested = []string{}
	}
	return types.EmbeddedDataField{
		Name:            name,
		Label:           label,
		DataType:        dataType,
		SuggestedValues: suggested,
		IsSystemField:   true,
	}
}

// GetOperatorsByDataType lists the condition operators that make sense for a field type.
func GetOperatorsByDataType(dataType types.EmbeddedDataType) []types.ConditionOperator {
	switch dataType {
	case types.EMBEDDED_DATA_TYPE_TEXT:
		return []types.ConditionOperator{types.OPERATOR_EQUALS, types.OPERATOR_NOT_EQUALS, types.OPERATOR_CONTAINS, types.OPERATOR_NOT_CONTAINS}
	case types.EMBEDDED_DATA_TYPE_NUMBER, types.EMBEDDED_DATA_TYPE_DATE:
		return []types.ConditionOperator{types.OPERATOR_EQUALS, types.OPERATOR_NOT_EQUALS, types.OPERATOR_GREATER_THAN, types.OPERATOR_LESS_THAN}
	default:
		return []types.ConditionOperator{types.OPERATOR_EQUALS, types.OPERATOR_NOT_EQUALS}
	}
}

var (
	leadingDigitRegex = regexp.MustCompile(`^\d`)
	fieldNameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// ValidateFieldName checks a custom field name: letters, digits and underscores, no leading
// digit, at most 50 characters.
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFieldNameEmpty
	}
	if utf8.RuneCountInString(name) > MAX_FIELD_NAME_LENGTH {
		return ErrFieldNameTooLong
	}
	if leadingDigitRegex.MatchString(name) {
		return ErrFieldNameLeadingDigit
	}
	if !fieldNameRegex.MatchString(name) {
		return ErrFieldNameInvalidSymbol
	}
	return nil
}

// FindField looks up a field by name, ignoring case.
func FindField(fieldName string, fields []types.EmbeddedDataField) (types.EmbeddedDataField, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Name, fieldName) {
			return f, true
		}
	}
	return types.EmbeddedDataField{}, false
}

func FieldExists(fieldName string, fields []types.EmbeddedDataField) bool {
	_, ok := FindField(fieldName, fields)
	return ok
}

func GetSuggestedValues(fieldName string, fields []types.EmbeddedDataField) []string {
	f, ok := FindField(fieldName, fields)
	if !ok || f.SuggestedValues == nil {
		return []string{}
	}
	return f.SuggestedValues
}

// GetFieldDataType defaults to text for unknown fields.
func GetFieldDataType(fieldName string, fields []types.EmbeddedDataField) types.EmbeddedDataType {
	f, ok := FindField(fieldName, fields)
	if !ok || f.DataType == "" {
		return types.EMBEDDED_DATA_TYPE_TEXT
	}
	return f.DataType
}

func CreateCustomField(name string, dataType types.EmbeddedDataType, label string, suggestedValues []string) types.EmbeddedDataField {
	if label == "" {
		label = name
	}
	if suggestedValues == nil {
		suggestedValues = []string{}
	}
	return types.EmbeddedDataField{
		Name:            name,
		Label:           label,
		DataType:        dataType,
		SuggestedValues: suggestedValues,
		IsSystemField:   false,
	}
}

// ParseSuggestedValues splits a comma separated list and drops blank entries.
func ParseSuggestedValues(input string) []string {
	values := []string{}
	for _, v := range strings.Split(input, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// ExtractUniqueValues returns the distinct non-blank values of an imported column, most frequent
// first, limited to 50. Ties keep the order of first appearance.
func ExtractUniqueValues(columnData []string) []string {
	counts := map[string]int{}
	order := []string{}
	for _, v := range columnData {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > MAX_UNIQUE_VALUES {
		order = order[:MAX_UNIQUE_VALUES]
	}
	return order
}

var (
	booleanPattern = regexp.MustCompile(`(?i)^(true|false|yes|no|1|0)$`)
	numericPattern = regexp.MustCompile(`^-?\d+\.?\d*$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}`)
)

// InferDataType guesses the type of an imported column. Checks run boolean, number, date, in
// that order, so "1"/"0" columns are boolean.
func InferDataType(values []string) types.EmbeddedDataType {
	if len(values) == 0 {
		return types.EMBEDDED_DATA_TYPE_TEXT
	}
	if allMatch(values, booleanPattern) {
		return types.EMBEDDED_DATA_TYPE_BOOLEAN
	}
	if allMatch(values, numericPattern) {
		return types.EMBEDDED_DATA_TYPE_NUMBER
	}
	if allMatch(values, datePattern) {
		return types.EMBEDDED_DATA_TYPE_DATE
	}
	return types.EMBEDDED_DATA_TYPE_TEXT
}

func allMatch(values []string, pattern *regexp.Regexp) bool {
	for _, v := range values {
		if !pattern.MatchString(strings.TrimSpace(v)) {
			return false
		}
	}
	return true
}

func GetFieldLabel(field types.EmbeddedDataField) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

// FormatPipedText returns the piping token that inserts the field's value into question text.
func FormatPipedText(fieldName string) string {
	return "${e://Field/" + fieldName + "}"
}
