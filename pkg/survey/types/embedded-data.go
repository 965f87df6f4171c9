package types

type EmbeddedDataType string

const (
	EMBEDDED_DATA_TYPE_TEXT    EmbeddedDataType = "text"
	EMBEDDED_DATA_TYPE_NUMBER  EmbeddedDataType = "number"
	EMBEDDED_DATA_TYPE_BOOLEAN EmbeddedDataType = "boolean"
	EMBEDDED_DATA_TYPE_DATE    EmbeddedDataType = "date"
)

type EmbeddedDataField struct {
	// Name is the lookup key into the participant's embedded data.
	Name            string           `bson:"name" json:"name"`
	Label           string           `bson:"label,omitempty" json:"label,omitempty"`
	DataType        EmbeddedDataType `bson:"dataType" json:"dataType"`
	SuggestedValues []string         `bson:"suggestedValues,omitempty" json:"suggestedValues,omitempty"`
	// IsSystemField marks predefined fields: they cannot be deleted or renamed, only relabelled.
	IsSystemField bool `bson:"isSystemField" json:"isSystemField"`
}

type EmbeddedDataSchema struct {
	Fields               []EmbeddedDataField `bson:"fields" json:"fields"`
	AllowUndefinedFields bool                `bson:"allowUndefinedFields" json:"allowUndefinedFields"`
}

func (s EmbeddedDataSchema) FindField(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}
