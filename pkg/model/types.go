package model

// FieldType is the simplified enum for record field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// FieldMeta describes a single declared field on a record: its storage name,
// human-readable verbose name, and the validation hints the form layer
// consumes. VerboseName may be left empty, in which case DefaultLabeler is
// applied on lookup.
type FieldMeta struct {
	Name        string    `json:"name" yaml:"name"`
	VerboseName string    `json:"verboseName,omitempty" yaml:"verbose_name,omitempty"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	PrimaryKey  bool      `json:"primaryKey,omitempty" yaml:"primary_key,omitempty"`
	Enum        []any     `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MaxLength   *int      `json:"maxLength,omitempty" yaml:"max_length,omitempty"`
	Pattern     string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Record is the map representation record stores hand to the view layer.
// Keys are declared field names.
type Record = map[string]any

// Getter reads a plain attribute value off a record instance.
type Getter func(rec any) any

// Method invokes a zero-argument member on a record instance. Errors
// propagate unmodified to the caller.
type Method func(rec any) (any, error)
