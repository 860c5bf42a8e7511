// Package schema describes the columns of the salaries dataset: which headers
// must be present, how each cell is typed, and which values an enumerated
// column accepts.
package schema

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldInteger
	FieldNumeric
)

// String returns a human-readable name for a field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldEnum:
		return "enum"
	case FieldInteger:
		return "integer"
	case FieldNumeric:
		return "numeric"
	default:
		return "value"
	}
}

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	Name       string              // Column header name (matched case-insensitively)
	Type       FieldType           // Expected data type
	Required   bool                // Column must exist in the header and every cell must be non-empty
	EnumValues []string            // Valid values for FieldEnum type
	Normalizer func(string) string // Optional transformation applied before type checks
}
