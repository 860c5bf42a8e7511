package core

// validation.go checks raw CSV rows against the dataset's field specs before
// they become Records.
//
// Validation happens at two levels:
//  1. Header validation: every required column must be present
//  2. Row validation: each cell is checked against its FieldSpec (type, enum values)
//
// Loading is fail-fast, so the validator stops at the first problem in a row.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// ValidatedRow maps column names to cleaned, normalized cell values.
type ValidatedRow map[string]string

// RowValidator validates rows against a set of field specifications.
type RowValidator struct {
	specs     []schema.FieldSpec
	headerIdx HeaderIndex
}

// NewRowValidator creates a validator for the given specs and header index.
func NewRowValidator(specs []schema.FieldSpec, headerIdx HeaderIndex) *RowValidator {
	return &RowValidator{
		specs:     specs,
		headerIdx: headerIdx,
	}
}

// ValidateRow validates a single CSV row. line is used for error reporting.
func (v *RowValidator) ValidateRow(row []string, line int) (ValidatedRow, error) {
	out := make(ValidatedRow, len(v.specs))

	for _, spec := range v.specs {
		pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
		if !ok || pos >= len(row) {
			if spec.Required {
				return nil, malformed(line, spec.Name, "", "missing required column")
			}
			continue
		}

		raw := CleanCell(row[pos])
		if raw == "" {
			if spec.Required {
				return nil, malformed(line, spec.Name, "", "empty required field")
			}
			continue
		}

		if spec.Normalizer != nil {
			raw = spec.Normalizer(raw)
		}

		normalized, err := ValidateCell(raw, spec)
		if err != nil {
			return nil, malformed(line, spec.Name, raw, err.Error())
		}
		out[spec.Name] = normalized
	}

	return out, nil
}

// ValidateCell validates a single cell value against a field specification
// and returns its canonical form (enum values take the FieldSpec spelling).
func ValidateCell(value string, spec schema.FieldSpec) (string, error) {
	switch spec.Type {
	case schema.FieldInteger:
		if _, err := ParseInteger(value); err != nil {
			return "", fmt.Errorf("invalid integer")
		}
	case schema.FieldNumeric:
		if _, err := ParseNumeric(value); err != nil {
			return "", fmt.Errorf("invalid number format")
		}
	case schema.FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, value) {
				return ev, nil
			}
		}
		return "", fmt.Errorf("invalid enum, value must be one of: %s", strings.Join(spec.EnumValues, ", "))
	}
	return value, nil
}

// ValidateHeaders validates that all required columns exist in the CSV headers.
// Returns a mapping from column name to index, or an error listing missing columns.
func ValidateHeaders(headers []string, specs []schema.FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		e := malformed(1, "", "", "missing required columns: "+strings.Join(missing, ", "))
		if len(headers) == 1 {
			e.Message += " (is the delimiter correct?)"
		}
		return nil, e
	}

	return idx, nil
}
