package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldSpec defines validation rules for a single import column. Static
// entity columns declare their specs in this package; module technology
// fields (DevEUI, ICCID, ...) arrive as specs attached to a device
// profile fetched at import time. Validation is a generic interpreter
// over these rules, never per-field code.
type FieldSpec struct {
	Name       string   `json:"name"`
	Label      string   `json:"label,omitempty"`
	Required   bool     `json:"required"`
	AllowEmpty bool     `json:"allowEmpty,omitempty"`
	MaxLen     int      `json:"maxLen,omitempty"`
	Pattern    string   `json:"pattern,omitempty"` // regex the whole value must match
	EnumValues []string `json:"enumValues,omitempty"`
}

// Violation describes a single failed rule for a record field.
type Violation struct {
	Field   string
	Message string
}

// ValidateRecord checks a string record against a list of field specs and
// returns one violation per failed rule. Pattern compilation errors are
// reported as violations rather than panics so a malformed profile regex
// fails the row, not the process.
func ValidateRecord(specs []FieldSpec, record map[string]string) []Violation {
	var out []Violation
	for _, spec := range specs {
		value, present := record[spec.Name]

		if !present || value == "" {
			if spec.Required && !spec.AllowEmpty {
				out = append(out, Violation{
					Field:   spec.Name,
					Message: fmt.Sprintf("%s is required", spec.displayName()),
				})
			}
			continue
		}

		if spec.MaxLen > 0 && len(value) > spec.MaxLen {
			out = append(out, Violation{
				Field:   spec.Name,
				Message: fmt.Sprintf("%s exceeds %d characters", spec.displayName(), spec.MaxLen),
			})
			continue
		}

		if len(spec.EnumValues) > 0 && !containsFold(spec.EnumValues, value) {
			out = append(out, Violation{
				Field:   spec.Name,
				Message: fmt.Sprintf("%s must be one of %v", spec.displayName(), spec.EnumValues),
			})
			continue
		}

		if spec.Pattern != "" {
			re, err := regexp.Compile("^(?:" + spec.Pattern + ")$")
			if err != nil {
				out = append(out, Violation{
					Field:   spec.Name,
					Message: fmt.Sprintf("%s has an invalid validation pattern", spec.displayName()),
				})
				continue
			}
			if !re.MatchString(value) {
				out = append(out, Violation{
					Field:   spec.Name,
					Message: fmt.Sprintf("%s does not match the expected format", spec.displayName()),
				})
			}
		}
	}
	return out
}

func (s FieldSpec) displayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
