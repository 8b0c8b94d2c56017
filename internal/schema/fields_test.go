package schema

import "testing"

func TestValidateRecord(t *testing.T) {
	specs := []FieldSpec{
		{Name: "serialNumber", Label: "Serial Number", Required: true, MaxLen: 8},
		{Name: "status", Required: false, AllowEmpty: true, EnumValues: []string{"active", "passive"}},
		{Name: "devEUI", Label: "DevEUI", Required: true, Pattern: `[0-9A-Fa-f]{16}`},
	}

	tests := []struct {
		name       string
		record     map[string]string
		wantFields []string
	}{
		{
			name:       "valid record",
			record:     map[string]string{"serialNumber": "MTR-001", "status": "active", "devEUI": "0011223344556677"},
			wantFields: nil,
		},
		{
			name:       "missing required fields",
			record:     map[string]string{"status": "active"},
			wantFields: []string{"serialNumber", "devEUI"},
		},
		{
			name:       "empty required field",
			record:     map[string]string{"serialNumber": "", "devEUI": "0011223344556677"},
			wantFields: []string{"serialNumber"},
		},
		{
			name:       "too long",
			record:     map[string]string{"serialNumber": "MTR-00123456", "devEUI": "0011223344556677"},
			wantFields: []string{"serialNumber"},
		},
		{
			name:       "invalid enum",
			record:     map[string]string{"serialNumber": "MTR-001", "status": "broken", "devEUI": "0011223344556677"},
			wantFields: []string{"status"},
		},
		{
			name:       "enum is case insensitive",
			record:     map[string]string{"serialNumber": "MTR-001", "status": "ACTIVE", "devEUI": "0011223344556677"},
			wantFields: nil,
		},
		{
			name:       "pattern mismatch",
			record:     map[string]string{"serialNumber": "MTR-001", "devEUI": "xyz"},
			wantFields: []string{"devEUI"},
		},
		{
			name:       "pattern must match the whole value",
			record:     map[string]string{"serialNumber": "MTR-001", "devEUI": "0011223344556677FF"},
			wantFields: []string{"devEUI"},
		},
		{
			name:       "optional empty field passes",
			record:     map[string]string{"serialNumber": "MTR-001", "status": "", "devEUI": "0011223344556677"},
			wantFields: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRecord(specs, tt.record)

			if len(got) != len(tt.wantFields) {
				t.Fatalf("ValidateRecord() = %v, want fields %v", got, tt.wantFields)
			}
			seen := make(map[string]bool)
			for _, v := range got {
				seen[v.Field] = true
			}
			for _, field := range tt.wantFields {
				if !seen[field] {
					t.Errorf("expected a violation for %q, got %v", field, got)
				}
			}
		})
	}
}

func TestValidateRecord_BadPatternFailsRow(t *testing.T) {
	specs := []FieldSpec{{Name: "x", Required: true, Pattern: `([`}}

	got := ValidateRecord(specs, map[string]string{"x": "value"})
	if len(got) != 1 {
		t.Fatalf("expected one violation for malformed pattern, got %v", got)
	}
	if got[0].Field != "x" {
		t.Errorf("violation field = %q, want x", got[0].Field)
	}
}

func TestValidateRecord_LabelInMessage(t *testing.T) {
	specs := []FieldSpec{{Name: "tcIdNo", Label: "National ID", Required: true}}

	got := ValidateRecord(specs, map[string]string{})
	if len(got) != 1 {
		t.Fatalf("expected one violation, got %v", got)
	}
	if got[0].Message != "National ID is required" {
		t.Errorf("message = %q, want label-based message", got[0].Message)
	}
}
