package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "llm-1", false},
		{"valid with underscore", "custom_input", false},
		{"valid with dot", "node.v2", false},
		{"valid unicode", "ノード", false},
		{"valid long but under limit", strings.Repeat("a", 256), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidNodeID)
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	if err := ValidateConfigPath("pipecheck.toml"); err != nil {
		t.Errorf("ValidateConfigPath(valid) error = %v", err)
	}
	if err := ValidateConfigPath(""); err == nil {
		t.Error("ValidateConfigPath(empty) = nil, want error")
	}
	if err := ValidateConfigPath("a\x00b"); err == nil {
		t.Error("ValidateConfigPath(null byte) = nil, want error")
	}
}
