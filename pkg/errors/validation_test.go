package errors

import (
	"strings"
	"testing"
)

func TestValidateObjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Stroke", false},
		{"valid with dot", "GPencil.001", false},
		{"valid unicode", "Tracé", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 64), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateObjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateObjectName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateScenePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "scene.json", false},
		{"nested", "shots/sh010/drawing.json", false},
		{"upper case extension", "SCENE.JSON", false},

		{"empty", "", true},
		{"wrong extension", "scene.toml", true},
		{"no extension", "scene", true},
		{"control char", "sc\x01ene.json", true},
		{"too long", strings.Repeat("a", 600) + ".json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScenePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
