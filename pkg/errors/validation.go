package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateObjectName validates the name of a scene object.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 63 characters (the host's name limit)
func ValidateObjectName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "object name cannot be empty")
	}

	const maxNameLength = 63
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "object name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "object name contains invalid control characters")
		}
	}
	return nil
}

// ValidateScenePath validates the path of a scene document.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .json
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "scene path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "scene path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "scene path contains invalid characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return New(ErrCodeInvalidInput, "scene path must have a .json extension, got %q", ext)
	}
	return nil
}
