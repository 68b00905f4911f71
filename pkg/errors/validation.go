package errors

import (
	"strings"
	"unicode"
)

// ValidateLibraryName validates a library name for safety and correctness.
// Library names arrive from URL paths and are resolved to filesystem
// locations, so names that could escape the search roots are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateLibraryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLibrary, "library name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidLibrary, "library name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLibrary, "library name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidLibrary, "library name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateElementName validates a class/function/method name from a source
// request. Element names are matched against parsed identifiers, so the
// same conservative rules apply.
func ValidateElementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "element name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "element name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return New(ErrCodeInvalidInput, "element name contains invalid characters")
		}
	}
	return nil
}
