package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds category identifiers accepted for path parameters.
const maxIDLength = 128

// ValidateID validates a category identifier before it is placed into a
// request path such as /categories/{id}.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators, traversal sequences or query delimiters
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "category id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "category id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "category id contains invalid characters")
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
		"?",  // Query delimiter
		"#",  // Fragment delimiter
		"%",  // Pre-encoded sequences
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "category id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
