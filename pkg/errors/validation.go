package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// classNameRegex matches valid element class names: a lowercase category,
// a slash, and a lowercase kind (e.g. "glyph/rect", "mark/anchor").
var classNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*/[a-z][a-z0-9]*$`)

// ValidateClassName validates an element class name.
// Class names identify entries in the element catalog and appear verbatim
// in chart documents, so they are restricted to a conservative shape.
func ValidateClassName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidClass, "class name cannot be empty")
	}
	if !classNameRegex.MatchString(name) {
		return New(ErrCodeInvalidClass, "invalid class name: %q (expected category/kind, e.g. glyph/rect)", name)
	}
	return nil
}

// attributeNameRegex matches valid attribute names: a letter followed by
// letters and digits (e.g. "x1", "width", "icx").
var attributeNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// ValidateAttributeName validates an attribute name for use in a schema.
func ValidateAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAttribute, "attribute name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidAttribute, "attribute name too long (max 64 characters)")
	}
	if !attributeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidAttribute, "invalid attribute name: %q", name)
	}
	return nil
}

// ValidatePath validates a chart document path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
