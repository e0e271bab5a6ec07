package application

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "projectID" -> "project ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"projectID":   "project ID",
		"categoryKey": "category key",
		"tagKey":      "tag key",
		"sectionID":   "section ID",
		"subtitle":    "subtitle",
		"techStack":   "tech stack",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateSlug checks that a key is lowercase letters and digits separated by
// single hyphens or underscores (e.g., "task-manager")
func ValidateSlug(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if !slugRegex.MatchString(value) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be lowercase words joined by hyphens, got: %s", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ValidateColor accepts empty values (the default applies) and #rgb/#rrggbb
func ValidateColor(fieldName, value string) error {
	if value == "" || colorRegex.MatchString(value) {
		return nil
	}
	return &ValidationError{
		Field:   fieldName,
		Message: fmt.Sprintf("expected a hex color like #4a90e2, got: %s", value),
	}
}
