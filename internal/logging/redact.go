package logging

import (
	"regexp"
	"strings"
)

// Field names whose values are personal health information or credentials.
// Request payloads are logged through RedactMap, never raw.
var sensitiveFields = []string{
	"name",
	"high_risk_factors",
	"last_menstrual_period",
	"due_date",
	"message",
	"response",
	"text",
	"token",
	"authorization",
}

// Patterns for values that should not reach the log even inside free text.
var secretPatterns = []*regexp.Regexp{
	// Calendar dates (YYYY-MM-DD), which pin down LMP and due dates.
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),

	// Email addresses
	regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`),

	// Phone numbers (loose international form)
	regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9._-]{20,})`),
}

// RedactedValue is the replacement for sensitive values.
const RedactedValue = "[REDACTED]"

// Redact replaces sensitive information in a string.
func Redact(s string) string {
	result := s
	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// RedactMap redacts sensitive fields in a map, recursing into nested maps.
func RedactMap(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))

	for k, v := range m {
		switch {
		case IsSensitiveField(k):
			result[k] = RedactedValue
		default:
			switch typed := v.(type) {
			case map[string]interface{}:
				result[k] = RedactMap(typed)
			case string:
				result[k] = Redact(typed)
			default:
				result[k] = v
			}
		}
	}

	return result
}

// IsSensitiveField checks if a field name is considered sensitive.
func IsSensitiveField(name string) bool {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	for _, field := range sensitiveFields {
		if lowerName == field || strings.HasSuffix(lowerName, "_"+field) {
			return true
		}
	}
	return false
}
