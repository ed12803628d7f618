package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSearchQueryLength defines the maximum allowed length for name search queries
	MaxSearchQueryLength = 100
)

// dangerousPatterns contains regex patterns that could indicate SQL injection attempts
var dangerousPatterns = []*regexp.Regexp{
	// SQL injection patterns
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)\b(or|and)\s+['"].*['"]\s*=\s*['"].*['"]`),
	regexp.MustCompile(`(--|/\*|\*/)`),
	regexp.MustCompile(`(?i)\b(waitfor|benchmark|pg_sleep)\b`),

	// XSS patterns (names are echoed back by the API)
	regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=)`),
}

// ValidateSearchQuery validates a user name search query and returns it trimmed.
func ValidateSearchQuery(query string) (string, error) {
	if query == "" {
		return "", nil
	}

	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return "", errors.New("search query too long")
	}

	query = strings.TrimSpace(query)

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(query) {
			return "", errors.New("search query contains invalid characters")
		}
	}

	// Additional character validation - allow only characters that appear in names
	for _, char := range query {
		if !isValidSearchChar(char) {
			return "", errors.New("search query contains invalid characters")
		}
	}

	return query, nil
}

// isValidSearchChar checks if a character is safe for name searches
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' || char == '\''
}

// SanitizeSearchString escapes LIKE wildcards; pair it with ESCAPE '\'.
func SanitizeSearchString(query string) string {
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, `\`, `\\`)
	query = strings.ReplaceAll(query, "%", `\%`)
	query = strings.ReplaceAll(query, "_", `\_`)

	return query
}
