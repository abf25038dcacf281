package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeFieldName tidies a futsal field name for display.
func NormalizeFieldName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
