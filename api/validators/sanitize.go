package validators

import "strings"

// SanitizeQuery trims a free-text query value and caps it at maxRunes.
func SanitizeQuery(input string, maxRunes int) string {
	trimmed := strings.TrimSpace(input)
	if maxRunes > 0 {
		if runes := []rune(trimmed); len(runes) > maxRunes {
			return string(runes[:maxRunes])
		}
	}
	return trimmed
}
