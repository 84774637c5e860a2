// Package strcase converts Go identifier casing to wire formats. Validation
// error fields use it to report struct field names as snake_case JSON keys.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a string to snake_case. Acronym runs stay together:
// userID becomes user_id and HTTPServer becomes http_server.
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}

			// A boundary is a lower or digit before an upper, or the
			// last upper of an acronym followed by a lower.
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune('_')
			} else if unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next) {
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
