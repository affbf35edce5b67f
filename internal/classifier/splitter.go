package classifier

import "strings"

// delimiters separate ingredient phrases on a label.
const delimiters = ",.;:"

// Split breaks cleaned text into trimmed, non-empty phrases in source order.
func Split(cleaned string) []string {
	fields := strings.FieldsFunc(cleaned, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	phrases := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			phrases = append(phrases, trimmed)
		}
	}
	return phrases
}
