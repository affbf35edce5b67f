package classifier

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// labelHeaders are removed verbatim before any pattern runs.
var labelHeaders = []string{"INGREDIENTS:", "Ingredients:", "ingredients:"}

// noisePatterns are applied in declared order; each match becomes a single space.
// Order matters: decimal quantities run before integer ones so "0.5g" is not split
// into "0." and "5g", and the percentage fillers run before the bare percentage
// pattern so they still see their digits.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\.\d+\s*[gGmMkKlLoOzZ]+\b`), // 0.5g, 1.5mg
	regexp.MustCompile(`\d+\s*[gG]\b`),                 // 10g
	regexp.MustCompile(`\d+\s*[mM][gG]\b`),             // 200mg
	regexp.MustCompile(`\d+\s*[mM][lL]\b`),             // 100ml
	regexp.MustCompile(`\d+\s*[kK][gG]\b`),             // 1kg
	regexp.MustCompile(`\d+\s*[lL]\b`),                 // 2L
	regexp.MustCompile(`\d+\s*[oO][zZ]\b`),             // 8oz
	regexp.MustCompile(`\d+\s*[fF][lL]\s*[oO][zZ]\b`),  // 16 fl oz
	regexp.MustCompile(`(?i)\bcontains\s+\d+%\s*`),     // contains 2%
	regexp.MustCompile(`(?i)\bless\s+than\s+\d+%\s*`),  // less than 2%
	regexp.MustCompile(`\d+%\s*`),                      // 10%
	regexp.MustCompile(`\([^)]*\)`),                    // (for color)
	regexp.MustCompile(`(?i)\bfrom\s+`),
	regexp.MustCompile(`(?i)\bfortified\s+with\s+`),
	regexp.MustCompile(`(?i)\benriched\s+with\s+`),
	regexp.MustCompile(`(?i)\badded\s+for\s+`),
	regexp.MustCompile(`(?i)\badded\s+to\s+`),
	regexp.MustCompile(`(?i)\bfor\s+freshness\b`),
	regexp.MustCompile(`(?i)\bfor\s+color\b`),
	regexp.MustCompile(`(?i)\bto\s+preserve\b`),
	regexp.MustCompile(`(?i)\bto\s+maintain\b`),
	regexp.MustCompile(`(?i)\bto\s+improve\b`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// descriptors are stripped when followed by whitespace, every occurrence.
var descriptors = []string{
	"organic", "natural", "raw", "fresh", "dried", "powdered", "ground",
	"refined", "pure", "whole", "sliced", "diced", "chopped", "crushed",
}

var descriptorPatterns = compileDescriptors(descriptors)

func compileDescriptors(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\s+`)
	}
	return patterns
}

// CleanText strips label boilerplate and measurement noise from raw OCR text.
// The result has single spaces between tokens and no surrounding whitespace.
func CleanText(raw string) string {
	cleaned := norm.NFKC.String(raw)

	for _, header := range labelHeaders {
		cleaned = strings.ReplaceAll(cleaned, header, "")
	}

	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}

	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Normalize prepares a single extracted phrase for matching.
//
// The plural handling is a heuristic: any phrase longer than three characters
// loses a trailing "s" ("oes" loses "es"), so "Swiss" becomes "swis".
func Normalize(phrase string) string {
	normalized := strings.TrimSpace(strings.ToLower(phrase))

	if utf8.RuneCountInString(normalized) > 3 && strings.HasSuffix(normalized, "s") {
		if strings.HasSuffix(normalized, "oes") {
			normalized = strings.TrimSuffix(normalized, "es")
		} else {
			normalized = strings.TrimSuffix(normalized, "s")
		}
	}

	for _, pattern := range descriptorPatterns {
		normalized = pattern.ReplaceAllString(normalized, "")
	}

	return normalized
}
