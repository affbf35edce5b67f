package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips upper case header",
			input:    "INGREDIENTS: Water",
			expected: "Water",
		},
		{
			name:     "strips title case header",
			input:    "Ingredients: Water",
			expected: "Water",
		},
		{
			name:     "strips lower case header",
			input:    "ingredients: Water",
			expected: "Water",
		},
		{
			name:     "removes gram quantity",
			input:    "Sugar 10g, Salt",
			expected: "Sugar , Salt",
		},
		{
			name:     "removes milligram quantity",
			input:    "Sodium 200mg",
			expected: "Sodium",
		},
		{
			name:     "removes millilitre and litre quantities",
			input:    "Milk 100ml, Water 2L",
			expected: "Milk , Water",
		},
		{
			name:     "removes fluid ounces",
			input:    "Juice 16 fl oz",
			expected: "Juice",
		},
		{
			name:     "removes decimal quantity whole",
			input:    "Salt 0.5g, Sugar",
			expected: "Salt , Sugar",
		},
		{
			name:     "removes percentage",
			input:    "Tomato 45%, Onion",
			expected: "Tomato , Onion",
		},
		{
			name:     "removes parenthetical aside",
			input:    "Salt (for flavor), Pepper",
			expected: "Salt , Pepper",
		},
		{
			name:     "removes contains percentage filler regardless of case",
			input:    "Contains 2% Citric Acid",
			expected: "Citric Acid",
		},
		{
			name:     "removes less than percentage filler",
			input:    "less than 2% Salt",
			expected: "Salt",
		},
		{
			name:     "removes enriched with filler",
			input:    "Flour enriched with Niacin",
			expected: "Flour Niacin",
		},
		{
			name:     "removes for freshness filler",
			input:    "BHT for freshness",
			expected: "BHT",
		},
		{
			name:     "keeps dye numbers without units",
			input:    "Red 40",
			expected: "Red 40",
		},
		{
			name:     "collapses whitespace and newlines",
			input:    "  Water,\n\n  Sugar\t ",
			expected: "Water, Sugar",
		},
		{
			name:     "normalises full width digits before matching units",
			input:    "Sugar １０g",
			expected: "Sugar",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_ReplacesMatchesWithSpace(t *testing.T) {
	// A removed token must not fuse its neighbours.
	assert.Equal(t, "Salt Pepper", CleanText("Salt(iodized)Pepper"))
}

func TestCleanTextThenSplit_LabelExample(t *testing.T) {
	raw := "INGREDIENTS: Water, Sugar 10g, Salt (for flavor), Contains 2% Citric Acid."

	phrases := Split(CleanText(raw))

	assert.Equal(t, []string{"Water", "Sugar", "Salt", "Citric Acid"}, phrases)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"descriptor stripped and plural dropped", "Organic Tomatoes", "tomato"},
		{"lowercases and trims", "  SUGAR  ", "sugar"},
		{"short words keep trailing s", "Gas", "gas"},
		{"non-plural s is still dropped", "Swiss", "swis"},
		{"every descriptor occurrence stripped", "Dried Ground Cumin Seeds", "cumin seed"},
		{"trailing descriptor kept", "Salt Organic", "salt organic"},
		{"descriptor inside a word kept", "Unrefined Sugar", "unrefined sugar"},
		{"plain phrase", "Citric Acid", "citric acid"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
