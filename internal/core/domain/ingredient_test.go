package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafety_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		safety   Safety
		expected bool
	}{
		{"safe is valid", SafetySafe, true},
		{"conditional is valid", SafetyConditional, true},
		{"harmful is valid", SafetyHarmful, true},
		{"unknown is valid", SafetyUnknown, true},
		{"empty is invalid", Safety(""), false},
		{"lowercase safe is invalid", Safety("safe"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.safety.IsValid())
		})
	}
}

func TestParseSafety(t *testing.T) {
	assert.Equal(t, SafetySafe, ParseSafety("Safe"))
	assert.Equal(t, SafetyConditional, ParseSafety("Use with caution"))
	assert.Equal(t, SafetyHarmful, ParseSafety("Potentially harmful"))
	assert.Equal(t, SafetyUnknown, ParseSafety("Unknown"))
	assert.Equal(t, SafetyUnknown, ParseSafety("bogus"))
	assert.Equal(t, SafetyUnknown, ParseSafety(""))
}

func TestClassifiedIngredient_Matched(t *testing.T) {
	canonical := "Sea Salt"

	assert.Equal(t, "Sea Salt", ClassifiedIngredient{MatchedWith: &canonical}.Matched())
	assert.Equal(t, "", ClassifiedIngredient{}.Matched())
}

func TestCountTiers(t *testing.T) {
	ingredients := []ClassifiedIngredient{
		{Name: "Water", Safety: SafetySafe},
		{Name: "Sugar", Safety: SafetySafe},
		{Name: "Palm Oil", Safety: SafetyConditional},
		{Name: "Red 40", Safety: SafetyHarmful},
		{Name: "Mystery", Safety: SafetyUnknown},
		{Name: "Legacy", Safety: Safety("")},
	}

	counts := CountTiers(ingredients)

	assert.Equal(t, 2, counts.Safe)
	assert.Equal(t, 1, counts.Conditional)
	assert.Equal(t, 1, counts.Harmful)
	assert.Equal(t, 2, counts.Unknown)
	assert.Equal(t, 6, counts.Total())
	assert.Equal(t, 2, counts.Count(SafetySafe))
	assert.Equal(t, 1, counts.Count(SafetyHarmful))
}

func TestCountTiers_Empty(t *testing.T) {
	counts := CountTiers(nil)

	assert.Equal(t, TierCounts{}, counts)
	assert.Equal(t, 0, counts.Total())
}
