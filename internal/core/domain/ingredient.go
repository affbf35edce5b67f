package domain

// Safety is the tier assigned to a classified ingredient.
type Safety string

// Safety tiers. The values are the persisted representation.
const (
	SafetySafe        Safety = "Safe"
	SafetyConditional Safety = "Use with caution"
	SafetyHarmful     Safety = "Potentially harmful"
	SafetyUnknown     Safety = "Unknown"
)

// AllSafeties lists the tiers in display order.
var AllSafeties = []Safety{SafetySafe, SafetyConditional, SafetyHarmful, SafetyUnknown}

// IsValid returns true if the tier is recognised.
func (s Safety) IsValid() bool {
	switch s {
	case SafetySafe, SafetyConditional, SafetyHarmful, SafetyUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Safety) String() string {
	return string(s)
}

// ParseSafety converts a persisted value to a tier.
// Unrecognised values decode as SafetyUnknown.
func ParseSafety(v string) Safety {
	s := Safety(v)
	if !s.IsValid() {
		return SafetyUnknown
	}
	return s
}

// ClassifiedIngredient is one extracted ingredient phrase and its verdict.
// It is immutable once produced and owned by the scan that contains it.
type ClassifiedIngredient struct {
	// ID is the unique identifier for the ingredient entry.
	ID string

	// Name is the extracted phrase as split, before normalisation.
	Name string

	// Safety is the assigned tier.
	Safety Safety

	// MatchedWith is the canonical string that triggered the classification.
	// Nil when Safety is SafetyUnknown.
	MatchedWith *string
}

// Matched returns the canonical string, or "" when nothing matched.
func (c ClassifiedIngredient) Matched() string {
	if c.MatchedWith == nil {
		return ""
	}
	return *c.MatchedWith
}

// TierCounts holds the number of ingredients per safety tier.
type TierCounts struct {
	Safe        int
	Conditional int
	Harmful     int
	Unknown     int
}

// Total returns the number of ingredients counted.
func (c TierCounts) Total() int {
	return c.Safe + c.Conditional + c.Harmful + c.Unknown
}

// Count returns the number of ingredients in the given tier.
func (c TierCounts) Count(s Safety) int {
	switch s {
	case SafetySafe:
		return c.Safe
	case SafetyConditional:
		return c.Conditional
	case SafetyHarmful:
		return c.Harmful
	default:
		return c.Unknown
	}
}

// CountTiers tallies ingredients per tier.
func CountTiers(ingredients []ClassifiedIngredient) TierCounts {
	var c TierCounts
	for i := range ingredients {
		switch ingredients[i].Safety {
		case SafetySafe:
			c.Safe++
		case SafetyConditional:
			c.Conditional++
		case SafetyHarmful:
			c.Harmful++
		default:
			c.Unknown++
		}
	}
	return c
}

// Analysis is the result handed to presentation: the ordered ingredients
// plus aggregate counts per tier.
type Analysis struct {
	Ingredients []ClassifiedIngredient
	Counts      TierCounts
}
