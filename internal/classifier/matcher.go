package classifier

import (
	"strings"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// FindBestMatch returns the first candidate, in declared order, that matches
// the normalised phrase. The candidate is returned as declared.
//
// Phase 1 accepts a candidate when either string contains the other
// (phrase-contains-candidate is checked first). Phase 2 runs only when Phase 1
// finds nothing and the phrase has several words: a candidate qualifies when it
// shares at least min(2, len(phraseWords)) distinct words with the phrase.
func FindBestMatch(phrase string, candidates []string) (string, bool) {
	if phrase == "" {
		return "", false
	}

	for _, candidate := range candidates {
		item := strings.ToLower(candidate)
		if item == "" {
			continue
		}
		if strings.Contains(phrase, item) || strings.Contains(item, phrase) {
			return candidate, true
		}
	}

	phraseWords := strings.Fields(phrase)
	if len(phraseWords) <= 1 {
		return "", false
	}

	phraseSet := make(map[string]struct{}, len(phraseWords))
	for _, w := range phraseWords {
		phraseSet[w] = struct{}{}
	}
	need := min(2, len(phraseWords))

	for _, candidate := range candidates {
		if commonWords(phraseSet, strings.Fields(strings.ToLower(candidate))) >= need {
			return candidate, true
		}
	}

	return "", false
}

// commonWords counts distinct words present in both sets.
func commonWords(phraseSet map[string]struct{}, words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := phraseSet[w]; !ok {
			continue
		}
		seen[w] = struct{}{}
	}
	return len(seen)
}

// Classify assigns a safety tier to a normalised phrase.
// Lists are searched safe, harmful, conditional; the first list with a match
// wins, so a phrase matching both a safe and a harmful entry is Safe.
func Classify(phrase string, dataset *domain.ReferenceDataset) (domain.Safety, *string) {
	if dataset == nil {
		return domain.SafetyUnknown, nil
	}

	tiers := []struct {
		safety     domain.Safety
		candidates []string
	}{
		{domain.SafetySafe, dataset.SafeIngredients},
		{domain.SafetyHarmful, dataset.HarmfulIngredients},
		{domain.SafetyConditional, dataset.ConditionallyAllowed},
	}

	for _, tier := range tiers {
		if match, ok := FindBestMatch(phrase, tier.candidates); ok {
			return tier.safety, &match
		}
	}

	return domain.SafetyUnknown, nil
}
