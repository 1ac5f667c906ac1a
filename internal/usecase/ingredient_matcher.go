package usecase

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safeeat/backend/internal/domain"
)

// NormalizeIngredient lower-cases and trims an ingredient term
func NormalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IngredientMatcher decides whether a product contains any avoided ingredient.
// Matching is plain substring containment on lower-cased text, so "ost" matches
// inside "kost". Callers depend on that behaviour.
type IngredientMatcher struct {
	enableDebugLogging bool
}

// NewIngredientMatcher creates a matcher
func NewIngredientMatcher(enableDebugLogging bool) *IngredientMatcher {
	return &IngredientMatcher{enableDebugLogging: enableDebugLogging}
}

// Match returns the safety verdict for product against avoid.
// FoundIngredients holds the avoided terms as supplied, in avoid-list order,
// each at most once. A nil product has no content and is always safe.
func (m *IngredientMatcher) Match(product *domain.Product, avoid []string) domain.MatchResult {
	found := make([]string, 0)
	if len(avoid) == 0 {
		return domain.MatchResult{IsSafe: true, FoundIngredients: found}
	}

	var p domain.Product
	if product != nil {
		p = *product
	}

	ingredientsText := strings.ToLower(p.IngredientsText.OrEmpty())
	allergens := strings.ToLower(p.Allergens.OrEmpty())
	traces := strings.ToLower(p.Traces.OrEmpty())

	entries := make([]string, 0, len(p.Ingredients))
	for _, entry := range p.Ingredients {
		entries = append(entries, strings.ToLower(entry.Label()))
	}

	seen := make(map[string]bool, len(avoid))
	for _, avoided := range avoid {
		if seen[avoided] {
			continue
		}
		term := NormalizeIngredient(avoided)

		if containsTerm(term, ingredientsText, entries, allergens, traces) {
			seen[avoided] = true
			found = append(found, avoided)
		}
	}

	if m.enableDebugLogging {
		logrus.WithFields(logrus.Fields{
			"component": "matcher",
			"product":   product.DisplayName(),
			"found":     found,
		}).Debug("ingredient check complete")
	}

	return domain.MatchResult{
		IsSafe:           len(found) == 0,
		FoundIngredients: found,
	}
}

// containsTerm checks the fields in lookup order: ingredients text,
// structured entries, allergens, traces
func containsTerm(term, ingredientsText string, entries []string, allergens, traces string) bool {
	if strings.Contains(ingredientsText, term) {
		return true
	}
	for _, entry := range entries {
		if strings.Contains(entry, term) {
			return true
		}
	}
	return strings.Contains(allergens, term) || strings.Contains(traces, term)
}
