package derive

import (
	"context"

	"scraploot/internal/prototype"
	"scraploot/logging"
	"scraploot/logging/derivation"
)

// recipeOutput is a recipe's single item-kind result.
type recipeOutput struct {
	Name   string
	Amount float64
}

// singleItemOutput extracts the one item-kind result of a recipe, or reports
// none when there are zero or several. Fluid results are ignored when
// counting; a recipe with multiple item outputs is ambiguous and skipped
// whole rather than partially processed. The legacy single-result fields are
// honored when the results list is absent.
func singleItemOutput(rec *prototype.Record) (recipeOutput, bool) {
	if len(rec.Results) == 0 {
		if rec.Result == "" {
			return recipeOutput{}, false
		}
		return recipeOutput{Name: rec.Result, Amount: rec.ResultCount}, true
	}
	var out recipeOutput
	found := 0
	for _, result := range rec.Results {
		if result.Kind != prototype.KindItem {
			continue
		}
		found++
		if found > 1 {
			return recipeOutput{}, false
		}
		out = recipeOutput{Name: result.Name, Amount: result.Amount}
	}
	if found != 1 {
		return recipeOutput{}, false
	}
	return out, true
}

// buildLoot derives the loot entries for a recipe from its item-kind
// ingredients, scaled by the recipe's output amount. Returns nil when every
// ingredient was fluid, other-kind, or excluded.
func buildLoot(ctx context.Context, recipe *prototype.Record, output recipeOutput, excluded ExclusionSet, settings Settings, pub logging.Publisher) []prototype.LootEntry {
	outputAmount := output.Amount
	if outputAmount <= 0 {
		// An absent or zero output amount means one craft yields one output;
		// dividing by it as-is would poison every count with Inf/NaN.
		outputAmount = 1
	}

	var entries []prototype.LootEntry
	for _, ing := range recipe.Ingredients {
		if ing.Kind != prototype.KindItem {
			continue
		}
		if excluded.Contains(ing.Name) {
			derivation.IngredientExcluded(ctx, pub, derivation.IngredientExcludedPayload{
				Recipe:     recipe.Name,
				Ingredient: ing.Name,
			})
			continue
		}
		cost := ing.Amount / outputAmount
		entries = append(entries, prototype.LootEntry{
			Item:        ing.Name,
			Probability: settings.Probability,
			CountMin:    settings.MinMultiplier * cost,
			CountMax:    settings.MaxMultiplier * cost,
		})
	}
	return entries
}
