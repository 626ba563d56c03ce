// Package derive implements the loot-derivation pass: a one-shot transform
// over a prototype snapshot that computes probabilistic item drops for
// player-placeable entities from their crafting recipes.
package derive

import (
	"context"
	"fmt"
	"strings"

	"scraploot/internal/prototype"
	"scraploot/logging"
	"scraploot/logging/derivation"
)

// recyclingSuffix marks recipes that convert items back into base materials.
// They are never loot sources.
const recyclingSuffix = "-recycling"

// Report tallies one derivation pass.
type Report struct {
	// Writes counts loot tables attached per entity category.
	Writes          map[string]int
	RecipesSeen     int
	RecipesSkipped  int
	EntitiesUpdated int
}

// Run executes the pass over the snapshot. The only mutation is setting the
// loot field on eligible entity records; recipes and items are never touched.
// An invalid Settings value is the one fatal error.
func Run(ctx context.Context, snap *prototype.Snapshot, settings Settings, pub logging.Publisher) (*Report, error) {
	if snap == nil {
		return nil, fmt.Errorf("derive: nil snapshot")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if pub == nil {
		pub = logging.NopPublisher()
	}
	excluded := NewExclusionSet(settings.ExtraExclusions)

	report := &Report{Writes: make(map[string]int)}
	for _, name := range snap.Names(prototype.CategoryRecipe) {
		recipe := snap.Get(prototype.CategoryRecipe, name)
		if recipe == nil {
			continue
		}
		report.RecipesSeen++
		if strings.HasSuffix(name, recyclingSuffix) {
			report.RecipesSkipped++
			derivation.RecipeSkipped(ctx, pub, derivation.RecipeSkippedPayload{
				Recipe: name,
				Reason: derivation.ReasonRecycling,
			})
			continue
		}
		if recipe.Excepted(ModID) {
			report.RecipesSkipped++
			derivation.RecipeSkipped(ctx, pub, derivation.RecipeSkippedPayload{
				Recipe: name,
				Reason: derivation.ReasonRecipeExcepted,
			})
			continue
		}
		category, wrote := processRecipe(ctx, snap, recipe, excluded, settings, pub)
		if wrote {
			report.Writes[category]++
			report.EntitiesUpdated++
		} else {
			report.RecipesSkipped++
		}
	}

	derivation.PassSummary(ctx, pub, derivation.PassSummaryPayload{
		Categories:      report.Writes,
		RecipesSeen:     report.RecipesSeen,
		RecipesSkipped:  report.RecipesSkipped,
		EntitiesUpdated: report.EntitiesUpdated,
	})
	return report, nil
}
