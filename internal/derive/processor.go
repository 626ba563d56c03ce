package derive

import (
	"context"

	"scraploot/internal/prototype"
	"scraploot/logging"
	"scraploot/logging/derivation"
)

// processRecipe attempts to resolve the entity a recipe's output places and
// attach derived loot to it. Every guard is a silent per-recipe skip; the
// only side effect on success is setting that one entity's loot field.
func processRecipe(ctx context.Context, snap *prototype.Snapshot, recipe *prototype.Record, excluded ExclusionSet, settings Settings, pub logging.Publisher) (category string, wrote bool) {
	skip := func(reason string) (string, bool) {
		derivation.RecipeSkipped(ctx, pub, derivation.RecipeSkippedPayload{
			Recipe: recipe.Name,
			Reason: reason,
		})
		return "", false
	}

	if len(recipe.Ingredients) == 0 {
		return skip(derivation.ReasonNoIngredients)
	}
	output, ok := singleItemOutput(recipe)
	if !ok {
		return skip(derivation.ReasonAmbiguousOut)
	}
	item := snap.Get(prototype.CategoryItem, output.Name)
	if item == nil {
		return skip(derivation.ReasonItemNotFound)
	}
	if item.PlaceResult == "" {
		return skip(derivation.ReasonNotPlaceable)
	}
	entity, ok := findMinableEntity(snap, item.PlaceResult)
	if !ok {
		return skip(derivation.ReasonEntityNotFound)
	}
	if entity.rec.Excepted(ModID) {
		return skip(derivation.ReasonEntityExcepted)
	}
	if len(entity.rec.Loot) > 0 {
		// Never overwrite loot that is already there, whether host-authored
		// or attached by an earlier pass over the same snapshot.
		return skip(derivation.ReasonExistingLoot)
	}

	loot := buildLoot(ctx, recipe, output, excluded, settings, pub)
	if len(loot) == 0 {
		return skip(derivation.ReasonEmptyLoot)
	}
	entity.rec.Loot = loot
	derivation.LootAttached(ctx, pub, derivation.LootAttachedPayload{
		Recipe:   recipe.Name,
		Entity:   entity.rec.Name,
		Category: entity.category,
		Entries:  len(loot),
	})
	return entity.category, true
}
