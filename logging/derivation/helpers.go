package derivation

import (
	"context"

	"scraploot/logging"
)

const (
	// EventIngredientExcluded is emitted when a blacklisted ingredient is left out of a loot table.
	EventIngredientExcluded logging.EventType = "derivation.ingredient_excluded"
	// EventRecipeSkipped is emitted when a recipe fails one of the eligibility guards.
	EventRecipeSkipped logging.EventType = "derivation.recipe_skipped"
	// EventLootAttached is emitted when a derived loot table is written onto an entity.
	EventLootAttached logging.EventType = "derivation.loot_attached"
	// EventPassSummary is emitted once after the full pass, regardless of verbosity.
	EventPassSummary logging.EventType = "derivation.pass_summary"
)

// Skip reasons carried by RecipeSkippedPayload.
const (
	ReasonNoIngredients  = "no_ingredients"
	ReasonAmbiguousOut   = "ambiguous_output"
	ReasonItemNotFound   = "item_not_found"
	ReasonNotPlaceable   = "not_placeable"
	ReasonEntityNotFound = "entity_not_found"
	ReasonEntityExcepted = "entity_excepted"
	ReasonRecipeExcepted = "recipe_excepted"
	ReasonExistingLoot   = "existing_loot"
	ReasonRecycling      = "recycling"
	ReasonEmptyLoot      = "empty_loot"
)

// IngredientExcludedPayload names the ingredient withheld from a recipe's loot.
type IngredientExcludedPayload struct {
	Recipe     string `json:"recipe"`
	Ingredient string `json:"ingredient"`
}

// RecipeSkippedPayload describes why a recipe produced no loot.
type RecipeSkippedPayload struct {
	Recipe string `json:"recipe"`
	Reason string `json:"reason"`
}

// LootAttachedPayload describes a successful write onto an entity prototype.
type LootAttachedPayload struct {
	Recipe   string `json:"recipe"`
	Entity   string `json:"entity"`
	Category string `json:"category"`
	Entries  int    `json:"entries"`
}

// PassSummaryPayload tallies the whole pass.
type PassSummaryPayload struct {
	Categories      map[string]int `json:"categories"`
	RecipesSeen     int            `json:"recipesSeen"`
	RecipesSkipped  int            `json:"recipesSkipped"`
	EntitiesUpdated int            `json:"entitiesUpdated"`
}

// IngredientExcluded publishes a verbose-level exclusion diagnostic.
func IngredientExcluded(ctx context.Context, pub logging.Publisher, payload IngredientExcludedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventIngredientExcluded,
		Subject:  logging.RecordRef{Name: payload.Recipe, Kind: logging.RecordKindRecipe},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryDerivation,
		Payload:  payload,
	})
}

// RecipeSkipped publishes a verbose-level skip diagnostic.
func RecipeSkipped(ctx context.Context, pub logging.Publisher, payload RecipeSkippedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRecipeSkipped,
		Subject:  logging.RecordRef{Name: payload.Recipe, Kind: logging.RecordKindRecipe},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryDerivation,
		Payload:  payload,
	})
}

// LootAttached publishes a verbose-level write diagnostic.
func LootAttached(ctx context.Context, pub logging.Publisher, payload LootAttachedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLootAttached,
		Subject:  logging.RecordRef{Name: payload.Entity, Kind: logging.RecordKindEntity},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryDerivation,
		Payload:  payload,
	})
}

// PassSummary publishes the always-on end-of-pass summary.
func PassSummary(ctx context.Context, pub logging.Publisher, payload PassSummaryPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPassSummary,
		Subject:  logging.RecordRef{Kind: logging.RecordKindPass},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryDerivation,
		Payload:  payload,
	})
}
