package derive

import (
	"context"
	"testing"

	"scraploot/internal/prototype"
	"scraploot/logging"
	"scraploot/logging/derivation"
)

func gearRecipe() *prototype.Record {
	return &prototype.Record{
		Name: "iron-gear-wheel",
		Ingredients: []prototype.Ingredient{
			{Name: "iron-plate", Amount: 2, Kind: prototype.KindItem},
		},
		Results: []prototype.Result{
			{Name: "iron-gear-wheel", Amount: 1, Kind: prototype.KindItem},
		},
	}
}

func TestBuildLootWorkedExample(t *testing.T) {
	recipe := gearRecipe()
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "iron-gear-wheel", Amount: 1}, NewExclusionSet(""), DefaultSettings(), logging.NopPublisher())
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Item != "iron-plate" {
		t.Fatalf("expected iron-plate, got %q", entry.Item)
	}
	if entry.Probability != 0.8 {
		t.Fatalf("expected probability 0.8, got %v", entry.Probability)
	}
	if entry.CountMin != 0.6 {
		t.Fatalf("expected count_min 0.6, got %v", entry.CountMin)
	}
	if entry.CountMax != 2 {
		t.Fatalf("expected count_max 2, got %v", entry.CountMax)
	}
}

func TestBuildLootOutputAmountScales(t *testing.T) {
	recipe := &prototype.Record{
		Name: "copper-cable",
		Ingredients: []prototype.Ingredient{
			{Name: "copper-plate", Amount: 1, Kind: prototype.KindItem},
		},
	}
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "copper-cable", Amount: 2}, NewExclusionSet(""), DefaultSettings(), logging.NopPublisher())
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].CountMin != 0.15 || entries[0].CountMax != 0.5 {
		t.Fatalf("expected counts scaled by half, got min=%v max=%v", entries[0].CountMin, entries[0].CountMax)
	}
}

func TestBuildLootZeroOutputAmountTreatedAsOne(t *testing.T) {
	recipe := gearRecipe()
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "iron-gear-wheel", Amount: 0}, NewExclusionSet(""), DefaultSettings(), logging.NopPublisher())
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].CountMax != 2 {
		t.Fatalf("zero output amount must behave as one, got count_max %v", entries[0].CountMax)
	}
}

func TestBuildLootSkipsFluidIngredients(t *testing.T) {
	recipe := &prototype.Record{
		Name: "concrete",
		Ingredients: []prototype.Ingredient{
			{Name: "water", Amount: 100, Kind: prototype.KindFluid},
			{Name: "stone-brick", Amount: 5, Kind: prototype.KindItem},
			{Name: "mystery", Amount: 1, Kind: prototype.KindOther},
		},
	}
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "concrete", Amount: 10}, NewExclusionSet(""), DefaultSettings(), logging.NopPublisher())
	if len(entries) != 1 {
		t.Fatalf("expected only the item ingredient, got %d entries", len(entries))
	}
	if entries[0].Item != "stone-brick" {
		t.Fatalf("expected stone-brick, got %q", entries[0].Item)
	}
}

func TestBuildLootExcludedIngredientLogged(t *testing.T) {
	recipe := &prototype.Record{
		Name: "mixed",
		Ingredients: []prototype.Ingredient{
			{Name: "iron-plate", Amount: 1, Kind: prototype.KindItem},
			{Name: "copper-plate", Amount: 1, Kind: prototype.KindItem},
		},
	}
	var captured []logging.Event
	pub := logging.PublisherFunc(func(_ context.Context, event logging.Event) {
		captured = append(captured, event)
	})
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "mixed", Amount: 1}, NewExclusionSet("iron-plate"), DefaultSettings(), pub)
	if len(entries) != 1 {
		t.Fatalf("expected one surviving entry, got %d", len(entries))
	}
	if entries[0].Item != "copper-plate" {
		t.Fatalf("expected copper-plate to survive, got %q", entries[0].Item)
	}
	if len(captured) != 1 || captured[0].Type != derivation.EventIngredientExcluded {
		t.Fatalf("expected one ingredient_excluded event, got %v", captured)
	}
}

func TestBuildLootAllExcludedMeansNoLoot(t *testing.T) {
	recipe := gearRecipe()
	entries := buildLoot(context.Background(), recipe, recipeOutput{Name: "iron-gear-wheel", Amount: 1}, NewExclusionSet("iron-plate"), DefaultSettings(), logging.NopPublisher())
	if len(entries) != 0 {
		t.Fatalf("expected no loot, got %v", entries)
	}
}

func TestSingleItemOutput(t *testing.T) {
	recipe := gearRecipe()
	out, ok := singleItemOutput(recipe)
	if !ok {
		t.Fatal("expected a single item output")
	}
	if out.Name != "iron-gear-wheel" || out.Amount != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestSingleItemOutputIgnoresFluids(t *testing.T) {
	recipe := &prototype.Record{
		Name: "oil-processing",
		Results: []prototype.Result{
			{Name: "petroleum-gas", Amount: 45, Kind: prototype.KindFluid},
			{Name: "solid-fuel", Amount: 1, Kind: prototype.KindItem},
		},
	}
	out, ok := singleItemOutput(recipe)
	if !ok {
		t.Fatal("fluid results must not count toward ambiguity")
	}
	if out.Name != "solid-fuel" {
		t.Fatalf("expected solid-fuel, got %q", out.Name)
	}
}

func TestSingleItemOutputAmbiguous(t *testing.T) {
	recipe := &prototype.Record{
		Name: "scrap-sorting",
		Results: []prototype.Result{
			{Name: "iron-plate", Amount: 1, Kind: prototype.KindItem},
			{Name: "copper-plate", Amount: 1, Kind: prototype.KindItem},
		},
	}
	if _, ok := singleItemOutput(recipe); ok {
		t.Fatal("two item outputs must be ambiguous")
	}
}

func TestSingleItemOutputFluidOnly(t *testing.T) {
	recipe := &prototype.Record{
		Name: "steam",
		Results: []prototype.Result{
			{Name: "steam", Amount: 60, Kind: prototype.KindFluid},
		},
	}
	if _, ok := singleItemOutput(recipe); ok {
		t.Fatal("fluid-only recipes have no item output")
	}
}

func TestSingleItemOutputLegacyResult(t *testing.T) {
	recipe := &prototype.Record{
		Name:        "pipe",
		Result:      "pipe",
		ResultCount: 2,
	}
	out, ok := singleItemOutput(recipe)
	if !ok {
		t.Fatal("expected legacy result to resolve")
	}
	if out.Name != "pipe" || out.Amount != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
}
