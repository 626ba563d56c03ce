package prototype

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// LootEntry is one probabilistic drop on an entity's loot table.
type LootEntry struct {
	Item        string  `json:"item" jsonschema:"title=Item name,description=Name of the item prototype awarded by this drop"`
	Probability float64 `json:"probability" jsonschema:"title=Drop probability,minimum=0,maximum=1"`
	CountMin    float64 `json:"count_min" jsonschema:"title=Minimum count"`
	CountMax    float64 `json:"count_max" jsonschema:"title=Maximum count"`
}

// Ingredient is a recipe input. The wire format accepts both the canonical
// object form {"type":"item","name":"iron-plate","amount":2} and the legacy
// two-element shorthand ["iron-plate", 2].
type Ingredient struct {
	Name   string
	Amount float64
	Kind   Kind
}

type ingredientWire struct {
	Type   string  `json:"type,omitempty"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var legacy []any
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return err
		}
		if len(legacy) < 1 {
			return fmt.Errorf("prototype: ingredient shorthand must name an item")
		}
		name, ok := legacy[0].(string)
		if !ok {
			return fmt.Errorf("prototype: ingredient shorthand must start with a name")
		}
		amount := 1.0
		if len(legacy) > 1 {
			if n, ok := legacy[1].(float64); ok {
				amount = n
			}
		}
		i.Name = name
		i.Amount = amount
		i.Kind = KindItem
		return nil
	}
	var wire ingredientWire
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return err
	}
	i.Name = wire.Name
	i.Amount = wire.Amount
	i.Kind = ParseKind(wire.Type)
	return nil
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientWire{Type: string(i.Kind), Name: i.Name, Amount: i.Amount})
}

// Result is a recipe output; same wire shapes as Ingredient.
type Result struct {
	Name   string
	Amount float64
	Kind   Kind
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var ing Ingredient
	if err := ing.UnmarshalJSON(data); err != nil {
		return err
	}
	r.Name = ing.Name
	r.Amount = ing.Amount
	r.Kind = ing.Kind
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientWire{Type: string(r.Kind), Name: r.Name, Amount: r.Amount})
}

// Record is one prototype in the snapshot. Only the fields this pass reads or
// writes are typed; everything else the host authored is carried in Blocks
// and re-emitted untouched, since the snapshot is host-owned and must survive
// the round trip.
type Record struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
	Results     []Result        `json:"results,omitempty"`
	Result      string          `json:"result,omitempty"`
	ResultCount float64         `json:"result_count,omitempty"`
	PlaceResult string          `json:"place_result,omitempty"`
	Minable     json.RawMessage `json:"minable,omitempty"`
	Loot        []LootEntry     `json:"loot,omitempty"`
	Exclusions  json.RawMessage `json:"exclusions,omitempty"`

	// Blocks holds every field the pass has no opinion about.
	Blocks map[string]json.RawMessage `json:"-"`

	doc *orderedmap.OrderedMap
}

var recordKeys = []string{
	"name", "type", "ingredients", "results", "result", "result_count",
	"place_result", "minable", "loot", "exclusions",
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type rawRecord Record
	var alias rawRecord
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var blocks map[string]json.RawMessage
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	for _, key := range recordKeys {
		delete(blocks, key)
	}
	if len(blocks) == 0 {
		blocks = nil
	}
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return err
	}
	*r = Record(alias)
	r.Blocks = blocks
	r.doc = doc
	return nil
}

// MarshalJSON re-emits a decoded record byte-faithfully apart from the loot
// field, which is the single field this pass is allowed to set. Hand-built
// records (tests, the Lua loader) marshal from their typed fields instead.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r.doc != nil {
		if len(r.Loot) > 0 {
			r.doc.Set("loot", r.Loot)
		}
		return json.Marshal(r.doc)
	}

	doc := orderedmap.New()
	if r.Name != "" {
		doc.Set("name", r.Name)
	}
	if r.Type != "" {
		doc.Set("type", r.Type)
	}
	if len(r.Ingredients) > 0 {
		doc.Set("ingredients", r.Ingredients)
	}
	if len(r.Results) > 0 {
		doc.Set("results", r.Results)
	}
	if r.Result != "" {
		doc.Set("result", r.Result)
	}
	if r.ResultCount != 0 {
		doc.Set("result_count", r.ResultCount)
	}
	if r.PlaceResult != "" {
		doc.Set("place_result", r.PlaceResult)
	}
	if len(r.Minable) > 0 {
		doc.Set("minable", r.Minable)
	}
	if len(r.Loot) > 0 {
		doc.Set("loot", r.Loot)
	}
	if len(r.Exclusions) > 0 {
		doc.Set("exclusions", r.Exclusions)
	}
	keys := make([]string, 0, len(r.Blocks))
	for key := range r.Blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		doc.Set(key, r.Blocks[key])
	}
	return json.Marshal(doc)
}

// IsMinable reports whether the record carries the minable marker. The
// marker's own contents are host business; presence is the eligibility gate.
func (r *Record) IsMinable() bool {
	trimmed := bytes.TrimSpace(r.Minable)
	if len(trimmed) == 0 {
		return false
	}
	switch string(trimmed) {
	case "null", "false":
		return false
	}
	return true
}

// Excepted reports whether the record's exclusion list names the given mod
// identifier. An absent or non-list exclusion field means "not excepted".
func (r *Record) Excepted(modID string) bool {
	if len(r.Exclusions) == 0 {
		return false
	}
	var mods []string
	if err := json.Unmarshal(r.Exclusions, &mods); err != nil {
		return false
	}
	for _, mod := range mods {
		if mod == modID {
			return true
		}
	}
	return false
}
