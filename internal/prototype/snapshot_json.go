package prototype

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// DecodeJSON parses a snapshot document: an object of category name to an
// object of record name to record. Unknown record fields survive in each
// record's raw document; category and record order survive via the ordered
// decode.
func DecodeJSON(data []byte) (*Snapshot, error) {
	ordered := orderedmap.New()
	if err := json.Unmarshal(data, ordered); err != nil {
		return nil, fmt.Errorf("prototype: decode snapshot: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prototype: decode snapshot: %w", err)
	}

	snap := NewSnapshot()
	for _, category := range ordered.Keys() {
		inner := orderedmap.New()
		if err := json.Unmarshal(raw[category], inner); err != nil {
			return nil, fmt.Errorf("prototype: category %q is not an object", category)
		}
		var records map[string]json.RawMessage
		if err := json.Unmarshal(raw[category], &records); err != nil {
			return nil, fmt.Errorf("prototype: category %q is not an object", category)
		}
		for _, name := range inner.Keys() {
			body, ok := records[name]
			if !ok {
				continue
			}
			rec := new(Record)
			if err := json.Unmarshal(body, rec); err != nil {
				return nil, fmt.Errorf("prototype: decode %s/%s: %w", category, name, err)
			}
			if rec.Name == "" {
				rec.Name = name
			}
			snap.Add(category, name, rec)
		}
	}
	return snap, nil
}

// EncodeJSON re-emits a snapshot in authoring order.
func EncodeJSON(snap *Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("prototype: encode nil snapshot")
	}
	root := orderedmap.New()
	for _, category := range snap.Categories() {
		inner := orderedmap.New()
		for _, name := range snap.Names(category) {
			inner.Set(name, snap.Get(category, name))
		}
		root.Set(category, inner)
	}
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("prototype: encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}
