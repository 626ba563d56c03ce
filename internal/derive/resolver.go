package derive

import (
	"scraploot/internal/prototype"
)

// resolvedEntity is a minable entity record plus the snapshot category it was
// found under, kept for the end-of-pass summary.
type resolvedEntity struct {
	rec      *prototype.Record
	category string
}

// findMinableEntity scans every category of the snapshot for the first record
// matching the name that carries the minable marker. A full linear scan is
// fine here: the pass runs once, at load time, over a bounded dataset.
func findMinableEntity(snap *prototype.Snapshot, name string) (resolvedEntity, bool) {
	for _, category := range snap.Categories() {
		rec := snap.Get(category, name)
		if rec == nil || !rec.IsMinable() {
			continue
		}
		return resolvedEntity{rec: rec, category: category}, true
	}
	return resolvedEntity{}, false
}
