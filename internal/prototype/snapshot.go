package prototype

// Snapshot is the load-time prototype database: category name to record name
// to record. It is owned by the host; this module never creates or deletes
// entries once a snapshot is built, and the derivation pass only ever sets
// the loot field on existing records.
//
// Authoring order of categories and records is preserved so a re-encoded
// snapshot diffs minimally against its source.
type Snapshot struct {
	order   []string
	buckets map[string]*bucket
}

type bucket struct {
	order  []string
	byName map[string]*Record
}

// CategoryRecipe and CategoryItem are the two category names the pass
// addresses directly; entity categories are open-ended.
const (
	CategoryRecipe = "recipe"
	CategoryItem   = "item"
)

func NewSnapshot() *Snapshot {
	return &Snapshot{buckets: make(map[string]*bucket)}
}

// Add inserts or replaces a record. A replaced record keeps its original
// position; new categories and names append.
func (s *Snapshot) Add(category, name string, rec *Record) {
	if category == "" || name == "" || rec == nil {
		return
	}
	b, ok := s.buckets[category]
	if !ok {
		b = &bucket{byName: make(map[string]*Record)}
		s.buckets[category] = b
		s.order = append(s.order, category)
	}
	if _, exists := b.byName[name]; !exists {
		b.order = append(b.order, name)
	}
	b.byName[name] = rec
}

// Get returns the record for category/name, or nil.
func (s *Snapshot) Get(category, name string) *Record {
	b, ok := s.buckets[category]
	if !ok {
		return nil
	}
	return b.byName[name]
}

// Categories returns the category names in authoring order.
func (s *Snapshot) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Names returns the record names of a category in authoring order.
func (s *Snapshot) Names(category string) []string {
	b, ok := s.buckets[category]
	if !ok {
		return nil
	}
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns the total record count across all categories.
func (s *Snapshot) Len() int {
	total := 0
	for _, b := range s.buckets {
		total += len(b.byName)
	}
	return total
}
