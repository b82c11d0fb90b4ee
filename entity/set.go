package entity

// Set groups extracted entities by category. It is the unit of exchange
// between the extractor, the entity store, and the follow-up generator.
type Set map[Category][]Entity

// NewSet returns a Set with an empty slice for every known category.
func NewSet() Set {
	s := make(Set, len(AllCategories()))
	for _, c := range AllCategories() {
		s[c] = nil
	}
	return s
}

// Add appends an entity to its category list.
func (s Set) Add(e Entity) {
	s[e.Category] = append(s[e.Category], e)
}

// Total returns the number of entities across all categories.
func (s Set) Total() int {
	n := 0
	for _, items := range s {
		n += len(items)
	}
	return n
}

// Counts returns the number of entities per non-empty category.
func (s Set) Counts() map[Category]int {
	counts := make(map[Category]int)
	for c, items := range s {
		if len(items) > 0 {
			counts[c] = len(items)
		}
	}
	return counts
}

// Dedupe removes duplicate entities within each category, keeping the first
// occurrence of each dedup key and preserving list order otherwise.
func (s Set) Dedupe() {
	for c, items := range s {
		if len(items) == 0 {
			continue
		}

		seen := make(map[string]struct{}, len(items))
		unique := items[:0]
		for _, e := range items {
			key := e.DedupKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			unique = append(unique, e)
		}
		s[c] = unique
	}
}
