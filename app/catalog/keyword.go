package catalog

// Keyworded is an entity that can report whether it matches a search term.
type Keyworded interface {
	MatchesKeyword(term string) bool
}

// FilterKeyword narrows items to those matching term, preserving input
// order. An empty term means "no filtering" and returns items untouched
// rather than matching everything against an empty substring.
func FilterKeyword[T Keyworded](items []T, term string) []T {
	if term == "" {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if item.MatchesKeyword(term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
