// Package content implements the client-side filtering model of the music and
// gallery pages: a pure derivation over the fetched collection, recomputed in
// full on every request.
package content

import (
	"sort"
	"strings"
)

// AllFacet is the sentinel facet matching every record. It always leads the
// derived facet list, even for an empty collection.
const AllFacet = "All"

// Record is a content item that can be faceted and searched.
type Record interface {
	// FacetValue returns the record's category or genre.
	FacetValue() string
	// SearchText returns the title and description matched against search terms.
	SearchText() (title, description string)
}

// Filter returns the records matching both the facet and the search term.
// The term matches case-insensitively against title or description; an empty
// term matches everything, as does the AllFacet facet. Filter is a pure
// function and idempotent: reapplying the same predicate returns an equal set.
func Filter[T Record](records []T, term, facet string) []T {
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if matchesFacet(r, facet) && matchesSearch(r, term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Facets derives the sorted distinct facet values of the collection, with
// AllFacet prepended.
func Facets[T Record](records []T) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, r := range records {
		v := r.FacetValue()
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{AllFacet}, values...)
}

func matchesFacet(r Record, facet string) bool {
	return facet == "" || facet == AllFacet || r.FacetValue() == facet
}

func matchesSearch(r Record, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	title, description := r.SearchText()
	return strings.Contains(strings.ToLower(title), term) ||
		strings.Contains(strings.ToLower(description), term)
}
