// Package query compiles the interactive search mini-language into the
// structured request the Modrinth search API expects. A query mixes free
// text with filter words ("+fabric", "-dp", "+v1.20.1") and at most one
// sorting directive ("/downloads"); everything else passes through as the
// search term.
package query

import (
	"fmt"
	"slices"
	"strings"
)

// Query is a compiled search request. Facets is the structured filter
// expression for the API: the outer slice is ANDed, each inner slice is an
// OR group. Sort is empty when the query carried no sorting directive, in
// which case the API default applies.
type Query struct {
	Term   string
	Facets [][]string
	Sort   string
	Offset int
	Limit  int
}

// Compile translates a raw query string into a Query for the given results
// page. Words starting with "+" or "-" are filters, words starting with "/"
// are sorting directives, and all remaining words are joined back, in their
// original order, into the free-text term.
//
// Inclusive filters accumulate in their facet's OR group. Exclusive filters
// each form a standalone group of one, because the API cannot OR negated
// clauses. Facet groups come first in the fixed facet order, exclusion
// groups follow in the order they appeared, and empty groups are dropped.
func Compile(raw string, page int) (Query, error) {
	var text, filters, sorts []string
	for _, word := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(word, "+"), strings.HasPrefix(word, "-"):
			filters = append(filters, word)
		case strings.HasPrefix(word, "/"):
			sorts = append(sorts, word)
		default:
			text = append(text, word)
		}
	}

	var sort string
	if len(sorts) > 1 {
		return Query{}, &ParseError{Msg: fmt.Sprintf("more than one sorting rule: %s", strings.Join(sorts, " "))}
	}
	if len(sorts) == 1 {
		sort = strings.TrimPrefix(sorts[0], "/")
		if !slices.Contains(SortRules, sort) {
			return Query{}, &ParseError{Msg: fmt.Sprintf("invalid sorting rule %q, valid rules are %s", sort, strings.Join(SortRules, ", "))}
		}
	}

	groups := make([][]string, facetCount)
	var exclusions [][]string
	for _, word := range filters {
		clause, err := resolveFilter(word)
		if err != nil {
			return Query{}, err
		}
		if strings.HasPrefix(word, "-") {
			exclusions = append(exclusions, []string{clause})
			continue
		}
		facet, err := facetOf(word)
		if err != nil {
			return Query{}, err
		}
		groups[facet] = append(groups[facet], clause)
	}

	var facets [][]string
	for _, group := range groups {
		if len(group) > 0 {
			facets = append(facets, group)
		}
	}
	facets = append(facets, exclusions...)

	return Query{
		Term:   strings.Join(text, " "),
		Facets: facets,
		Sort:   sort,
		Offset: page * PageSize,
		Limit:  PageSize,
	}, nil
}
