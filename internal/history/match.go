package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match modes understood by Matcher.
const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// FilterFunc narrows entries down to those matching query.
type FilterFunc func(entries []Entry, query string) []Entry

// Matcher returns the filter for mode. An empty mode is MatchSubstring.
func Matcher(mode string) (FilterFunc, error) {
	switch mode {
	case "", MatchSubstring:
		return Filter, nil
	case MatchFuzzy:
		return FuzzyFilter, nil
	default:
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}
}

// FuzzyFilter keeps entries whose text contains the query's characters in
// order, ignoring case and diacritics. Closer matches come first; ties keep
// history order. A blank query returns entries unchanged.
func FuzzyFilter(entries []Entry, query string) []Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return entries
	}
	hay := make([]string, len(entries))
	for i, e := range entries {
		hay[i] = searchText(e)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, hay)
	sort.Stable(ranks)

	out := make([]Entry, len(ranks))
	for i, r := range ranks {
		out[i] = entries[r.OriginalIndex]
	}
	return out
}
