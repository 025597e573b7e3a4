package catalog

import (
	"sort"
	"strconv"
	"strings"
)

const autocompleteLimit = 10

type Filters struct {
	Type          string
	Generation    string
	LegendaryOnly bool
}

type Sort struct {
	Key        string
	Descending bool
}

// DeriveView returns the entries matching query and filters, ordered by sort.
// The input is never reordered; without a sort key the result keeps catalog
// order, and equal stat values keep their relative order in both directions.
func DeriveView(entries []Entry, query string, f Filters, s Sort) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))

	view := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matchesQuery(e, q) && matchesFilters(e, f) {
			view = append(view, e)
		}
	}

	if !IsStatKey(s.Key) {
		return view
	}
	sort.SliceStable(view, func(i, j int) bool {
		a, _ := view[i].BaseStats.Get(s.Key)
		b, _ := view[j].BaseStats.Get(s.Key)
		if s.Descending {
			return a > b
		}
		return a < b
	})
	return view
}

func matchesQuery(e Entry, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Name), q) || strconv.Itoa(e.ID) == q {
		return true
	}
	for _, t := range e.Types {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func matchesFilters(e Entry, f Filters) bool {
	if f.Type != "" && !hasType(e, f.Type) {
		return false
	}
	if f.Generation != "" && e.Generation != f.Generation {
		return false
	}
	if f.LegendaryOnly && !e.IsLegendary {
		return false
	}
	return true
}

func hasType(e Entry, tag string) bool {
	for _, t := range e.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// Autocomplete suggests up to ten names starting with prefix, ignoring case,
// in catalog order. Filters never apply to suggestions.
func Autocomplete(entries []Entry, prefix string) []Entry {
	p := strings.ToLower(prefix)
	suggestions := make([]Entry, 0, autocompleteLimit)
	for _, e := range entries {
		if len(suggestions) == autocompleteLimit {
			break
		}
		if strings.HasPrefix(strings.ToLower(e.Name), p) {
			suggestions = append(suggestions, e)
		}
	}
	return suggestions
}

// Paginate slices a derived view. page is 1-based; out-of-range pages are
// empty.
func Paginate(view []Entry, page, pageSize int) []Entry {
	if page < 1 || pageSize <= 0 {
		return []Entry{}
	}
	start := (page - 1) * pageSize
	if start >= len(view) {
		return []Entry{}
	}
	end := start + pageSize
	if end > len(view) {
		end = len(view)
	}
	return view[start:end]
}
