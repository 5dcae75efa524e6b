package listview

import "strings"

// FilterState holds the live predicate values driving a list page.
// Zero values mean "no constraint": an empty search matches everything,
// an empty category set imposes nothing, and a date range applies only
// when both bounds are set.
type FilterState struct {
	Search     string
	Categories map[string]map[string]bool
	DateField  string
	DateFrom   string
	DateTo     string
}

// NewFilterState returns an empty state, the page-mount default.
func NewFilterState() FilterState {
	return FilterState{Categories: make(map[string]map[string]bool)}
}

// SetCategory replaces the selection set for one categorical filter.
func (s *FilterState) SetCategory(field string, values []string) {
	if s.Categories == nil {
		s.Categories = make(map[string]map[string]bool)
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	s.Categories[field] = set
}

// Empty reports whether the state imposes no constraint at all.
func (s FilterState) Empty() bool {
	if s.Search != "" || (s.DateFrom != "" && s.DateTo != "") {
		return false
	}
	for _, set := range s.Categories {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the ordered subsequence of rows satisfying every predicate
// family: search substring ORed across predicateFields, category membership
// ANDed across filters, and the inclusive date range. Rows missing a
// predicated field simply fail that predicate; Apply never panics.
func Apply(rows []Row, state FilterState, predicateFields []string) []Row {
	out := make([]Row, 0, len(rows))
	query := strings.ToLower(strings.TrimSpace(state.Search))
	for _, row := range rows {
		if query != "" && !matchesSearch(row, query, predicateFields) {
			continue
		}
		if !matchesCategories(row, state.Categories) {
			continue
		}
		if !matchesDateRange(row, state) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesSearch(row Row, query string, fields []string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(row.String(f)), query) {
			return true
		}
	}
	return false
}

func matchesCategories(row Row, categories map[string]map[string]bool) bool {
	for field, set := range categories {
		if len(set) == 0 {
			continue
		}
		if !set[row.String(field)] {
			return false
		}
	}
	return true
}

// matchesDateRange compares the YYYY-MM-DD prefix of the date field
// lexicographically; fixed-width ISO dates make that equivalent to a
// chronological comparison.
func matchesDateRange(row Row, state FilterState) bool {
	if state.DateField == "" || state.DateFrom == "" || state.DateTo == "" {
		return true
	}
	day := row.String(state.DateField)
	if len(day) < 10 {
		return false
	}
	day = day[:10]
	return day >= state.DateFrom && day <= state.DateTo
}
