package domain

import (
	"fmt"
	"sort"
)

// DefaultPriorityOrder is the shipped category ordering, most urgent
// first. It is configuration, not engine logic: callers may supply any
// table covering any subset of categories.
var DefaultPriorityOrder = []Category{
	CategorySchema,
	CategorySecurity,
	CategoryFunctionality,
	CategoryCacheSync,
	CategoryHTTPCaching,
	CategoryDataConsistency,
	CategoryPerformance,
	CategoryUIConsistency,
	CategoryFeatureRemoval,
	CategoryEngine,
}

// PriorityTable assigns each category a rank; lower ranks sort first.
// Categories absent from the table rank after every listed one.
type PriorityTable struct {
	ranks map[Category]int
}

// NewPriorityTable builds a table from an explicit ordering.
func NewPriorityTable(order []Category) (PriorityTable, error) {
	ranks := make(map[Category]int, len(order))
	for i, c := range order {
		if _, dup := ranks[c]; dup {
			return PriorityTable{}, fmt.Errorf("category %q listed twice in priority order", c)
		}
		ranks[c] = i
	}
	return PriorityTable{ranks: ranks}, nil
}

// DefaultPriorityTable returns the table for DefaultPriorityOrder.
func DefaultPriorityTable() PriorityTable {
	t, err := NewPriorityTable(DefaultPriorityOrder)
	if err != nil {
		panic(err) // DefaultPriorityOrder has no duplicates
	}
	return t
}

// Rank returns the sort position of c.
func (t PriorityTable) Rank(c Category) int {
	if r, ok := t.ranks[c]; ok {
		return r
	}
	return len(t.ranks)
}

// Prioritize establishes the single total order over a run's findings and
// assigns dense 1-based priority indices. The sort key is
// (category rank, severity rank, file path, rule id) ascending, so
// repeated runs over an unchanged finding set produce identical output.
// The input slice is not modified.
func Prioritize(findings []Finding, table PriorityTable) []PrioritizedFinding {
	ordered := make([]Finding, len(findings))
	copy(ordered, findings)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if ra, rb := table.Rank(a.Category), table.Rank(b.Category); ra != rb {
			return ra < rb
		}
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra < rb
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.RuleID < b.RuleID
	})

	out := make([]PrioritizedFinding, len(ordered))
	for i, f := range ordered {
		out[i] = PrioritizedFinding{Finding: f, PriorityIndex: i + 1}
	}
	return out
}
