package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "undebounced-search",
		Category:     domain.CategoryPerformance,
		FilePatterns: []string{"*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if !strings.Contains(content, "searchQuery") && !strings.Contains(content, "searchTerm") {
				return domain.MatchContext{}, false
			}
			if strings.Contains(content, "useDebounce") || strings.Contains(content, "setTimeout") {
				return domain.MatchContext{}, false
			}
			if ctx, ok := containsLine(content, "searchQuery"); ok {
				return ctx, true
			}
			return containsLine(content, "searchTerm")
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "Search input in {file} fires a request on every keystroke",
		FixTemplate:     "Debounce the search input (around 300ms) before querying",
	})
}
