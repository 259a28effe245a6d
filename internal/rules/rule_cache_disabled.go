package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "cache-disabled-queries",
		Category:     domain.CategoryPerformance,
		FilePatterns: []string{"*.ts", "*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			return containsLine(content, "staleTime: 0")
		},
		// Disabling staleness alone is suspicious; disabling garbage
		// collection too means every render round-trips to the API.
		Severity: func(_, content string, _ domain.MatchContext) domain.Severity {
			if strings.Contains(content, "gcTime: 0") {
				return domain.SeverityHigh
			}
			return domain.SeverityMedium
		},
		MessageTemplate: "Query cache is fully disabled in {file}, forcing a network round trip on every render",
		FixTemplate:     "Replace staleTime/gcTime zeroing with targeted invalidation of the affected query keys",
	})
}
